/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package label supports labeling drawing elements: numeric tick labels, and
// hover labels attached to individual data points.
package label

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ilhamster/zoomchart/drawing"
)

// Tick formats an axis tick value with exactly two decimal places.  Values
// that round to zero are formatted as "0.00", never "-0.00".
func Tick(v float64) string {
	ret := strconv.FormatFloat(v, 'f', 2, 64)
	if ret == "-0.00" {
		return "0.00"
	}
	return ret
}

// Number formats a sample coordinate with the fewest digits that represent
// it exactly, switching to exponent notation only for very large or very
// small magnitudes.
func Number(v float64) string {
	abs := math.Abs(v)
	switch {
	case v == 0:
		return "0"
	case math.IsNaN(v) || math.IsInf(v, 0):
		return strconv.FormatFloat(v, 'g', -1, 64)
	case abs >= 1e21 || abs < 1e-6:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// Point returns the hover label for the sample at the specified zero-based
// index in its series.
func Point(index int, x, y float64) string {
	return fmt.Sprintf("Point %d: (%s, %s)", index+1, Number(x), Number(y))
}

// Hover attaches a hover label to the provided element, as a title child.
func Hover(b drawing.Builder, text string) {
	b.Child(drawing.KindTitle).With(drawing.Text(text))
}
