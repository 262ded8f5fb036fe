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

// Package style supports specifying CSS styling for drawing elements.
//
// A Style instance comprises a mapping from CSS property name to value, both
// represented as strings.  A Style is attached to an element under
// construction via the `Define()` method, which sets the element's `style`
// attribute to the declarations in increasing property-name order, e.g.
//
//	style.New().With("font-size", style.Px(13)).With("text-anchor", "middle")
//
// yields `style="font-size: 13px; text-anchor: middle"`.
package style

import (
	"sort"
	"strings"

	"github.com/ilhamster/zoomchart/drawing"
)

const styleAttr = "style"

// Style defines a set of CSS declarations that can be attached to an element.
type Style struct {
	attrs map[string]string
}

// New returns a new, empty Style.
func New() *Style {
	return &Style{
		attrs: map[string]string{},
	}
}

// Define returns an AttrUpdate defining the receiver into an element.  An
// empty Style defines nothing.
func (s *Style) Define() drawing.AttrUpdate {
	if len(s.attrs) == 0 {
		return drawing.EmptyUpdate
	}
	return drawing.Attr(styleAttr, s.String())
}

// String returns the receiver's declarations as a CSS declaration list.
func (s *Style) String() string {
	keys := make([]string, 0, len(s.attrs))
	for k := range s.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	decls := make([]string, len(keys))
	for idx, k := range keys {
		decls[idx] = k + ": " + s.attrs[k]
	}
	return strings.Join(decls, "; ")
}

// Px formats the provided value as a pixel specifier.
func Px(valPx float64) string {
	return drawing.FormatFloat(valPx) + "px"
}

// With sets the specified property and value in the receiver.
func (s *Style) With(prop string, val string) *Style {
	s.attrs[prop] = val
	return s
}
