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

// Package color supports coloring drawing elements.
//
// An element may be annotated with up to two colors: a fill color and a
// stroke color, both given as SVG paint strings (a color name, or an RGB,
// RGBA, HSL, HSLA, or hex color specifier, or "none").
//
// A Palette names the colors used by each part of a chart, so that an entire
// chart can be recolored from configuration:
//
//	p := color.DefaultPalette()
//	curve.With(color.Stroke(p.Curve), color.Fill(color.None))
package color

import "github.com/ilhamster/zoomchart/drawing"

const (
	fillKey            = "fill"
	strokeKey          = "stroke"
	strokeWidthKey     = "stroke-width"
	strokeDashArrayKey = "stroke-dasharray"
)

// None is the SVG paint value that paints nothing.
const None = "none"

// Palette names the colors of each part of a chart.
type Palette struct {
	// Grid colors the dashed gridlines.
	Grid string
	// Axis colors axis tick marks.
	Axis string
	// Curve colors the line connecting samples.
	Curve string
	// Marker fills per-sample markers.
	Marker string
	// SelectionFill and SelectionStroke color the zoom selection rectangle.
	SelectionFill   string
	SelectionStroke string
}

// DefaultPalette returns the default chart palette.
func DefaultPalette() Palette {
	return Palette{
		Grid:            "#333",
		Axis:            "black",
		Curve:           "blue",
		Marker:          "red",
		SelectionFill:   "rgba(0, 0, 0, 0.1)",
		SelectionStroke: "black",
	}
}

// WithDefaults returns the receiver with any empty color replaced by its
// default.
func (p Palette) WithDefaults() Palette {
	def := DefaultPalette()
	for _, c := range []struct {
		got *string
		def string
	}{
		{&p.Grid, def.Grid},
		{&p.Axis, def.Axis},
		{&p.Curve, def.Curve},
		{&p.Marker, def.Marker},
		{&p.SelectionFill, def.SelectionFill},
		{&p.SelectionStroke, def.SelectionStroke},
	} {
		if *c.got == "" {
			*c.got = c.def
		}
	}
	return p
}

// Fill annotates an element with the specified fill color.
func Fill(colorValue string) drawing.AttrUpdate {
	return drawing.Attr(fillKey, colorValue)
}

// Stroke annotates an element with the specified stroke color.
func Stroke(colorValue string) drawing.AttrUpdate {
	return drawing.Attr(strokeKey, colorValue)
}

// Paint annotates an element with the specified fill and stroke colors.  An
// empty color is left unset.
func Paint(fill, stroke string) drawing.AttrUpdate {
	return drawing.Chain(
		drawing.If(fill != "", Fill(fill)),
		drawing.If(stroke != "", Stroke(stroke)),
	)
}

// StrokeWidth annotates an element with the specified stroke width, in
// pixels.
func StrokeWidth(widthPx float64) drawing.AttrUpdate {
	return drawing.Float(strokeWidthKey, widthPx)
}

// Dashed annotates an element with a stroke dash pattern, given as
// alternating dash and gap lengths in pixels.
func Dashed(pattern string) drawing.AttrUpdate {
	return drawing.Attr(strokeDashArrayKey, pattern)
}
