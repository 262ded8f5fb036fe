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

// Package continuousaxis builds the gridlines, tick marks, and tick labels of
// a chart's continuous x and y axes.
//
// Each axis is divided into ten equal intervals, yielding eleven ticks from
// the axis' minimum to its maximum inclusive.  Each tick gets a dashed
// gridline across the plot area, and a short tick mark with a two-decimal
// label outside it: below the plot for the x axis, left of it for the y axis.
// The structure emitted for an axis is:
//
//	g class="{x|y}-grid"
//	  repeated line (one per tick)
//	g class="{x|y}-axis" transform="translate(...)"
//	  repeated:
//	    line (tick mark)
//	    text (tick label)
//
// Building is a pure function of the Transform and render settings.
package continuousaxis

import (
	"fmt"

	"github.com/ilhamster/zoomchart/color"
	"github.com/ilhamster/zoomchart/drawing"
	"github.com/ilhamster/zoomchart/label"
	"github.com/ilhamster/zoomchart/scale"
	"github.com/ilhamster/zoomchart/style"
)

const (
	// tickIntervals is the number of equal intervals an axis is divided into.
	tickIntervals = 10
	// TickCount is the number of ticks on each axis.
	TickCount = tickIntervals + 1

	gridDashPattern = "2,2"
)

// Orientation identifies an axis.
type Orientation int

// Axis orientations.
const (
	X Orientation = iota
	Y
)

func (o Orientation) String() string {
	if o == X {
		return "x"
	}
	return "y"
}

// XAxisRenderSettings configures the drawing of an x axis.
type XAxisRenderSettings struct {
	// MarkerLengthPx is the length of tick marks below the plot area.
	MarkerLengthPx float64
	// LabelOffsetPx is the distance from the plot area's bottom edge to the
	// label baseline.
	LabelOffsetPx float64
	// FontSizePx is the label font size.
	FontSizePx float64
}

// DefaultXAxisRenderSettings returns the default x axis render settings.
func DefaultXAxisRenderSettings() XAxisRenderSettings {
	return XAxisRenderSettings{
		MarkerLengthPx: 5,
		LabelOffsetPx:  20,
		FontSizePx:     13,
	}
}

// YAxisRenderSettings configures the drawing of a y axis.
type YAxisRenderSettings struct {
	// MarkerLengthPx is the length of tick marks left of the plot area.
	MarkerLengthPx float64
	// LabelOffsetPx is the distance from the plot area's left edge to the
	// label's right edge.
	LabelOffsetPx float64
	// FontSizePx is the label font size.
	FontSizePx float64
}

// DefaultYAxisRenderSettings returns the default y axis render settings.
func DefaultYAxisRenderSettings() YAxisRenderSettings {
	return YAxisRenderSettings{
		MarkerLengthPx: 5,
		LabelOffsetPx:  10,
		FontSizePx:     11,
	}
}

// Ticks returns the TickCount evenly spaced values spanning r inclusive.
func Ticks(r scale.Range) []float64 {
	ret := make([]float64, TickCount)
	for i := range ret {
		ret[i] = r.Min + float64(i)/tickIntervals*r.Width()
	}
	// Pin the last tick to the bound itself, free of rounding.
	ret[tickIntervals] = r.Max
	return ret
}

// Axis draws one continuous axis of a chart.
type Axis struct {
	orientation Orientation
	t           *scale.Transform
	palette     color.Palette
	x           XAxisRenderSettings
	y           YAxisRenderSettings
}

// NewXAxis returns the x axis of the provided Transform.
func NewXAxis(t *scale.Transform, palette color.Palette, settings XAxisRenderSettings) *Axis {
	return &Axis{
		orientation: X,
		t:           t,
		palette:     palette,
		x:           settings,
	}
}

// NewYAxis returns the y axis of the provided Transform.
func NewYAxis(t *scale.Transform, palette color.Palette, settings YAxisRenderSettings) *Axis {
	return &Axis{
		orientation: Y,
		t:           t,
		palette:     palette,
		y:           settings,
	}
}

// Orientation returns the receiver's orientation.
func (a *Axis) Orientation() Orientation {
	return a.orientation
}

// Range returns the receiver's resolved data range.
func (a *Axis) Range() scale.Range {
	if a.orientation == X {
		return a.t.X()
	}
	return a.t.Y()
}

// Ticks returns the receiver's tick values.
func (a *Axis) Ticks() []float64 {
	return Ticks(a.Range())
}

// GridClass returns the class of the receiver's gridline group.
func (a *Axis) GridClass() string {
	return a.orientation.String() + "-grid"
}

// AxisClass returns the class of the receiver's tick mark and label group.
func (a *Axis) AxisClass() string {
	return a.orientation.String() + "-axis"
}

// Grid adds the receiver's gridline group to the provided parent.  Each
// gridline spans the full plot extent of the opposite axis.
func (a *Axis) Grid(parent drawing.Builder) {
	area := a.t.Viewport().PlotArea()
	g := parent.Child(drawing.KindGroup).With(drawing.Class(a.GridClass()))
	for _, v := range a.Ticks() {
		line := g.Child(drawing.KindLine).With(
			color.Stroke(a.palette.Grid),
			color.Dashed(gridDashPattern),
		)
		if a.orientation == X {
			px := a.t.XScale(v)
			line.With(
				drawing.Float("x1", px), drawing.Float("x2", px),
				drawing.Float("y1", area.Y), drawing.Float("y2", area.Bottom()),
			)
		} else {
			py := a.t.YScale(v)
			line.With(
				drawing.Float("x1", area.X), drawing.Float("x2", area.Right()),
				drawing.Float("y1", py), drawing.Float("y2", py),
			)
		}
	}
}

// Marks adds the receiver's tick mark and label group to the provided
// parent.  The group is translated to the plot edge the axis lies along.
func (a *Axis) Marks(parent drawing.Builder) {
	area := a.t.Viewport().PlotArea()
	g := parent.Child(drawing.KindGroup).With(drawing.Class(a.AxisClass()))
	if a.orientation == X {
		g.With(drawing.Attr("transform", translate(0, area.Bottom())))
		labelStyle := style.New().
			With("font-size", style.Px(a.x.FontSizePx)).
			With("font-weight", "bold").
			With("text-anchor", "middle")
		for _, v := range a.Ticks() {
			px := a.t.XScale(v)
			g.Child(drawing.KindLine).With(
				color.Stroke(a.palette.Axis),
				drawing.Float("x1", px), drawing.Float("x2", px),
				drawing.Float("y1", 0), drawing.Float("y2", a.x.MarkerLengthPx),
			)
			g.Child(drawing.KindText).With(
				drawing.Float("x", px),
				drawing.Float("y", a.x.LabelOffsetPx),
				labelStyle.Define(),
				drawing.Text(label.Tick(v)),
			)
		}
		return
	}
	g.With(drawing.Attr("transform", translate(area.X, 0)))
	labelStyle := style.New().
		With("dominant-baseline", "middle").
		With("font-size", style.Px(a.y.FontSizePx)).
		With("font-weight", "bold").
		With("text-anchor", "end")
	for _, v := range a.Ticks() {
		py := a.t.YScale(v)
		g.Child(drawing.KindLine).With(
			color.Stroke(a.palette.Axis),
			drawing.Float("x1", 0), drawing.Float("x2", -a.y.MarkerLengthPx),
			drawing.Float("y1", py), drawing.Float("y2", py),
		)
		g.Child(drawing.KindText).With(
			drawing.Float("x", -a.y.LabelOffsetPx),
			drawing.Float("y", py),
			labelStyle.Define(),
			drawing.Text(label.Tick(v)),
		)
	}
}

func translate(x, y float64) string {
	return fmt.Sprintf("translate(%s, %s)", drawing.FormatFloat(x), drawing.FormatFloat(y))
}
