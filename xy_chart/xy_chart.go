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

// Package xychart builds the drawing of a single-series line chart.
//
// Given a dedicated root drawing.Builder representing the chart's svg
// element, and which must not be used for any other purpose, and the
// scale.Transform for the chart's data, a new XYChart instance may be created
// via
//
//	chart := New(root, transform, settings)
//
// which draws the chart's grid and axes.  The data series is then drawn via
//
//	chart.AddSeries(samples)
//
// and, while a zoom selection is in progress, the selection rectangle via
//
//	chart.WithSelection(rect)
//
// Build does all of this in one step, returning the finished drawing.  The
// structure of a chart drawing is:
//
//	svg (width, height)
//	  g x-grid
//	  g y-grid
//	  g x-axis
//	  g y-axis
//	  repeated series:
//	    path curve
//	    repeated circle marker
//	      title (hover label)
//	  rect selection (only during a drag)
package xychart

import (
	"fmt"
	"math"
	"strings"

	"github.com/ilhamster/zoomchart/color"
	continuousaxis "github.com/ilhamster/zoomchart/continuous_axis"
	"github.com/ilhamster/zoomchart/drawing"
	"github.com/ilhamster/zoomchart/label"
	"github.com/ilhamster/zoomchart/scale"
)

const (
	curveClass     = "curve"
	markerClass    = "marker"
	selectionClass = "selection"
)

// Settings configures the drawing of a chart.
type Settings struct {
	Palette        color.Palette
	XAxis          continuousaxis.XAxisRenderSettings
	YAxis          continuousaxis.YAxisRenderSettings
	CurveWidthPx   float64
	MarkerRadiusPx float64
}

// DefaultSettings returns the default chart settings.
func DefaultSettings() Settings {
	return Settings{
		Palette:        color.DefaultPalette(),
		XAxis:          continuousaxis.DefaultXAxisRenderSettings(),
		YAxis:          continuousaxis.DefaultYAxisRenderSettings(),
		CurveWidthPx:   3,
		MarkerRadiusPx: 5,
	}
}

// XYChart represents a line chart under construction.
type XYChart struct {
	t        *scale.Transform
	settings Settings
	db       drawing.Builder
}

// New constructs a new chart on the provided root, drawing its grid and
// axes.
func New(db drawing.Builder, t *scale.Transform, settings Settings) *XYChart {
	vp := t.Viewport()
	ret := &XYChart{
		t:        t,
		settings: settings,
		db: db.With(
			drawing.If(settings.CurveWidthPx < 0, drawing.Error(fmt.Errorf("curve width must not be negative, got %v", settings.CurveWidthPx))),
			drawing.If(settings.MarkerRadiusPx < 0, drawing.Error(fmt.Errorf("marker radius must not be negative, got %v", settings.MarkerRadiusPx))),
			drawing.Float("width", vp.Width),
			drawing.Float("height", vp.Height),
		),
	}
	xAxis := continuousaxis.NewXAxis(t, settings.Palette, settings.XAxis)
	yAxis := continuousaxis.NewYAxis(t, settings.Palette, settings.YAxis)
	xAxis.Grid(ret.db)
	yAxis.Grid(ret.db)
	xAxis.Marks(ret.db)
	yAxis.Marks(ret.db)
	return ret
}

// AddSeries draws the provided samples: a curve through them in order, and a
// marker with a hover label at each.  Markers are labeled by the sample's
// one-based position in data.
func (xyc *XYChart) AddSeries(data []scale.Sample) *XYChart {
	xyc.db.Child(drawing.KindPath).With(
		drawing.Class(curveClass),
		drawing.Attr("d", CurvePath(data, xyc.t)),
		color.Paint(color.None, xyc.settings.Palette.Curve),
		color.StrokeWidth(xyc.settings.CurveWidthPx),
	)
	for idx, s := range data {
		if !drawable(s) {
			continue
		}
		marker := xyc.db.Child(drawing.KindCircle).With(
			drawing.Class(markerClass),
			drawing.Float("cx", xyc.t.XScale(s.X)),
			drawing.Float("cy", xyc.t.YScale(s.Y)),
			drawing.Float("r", xyc.settings.MarkerRadiusPx),
			color.Fill(xyc.settings.Palette.Marker),
		)
		label.Hover(marker, label.Point(idx, s.X, s.Y))
	}
	return xyc
}

// WithSelection draws the provided pixel-space selection rectangle.
func (xyc *XYChart) WithSelection(r scale.Rect) *XYChart {
	xyc.db.Child(drawing.KindRect).With(
		drawing.Class(selectionClass),
		drawing.Float("x", r.X),
		drawing.Float("y", r.Y),
		drawing.Float("width", r.Width),
		drawing.Float("height", r.Height),
		color.Paint(xyc.settings.Palette.SelectionFill, xyc.settings.Palette.SelectionStroke),
	)
	return xyc
}

// CurvePath returns the SVG path data of a polyline through the provided
// samples in order: a move to the first, then a line to each subsequent
// sample.  Samples with non-finite coordinates are skipped.  An empty series
// yields an empty path.
func CurvePath(data []scale.Sample, t *scale.Transform) string {
	cmds := make([]string, 0, len(data))
	for _, s := range data {
		if !drawable(s) {
			continue
		}
		op := "L"
		if len(cmds) == 0 {
			op = "M"
		}
		cmds = append(cmds, op+" "+drawing.FormatFloat(t.XScale(s.X))+" "+drawing.FormatFloat(t.YScale(s.Y)))
	}
	return strings.Join(cmds, " ")
}

func drawable(s scale.Sample) bool {
	return !math.IsNaN(s.X) && !math.IsInf(s.X, 0) && !math.IsNaN(s.Y) && !math.IsInf(s.Y, 0)
}

// Build returns the complete drawing of the provided samples under the
// provided Transform, including the selection rectangle if selection is
// non-nil.
func Build(data []scale.Sample, t *scale.Transform, selection *scale.Rect, settings Settings) (*drawing.Element, error) {
	tb := drawing.NewTreeBuilder(drawing.KindSVG)
	chart := New(tb.Root(), t, settings).AddSeries(data)
	if selection != nil {
		chart.WithSelection(*selection)
	}
	return tb.Build()
}
