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

// Package scale maps between data space and pixel space for a 2-D chart.
//
// Given a sequence of Samples, an optional ZoomState override, and the
// Viewport of the drawing surface, New resolves the visible Range of each
// axis and returns a Transform:
//
//	t := scale.New(data, zoomState, scale.Viewport{Width: 400, Height: 300, Margin: scale.DefaultMargin})
//	px := t.XScale(v)      // data x -> pixel column
//	v = t.XInverse(px)     // pixel column -> data x
//
// The x range defaults to the data's x extrema.  The y range defaults to the
// data's y extrema widened to include at least [-20, 20].  Each of the four
// bounds may be overridden independently by a ZoomState.  A resolved Range
// always has Max > Min: a zero-width range is widened to width 1 centered on
// its single value, so no mapping ever yields NaN or infinite coordinates.
//
// Pixel space has its origin at the surface's top-left corner, with y
// increasing downward; data y increases upward, so YScale is decreasing.
package scale

import "math"

const (
	// yFloor is the smallest half-extent of the default y range.
	yFloor = 20
	// degenerateWidth is the width given to a zero-width range.
	degenerateWidth = 1
	// minPlotExtentPx is the smallest plot width or height, in pixels, a
	// Viewport resolves to.
	minPlotExtentPx = 1
	// maxBound is the largest magnitude of a resolved bound.  It keeps every
	// resolved Width finite.
	maxBound = math.MaxFloat64 / 2
)

// Sample is a single data point.
type Sample struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Range is a [Min, Max] interval along one axis, in data space.
type Range struct {
	Min, Max float64
}

// Width returns Max-Min.
func (r Range) Width() float64 {
	return r.Max - r.Min
}

// Resolve returns the receiver made drawable: ordered so that Min <= Max,
// with non-finite bounds replaced by the other bound (or 0), with both
// bounds clamped to +/-MaxFloat64/2 so that its width is finite, and with a
// zero-width range widened to degenerateWidth centered on its value.
func (r Range) Resolve() Range {
	finite := func(v float64) bool {
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	}
	switch {
	case !finite(r.Min) && !finite(r.Max):
		r = Range{}
	case !finite(r.Min):
		r.Min = r.Max
	case !finite(r.Max):
		r.Max = r.Min
	}
	r.Min = math.Max(-maxBound, math.Min(maxBound, r.Min))
	r.Max = math.Max(-maxBound, math.Min(maxBound, r.Max))
	if r.Min > r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	if r.Min == r.Max {
		// Far from zero, adding half a unit may be lost to rounding; widen
		// relative to the magnitude instead.
		half := math.Max(degenerateWidth/2.0, math.Abs(r.Min)*1e-9)
		return Range{Min: r.Min - half, Max: r.Max + half}
	}
	return r
}

// ZoomState overrides the visible range of one or both axes.  A nil
// *ZoomState means "fit to the data".  Within a ZoomState, each bound is
// independent: a nil bound uses the data-derived default, while any non-nil
// bound, including 0, is used as given.
type ZoomState struct {
	XMin *float64 `json:"xMin,omitempty" yaml:"xMin,omitempty"`
	XMax *float64 `json:"xMax,omitempty" yaml:"xMax,omitempty"`
	YMin *float64 `json:"yMin,omitempty" yaml:"yMin,omitempty"`
	YMax *float64 `json:"yMax,omitempty" yaml:"yMax,omitempty"`
}

// Bound returns a pointer to v, for populating ZoomState fields.
func Bound(v float64) *float64 {
	return &v
}

// NewZoomState returns a fully-populated ZoomState.
func NewZoomState(xMin, xMax, yMin, yMax float64) *ZoomState {
	return &ZoomState{
		XMin: Bound(xMin),
		XMax: Bound(xMax),
		YMin: Bound(yMin),
		YMax: Bound(yMax),
	}
}

// Clone returns a deep copy of the receiver.
func (zs *ZoomState) Clone() *ZoomState {
	if zs == nil {
		return nil
	}
	cp := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		return Bound(*v)
	}
	return &ZoomState{
		XMin: cp(zs.XMin),
		XMax: cp(zs.XMax),
		YMin: cp(zs.YMin),
		YMax: cp(zs.YMax),
	}
}

// Margin is the space, in pixels, between each edge of the drawing surface
// and the plot area.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargin leaves room for axis labels below and left of the plot.
var DefaultMargin = Margin{Top: 20, Right: 30, Bottom: 30, Left: 40}

// Viewport is the measured size of the drawing surface, in pixels, and the
// margins of the plot area within it.
type Viewport struct {
	Width, Height float64
	Margin        Margin
}

// PlotWidth returns the width of the plot area, never less than one pixel.
func (vp Viewport) PlotWidth() float64 {
	return math.Max(minPlotExtentPx, vp.Width-vp.Margin.Left-vp.Margin.Right)
}

// PlotHeight returns the height of the plot area, never less than one pixel.
func (vp Viewport) PlotHeight() float64 {
	return math.Max(minPlotExtentPx, vp.Height-vp.Margin.Top-vp.Margin.Bottom)
}

// PlotArea returns the plot area's rectangle in pixel space.
func (vp Viewport) PlotArea() Rect {
	return Rect{
		X:      vp.Margin.Left,
		Y:      vp.Margin.Top,
		Width:  vp.PlotWidth(),
		Height: vp.PlotHeight(),
	}
}

// Rect is an axis-aligned rectangle in pixel space.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the receiver's right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the receiver's bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// DataBounds returns the default x and y ranges for the provided samples:
// the x extrema, and the y extrema widened to include [-20, 20].  Non-finite
// coordinates are ignored.  With no finite x values, the x range is the
// zero-width range at 0.  The returned ranges are not resolved.
func DataBounds(data []Sample) (x, y Range) {
	x = Range{Min: math.Inf(1), Max: math.Inf(-1)}
	y = Range{Min: -yFloor, Max: yFloor}
	for _, s := range data {
		if !math.IsNaN(s.X) && !math.IsInf(s.X, 0) {
			x.Min = math.Min(x.Min, s.X)
			x.Max = math.Max(x.Max, s.X)
		}
		if !math.IsNaN(s.Y) && !math.IsInf(s.Y, 0) {
			y.Min = math.Min(y.Min, s.Y)
			y.Max = math.Max(y.Max, s.Y)
		}
	}
	if x.Min > x.Max {
		x = Range{}
	}
	return x, y
}

// override returns *bound if it is present and finite, else def.
func override(bound *float64, def float64) float64 {
	if bound == nil || math.IsNaN(*bound) || math.IsInf(*bound, 0) {
		return def
	}
	return *bound
}

// Ranges resolves the visible x and y ranges for the provided samples and
// zoom state.
func Ranges(data []Sample, zs *ZoomState) (x, y Range) {
	x, y = DataBounds(data)
	if zs != nil {
		x = Range{Min: override(zs.XMin, x.Min), Max: override(zs.XMax, x.Max)}
		y = Range{Min: override(zs.YMin, y.Min), Max: override(zs.YMax, y.Max)}
	}
	return x.Resolve(), y.Resolve()
}

// Transform maps data coordinates to pixel coordinates and back, for one
// resolved pair of ranges and one Viewport.  A Transform is immutable.
type Transform struct {
	x, y Range
	vp   Viewport
}

// New returns the Transform for the provided samples, zoom state, and
// viewport.
func New(data []Sample, zs *ZoomState, vp Viewport) *Transform {
	x, y := Ranges(data, zs)
	return &Transform{
		x:  x,
		y:  y,
		vp: vp,
	}
}

// X returns the receiver's resolved x range.
func (t *Transform) X() Range {
	return t.x
}

// Y returns the receiver's resolved y range.
func (t *Transform) Y() Range {
	return t.y
}

// Viewport returns the receiver's viewport.
func (t *Transform) Viewport() Viewport {
	return t.vp
}

// Bounds returns the receiver's visible ranges as a fully-populated
// ZoomState.
func (t *Transform) Bounds() *ZoomState {
	return NewZoomState(t.x.Min, t.x.Max, t.y.Min, t.y.Max)
}

// fraction returns v's position within r as a fraction of r's width: 0 at
// r.Min and 1 at r.Max.
func fraction(v float64, r Range) float64 {
	w := r.Width()
	if d := v - r.Min; !math.IsInf(d, 0) {
		return d / w
	}
	return v/w - r.Min/w
}

// clamp returns v, with infinities replaced by the largest finite value of
// the same sign.
func clamp(v float64) float64 {
	if math.IsInf(v, 0) {
		return math.Copysign(math.MaxFloat64, v)
	}
	return v
}

// XScale maps a data x coordinate to a pixel column.
func (t *Transform) XScale(v float64) float64 {
	return clamp(fraction(v, t.x)*t.vp.PlotWidth() + t.vp.Margin.Left)
}

// YScale maps a data y coordinate to a pixel row.
func (t *Transform) YScale(v float64) float64 {
	plotHeight := t.vp.PlotHeight()
	return clamp(plotHeight - fraction(v, t.y)*plotHeight + t.vp.Margin.Top)
}

// XInverse maps a pixel column to a data x coordinate.
func (t *Transform) XInverse(px float64) float64 {
	return clamp(t.x.Min + (px-t.vp.Margin.Left)/t.vp.PlotWidth()*t.x.Width())
}

// YInverse maps a pixel row to a data y coordinate.
func (t *Transform) YInverse(py float64) float64 {
	plotHeight := t.vp.PlotHeight()
	return clamp(t.y.Min + (plotHeight+t.vp.Margin.Top-py)/plotHeight*t.y.Width())
}

// ZoomFor returns the fully-populated ZoomState whose ranges are spanned by
// the provided pixel-space rectangle.  The rectangle's left and right edges
// become the x bounds; because pixel rows increase downward, its bottom edge
// becomes the lower y bound and its top edge the upper.
func (t *Transform) ZoomFor(r Rect) *ZoomState {
	return NewZoomState(
		t.XInverse(r.X),
		t.XInverse(r.Right()),
		t.YInverse(r.Bottom()),
		t.YInverse(r.Y),
	)
}
