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

package scale

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const tolerance = 1e-9

var approx = cmpopts.EquateApprox(0, tolerance)

func defaultViewport(width, height float64) Viewport {
	return Viewport{Width: width, Height: height, Margin: DefaultMargin}
}

func TestRanges(t *testing.T) {
	twoPoints := []Sample{{0, 0}, {10, 10}}
	for _, test := range []struct {
		description string
		data        []Sample
		zoom        *ZoomState
		wantX       Range
		wantY       Range
	}{{
		description: "auto-fit applies the y floor",
		data:        twoPoints,
		wantX:       Range{0, 10},
		wantY:       Range{-20, 20},
	}, {
		description: "y extrema beyond the floor",
		data:        []Sample{{1, -50}, {2, 5}, {3, 75}},
		wantX:       Range{1, 3},
		wantY:       Range{-50, 75},
	}, {
		description: "flat data within the floor",
		data:        []Sample{{-3, 4}, {4, -5}, {2, 5}},
		wantX:       Range{-3, 4},
		wantY:       Range{-20, 20},
	}, {
		description: "explicit zoom is used verbatim",
		data:        twoPoints,
		zoom:        NewZoomState(2, 8, -3, 3),
		wantX:       Range{2, 8},
		wantY:       Range{-3, 3},
	}, {
		description: "only xMin overridden",
		data:        twoPoints,
		zoom:        &ZoomState{XMin: Bound(4)},
		wantX:       Range{4, 10},
		wantY:       Range{-20, 20},
	}, {
		description: "zero is an override, not a default",
		data:        []Sample{{5, 30}, {10, 40}},
		zoom:        &ZoomState{XMin: Bound(0), YMin: Bound(0)},
		wantX:       Range{0, 10},
		wantY:       Range{0, 40},
	}, {
		description: "empty zoom state fits the data",
		data:        twoPoints,
		zoom:        &ZoomState{},
		wantX:       Range{0, 10},
		wantY:       Range{-20, 20},
	}, {
		description: "single sample widens x",
		data:        []Sample{{3, 1}},
		wantX:       Range{2.5, 3.5},
		wantY:       Range{-20, 20},
	}, {
		description: "degenerate zoom widens both axes",
		data:        twoPoints,
		zoom:        NewZoomState(4, 4, 7, 7),
		wantX:       Range{3.5, 4.5},
		wantY:       Range{6.5, 7.5},
	}, {
		description: "inverted zoom is reordered",
		data:        twoPoints,
		zoom:        NewZoomState(8, 2, 3, -3),
		wantX:       Range{2, 8},
		wantY:       Range{-3, 3},
	}, {
		description: "empty data",
		wantX:       Range{-0.5, 0.5},
		wantY:       Range{-20, 20},
	}, {
		description: "non-finite samples and overrides are ignored",
		data:        []Sample{{math.NaN(), 1}, {1, math.Inf(1)}, {2, 3}},
		zoom:        &ZoomState{XMax: Bound(math.Inf(1))},
		wantX:       Range{1, 2},
		wantY:       Range{-20, 20},
	}} {
		t.Run(test.description, func(t *testing.T) {
			gotX, gotY := Ranges(test.data, test.zoom)
			if diff := cmp.Diff(test.wantX, gotX, approx); diff != "" {
				t.Errorf("x range diff (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.wantY, gotY, approx); diff != "" {
				t.Errorf("y range diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	for _, test := range []struct {
		description string
		r           Range
		want        Range
	}{
		{"ordinary", Range{-1, 2}, Range{-1, 2}},
		{"zero width at zero", Range{0, 0}, Range{-0.5, 0.5}},
		{"both non-finite", Range{math.NaN(), math.Inf(-1)}, Range{-0.5, 0.5}},
		{"min non-finite", Range{math.NaN(), 4}, Range{3.5, 4.5}},
		{"overflowing width", Range{-math.MaxFloat64, math.MaxFloat64}, Range{-math.MaxFloat64 / 2, math.MaxFloat64 / 2}},
	} {
		t.Run(test.description, func(t *testing.T) {
			if diff := cmp.Diff(test.want, test.r.Resolve(), approx); diff != "" {
				t.Errorf("Resolve() diff (-want +got):\n%s", diff)
			}
		})
	}
	huge := Range{1e17, 1e17}.Resolve()
	if !(huge.Max > huge.Min) {
		t.Errorf("Resolve() of a zero-width range at 1e17 = %v, want Max > Min", huge)
	}
}

func TestTransformScenario(t *testing.T) {
	tr := New([]Sample{{0, 0}, {10, 10}}, nil, defaultViewport(400, 300))
	for _, test := range []struct {
		description string
		got, want   float64
	}{
		{"xScale(xMin) is the left plot edge", tr.XScale(0), 40},
		{"xScale(xMax) is the right plot edge", tr.XScale(10), 370},
		{"yScale(yMin) is the bottom plot edge", tr.YScale(-20), 270},
		{"yScale(yMax) is the top plot edge", tr.YScale(20), 20},
		{"yScale(0)", tr.YScale(0), 145},
		{"yScale(10)", tr.YScale(10), 82.5},
	} {
		if diff := cmp.Diff(test.want, test.got, approx); diff != "" {
			t.Errorf("%s: diff (-want +got):\n%s", test.description, diff)
		}
	}
	if diff := cmp.Diff(NewZoomState(0, 10, -20, 20), tr.Bounds(), approx); diff != "" {
		t.Errorf("Bounds() diff (-want +got):\n%s", diff)
	}
}

func TestRoundTripAndMonotonicity(t *testing.T) {
	for _, test := range []struct {
		description string
		data        []Sample
		zoom        *ZoomState
		vp          Viewport
	}{{
		description: "default chart",
		data:        []Sample{{0, 0}, {10, 10}},
		vp:          defaultViewport(400, 300),
	}, {
		description: "negative, tiny ranges",
		data:        []Sample{{-1e-3, -5}, {-1e-4, 5}},
		zoom:        &ZoomState{YMin: Bound(-1e-6), YMax: Bound(1e-6)},
		vp:          defaultViewport(1024, 768),
	}, {
		description: "large magnitudes",
		data:        []Sample{{1e9, -1e12}, {2e9, 1e12}},
		vp:          defaultViewport(640, 480),
	}, {
		description: "extent wider than MaxFloat64",
		data:        []Sample{{-1e308, -1e308}, {1e308, 1e308}},
		vp:          defaultViewport(400, 300),
	}, {
		description: "zero-area viewport",
		data:        []Sample{{0, 0}, {1, 1}},
		vp:          Viewport{},
	}, {
		description: "viewport smaller than its margins",
		data:        []Sample{{0, 0}, {1, 1}},
		vp:          defaultViewport(50, 30),
	}} {
		t.Run(test.description, func(t *testing.T) {
			tr := New(test.data, test.zoom, test.vp)
			const steps = 50
			prevX, prevY := math.Inf(-1), math.Inf(1)
			for i := 0; i <= steps; i++ {
				vx := tr.X().Min + float64(i)/steps*tr.X().Width()
				vy := tr.Y().Min + float64(i)/steps*tr.Y().Width()
				px, py := tr.XScale(vx), tr.YScale(vy)
				for _, c := range []float64{px, py} {
					if math.IsNaN(c) || math.IsInf(c, 0) {
						t.Fatalf("non-finite pixel coordinate %v", c)
					}
				}
				if px < prevX {
					t.Errorf("xScale decreased at %v: %v < %v", vx, px, prevX)
				}
				if py > prevY {
					t.Errorf("yScale increased at %v: %v > %v", vy, py, prevY)
				}
				prevX, prevY = px, py
				xTol := cmpopts.EquateApprox(1e-9, 1e-9*tr.X().Width())
				yTol := cmpopts.EquateApprox(1e-9, 1e-9*tr.Y().Width())
				if diff := cmp.Diff(vx, tr.XInverse(px), xTol); diff != "" {
					t.Errorf("x round trip of %v diff (-want +got):\n%s", vx, diff)
				}
				if diff := cmp.Diff(vy, tr.YInverse(py), yTol); diff != "" {
					t.Errorf("y round trip of %v diff (-want +got):\n%s", vy, diff)
				}
			}
		})
	}
}

func TestFarOutsideSamplesStayFinite(t *testing.T) {
	tr := New([]Sample{{-1e308, -1e308}, {1e308, 1e308}}, &ZoomState{
		XMin: Bound(0), XMax: Bound(1e-300), YMin: Bound(0), YMax: Bound(1e-300),
	}, defaultViewport(400, 300))
	for _, v := range []float64{-1e308, 1e308} {
		for _, c := range []float64{tr.XScale(v), tr.YScale(v), tr.XInverse(v), tr.YInverse(v)} {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				t.Errorf("mapping %v yielded non-finite coordinate %v", v, c)
			}
		}
	}
}

func TestZoomFor(t *testing.T) {
	tr := New([]Sample{{0, 0}, {10, 10}}, nil, defaultViewport(400, 300))
	for _, test := range []struct {
		description string
		rect        Rect
		want        *ZoomState
	}{{
		description: "whole plot area",
		rect:        tr.Viewport().PlotArea(),
		want:        NewZoomState(0, 10, -20, 20),
	}, {
		description: "drag from (50,50) to (150,150)",
		rect:        Rect{X: 50, Y: 50, Width: 100, Height: 100},
		want:        NewZoomState(1.0/3.3, 10.0/3.0, -0.8, 15.2),
	}, {
		description: "zero-size rectangle",
		rect:        Rect{X: 205, Y: 145},
		want:        NewZoomState(5, 5, 0, 0),
	}} {
		t.Run(test.description, func(t *testing.T) {
			if diff := cmp.Diff(test.want, tr.ZoomFor(test.rect), approx); diff != "" {
				t.Errorf("ZoomFor() diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestZoomStrictlyShrinks(t *testing.T) {
	data := []Sample{{-4, 12}, {0, -30}, {7, 3}}
	tr := New(data, nil, defaultViewport(400, 300))
	area := tr.Viewport().PlotArea()
	for _, rect := range []Rect{
		{X: area.X + 1, Y: area.Y + 1, Width: 10, Height: 10},
		{X: area.X + 100, Y: area.Y + 50, Width: 100, Height: 100},
		{X: area.Right() - 20, Y: area.Bottom() - 20, Width: 19, Height: 19},
	} {
		zoomed := New(data, tr.ZoomFor(rect), tr.Viewport())
		for _, c := range []struct {
			name       string
			prev, next Range
		}{{"x", tr.X(), zoomed.X()}, {"y", tr.Y(), zoomed.Y()}} {
			if !(c.next.Min > c.prev.Min && c.next.Max < c.prev.Max && c.next.Min < c.next.Max) {
				t.Errorf("zooming to %v: %s range %v is not strictly inside %v", rect, c.name, c.next, c.prev)
			}
		}
	}
}

func TestZoomStateClone(t *testing.T) {
	var nilZoom *ZoomState
	if nilZoom.Clone() != nil {
		t.Errorf("Clone() of a nil ZoomState should be nil")
	}
	orig := &ZoomState{XMin: Bound(1), YMax: Bound(0)}
	cp := orig.Clone()
	*cp.XMin = 5
	if *orig.XMin != 1 {
		t.Errorf("Clone() shares bounds with the original")
	}
	if diff := cmp.Diff(&ZoomState{XMin: Bound(5), YMax: Bound(0)}, cp); diff != "" {
		t.Errorf("Clone() diff (-want +got):\n%s", diff)
	}
}
