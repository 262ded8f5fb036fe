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

package session

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ilhamster/zoomchart/chart"
	"github.com/ilhamster/zoomchart/scale"
	"github.com/ilhamster/zoomchart/zoom"
)

var (
	twoPoints = []scale.Sample{{X: 0, Y: 0}, {X: 10, Y: 10}}
	approx    = cmpopts.EquateApprox(0, 1e-9)
)

func newTestStore(t *testing.T, capacity int, opts ...StoreOption) *Store {
	t.Helper()
	st, err := NewStore(capacity, twoPoints, append([]StoreOption{WithDefaultSize(400, 300)}, opts...)...)
	if err != nil {
		t.Fatalf("NewStore() yielded unexpected error %s", err)
	}
	return st
}

func TestSessionZoomAndReset(t *testing.T) {
	st := newTestStore(t, 4)
	s, err := st.Create(0, 0)
	if err != nil {
		t.Fatalf("Create() yielded unexpected error %s", err)
	}
	if diff := cmp.Diff(scale.NewZoomState(0, 10, -20, 20), s.Bounds()); diff != "" {
		t.Errorf("initial bounds diff (-want +got):\n%s", diff)
	}
	// The surface sits at (8, 16) in client coordinates.
	for _, ev := range []zoom.Event{
		{Kind: zoom.Press, ClientX: 58, ClientY: 66},
		{Kind: zoom.Move, ClientX: 100, ClientY: 100},
	} {
		if err := s.HandleEvent(ev, 8, 16); err != nil {
			t.Fatalf("HandleEvent(%v) yielded unexpected error %s", ev, err)
		}
	}
	tree, err := s.Tree()
	if err != nil {
		t.Fatalf("Tree() yielded unexpected error %s", err)
	}
	if got := len(tree.FindClass("selection")); got != 1 {
		t.Errorf("got %d selection rectangles mid-drag, want 1", got)
	}
	if err := s.HandleEvent(zoom.Event{Kind: zoom.Release, ClientX: 158, ClientY: 166}, 8, 16); err != nil {
		t.Fatalf("HandleEvent(release) yielded unexpected error %s", err)
	}
	want := scale.NewZoomState(1/3.3, 10.0/3, -0.8, 15.2)
	if diff := cmp.Diff(want, s.Zoom(), approx); diff != "" {
		t.Errorf("Zoom() after drag diff (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, s.Bounds(), approx); diff != "" {
		t.Errorf("Bounds() after drag diff (-want +got):\n%s", diff)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() yielded unexpected error %s", err)
	}
	if s.Zoom() != nil {
		t.Errorf("Zoom() after Reset() = %v, want nil", s.Zoom())
	}
	if diff := cmp.Diff(scale.NewZoomState(0, 10, -20, 20), s.Bounds()); diff != "" {
		t.Errorf("bounds after reset diff (-want +got):\n%s", diff)
	}
}

func TestSessionZoomIsNotShared(t *testing.T) {
	initial := scale.NewZoomState(2, 8, -3, 3)
	st := newTestStore(t, 4, WithInitialZoom(initial))
	*initial.XMin = 100
	a, err := st.Create(0, 0)
	if err != nil {
		t.Fatalf("Create() yielded unexpected error %s", err)
	}
	b, err := st.Create(0, 0)
	if err != nil {
		t.Fatalf("Create() yielded unexpected error %s", err)
	}
	if err := a.Reset(); err != nil {
		t.Fatalf("Reset() yielded unexpected error %s", err)
	}
	if diff := cmp.Diff(scale.NewZoomState(2, 8, -3, 3), b.Zoom()); diff != "" {
		t.Errorf("untouched session's zoom diff (-want +got):\n%s", diff)
	}
}

func TestSessionResize(t *testing.T) {
	st := newTestStore(t, 4)
	s, err := st.Create(640, 480)
	if err != nil {
		t.Fatalf("Create() yielded unexpected error %s", err)
	}
	for _, size := range [][2]float64{{200, 100}, {0, 0}} {
		if err := s.Resize(size[0], size[1]); err != nil {
			t.Fatalf("Resize(%v) yielded unexpected error %s", size, err)
		}
		tree, err := s.Tree()
		if err != nil {
			t.Fatalf("Tree() yielded unexpected error %s", err)
		}
		gotW, _ := tree.FloatAttr("width")
		gotH, _ := tree.FloatAttr("height")
		if diff := cmp.Diff(size, [2]float64{gotW, gotH}); diff != "" {
			t.Errorf("Resize(%v) drawing size diff (-want +got):\n%s", size, diff)
		}
	}
	if err := s.Resize(-1, 5); err == nil {
		t.Errorf("Resize(-1, 5) should fail")
	}
}

func TestSessionRevision(t *testing.T) {
	st := newTestStore(t, 4)
	s, err := st.Create(0, 0)
	if err != nil {
		t.Fatalf("Create() yielded unexpected error %s", err)
	}
	for _, step := range []struct {
		description string
		apply       func() error
		wantAdvance bool
		wantDrag    bool
	}{{
		description: "move without a drag",
		apply:       func() error { return s.HandleEvent(zoom.Event{Kind: zoom.Move, ClientX: 50, ClientY: 50}, 0, 0) },
	}, {
		description: "press",
		apply:       func() error { return s.HandleEvent(zoom.Event{Kind: zoom.Press, ClientX: 50, ClientY: 50}, 0, 0) },
		wantAdvance: true,
		wantDrag:    true,
	}, {
		description: "move during a drag",
		apply:       func() error { return s.HandleEvent(zoom.Event{Kind: zoom.Move, ClientX: 150, ClientY: 150}, 0, 0) },
		wantAdvance: true,
		wantDrag:    true,
	}, {
		description: "resize discards the drag",
		apply:       func() error { return s.Resize(300, 200) },
		wantAdvance: true,
	}, {
		description: "release after the drag was discarded",
		apply:       func() error { return s.HandleEvent(zoom.Event{Kind: zoom.Release, ClientX: 150, ClientY: 150}, 0, 0) },
	}} {
		before := s.Revision()
		if err := step.apply(); err != nil {
			t.Fatalf("%s: unexpected error %s", step.description, err)
		}
		if got := s.Revision() != before; got != step.wantAdvance {
			t.Errorf("%s: revision advanced = %t, want %t", step.description, got, step.wantAdvance)
		}
		if got := s.chart.Dragging(); got != step.wantDrag {
			t.Errorf("%s: dragging = %t, want %t", step.description, got, step.wantDrag)
		}
	}
	if s.Zoom() != nil {
		t.Errorf("Zoom() = %v after a discarded drag, want nil", s.Zoom())
	}
}

func TestSessionSVG(t *testing.T) {
	st := newTestStore(t, 4)
	s, err := st.Create(0, 0)
	if err != nil {
		t.Fatalf("Create() yielded unexpected error %s", err)
	}
	var buf bytes.Buffer
	if err := s.WriteSVG(&buf); err != nil {
		t.Fatalf("WriteSVG() yielded unexpected error %s", err)
	}
	for _, want := range []string{"<svg", `d="M 40 145 L 370 82.5"`, "Point 2: (10, 10)"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("WriteSVG() output lacks %q", want)
		}
	}
}

func TestStoreEviction(t *testing.T) {
	st := newTestStore(t, 2)
	var sessions []*Session
	for i := 0; i < 3; i++ {
		s, err := st.Create(0, 0)
		if err != nil {
			t.Fatalf("Create() yielded unexpected error %s", err)
		}
		sessions = append(sessions, s)
	}
	if got := st.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
	if _, err := st.Get(sessions[0].ID()); !errors.Is(err, ErrUnknownSession) {
		t.Errorf("Get(evicted) yielded error %v, want ErrUnknownSession", err)
	}
	if err := sessions[0].HandleEvent(zoom.Event{Kind: zoom.Press}, 0, 0); err == nil {
		t.Errorf("HandleEvent() on an evicted session should fail")
	}
	got, err := st.Get(sessions[2].ID())
	if err != nil {
		t.Fatalf("Get() yielded unexpected error %s", err)
	}
	if got != sessions[2] {
		t.Errorf("Get() returned a different session")
	}
	st.Close()
	if got := st.Len(); got != 0 {
		t.Errorf("Len() after Close() = %d, want 0", got)
	}
}

func TestStoreRejectsBadCapacity(t *testing.T) {
	if _, err := NewStore(0, twoPoints); err == nil {
		t.Errorf("NewStore(0) should fail")
	}
}

func TestStoreChartOptions(t *testing.T) {
	st := newTestStore(t, 1, WithChartOptions(chart.WithMargin(scale.Margin{})))
	s, err := st.Create(0, 0)
	if err != nil {
		t.Fatalf("Create() yielded unexpected error %s", err)
	}
	tree, err := s.Tree()
	if err != nil {
		t.Fatalf("Tree() yielded unexpected error %s", err)
	}
	// Without margins, the first marker sits at the surface's left edge.
	cx, err := tree.FindClass("marker")[0].FloatAttr("cx")
	if err != nil || cx != 0 {
		t.Errorf("first marker cx = %v, %v, want 0", cx, err)
	}
}
