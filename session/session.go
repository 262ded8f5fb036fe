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

// Package session hosts zoomable charts for remote viewers.  A Session owns
// one viewer's zoom state and drawing surface, and plays the collaborator
// role for its chart: it supplies the data and zoom state, and accepts new
// zoom states from completed gestures.
package session

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/ilhamster/zoomchart/chart"
	"github.com/ilhamster/zoomchart/drawing"
	"github.com/ilhamster/zoomchart/scale"
	svgrender "github.com/ilhamster/zoomchart/svg_render"
	"github.com/ilhamster/zoomchart/zoom"
)

// Session is one viewer's chart.  It is safe for concurrent use.
type Session struct {
	id string

	mu      sync.Mutex
	data    []scale.Sample
	zs      *scale.ZoomState
	target  *zoom.Target
	chart   *chart.Chart
	lastErr error
	closed  bool

	// revision advances whenever the drawing may have changed.
	revision uint64
}

func newSession(id string, data []scale.Sample, zs *scale.ZoomState, width, height float64, opts ...chart.Option) (*Session, error) {
	s := &Session{
		id:     id,
		data:   data,
		zs:     zs.Clone(),
		target: zoom.NewTarget(width, height),
	}
	opts = append(append([]chart.Option{}, opts...), chart.WithSelectionListener(func() {
		s.revision++
	}))
	s.chart = chart.New(s.target, opts...)
	s.render()
	if s.lastErr != nil {
		s.chart.Close()
		return nil, s.lastErr
	}
	return s, nil
}

// ID returns the receiver's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// render rebuilds the chart.  The caller must hold s.mu.
func (s *Session) render() {
	if s.closed {
		return
	}
	s.revision++
	s.lastErr = s.chart.Update(s.data, s.zs, s.setZoom)
	if s.lastErr != nil {
		log.Error("failed to render chart", "session", s.id, "error", s.lastErr)
	}
}

// setZoom replaces the receiver's zoom state and re-renders.  It is invoked
// by the chart's gesture, during HandleEvent, with s.mu held.
func (s *Session) setZoom(zs *scale.ZoomState) {
	s.zs = zs.Clone()
	if zs == nil {
		log.Debug("zoom reset", "session", s.id)
	} else {
		log.Debug("zoomed", "session", s.id,
			"xMin", *zs.XMin, "xMax", *zs.XMax, "yMin", *zs.YMin, "yMax", *zs.YMax)
	}
	s.render()
}

// HandleEvent delivers a pointer event to the receiver's surface, whose
// top-left corner is at (left, top) in the event's client coordinates.
func (s *Session) HandleEvent(ev zoom.Event, left, top float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("session %s is closed", s.id)
	}
	s.target.SetOrigin(left, top)
	s.target.Dispatch(ev)
	return s.lastErr
}

// Resize re-renders the receiver at the provided surface size.
func (s *Session) Resize(width, height float64) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("invalid surface size %vx%v", width, height)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chart.Dragging() {
		log.Debug("resize discarded the drag in progress", "session", s.id)
	}
	s.target.SetSize(width, height)
	s.render()
	return s.lastErr
}

// Revision returns a counter that advances whenever the receiver's drawing
// may have changed: on every render and every change to the live selection.
// Events that leave it unchanged need not be answered with a new drawing.
func (s *Session) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Reset returns the receiver to fitting its data.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setZoom(nil)
	return s.lastErr
}

// Zoom returns the receiver's current zoom state, or nil if it fits its
// data.
func (s *Session) Zoom() *scale.ZoomState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zs.Clone()
}

// Bounds returns the ranges visible in the receiver's current rendering.
func (s *Session) Bounds() *scale.ZoomState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.chart.Transform(); t != nil {
		return t.Bounds()
	}
	return nil
}

// Tree returns the receiver's current drawing.
func (s *Session) Tree() (*drawing.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastErr != nil {
		return nil, s.lastErr
	}
	return s.chart.Tree()
}

// WriteSVG writes the receiver's current drawing to w as SVG.
func (s *Session) WriteSVG(w io.Writer) error {
	tree, err := s.Tree()
	if err != nil {
		return err
	}
	return svgrender.Render(w, tree)
}

// Close releases the receiver's chart.  Subsequent events are rejected.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.chart.Close()
}
