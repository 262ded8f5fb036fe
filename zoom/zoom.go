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

// Package zoom implements the rectangular zoom gesture: a press, drag, and
// release over a chart's plot area becomes a new visible range.
package zoom

import (
	"math"

	"github.com/ilhamster/zoomchart/scale"
)

// Point is a position in surface-relative pixel space.
type Point struct {
	X, Y float64
}

// State is a Controller's gesture state; it is either Idle or Dragging.
type State interface {
	isState()
}

// Idle is the state between gestures.
type Idle struct{}

// Dragging is the state between a press and its release.
type Dragging struct {
	Start, Current Point
}

func (Idle) isState()     {}
func (Dragging) isState() {}

// Selection returns the rectangle spanned by the receiver's start and
// current points.  Its width and height are never negative, whichever
// direction the drag went.
func (d Dragging) Selection() scale.Rect {
	return scale.Rect{
		X:      math.Min(d.Start.X, d.Current.X),
		Y:      math.Min(d.Start.Y, d.Current.Y),
		Width:  math.Abs(d.Current.X - d.Start.X),
		Height: math.Abs(d.Current.Y - d.Start.Y),
	}
}

// SetZoomFunc receives the zoom state produced by a completed gesture.
type SetZoomFunc func(zs *scale.ZoomState)

// SelectionFunc is notified whenever the live selection changes.  It
// receives nil when the selection is removed.
type SelectionFunc func(selection *scale.Rect)

// Option configures a Controller.
type Option func(c *Controller)

// WithMinSelection specifies the smallest selection, in pixels on either
// axis, that produces a zoom.  Smaller selections are discarded on release.
// With the default of 0, every release zooms, including a click without a
// drag.
func WithMinSelection(px float64) Option {
	return func(c *Controller) {
		c.minSelectionPx = px
	}
}

// WithSelectionListener registers a function notified of every change to
// the live selection.
func WithSelectionListener(fn SelectionFunc) Option {
	return func(c *Controller) {
		c.onSelection = fn
	}
}

// Controller tracks the zoom gesture.  Between Attach and Detach it owns
// exactly one press listener on its surface; while Dragging it also owns
// one move and one release listener.  Controller is not safe for concurrent
// use.
type Controller struct {
	minSelectionPx float64
	onSelection    SelectionFunc

	state     State
	transform *scale.Transform
	setZoom   SetZoomFunc
	attached  scope
	drag      scope
	surface   Surface
}

// NewController returns a new, detached, Idle Controller.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		state: Idle{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Attach binds the receiver to a rendering: the surface delivering pointer
// events, the Transform in effect, and the function receiving completed
// zooms.  Any previous attachment is released first, cancelling an
// in-progress drag.  A nil surface registers no listeners; the gesture may
// then be driven directly with Press, Move, and Release.
func (c *Controller) Attach(surface Surface, t *scale.Transform, setZoom SetZoomFunc) {
	c.Detach()
	c.surface, c.transform, c.setZoom = surface, t, setZoom
	if surface == nil {
		return
	}
	c.attached.acquire(surface.AddListener(Press, func(ev Event) {
		c.Press(relativeTo(surface, ev))
	}))
}

// Detach releases every listener the receiver holds and returns it to
// Idle.  It is safe to call repeatedly.
func (c *Controller) Detach() {
	c.cancel()
	c.attached.release()
	c.surface, c.transform, c.setZoom = nil, nil, nil
}

// State returns the receiver's current gesture state.
func (c *Controller) State() State {
	return c.state
}

// Selection returns the live selection rectangle, if a drag is in progress.
func (c *Controller) Selection() (scale.Rect, bool) {
	d, ok := c.state.(Dragging)
	if !ok {
		return scale.Rect{}, false
	}
	return d.Selection(), true
}

// Press begins a gesture at the provided point.  A press while already
// Dragging abandons the earlier gesture.  Presses while detached are
// ignored.
func (c *Controller) Press(p Point) {
	if c.transform == nil {
		return
	}
	c.cancel()
	c.state = Dragging{Start: p, Current: p}
	if c.surface != nil {
		surface := c.surface
		c.drag.acquire(
			surface.AddListener(Move, func(ev Event) {
				c.Move(relativeTo(surface, ev))
			}),
			surface.AddListener(Release, func(ev Event) {
				c.Release(relativeTo(surface, ev))
			}),
		)
	}
	c.notifySelection()
}

// Move extends an in-progress drag to the provided point.
func (c *Controller) Move(p Point) {
	d, ok := c.state.(Dragging)
	if !ok {
		return
	}
	d.Current = p
	c.state = d
	c.notifySelection()
}

// Release ends an in-progress drag at the provided point.  The drag's
// listeners are released and the receiver returns to Idle before the
// resulting zoom state is delivered, so the recipient may re-Attach.
func (c *Controller) Release(p Point) {
	d, ok := c.state.(Dragging)
	if !ok {
		return
	}
	d.Current = p
	selection := d.Selection()
	t, setZoom := c.transform, c.setZoom
	c.drag.release()
	c.state = Idle{}
	c.notifySelection()
	if c.minSelectionPx > 0 &&
		(selection.Width < c.minSelectionPx || selection.Height < c.minSelectionPx) {
		return
	}
	if setZoom != nil {
		setZoom(t.ZoomFor(selection))
	}
}

// cancel abandons any in-progress drag.
func (c *Controller) cancel() {
	c.drag.release()
	if _, ok := c.state.(Dragging); ok {
		c.state = Idle{}
		c.notifySelection()
	}
}

func (c *Controller) notifySelection() {
	if c.onSelection == nil {
		return
	}
	if selection, ok := c.Selection(); ok {
		c.onSelection(&selection)
		return
	}
	c.onSelection(nil)
}

func relativeTo(surface Surface, ev Event) Point {
	x, y := surface.Origin()
	return Point{X: ev.ClientX - x, Y: ev.ClientY - y}
}
