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

// Package chart provides Chart, a zoomable line chart bound to a drawing
// surface.  Each Update rebuilds the chart's drawing tree from scratch and
// re-registers its zoom gesture listener.
package chart

import (
	"fmt"

	"github.com/ilhamster/zoomchart/drawing"
	"github.com/ilhamster/zoomchart/scale"
	xychart "github.com/ilhamster/zoomchart/xy_chart"
	"github.com/ilhamster/zoomchart/zoom"
)

// Option configures a Chart.
type Option func(c *Chart)

// WithSettings specifies the chart's render settings.
func WithSettings(settings xychart.Settings) Option {
	return func(c *Chart) {
		c.settings = settings
	}
}

// WithMargin specifies the margins around the chart's plot area.
func WithMargin(margin scale.Margin) Option {
	return func(c *Chart) {
		c.margin = margin
	}
}

// WithZoomOptions configures the chart's zoom gesture.
func WithZoomOptions(opts ...zoom.Option) Option {
	return func(c *Chart) {
		c.zoomOpts = append(c.zoomOpts, opts...)
	}
}

// WithSelectionListener registers a function invoked whenever the live
// selection rectangle changes.  Each change alters the result of Tree.
func WithSelectionListener(fn func()) Option {
	return func(c *Chart) {
		c.onSelection = fn
	}
}

// Chart is a line chart over one series, rendered to a zoom.Surface.  Chart
// is not safe for concurrent use.
type Chart struct {
	surface     zoom.Surface
	settings    xychart.Settings
	margin      scale.Margin
	zoomOpts    []zoom.Option
	onSelection func()
	controller  *zoom.Controller

	data      []scale.Sample
	transform *scale.Transform
	base      *drawing.Element
}

// New returns a new Chart drawing to the provided surface.  A nil surface
// yields a Chart whose renders are skipped.
func New(surface zoom.Surface, opts ...Option) *Chart {
	c := &Chart{
		surface:  surface,
		settings: xychart.DefaultSettings(),
		margin:   scale.DefaultMargin,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.controller = zoom.NewController(append(c.zoomOpts, zoom.WithSelectionListener(func(*scale.Rect) {
		if c.onSelection != nil {
			c.onSelection()
		}
	}))...)
	return c
}

// Update renders the provided data under the provided zoom state, sized to
// the surface's current measurement.  setZoom receives the zoom state
// produced by each completed gesture.  The previous rendering is discarded
// along with its gesture listeners, including any drag in progress.  If the
// new rendering fails, the Chart holds no rendering and no listeners until
// the next successful Update.
func (c *Chart) Update(data []scale.Sample, zs *scale.ZoomState, setZoom zoom.SetZoomFunc) error {
	if c.surface == nil {
		return nil
	}
	width, height := c.surface.Size()
	t := scale.New(data, zs, scale.Viewport{
		Width:  width,
		Height: height,
		Margin: c.margin,
	})
	base, err := xychart.Build(data, t, nil, c.settings)
	if err != nil {
		c.controller.Detach()
		c.data, c.transform, c.base = nil, nil, nil
		return fmt.Errorf("failed to render chart: %w", err)
	}
	c.data, c.transform, c.base = data, t, base
	c.controller.Attach(c.surface, t, setZoom)
	return nil
}

// Tree returns the most recent rendering, including the live selection
// rectangle if a drag is in progress.  It returns nil before the first
// successful Update.
func (c *Chart) Tree() (*drawing.Element, error) {
	if c.base == nil {
		return nil, nil
	}
	selection, ok := c.controller.Selection()
	if !ok {
		return c.base, nil
	}
	return xychart.Build(c.data, c.transform, &selection, c.settings)
}

// Transform returns the Transform of the most recent rendering.
func (c *Chart) Transform() *scale.Transform {
	return c.transform
}

// Dragging returns true if a zoom gesture is in progress.
func (c *Chart) Dragging() bool {
	_, ok := c.controller.State().(zoom.Dragging)
	return ok
}

// Close releases every listener the receiver holds on its surface.
func (c *Chart) Close() {
	c.controller.Detach()
}
