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

// Package svgrender commits drawing trees to SVG markup.
package svgrender

import (
	"fmt"
	"html"
	"io"

	svg "github.com/ajstarks/svgo/float"
	"github.com/ilhamster/zoomchart/drawing"
)

// Attributes consumed as positional arguments, per element kind.
var positionalAttrs = map[string][]string{
	drawing.KindSVG:    {"width", "height"},
	drawing.KindLine:   {"x1", "y1", "x2", "y2"},
	drawing.KindCircle: {"cx", "cy", "r"},
	drawing.KindRect:   {"x", "y", "width", "height"},
	drawing.KindText:   {"x", "y"},
	drawing.KindPath:   {},
	drawing.KindGroup:  {},
	drawing.KindTitle:  {},
}

// Render writes the provided tree, whose root must be an svg element, to w
// as an SVG document.
func Render(w io.Writer, root *drawing.Element) error {
	if root == nil {
		return fmt.Errorf("no drawing to render")
	}
	if root.Kind() != drawing.KindSVG {
		return fmt.Errorf("drawing root must be '%s', got '%s'", drawing.KindSVG, root.Kind())
	}
	r := &renderer{
		canvas: svg.New(w),
	}
	return r.render(root)
}

type renderer struct {
	canvas *svg.SVG
}

func (r *renderer) render(el *drawing.Element) error {
	positional, ok := positionalAttrs[el.Kind()]
	if !ok {
		return fmt.Errorf("unsupported drawing element '%s'", el.Kind())
	}
	coords := make([]float64, len(positional))
	for idx, key := range positional {
		v, err := el.FloatAttr(key)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", el.Kind(), err)
		}
		coords[idx] = v
	}
	attrs := attributes(el, positional...)
	switch el.Kind() {
	case drawing.KindSVG:
		r.canvas.Start(coords[0], coords[1], attrs...)
		if err := r.renderChildren(el); err != nil {
			return err
		}
		r.canvas.End()
	case drawing.KindGroup:
		r.canvas.Group(attrs...)
		if err := r.renderChildren(el); err != nil {
			return err
		}
		r.canvas.Gend()
	case drawing.KindLine:
		r.canvas.Line(coords[0], coords[1], coords[2], coords[3], attrs...)
	case drawing.KindCircle:
		// svg circles are self-closing, so a hover title moves to an
		// enclosing group.
		if titles := el.FindKind(drawing.KindTitle); len(titles) > 0 {
			r.canvas.Group()
			r.canvas.Title(titles[0].Text())
			r.canvas.Circle(coords[0], coords[1], coords[2], attrs...)
			r.canvas.Gend()
			break
		}
		r.canvas.Circle(coords[0], coords[1], coords[2], attrs...)
	case drawing.KindRect:
		r.canvas.Rect(coords[0], coords[1], coords[2], coords[3], attrs...)
	case drawing.KindPath:
		d, _ := el.Attr("d")
		r.canvas.Path(d, attributes(el, "d")...)
	case drawing.KindText:
		r.canvas.Text(coords[0], coords[1], el.Text(), attrs...)
	case drawing.KindTitle:
		r.canvas.Title(el.Text())
	}
	return nil
}

func (r *renderer) renderChildren(el *drawing.Element) error {
	for _, child := range el.Children() {
		if err := r.render(child); err != nil {
			return err
		}
	}
	return nil
}

// attributes returns the element's attributes, except those named in skip,
// as escaped key="value" strings in key order.
func attributes(el *drawing.Element, skip ...string) []string {
	skipped := make(map[string]bool, len(skip))
	for _, key := range skip {
		skipped[key] = true
	}
	var ret []string
	for _, key := range el.AttrKeys() {
		if skipped[key] {
			continue
		}
		val, _ := el.Attr(key)
		ret = append(ret, fmt.Sprintf(`%s="%s"`, key, html.EscapeString(val)))
	}
	return ret
}
