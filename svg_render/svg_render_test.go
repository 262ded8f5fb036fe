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

package svgrender

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ilhamster/zoomchart/drawing"
	"github.com/ilhamster/zoomchart/scale"
	xychart "github.com/ilhamster/zoomchart/xy_chart"
)

// summary counts the elements of a parsed SVG document by name, and collects
// the attributes of interest.
type summary struct {
	Counts map[string]int
	Paths  []string
	Titles []string
}

func summarize(t *testing.T, doc []byte) summary {
	t.Helper()
	ret := summary{Counts: map[string]int{}}
	dec := xml.NewDecoder(bytes.NewReader(doc))
	inTitle := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return ret
		}
		if err != nil {
			t.Fatalf("rendered SVG is malformed: %s\n%s", err, doc)
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			ret.Counts[tok.Name.Local]++
			if tok.Name.Local == "path" {
				for _, attr := range tok.Attr {
					if attr.Name.Local == "d" {
						ret.Paths = append(ret.Paths, attr.Value)
					}
				}
			}
			inTitle = tok.Name.Local == "title"
		case xml.CharData:
			if inTitle {
				ret.Titles = append(ret.Titles, string(tok))
			}
		case xml.EndElement:
			inTitle = false
		}
	}
}

func TestRenderChart(t *testing.T) {
	data := []scale.Sample{{X: 0, Y: 0}, {X: 10, Y: 10}}
	tr := scale.New(data, nil, scale.Viewport{Width: 400, Height: 300, Margin: scale.DefaultMargin})
	for _, test := range []struct {
		description string
		selection   *scale.Rect
		wantCounts  map[string]int
	}{{
		description: "idle chart",
		wantCounts: map[string]int{
			"svg": 1, "g": 4 + 2, "line": 44, "text": 22, "path": 1, "circle": 2, "title": 2,
		},
	}, {
		description: "chart with a selection",
		selection:   &scale.Rect{X: 50, Y: 50, Width: 100, Height: 100},
		wantCounts: map[string]int{
			"svg": 1, "g": 4 + 2, "line": 44, "text": 22, "path": 1, "circle": 2, "title": 2, "rect": 1,
		},
	}} {
		t.Run(test.description, func(t *testing.T) {
			tree, err := xychart.Build(data, tr, test.selection, xychart.DefaultSettings())
			if err != nil {
				t.Fatalf("Build() yielded unexpected error %s", err)
			}
			var buf bytes.Buffer
			if err := Render(&buf, tree); err != nil {
				t.Fatalf("Render() yielded unexpected error %s", err)
			}
			got := summarize(t, buf.Bytes())
			want := summary{
				Counts: test.wantCounts,
				Paths:  []string{"M 40 145 L 370 82.5"},
				Titles: []string{"Point 1: (0, 0)", "Point 2: (10, 10)"},
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Render() diff (-want +got):\n%s", diff)
			}
			if !strings.Contains(buf.String(), `class="curve"`) {
				t.Errorf("Render() dropped the curve's class")
			}
		})
	}
}

func TestRenderEscapes(t *testing.T) {
	tb := drawing.NewTreeBuilder(drawing.KindSVG)
	tb.Root().With(drawing.Float("width", 10), drawing.Float("height", 10))
	tb.Root().Child(drawing.KindText).With(
		drawing.Float("x", 1),
		drawing.Float("y", 2),
		drawing.Attr("data-note", `"quoted" & <angled>`),
		drawing.Text("a < b & c"),
	)
	tree, err := tb.Build()
	if err != nil {
		t.Fatalf("Build() yielded unexpected error %s", err)
	}
	var buf bytes.Buffer
	if err := Render(&buf, tree); err != nil {
		t.Fatalf("Render() yielded unexpected error %s", err)
	}
	dec := xml.NewDecoder(&buf)
	var gotAttr, gotText string
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("rendered SVG is malformed: %s", err)
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			for _, attr := range tok.Attr {
				if attr.Name.Local == "data-note" {
					gotAttr = attr.Value
				}
			}
		case xml.CharData:
			if s := strings.TrimSpace(string(tok)); s != "" {
				gotText = s
			}
		}
	}
	if diff := cmp.Diff([]string{`"quoted" & <angled>`, "a < b & c"}, []string{gotAttr, gotText}); diff != "" {
		t.Errorf("round-tripped attribute and text diff (-want +got):\n%s", diff)
	}
}

func TestRenderErrors(t *testing.T) {
	for _, test := range []struct {
		description string
		build       func() *drawing.Element
	}{{
		description: "nil tree",
		build:       func() *drawing.Element { return nil },
	}, {
		description: "root is not svg",
		build: func() *drawing.Element {
			el, _ := drawing.NewTreeBuilder(drawing.KindGroup).Build()
			return el
		},
	}, {
		description: "unsupported element",
		build: func() *drawing.Element {
			tb := drawing.NewTreeBuilder(drawing.KindSVG)
			tb.Root().With(drawing.Float("width", 10), drawing.Float("height", 10))
			tb.Root().Child("ellipse")
			el, _ := tb.Build()
			return el
		},
	}, {
		description: "missing coordinate",
		build: func() *drawing.Element {
			tb := drawing.NewTreeBuilder(drawing.KindSVG)
			tb.Root().With(drawing.Float("width", 10), drawing.Float("height", 10))
			tb.Root().Child(drawing.KindLine).With(drawing.Float("x1", 1))
			el, _ := tb.Build()
			return el
		},
	}} {
		t.Run(test.description, func(t *testing.T) {
			if err := Render(io.Discard, test.build()); err == nil {
				t.Errorf("Render() should have failed")
			}
		})
	}
}
