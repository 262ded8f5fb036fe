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

// Package dataset loads sample series from JSON and YAML documents.
//
// A document is either a bare sequence of samples:
//
//	[{"x": 0, "y": 0}, {"x": 10, "y": 10}]
//
// or an object carrying the samples under "samples", optionally with an
// initial zoom override:
//
//	samples:
//	- {x: 0, y: 0}
//	- {x: 10, y: 10}
//	zoom: {xMin: 2, xMax: 8}
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilhamster/zoomchart/scale"
	"gopkg.in/yaml.v3"
)

// Format is a document encoding.
type Format string

const (
	// JSON documents.
	JSON Format = "json"
	// YAML documents.
	YAML Format = "yaml"
)

// FormatOf returns the Format implied by the provided file name's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unsupported data file extension '%s' (want .json, .yaml, or .yml)", filepath.Ext(path))
	}
}

// Dataset is a loaded series.
type Dataset struct {
	Samples []scale.Sample `json:"samples" yaml:"samples"`
	// Zoom is the initial zoom override, or nil to fit the samples.
	Zoom *scale.ZoomState `json:"zoom,omitempty" yaml:"zoom,omitempty"`
}

// Load reads the dataset at the provided path, in the format implied by its
// extension.
func Load(path string) (*Dataset, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()
	ds, err := Parse(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Parse reads a dataset in the provided format from r.
func Parse(r io.Reader, format Format) (*Dataset, error) {
	doc, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	ds := &Dataset{}
	switch format {
	case JSON:
		doc = bytes.TrimSpace(doc)
		if len(doc) > 0 && doc[0] == '[' {
			err = json.Unmarshal(doc, &ds.Samples)
		} else {
			err = json.Unmarshal(doc, ds)
		}
	case YAML:
		var node yaml.Node
		if err = yaml.Unmarshal(doc, &node); err != nil || len(node.Content) == 0 {
			break
		}
		if root := node.Content[0]; root.Kind == yaml.SequenceNode {
			err = root.Decode(&ds.Samples)
		} else {
			err = root.Decode(ds)
		}
	default:
		return nil, fmt.Errorf("unsupported data format '%s'", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s data: %w", format, err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// Validate returns an error if the receiver holds no samples, or any
// non-finite coordinate or zoom bound.
func (ds *Dataset) Validate() error {
	if len(ds.Samples) == 0 {
		return fmt.Errorf("dataset has no samples")
	}
	for idx, s := range ds.Samples {
		if !finite(s.X) || !finite(s.Y) {
			return fmt.Errorf("sample %d (%v, %v) is not finite", idx+1, s.X, s.Y)
		}
	}
	if zs := ds.Zoom; zs != nil {
		for _, bound := range []struct {
			name string
			v    *float64
		}{{"xMin", zs.XMin}, {"xMax", zs.XMax}, {"yMin", zs.YMin}, {"yMax", zs.YMax}} {
			if bound.v != nil && !finite(*bound.v) {
				return fmt.Errorf("zoom bound %s (%v) is not finite", bound.name, *bound.v)
			}
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Demo returns a built-in series: one period of a damped sine wave.
func Demo() *Dataset {
	const n = 41
	samples := make([]scale.Sample, n)
	for i := range samples {
		x := float64(i) / 2
		samples[i] = scale.Sample{
			X: x,
			Y: 30 * math.Exp(-x/15) * math.Sin(x*math.Pi/5),
		}
	}
	return &Dataset{Samples: samples}
}
