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

package config

import (
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/ilhamster/zoomchart/color"
	"github.com/ilhamster/zoomchart/scale"
	"github.com/spf13/viper"
)

func newViper(t *testing.T, yamlDoc string) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(yamlDoc)); err != nil {
		t.Fatalf("failed to read config: %s", err)
	}
	return v
}

func TestLoad(t *testing.T) {
	defaults := Config{
		Listen:           ":7410",
		SessionsCapacity: 64,
		Viewport: scale.Viewport{
			Width:  800,
			Height: 400,
			Margin: scale.DefaultMargin,
		},
		Palette:  color.DefaultPalette(),
		LogLevel: log.InfoLevel,
	}
	for _, test := range []struct {
		description string
		doc         string
		want        func(cfg Config) Config
		wantErr     bool
	}{{
		description: "defaults",
		want:        func(cfg Config) Config { return cfg },
	}, {
		description: "overrides",
		doc: `
listen: localhost:9000
data: /tmp/series.yaml
sessions:
  capacity: 3
viewport:
  width: 1024
margin:
  left: 60
zoom:
  min_selection_px: 4
palette:
  curve: green
  axis: gray
log:
  level: debug
`,
		want: func(cfg Config) Config {
			cfg.Listen = "localhost:9000"
			cfg.DataPath = "/tmp/series.yaml"
			cfg.SessionsCapacity = 3
			cfg.Viewport.Width = 1024
			cfg.Viewport.Margin.Left = 60
			cfg.MinSelectionPx = 4
			cfg.Palette.Curve = "green"
			cfg.Palette.Axis = "gray"
			cfg.LogLevel = log.DebugLevel
			return cfg
		},
	}, {
		description: "empty palette entries keep their defaults",
		doc: `
palette:
  marker: ""
  axis: ""
`,
		want: func(cfg Config) Config { return cfg },
	}, {
		description: "zero capacity",
		doc:         "sessions: {capacity: 0}",
		wantErr:     true,
	}, {
		description: "negative margin",
		doc:         "margin: {top: -1}",
		wantErr:     true,
	}, {
		description: "negative selection threshold",
		doc:         "zoom: {min_selection_px: -2}",
		wantErr:     true,
	}, {
		description: "empty viewport",
		doc:         "viewport: {height: 0}",
		wantErr:     true,
	}, {
		description: "unknown log level",
		doc:         "log: {level: chatty}",
		wantErr:     true,
	}} {
		t.Run(test.description, func(t *testing.T) {
			got, err := Load(newViper(t, test.doc))
			if (err != nil) != test.wantErr {
				t.Fatalf("Load() yielded error %v, wanted error: %t", err, test.wantErr)
			}
			if err != nil {
				return
			}
			if diff := cmp.Diff(test.want(defaults), *got); diff != "" {
				t.Errorf("Load() diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("ZOOMCHART_SESSIONS_CAPACITY", "7")
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() yielded unexpected error %s", err)
	}
	if cfg.SessionsCapacity != 7 {
		t.Errorf("SessionsCapacity = %d, want 7", cfg.SessionsCapacity)
	}
}
