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

// Package config reads zoomchart's settings from viper.
package config

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/ilhamster/zoomchart/color"
	"github.com/ilhamster/zoomchart/scale"
	"github.com/spf13/viper"
)

// Setting keys.
const (
	ListenKey                 = "listen"
	DataKey                   = "data"
	SessionsCapacityKey       = "sessions.capacity"
	ViewportWidthKey          = "viewport.width"
	ViewportHeightKey         = "viewport.height"
	MarginTopKey              = "margin.top"
	MarginRightKey            = "margin.right"
	MarginBottomKey           = "margin.bottom"
	MarginLeftKey             = "margin.left"
	ZoomMinSelectionKey       = "zoom.min_selection_px"
	PaletteGridKey            = "palette.grid"
	PaletteAxisKey            = "palette.axis"
	PaletteCurveKey           = "palette.curve"
	PaletteMarkerKey          = "palette.marker"
	PaletteSelectionFillKey   = "palette.selection_fill"
	PaletteSelectionStrokeKey = "palette.selection_stroke"
	LogLevelKey               = "log.level"
)

// EnvPrefix prefixes environment variables overriding settings, e.g.
// ZOOMCHART_SESSIONS_CAPACITY.
const EnvPrefix = "ZOOMCHART"

// Config holds zoomchart's settings.
type Config struct {
	Listen           string
	DataPath         string
	SessionsCapacity int
	Viewport         scale.Viewport
	MinSelectionPx   float64
	Palette          color.Palette
	LogLevel         log.Level
}

// SetDefaults installs the default value of every setting in v.
func SetDefaults(v *viper.Viper) {
	palette := color.DefaultPalette()
	for key, value := range map[string]any{
		ListenKey:                 ":7410",
		DataKey:                   "",
		SessionsCapacityKey:       64,
		ViewportWidthKey:          800,
		ViewportHeightKey:         400,
		MarginTopKey:              scale.DefaultMargin.Top,
		MarginRightKey:            scale.DefaultMargin.Right,
		MarginBottomKey:           scale.DefaultMargin.Bottom,
		MarginLeftKey:             scale.DefaultMargin.Left,
		ZoomMinSelectionKey:       0,
		PaletteGridKey:            palette.Grid,
		PaletteAxisKey:            palette.Axis,
		PaletteCurveKey:           palette.Curve,
		PaletteMarkerKey:          palette.Marker,
		PaletteSelectionFillKey:   palette.SelectionFill,
		PaletteSelectionStrokeKey: palette.SelectionStroke,
		LogLevelKey:               "info",
	} {
		v.SetDefault(key, value)
	}
}

// Load returns the Config held in v, or an error if any setting is invalid.
func Load(v *viper.Viper) (*Config, error) {
	level, err := log.ParseLevel(v.GetString(LogLevelKey))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", LogLevelKey, err)
	}
	cfg := &Config{
		Listen:           v.GetString(ListenKey),
		DataPath:         v.GetString(DataKey),
		SessionsCapacity: v.GetInt(SessionsCapacityKey),
		Viewport: scale.Viewport{
			Width:  v.GetFloat64(ViewportWidthKey),
			Height: v.GetFloat64(ViewportHeightKey),
			Margin: scale.Margin{
				Top:    v.GetFloat64(MarginTopKey),
				Right:  v.GetFloat64(MarginRightKey),
				Bottom: v.GetFloat64(MarginBottomKey),
				Left:   v.GetFloat64(MarginLeftKey),
			},
		},
		MinSelectionPx: v.GetFloat64(ZoomMinSelectionKey),
		Palette: color.Palette{
			Grid:            v.GetString(PaletteGridKey),
			Axis:            v.GetString(PaletteAxisKey),
			Curve:           v.GetString(PaletteCurveKey),
			Marker:          v.GetString(PaletteMarkerKey),
			SelectionFill:   v.GetString(PaletteSelectionFillKey),
			SelectionStroke: v.GetString(PaletteSelectionStrokeKey),
		}.WithDefaults(),
		LogLevel: level,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns an error if any of the receiver's settings is out of
// range.
func (cfg *Config) Validate() error {
	if cfg.SessionsCapacity <= 0 {
		return fmt.Errorf("%s must be positive, got %d", SessionsCapacityKey, cfg.SessionsCapacity)
	}
	if cfg.Viewport.Width <= 0 || cfg.Viewport.Height <= 0 {
		return fmt.Errorf("%s and %s must be positive, got %vx%v",
			ViewportWidthKey, ViewportHeightKey, cfg.Viewport.Width, cfg.Viewport.Height)
	}
	m := cfg.Viewport.Margin
	for _, side := range []struct {
		key string
		v   float64
	}{
		{MarginTopKey, m.Top},
		{MarginRightKey, m.Right},
		{MarginBottomKey, m.Bottom},
		{MarginLeftKey, m.Left},
	} {
		if side.v < 0 {
			return fmt.Errorf("%s must not be negative, got %v", side.key, side.v)
		}
	}
	if cfg.MinSelectionPx < 0 {
		return fmt.Errorf("%s must not be negative, got %v", ZoomMinSelectionKey, cfg.MinSelectionPx)
	}
	return nil
}
