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

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/ilhamster/zoomchart/chart"
	"github.com/ilhamster/zoomchart/config"
	"github.com/ilhamster/zoomchart/dataset"
	"github.com/ilhamster/zoomchart/scale"
	xychart "github.com/ilhamster/zoomchart/xy_chart"
	"github.com/ilhamster/zoomchart/zoom"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the state shared by zoomchart's commands.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	config.SetDefaults(a.v)
	cmd := &cobra.Command{
		Use:   "zoomchart",
		Short: "Zoomable line charts",
		Long: heredoc.Doc(`
			zoomchart draws a line chart of a series of (x, y) samples, with axes
			and a grid, and zooms it to any rectangle dragged over the plot.

			Samples are read from a JSON or YAML file given by --data, or a
			built-in demo series is used.
		`),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}
	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Config file (default is $HOME/.zoomchart.yaml)")
	cmd.PersistentFlags().String("data", "", "JSON or YAML sample file (default is a built-in demo series)")
	cmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, or error")
	a.v.BindPFlag(config.DataKey, cmd.PersistentFlags().Lookup("data"))
	a.v.BindPFlag(config.LogLevelKey, cmd.PersistentFlags().Lookup("log-level"))

	cmd.AddCommand(a.newServeCmd())
	cmd.AddCommand(a.newRenderCmd())
	cmd.AddCommand(a.newZoomCmd())
	return cmd
}

// initConfig reads the config file, if any, and environment overrides.
func (a *app) initConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return fmt.Errorf("failed to find home directory: %w", err)
		}
		a.v.AddConfigPath(home)
		a.v.SetConfigName(".zoomchart")
		a.v.SetConfigType("yaml")
	}
	a.v.SetEnvPrefix(config.EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("can't read config: %w", err)
		}
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	log.SetLevel(cfg.LogLevel)
	if used := a.v.ConfigFileUsed(); used != "" {
		log.Debug("read config", "file", used)
	}
	a.cfg = cfg
	return nil
}

// loadData returns the configured dataset.
func (a *app) loadData() (*dataset.Dataset, error) {
	if a.cfg.DataPath == "" {
		return dataset.Demo(), nil
	}
	ds, err := dataset.Load(a.cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}
	log.Debug("loaded data", "file", a.cfg.DataPath, "samples", len(ds.Samples))
	return ds, nil
}

// chartOptions returns the configured chart options.
func (a *app) chartOptions() []chart.Option {
	settings := xychart.DefaultSettings()
	settings.Palette = a.cfg.Palette
	return []chart.Option{
		chart.WithSettings(settings),
		chart.WithMargin(a.cfg.Viewport.Margin),
		chart.WithZoomOptions(zoom.WithMinSelection(a.cfg.MinSelectionPx)),
	}
}

// zoomFlags are flags overriding individual zoom bounds.  A bound whose
// flag is not given keeps its value from the data file, if any.
type zoomFlags struct {
	xMin, xMax, yMin, yMax float64
}

func (zf *zoomFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&zf.xMin, "x-min", 0, "Lower x bound of the visible range")
	cmd.Flags().Float64Var(&zf.xMax, "x-max", 0, "Upper x bound of the visible range")
	cmd.Flags().Float64Var(&zf.yMin, "y-min", 0, "Lower y bound of the visible range")
	cmd.Flags().Float64Var(&zf.yMax, "y-max", 0, "Upper y bound of the visible range")
}

// apply returns zs, with the bounds of any given flags replaced.
func (zf *zoomFlags) apply(cmd *cobra.Command, zs *scale.ZoomState) *scale.ZoomState {
	ret := zs.Clone()
	for _, bound := range []struct {
		flag string
		v    float64
		dst  func(zs *scale.ZoomState) **float64
	}{
		{"x-min", zf.xMin, func(zs *scale.ZoomState) **float64 { return &zs.XMin }},
		{"x-max", zf.xMax, func(zs *scale.ZoomState) **float64 { return &zs.XMax }},
		{"y-min", zf.yMin, func(zs *scale.ZoomState) **float64 { return &zs.YMin }},
		{"y-max", zf.yMax, func(zs *scale.ZoomState) **float64 { return &zs.YMax }},
	} {
		if !cmd.Flags().Changed(bound.flag) {
			continue
		}
		if ret == nil {
			ret = &scale.ZoomState{}
		}
		*bound.dst(ret) = scale.Bound(bound.v)
	}
	return ret
}

// sizeFlags are flags specifying the drawing surface's size.
type sizeFlags struct {
	width, height float64
}

func (sf *sizeFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&sf.width, "width", 0, "Surface width in pixels (default from config)")
	cmd.Flags().Float64Var(&sf.height, "height", 0, "Surface height in pixels (default from config)")
}

// size returns the flagged size, falling back to the configured viewport.
func (sf *sizeFlags) size(cfg *config.Config) (width, height float64) {
	width, height = sf.width, sf.height
	if width <= 0 {
		width = cfg.Viewport.Width
	}
	if height <= 0 {
		height = cfg.Viewport.Height
	}
	return width, height
}
