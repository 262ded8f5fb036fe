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
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/ilhamster/zoomchart/chart"
	svgrender "github.com/ilhamster/zoomchart/svg_render"
	"github.com/ilhamster/zoomchart/zoom"
	"github.com/spf13/cobra"
)

func (a *app) newRenderCmd() *cobra.Command {
	var (
		out string
		zf  zoomFlags
		sf  sizeFlags
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a chart to SVG",
		Long: heredoc.Doc(`
			Render the chart of the data, under an optional zoom, as an SVG
			document.  Each zoom bound flag overrides one bound; omitted bounds
			fit the data.
		`),
		Example: heredoc.Doc(`
			$ zoomchart render --data samples.json --x-min 2 --x-max 8 -o chart.svg
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			write := func(w io.Writer) error {
				return a.render(w, cmd, &zf, &sf)
			}
			if out == "" || out == "-" {
				return write(cmd.OutOrStdout())
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create output: %w", err)
			}
			return writeAndClose(f, write)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file (default is stdout)")
	zf.register(cmd)
	sf.register(cmd)
	return cmd
}

// writeAndClose invokes write on wc, then closes wc.  A failed close is
// reported only if write succeeded.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	if err := write(wc); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	return nil
}

func (a *app) render(w io.Writer, cmd *cobra.Command, zf *zoomFlags, sf *sizeFlags) error {
	ds, err := a.loadData()
	if err != nil {
		return err
	}
	target := zoom.NewTarget(sf.size(a.cfg))
	c := chart.New(target, a.chartOptions()...)
	defer c.Close()
	if err := c.Update(ds.Samples, zf.apply(cmd, ds.Zoom), nil); err != nil {
		return err
	}
	tree, err := c.Tree()
	if err != nil {
		return err
	}
	return svgrender.Render(w, tree)
}
