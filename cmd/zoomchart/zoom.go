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
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/ilhamster/zoomchart/chart"
	"github.com/ilhamster/zoomchart/scale"
	"github.com/ilhamster/zoomchart/zoom"
	"github.com/spf13/cobra"
)

// parsePoint parses a pixel position given as "X,Y".
func parsePoint(s string) (zoom.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return zoom.Point{}, fmt.Errorf("point '%s' is not of the form X,Y", s)
	}
	var coords [2]float64
	for idx, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return zoom.Point{}, fmt.Errorf("point '%s': %w", s, err)
		}
		coords[idx] = v
	}
	return zoom.Point{X: coords[0], Y: coords[1]}, nil
}

func (a *app) newZoomCmd() *cobra.Command {
	var (
		from, to string
		zf       zoomFlags
		sf       sizeFlags
	)
	cmd := &cobra.Command{
		Use:   "zoom",
		Short: "Replay a zoom drag and print the resulting zoom state",
		Long: heredoc.Doc(`
			Drag from one pixel position to another over the chart of the data,
			and print the zoom state the drag produces as JSON.  Positions are
			relative to the chart's top-left corner.  A drag smaller than
			zoom.min_selection_px prints null.
		`),
		Example: heredoc.Doc(`
			$ zoomchart zoom --data samples.json --width 400 --height 300 --from 50,50 --to 150,150
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parsePoint(from)
			if err != nil {
				return err
			}
			end, err := parsePoint(to)
			if err != nil {
				return err
			}
			return a.replayZoom(cmd.OutOrStdout(), cmd, start, end, &zf, &sf)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Drag start, X,Y in pixels (required)")
	cmd.Flags().StringVar(&to, "to", "", "Drag end, X,Y in pixels (required)")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	zf.register(cmd)
	sf.register(cmd)
	return cmd
}

func (a *app) replayZoom(w io.Writer, cmd *cobra.Command, start, end zoom.Point, zf *zoomFlags, sf *sizeFlags) error {
	ds, err := a.loadData()
	if err != nil {
		return err
	}
	target := zoom.NewTarget(sf.size(a.cfg))
	c := chart.New(target, a.chartOptions()...)
	defer c.Close()
	var got *scale.ZoomState
	if err := c.Update(ds.Samples, zf.apply(cmd, ds.Zoom), func(zs *scale.ZoomState) {
		got = zs
	}); err != nil {
		return err
	}
	target.Dispatch(zoom.Event{Kind: zoom.Press, ClientX: start.X, ClientY: start.Y})
	target.Dispatch(zoom.Event{Kind: zoom.Move, ClientX: end.X, ClientY: end.Y})
	target.Dispatch(zoom.Event{Kind: zoom.Release, ClientX: end.X, ClientY: end.Y})
	if got == nil {
		log.Info("selection too small to zoom", "from", start, "to", end)
	}
	out, err := json.MarshalIndent(got, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode zoom state: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}
