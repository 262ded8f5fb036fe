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
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/ilhamster/zoomchart/config"
	"github.com/ilhamster/zoomchart/handlers"
	"github.com/ilhamster/zoomchart/session"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func (a *app) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve zoomable charts over HTTP",
		Long: heredoc.Doc(`
			Serve the chart page, an SVG of each viewer's current chart, each
			viewer's zoom state, and the websocket carrying pointer events from
			the page.
		`),
		Example: heredoc.Doc(`
			$ zoomchart serve --data samples.yaml --listen localhost:8080
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().String("listen", "", "Address to listen on (default from config, :7410)")
	a.v.BindPFlag(config.ListenKey, cmd.Flags().Lookup("listen"))
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	ds, err := a.loadData()
	if err != nil {
		return err
	}
	store, err := session.NewStore(a.cfg.SessionsCapacity, ds.Samples,
		session.WithInitialZoom(ds.Zoom),
		session.WithDefaultSize(a.cfg.Viewport.Width, a.cfg.Viewport.Height),
		session.WithChartOptions(a.chartOptions()...),
	)
	if err != nil {
		return err
	}
	defer store.Close()

	mux := http.NewServeMux()
	for path, handler := range handlers.NewChartHandler(store).Wrap(logRequests).HandlersByPath() {
		mux.HandleFunc(path, handler)
	}
	srv := &http.Server{
		Addr:    a.cfg.Listen,
		Handler: mux,
	}

	errg, ctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		log.Info("serving zoomchart", "addr", a.cfg.Listen, "samples", len(ds.Samples))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	errg.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return errg.Wait()
}

func logRequests(h handlers.HandlerFunc) handlers.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		h(w, req)
		log.Debug("handled request", "method", req.Method, "path", req.URL.Path, "duration", time.Since(start))
	}
}
