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

// Package handlers serves zoomable charts over HTTP.  Each page load creates
// a session; the page forwards its pointer events over a websocket and
// displays the SVG frames sent back.
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/ilhamster/zoomchart/scale"
	"github.com/ilhamster/zoomchart/session"
)

// HandlerFunc is a HTTP handler function.
type HandlerFunc func(http.ResponseWriter, *http.Request)

// WrapFunc is a function that rewrites a HandlerFunc.
type WrapFunc func(HandlerFunc) HandlerFunc

// Handler describes a zoomchart HTTP handler.
type Handler interface {
	HandlersByPath() map[string]func(http.ResponseWriter, *http.Request)
}

// ChartHandler is a Handler for chart sessions.  It supports a Wrap method
// that wraps all handlers, e.g. adding headers.
type ChartHandler interface {
	Handler
	Wrap(...WrapFunc) Handler
}

const (
	pagePath = "/"
	svgPath  = "/chart.svg"
	treePath = "/chart.json"
	zoomPath = "/zoom"
	wsPath   = "/ws"
	sessionQ = "session"
	svgMIME  = "image/svg+xml"
	jsonMIME = "application/json"
)

// chartHandler serves chart sessions from a session.Store.
type chartHandler struct {
	store    *session.Store
	upgrader websocket.Upgrader
	wrappers []WrapFunc
}

// NewChartHandler returns a new ChartHandler serving sessions from the
// provided Store.
func NewChartHandler(store *session.Store) ChartHandler {
	return &chartHandler{
		store: store,
	}
}

func (ch *chartHandler) Wrap(wrappers ...WrapFunc) Handler {
	ch.wrappers = append(ch.wrappers, wrappers...)
	return ch
}

// HandlersByPath returns a mapping of HTTP request path to HTTP handler for
// this Handler.
func (ch *chartHandler) HandlersByPath() map[string]func(http.ResponseWriter, *http.Request) {
	ret := map[string]func(http.ResponseWriter, *http.Request){}
	for path, h := range map[string]HandlerFunc{
		pagePath: ch.pageHandler,
		svgPath:  ch.svgHandler,
		treePath: ch.treeHandler,
		zoomPath: ch.zoomHandler,
		wsPath:   ch.wsHandler,
	} {
		for _, wrapper := range ch.wrappers {
			h = wrapper(h)
		}
		ret[path] = h
	}
	return ret
}

// sessionOf returns the session named by the request's session parameter.
// On failure it reports the error to w and returns nil.
func (ch *chartHandler) sessionOf(w http.ResponseWriter, req *http.Request) *session.Session {
	id := req.URL.Query().Get(sessionQ)
	if id == "" {
		http.Error(w, "Missing 'session' parameter", http.StatusBadRequest)
		return nil
	}
	s, err := ch.store.Get(id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, session.ErrUnknownSession) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return nil
	}
	return s
}

func (ch *chartHandler) pageHandler(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != pagePath {
		http.NotFound(w, req)
		return
	}
	if req.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s, err := ch.store.Create(0, 0)
	if err != nil {
		log.Error("failed to create session", "error", err)
		http.Error(w, "Failed to create session: "+err.Error(), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := writePage(&buf, s.ID()); err != nil {
		http.Error(w, "Failed to render page: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (ch *chartHandler) svgHandler(w http.ResponseWriter, req *http.Request) {
	s := ch.sessionOf(w, req)
	if s == nil {
		return
	}
	var buf bytes.Buffer
	if err := s.WriteSVG(&buf); err != nil {
		http.Error(w, "Failed to render chart: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", svgMIME)
	buf.WriteTo(w)
}

// treeHandler serves the session's current drawing as its JSON encoding.
func (ch *chartHandler) treeHandler(w http.ResponseWriter, req *http.Request) {
	s := ch.sessionOf(w, req)
	if s == nil {
		return
	}
	tree, err := s.Tree()
	if err != nil {
		http.Error(w, "Failed to render chart: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, tree)
}

// zoomResponse reports a session's zoom state, and the ranges it resolves
// to.
type zoomResponse struct {
	Zoom   *scale.ZoomState `json:"zoom"`
	Bounds *scale.ZoomState `json:"bounds"`
}

func (ch *chartHandler) zoomHandler(w http.ResponseWriter, req *http.Request) {
	s := ch.sessionOf(w, req)
	if s == nil {
		return
	}
	switch req.Method {
	case http.MethodGet:
	case http.MethodDelete:
		if err := s.Reset(); err != nil {
			http.Error(w, "Failed to reset zoom: "+err.Error(), http.StatusInternalServerError)
			return
		}
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sendJSON(w, &zoomResponse{
		Zoom:   s.Zoom(),
		Bounds: s.Bounds(),
	})
}

// sendJSON serializes the provided response and sends it along the provided
// http.ResponseWriter.  Any failures during serialization yield an HTTP
// internal status error.
func sendJSON(w http.ResponseWriter, resp any) {
	respBytes, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Failed to marshal response: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", jsonMIME)
	fmt.Fprint(w, string(respBytes))
}
