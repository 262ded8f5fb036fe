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

package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/ilhamster/zoomchart/session"
	"github.com/ilhamster/zoomchart/zoom"
)

// Websocket message types sent by the page.
const (
	resizeMessage = "resize"
	resetMessage  = "reset"
)

// clientMessage is a single event reported by the page.  Pointer events
// (press, move, and release) carry the pointer's client coordinates and
// the chart surface's top-left corner; resize carries the surface's size.
type clientMessage struct {
	Type    string  `json:"type"`
	ClientX float64 `json:"clientX"`
	ClientY float64 `json:"clientY"`
	Left    float64 `json:"left"`
	Top     float64 `json:"top"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// apply applies msg to s.
func apply(s *session.Session, msg *clientMessage) error {
	switch msg.Type {
	case resizeMessage:
		return s.Resize(msg.Width, msg.Height)
	case resetMessage:
		return s.Reset()
	}
	kind, err := zoom.ParseEventKind(msg.Type)
	if err != nil {
		return err
	}
	return s.HandleEvent(zoom.Event{
		Kind:    kind,
		ClientX: msg.ClientX,
		ClientY: msg.ClientY,
	}, msg.Left, msg.Top)
}

// wsHandler upgrades the request to a websocket, then answers every message
// that changes the session's drawing with the session's current SVG.
func (ch *chartHandler) wsHandler(w http.ResponseWriter, req *http.Request) {
	s := ch.sessionOf(w, req)
	if s == nil {
		return
	}
	conn, err := ch.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		log.Warn("websocket upgrade failed", "session", s.ID(), "error", err)
		return
	}
	defer conn.Close()
	for {
		msg := &clientMessage{}
		if err := conn.ReadJSON(msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read failed", "session", s.ID(), "error", err)
			}
			return
		}
		before := s.Revision()
		if err := apply(s, msg); err != nil {
			log.Warn("rejected websocket message", "session", s.ID(), "type", msg.Type, "error", err)
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseUnsupportedData, err.Error()))
			return
		}
		if s.Revision() == before {
			continue
		}
		var buf bytes.Buffer
		if err := s.WriteSVG(&buf); err != nil {
			log.Error("failed to render chart", "session", s.ID(), "error", err)
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseInternalServerErr, fmt.Sprintf("render failed: %s", err)))
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, buf.Bytes()); err != nil {
			log.Warn("websocket write failed", "session", s.ID(), "error", err)
			return
		}
	}
}
