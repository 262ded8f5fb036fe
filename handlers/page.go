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
	"io"

	"github.com/google/safehtml/template"
)

// The page's script reads the session from the page, renders each SVG frame
// it receives, and reports pointer events, resizes, and resets.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>zoomchart</title>
</head>
<body>
<p>Drag over the chart to zoom. Session <code id="session">{{.Session}}</code>
<button id="reset">Reset zoom</button></p>
<div id="chart" style="width: 100%; height: 80vh; user-select: none"></div>
<script>
(() => {
  const session = document.getElementById("session").textContent;
  const chart = document.getElementById("chart");
  const scheme = location.protocol === "https:" ? "wss://" : "ws://";
  const ws = new WebSocket(scheme + location.host + "/ws?session=" + encodeURIComponent(session));
  const send = (msg) => {
    if (ws.readyState === WebSocket.OPEN) {
      ws.send(JSON.stringify(msg));
    }
  };
  const resize = () => send({type: "resize", width: chart.clientWidth, height: chart.clientHeight});
  const pointer = (type) => (ev) => {
    const r = chart.getBoundingClientRect();
    send({type: type, clientX: ev.clientX, clientY: ev.clientY, left: r.left, top: r.top});
  };
  ws.onopen = resize;
  ws.onmessage = (ev) => { chart.innerHTML = ev.data; };
  chart.addEventListener("mousedown", pointer("press"));
  window.addEventListener("mousemove", (ev) => { if (ev.buttons) { pointer("move")(ev); } });
  window.addEventListener("mouseup", pointer("release"));
  window.addEventListener("resize", resize);
  document.getElementById("reset").addEventListener("click", () => send({type: "reset"}));
})();
</script>
</body>
</html>
`

var page = template.Must(template.New("page").Parse(pageTemplate))

type pageData struct {
	Session string
}

func writePage(w io.Writer, sessionID string) error {
	return page.Execute(w, pageData{Session: sessionID})
}
