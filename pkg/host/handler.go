package host

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stateview-go/stateview/pkg/compose"
	"github.com/stateview-go/stateview/pkg/provider"
)

// Handler serves a mounted component over HTTP: the page itself (server
// rendered), a WebSocket endpoint streaming re-render frames, and a
// Prometheus metrics endpoint.
type Handler struct {
	cfg       Config
	component compose.Component
	props     provider.Props

	router   chi.Router
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewHandler creates an http.Handler for the given component. Each page
// load mounts a fresh session; the page's WebSocket connection drives the
// session until it disconnects.
func NewHandler(c compose.Component, props provider.Props, cfg Config) *Handler {
	cfg = cfg.withDefaults()

	h := &Handler{
		cfg:       cfg,
		component: c,
		props:     props,
		sessions:  make(map[string]*Session),
	}

	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     cfg.CheckOrigin,
	}
	if h.upgrader.CheckOrigin == nil {
		h.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}

	r := chi.NewRouter()
	r.Get("/", h.servePage)
	r.Get("/ws", h.serveWS)
	r.Handle("/metrics", promhttp.Handler())
	h.router = r

	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// servePage mounts a new session and serves the initial render.
func (h *Handler) servePage(w http.ResponseWriter, r *http.Request) {
	s := NewSession(h.component, h.props, h.cfg)

	html, err := s.RenderHTML()
	if err != nil {
		h.cfg.Logger.Error("initial render failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		s.Close()
		return
	}

	h.mu.Lock()
	h.sessions[s.ID] = s
	evicted := h.evictOverflowLocked()
	h.mu.Unlock()
	for _, old := range evicted {
		h.cfg.Logger.Warn("session evicted, limit reached", "session", old.ID)
		old.Close()
	}
	s.Start()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageShell, h.component.Name(), html, s.ID)
}

// serveWS attaches a WebSocket transport to an existing session.
func (h *Handler) serveWS(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")

	h.mu.Lock()
	s, ok := h.sessions[id]
	h.mu.Unlock()
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.cfg.Logger.Error("websocket upgrade failed", "error", err)
		return
	}

	go h.writeFrames(conn, s)
	h.readEvents(conn, s)

	h.mu.Lock()
	delete(h.sessions, id)
	h.mu.Unlock()
	s.Close()
	conn.Close()
}

// writeFrames pushes re-rendered HTML frames to the client.
func (h *Handler) writeFrames(conn *websocket.Conn, s *Session) {
	for {
		select {
		case <-s.Done():
			return
		case frame := <-s.Frames():
			if err := conn.WriteJSON(map[string]string{"html": frame}); err != nil {
				h.cfg.Logger.Warn("frame write failed", "session", s.ID, "error", err)
				return
			}
		}
	}
}

// readEvents pumps client events into the session until the connection
// drops.
func (h *Handler) readEvents(conn *websocket.Conn, s *Session) {
	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			return
		}
		if err := s.Dispatch(&ev); err != nil {
			h.cfg.Logger.Warn("event dropped", "session", s.ID, "error", err)
		}
	}
}

// evictOverflowLocked removes the oldest sessions until the map fits
// cfg.MaxSessions. This reclaims page loads that never attached their
// WebSocket. Caller holds h.mu; returned sessions still need Close.
func (h *Handler) evictOverflowLocked() []*Session {
	var evicted []*Session
	for len(h.sessions) > h.cfg.MaxSessions {
		var oldest *Session
		for _, s := range h.sessions {
			if oldest == nil || s.seq < oldest.seq {
				oldest = s
			}
		}
		delete(h.sessions, oldest.ID)
		evicted = append(evicted, oldest)
	}
	return evicted
}

// SessionCount returns the number of live sessions.
func (h *Handler) SessionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// pageShell is the HTML wrapper for server-rendered components. The inline
// client forwards events on data-sv elements over the WebSocket and swaps
// the re-rendered frame back in.
const pageShell = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body>
<div id="app">%s</div>
<script>
(function () {
  var sid = %q;
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws?session=" + sid);
  ws.onmessage = function (msg) {
    var frame = JSON.parse(msg.data);
    document.getElementById("app").innerHTML = frame.html;
  };
  document.addEventListener("click", function (e) {
    var el = e.target.closest("[data-sv]");
    if (!el || !el.hasAttribute("data-on-click")) return;
    ws.send(JSON.stringify({key: el.getAttribute("data-sv") + "_onclick"}));
  });
  document.addEventListener("input", function (e) {
    var el = e.target.closest("[data-sv]");
    if (!el || !el.hasAttribute("data-on-input")) return;
    ws.send(JSON.stringify({key: el.getAttribute("data-sv") + "_oninput", value: el.value}));
  });
})();
</script>
</body>
</html>`
