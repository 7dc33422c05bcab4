package web

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jaminalder/nxn-tic-tac-toe/internal/app"
)

// Options tunes the browser front-end. The zero value is usable.
type Options struct {
	Logger *zap.Logger
	// Heartbeat is the SSE ping interval; zero means 15s.
	Heartbeat time.Duration
	// CheckOrigin validates websocket origins; nil means same-origin only.
	CheckOrigin func(r *http.Request) bool
}

// NewServer wires routes and returns an http.Handler. It also installs the
// board fragment as the service's broadcast renderer.
func NewServer(s *app.Service, opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	heartbeat := opts.Heartbeat
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	h := &handlers{
		svc:       s,
		tpl:       loadTemplates(),
		log:       log,
		heartbeat: heartbeat,
		upgrader:  websocket.Upgrader{CheckOrigin: opts.CheckOrigin},
	}
	s.SetRenderer(func(gs app.GameState) []byte { return h.renderBoard(gs, "") })

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))
	r.Get("/", h.index)
	r.Post("/game", h.create)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", h.view)
		r.Post("/join", h.join)
		r.Post("/play", h.play)
		r.Get("/events", h.events)
		r.Get("/ws", h.socket)
	})
	return r
}

// SameHostOrigin returns a websocket origin check accepting only browsers
// served from host. A host with a port must match exactly; a bare host
// matches on any port.
func SameHostOrigin(host string) func(r *http.Request) bool {
	host = strings.ToLower(host)
	withPort := strings.Contains(host, ":")
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return false
		}
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			return false
		}
		if withPort {
			return strings.ToLower(u.Host) == host
		}
		return strings.ToLower(u.Hostname()) == host
	}
}
