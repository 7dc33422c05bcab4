package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jaminalder/nxn-tic-tac-toe/internal/app"
	"github.com/jaminalder/nxn-tic-tac-toe/internal/domain"
)

const defaultHeartbeat = 15 * time.Second

type handlers struct {
	svc       *app.Service
	tpl       *templates
	log       *zap.Logger
	heartbeat time.Duration
	upgrader  websocket.Upgrader
}

func (h *handlers) renderBoard(gs app.GameState, errMsg string) []byte {
	return renderTemplate(h.tpl.board, "", newBoardView(gs, errMsg))
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	data := struct{ DefaultSize int }{DefaultSize: h.svc.DefaultSize()}
	writeHTML(w, http.StatusOK, renderTemplate(h.tpl.index, "base", data))
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	size := 0
	if s := r.Form.Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid board size", http.StatusBadRequest)
			return
		}
		size = n
	}
	gs, err := h.svc.CreateGame(size)
	if err != nil {
		if errors.Is(err, domain.ErrOutOfDomain) {
			http.Error(w, "invalid board size", http.StatusBadRequest)
			return
		}
		http.Error(w, "failed to create", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	// ensure cookie and auto-claim seat
	pid := ensurePlayerCookie(w, r)
	_, gs, err := h.svc.Join(id, pid)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	data := struct {
		ID    string
		Board boardView
	}{ID: gs.ID, Board: newBoardView(*gs, "")}
	writeHTML(w, http.StatusOK, renderTemplate(h.tpl.game, "base", data))
}

func (h *handlers) join(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pid := ensurePlayerCookie(w, r)
	seat, gs, err := h.svc.Join(id, pid)
	if err != nil || gs == nil {
		http.NotFound(w, r)
		return
	}
	h.log.Debug("joined", zap.String("game", id), zap.Stringer("seat", seat))
	writeHTML(w, http.StatusOK, h.renderBoard(*gs, ""))
}

// moveErrorMessage turns a rejected move into text for the player.
func moveErrorMessage(err error) string {
	switch {
	case errors.Is(err, app.ErrNotYourTurn):
		return "Not your turn"
	case errors.Is(err, app.ErrNotAPlayer):
		return "You are a spectator"
	case errors.Is(err, domain.ErrInvalidArgument):
		return "Cell is occupied"
	case errors.Is(err, domain.ErrOutOfDomain):
		return "Out of bounds"
	default:
		return "Invalid move"
	}
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pid := ensurePlayerCookie(w, r)
	_ = r.ParseForm()
	ri, errR := strconv.Atoi(r.Form.Get("r"))
	ci, errC := strconv.Atoi(r.Form.Get("c"))
	var (
		gs  *app.GameState
		err error
	)
	if errR != nil || errC != nil {
		err = fmt.Errorf("%w: malformed coordinates", domain.ErrOutOfDomain)
	} else {
		gs, err = h.svc.Play(id, pid, ri, ci)
	}
	var errMsg string
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.log.Warn("move rejected",
			zap.String("game", id),
			zap.String("player", pid),
			zap.Int("row", ri),
			zap.Int("col", ci),
			zap.Error(err),
		)
		errMsg = moveErrorMessage(err)
		if g, ok := h.svc.Get(id); ok {
			gs = g
		}
	}
	if gs == nil {
		http.NotFound(w, r)
		return
	}
	writeHTML(w, http.StatusOK, h.renderBoard(*gs, errMsg))
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Get(id); !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// In tests or non-EventSource requests, just acknowledge headers and return
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx := r.Context()
	ch, unsub := h.svc.Subscribe(ctx, id)
	defer unsub()
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	// Initial flush of headers
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case b, ok := <-ch:
			if !ok {
				return
			}
			writeEvent(w, "board", b)
			flusher.Flush()
		}
	}
}

// writeEvent emits one SSE event; every payload line gets its own data field.
func writeEvent(w io.Writer, event string, payload []byte) {
	_, _ = fmt.Fprintf(w, "event: %s\n", event)
	for _, line := range strings.Split(strings.TrimSpace(string(payload)), "\n") {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = io.WriteString(w, "\n")
}
