package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/jaminalder/nxn-tic-tac-toe/internal/app"
)

// Message types on the websocket.
const (
	MsgWelcome  = "Welcome"
	MsgBoard    = "Board"
	MsgError    = "Error"
	MsgMakeMove = "MakeMove"
)

// Message represents JSON data sent across socket connections.
type Message struct {
	Type     string      `json:"type"`
	Contents interface{} `json:"contents,omitempty"`
}

// MoveRequest is the contents of a MakeMove message.
type MoveRequest struct {
	Row *int `mapstructure:"row"`
	Col *int `mapstructure:"col"`
}

// WelcomeContents tells a client who it is.
type WelcomeContents struct {
	PlayerID string `json:"playerID"`
	Seat     string `json:"seat"`
}

// BoardContents is a game snapshot.
type BoardContents struct {
	ID     string   `json:"id"`
	Size   int      `json:"size"`
	Fields []string `json:"fields"`
	Turn   string   `json:"turn"`
	Winner string   `json:"winner,omitempty"`
}

// ErrorContents explains a rejected request.
type ErrorContents struct {
	Reason string `json:"reason"`
}

var errMalformedMove = errors.New("malformed move")

func newBoardContents(gs app.GameState) BoardContents {
	bc := BoardContents{
		ID:     gs.ID,
		Size:   gs.Size,
		Fields: make([]string, len(gs.Fields)),
		Turn:   gs.Turn.String(),
	}
	for i, f := range gs.Fields {
		bc.Fields[i] = f.String()
	}
	if gs.HasWinner {
		bc.Winner = gs.Winner.String()
	}
	return bc
}

func decodeMove(contents interface{}) (row, col int, err error) {
	var req MoveRequest
	if err := mapstructure.Decode(contents, &req); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", errMalformedMove, err)
	}
	if req.Row == nil || req.Col == nil {
		return 0, 0, fmt.Errorf("%w: row and col are required", errMalformedMove)
	}
	return *req.Row, *req.Col, nil
}

func playerFromRequest(r *http.Request) string {
	if c, err := r.Cookie(playerCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if p := r.URL.Query().Get("player"); p != "" {
		return p
	}
	return uuid.NewString()
}

// socket upgrades to a websocket that accepts MakeMove messages and pushes a
// Board message after every change to the game.
func (h *handlers) socket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pid := playerFromRequest(r)
	seat, gs, err := h.svc.Join(id, pid)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.String("game", id), zap.Error(err))
		return
	}
	defer conn.Close()
	log := h.log.With(zap.String("game", id), zap.String("player", pid))
	log.Debug("websocket connected", zap.Stringer("seat", seat))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	updates, unsub := h.svc.Subscribe(ctx, id)
	defer unsub()

	requests := make(chan Message)
	go func() {
		defer cancel()
		for {
			var m Message
			if err := conn.ReadJSON(&m); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Debug("websocket closed", zap.Error(err))
				}
				return
			}
			select {
			case requests <- m:
			case <-ctx.Done():
				return
			}
		}
	}()

	send := func(m Message) bool {
		if err := conn.WriteJSON(m); err != nil {
			log.Debug("websocket write failed", zap.Error(err))
			return false
		}
		return true
	}
	if !send(Message{Type: MsgWelcome, Contents: WelcomeContents{PlayerID: pid, Seat: seat.String()}}) ||
		!send(Message{Type: MsgBoard, Contents: newBoardContents(*gs)}) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-updates:
			if !ok {
				return
			}
			latest, found := h.svc.Get(id)
			if !found || !send(Message{Type: MsgBoard, Contents: newBoardContents(*latest)}) {
				return
			}
		case m := <-requests:
			if m.Type != MsgMakeMove {
				if !send(Message{Type: MsgError, Contents: ErrorContents{Reason: "unknown message type " + m.Type}}) {
					return
				}
				continue
			}
			row, col, err := decodeMove(m.Contents)
			if err == nil {
				_, err = h.svc.Play(id, pid, row, col)
			}
			if err != nil {
				log.Warn("move rejected", zap.Int("row", row), zap.Int("col", col), zap.Error(err))
				reason := moveErrorMessage(err)
				if errors.Is(err, errMalformedMove) {
					reason = "Malformed move"
				}
				if !send(Message{Type: MsgError, Contents: ErrorContents{Reason: reason}}) {
					return
				}
			}
		}
	}
}
