package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jaminalder/nxn-tic-tac-toe/internal/domain"
)

// Errors exposed by the service layer.
var (
	ErrNotFound    = errors.New("game not found")
	ErrNotYourTurn = errors.New("not your turn")
	ErrNotAPlayer  = errors.New("not a player")
)

// DefaultBoardSize is used when CreateGame is asked for size 0.
const DefaultBoardSize = 3

// Seat is the role a joined participant holds in a game.
type Seat uint8

const (
	Spectator Seat = iota
	CrossSeat
	CircleSeat
)

// Player returns the domain player for a seat; spectators report false.
func (s Seat) Player() (domain.Player, bool) {
	switch s {
	case CrossSeat:
		return domain.CrossPlayer, true
	case CircleSeat:
		return domain.CirclePlayer, true
	default:
		return domain.CrossPlayer, false
	}
}

func (s Seat) String() string {
	if p, ok := s.Player(); ok {
		return p.String()
	}
	return "spectator"
}

// GameState is a point-in-time copy of one game for renderers.
type GameState struct {
	ID        string
	Size      int
	Fields    []domain.FieldState
	Turn      domain.Player
	Winner    domain.Player
	HasWinner bool
	Cross     string
	Circle    string
	Created   time.Time
	Updated   time.Time
}

// At returns the field at row, col.
func (gs GameState) At(row, col int) domain.FieldState {
	return gs.Fields[col+row*gs.Size]
}

// Marks counts the occupied cells.
func (gs GameState) Marks() int {
	n := 0
	for _, f := range gs.Fields {
		if f != domain.Empty {
			n++
		}
	}
	return n
}

type game struct {
	id      string
	engine  *domain.Engine
	cross   string
	circle  string
	created time.Time
	updated time.Time
}

func (g *game) snapshot() GameState {
	w, ok := g.engine.Winner()
	return GameState{
		ID:        g.id,
		Size:      g.engine.Size(),
		Fields:    g.engine.Fields(),
		Turn:      g.engine.ActivePlayer(),
		Winner:    w,
		HasWinner: ok,
		Cross:     g.cross,
		Circle:    g.circle,
		Created:   g.created,
		Updated:   g.updated,
	}
}

type subscriber struct {
	ch        chan []byte
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service owns every running engine and serialises access to them.
type Service struct {
	mu          sync.Mutex
	games       map[string]*game
	subs        map[string]map[*subscriber]struct{}
	render      func(GameState) []byte
	log         *zap.Logger
	defaultSize int
}

// Option configures a Service.
type Option func(*Service)

// WithRenderer sets the function producing broadcast payloads.
func WithRenderer(renderer func(GameState) []byte) Option {
	return func(s *Service) {
		if renderer != nil {
			s.render = renderer
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithDefaultSize sets the board size used for CreateGame(0).
func WithDefaultSize(size int) Option {
	return func(s *Service) { s.defaultSize = size }
}

func nopRenderer(GameState) []byte { return nil }

// NewService creates a service; without options it logs nowhere and
// broadcasts empty payloads.
func NewService(opts ...Option) *Service {
	s := &Service{
		games:       make(map[string]*game),
		subs:        make(map[string]map[*subscriber]struct{}),
		render:      nopRenderer,
		log:         zap.NewNop(),
		defaultSize: DefaultBoardSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewServiceWithRenderer allows injecting a renderer for broadcast payloads.
func NewServiceWithRenderer(renderer func(GameState) []byte) *Service {
	return NewService(WithRenderer(renderer))
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		s.render = nopRenderer
		return
	}
	s.render = renderer
}

// DefaultSize returns the board size CreateGame(0) uses.
func (s *Service) DefaultSize() int { return s.defaultSize }

// CreateGame creates and registers a new game of size×size cells. Size 0
// selects the default size.
func (s *Service) CreateGame(size int) (*GameState, error) {
	if size == 0 {
		size = s.defaultSize
	}
	engine, err := domain.NewEngine(size)
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}
	now := time.Now()
	g := &game{id: uuid.NewString(), engine: engine, created: now, updated: now}

	s.mu.Lock()
	s.games[g.id] = g
	gs := g.snapshot()
	s.mu.Unlock()

	s.log.Info("game created", zap.String("game", g.id), zap.Int("size", size))
	return &gs, nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	if !ok {
		return nil, false
	}
	gs := g.snapshot()
	return &gs, true
}

// Join assigns a seat to the player if one is free. Rejoining keeps the seat;
// everyone after the two players spectates.
func (s *Service) Join(id, playerID string) (Seat, *GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	if !ok {
		return Spectator, nil, ErrNotFound
	}
	seat := Spectator
	switch {
	case g.cross == "" || g.cross == playerID:
		g.cross = playerID
		seat = CrossSeat
	case g.circle == "" || g.circle == playerID:
		g.circle = playerID
		seat = CircleSeat
	}
	g.updated = time.Now()
	gs := g.snapshot()
	return seat, &gs, nil
}

// Play validates seat and turn, applies a move, updates timestamps, and
// broadcasts. Moves on a won game are accepted and ignored.
func (s *Service) Play(id, playerID string, row, col int) (*GameState, error) {
	s.mu.Lock()
	g, ok := s.games[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	var seat Seat
	switch playerID {
	case g.cross:
		seat = CrossSeat
	case g.circle:
		seat = CircleSeat
	}
	player, seated := seat.Player()
	if playerID == "" || !seated {
		s.mu.Unlock()
		return nil, ErrNotAPlayer
	}
	if g.engine.Finished() {
		gs := g.snapshot()
		s.mu.Unlock()
		return &gs, nil
	}
	if player != g.engine.ActivePlayer() {
		s.mu.Unlock()
		return nil, ErrNotYourTurn
	}
	pos, err := domain.NewPosition(row, col, g.engine)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := g.engine.HandleFieldSelected(pos); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	g.updated = time.Now()

	// Snapshot state and fan out while still holding the lock, so a
	// concurrent unsubscribe cannot close a channel mid-send.
	gs := g.snapshot()
	dropped := s.broadcastLocked(id, s.render(gs))
	s.mu.Unlock()

	s.log.Debug("move applied",
		zap.String("game", id),
		zap.Stringer("player", player),
		zap.Stringer("pos", pos),
	)
	if dropped > 0 {
		s.log.Debug("dropped slow subscribers", zap.String("game", id), zap.Int("count", dropped))
	}
	if gs.HasWinner {
		s.log.Info("game won", zap.String("game", id), zap.Stringer("winner", gs.Winner))
	}
	return &gs, nil
}

// broadcastLocked fans payload out without blocking; slow subscribers are
// closed and dropped. Callers hold s.mu.
func (s *Service) broadcastLocked(id string, payload []byte) int {
	set := s.subs[id]
	dropped := 0
	for sub := range set {
		select {
		case sub.ch <- payload:
		default:
			sub.close()
			delete(set, sub)
			dropped++
		}
	}
	if set != nil && len(set) == 0 {
		delete(s.subs, id)
	}
	return dropped
}

// Subscribe registers a subscriber for a game. Returns a channel and an
// unsubscribe func; the channel is closed on unsubscribe, when ctx ends, or
// when the subscriber falls behind.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan []byte, 1)}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
				if len(set) == 0 {
					delete(s.subs, id)
				}
			}
			sub.close()
			s.mu.Unlock()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub
}
