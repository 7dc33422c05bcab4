package domain

import (
	"errors"
	"fmt"
)

// FieldState represents a board cell state.
type FieldState uint8

const (
	Empty FieldState = iota
	Circle
	Cross
)

func (s FieldState) String() string {
	switch s {
	case Circle:
		return "O"
	case Cross:
		return "X"
	default:
		return ""
	}
}

// Player identifies one of the two sides.
type Player uint8

const (
	CrossPlayer Player = iota
	CirclePlayer
)

// Mark returns the field state written when p moves.
func (p Player) Mark() FieldState {
	if p == CirclePlayer {
		return Circle
	}
	return Cross
}

// Other returns the opponent of p.
func (p Player) Other() Player {
	if p == CrossPlayer {
		return CirclePlayer
	}
	return CrossPlayer
}

func (p Player) String() string {
	return p.Mark().String()
}

// Errors returned by domain operations.
var (
	ErrOutOfDomain     = errors.New("argument out of domain")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Engine holds the state of one N×N match: the board, whose turn it is and
// the winner once a full line exists. It is not safe for concurrent use.
type Engine struct {
	fields []FieldState
	size   int
	active Player
	winner *Player
}

// NewEngine returns an empty board of size×size cells with Cross to move.
func NewEngine(size int) (*Engine, error) {
	if size <= 1 {
		return nil, fmt.Errorf("%w: board size %d, want at least 2", ErrOutOfDomain, size)
	}
	return &Engine{
		fields: make([]FieldState, size*size),
		size:   size,
		active: CrossPlayer,
	}, nil
}

// Size returns the number of cells along one side.
func (e *Engine) Size() int { return e.size }

// ActivePlayer returns the player whose mark the next successful move places.
func (e *Engine) ActivePlayer() Player { return e.active }

// Winner returns the winning player, if any.
func (e *Engine) Winner() (Player, bool) {
	if e.winner == nil {
		return CrossPlayer, false
	}
	return *e.winner, true
}

// Finished reports whether a winner has been determined.
func (e *Engine) Finished() bool { return e.winner != nil }

// FieldStateAt returns the state of the cell at p.
func (e *Engine) FieldStateAt(p Position) FieldState {
	return e.fields[index(p.row, p.col, e.size)]
}

// Fields returns a row-major copy of the board.
func (e *Engine) Fields() []FieldState {
	out := make([]FieldState, len(e.fields))
	copy(out, e.fields)
	return out
}

// HandleFieldSelected places the active player's mark at p. Selections after
// the game has been won are ignored.
func (e *Engine) HandleFieldSelected(p Position) error {
	if e.Finished() {
		return nil
	}
	idx := index(p.row, p.col, e.size)
	if e.fields[idx] != Empty {
		return fmt.Errorf("%w: cell (%d,%d) is occupied by %s", ErrInvalidArgument, p.row, p.col, e.fields[idx])
	}

	e.fields[idx] = e.active.Mark()
	e.active = e.active.Other()
	if w, ok := e.maybeWinner(); ok {
		e.winner = &w
	}
	return nil
}

func index(row, col, size int) int {
	return col + row*size
}
