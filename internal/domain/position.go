package domain

import "fmt"

// Position is a (row, col) coordinate that was within bounds of the engine it
// was validated against. It keeps no reference to that engine, so reusing it
// with a smaller board is the caller's mistake.
type Position struct {
	row int
	col int
}

// NewPosition validates row and col against e.
func NewPosition(row, col int, e *Engine) (Position, error) {
	size := e.Size()
	if row < 0 || row >= size {
		return Position{}, fmt.Errorf("%w: row %d not in [0,%d)", ErrOutOfDomain, row, size)
	}
	if col < 0 || col >= size {
		return Position{}, fmt.Errorf("%w: col %d not in [0,%d)", ErrOutOfDomain, col, size)
	}
	return Position{row: row, col: col}, nil
}

// NewPositionFromPair is NewPosition for a {row, col} pair.
func NewPositionFromPair(rc [2]int, e *Engine) (Position, error) {
	return NewPosition(rc[0], rc[1], e)
}

// PositionFromIndex maps a row-major cell index, as used by Engine.Fields,
// back to a Position.
func PositionFromIndex(idx int, e *Engine) (Position, error) {
	size := e.Size()
	if idx < 0 || idx >= size*size {
		return Position{}, fmt.Errorf("%w: index %d not in [0,%d)", ErrOutOfDomain, idx, size*size)
	}
	return NewPosition(idx/size, idx%size, e)
}

// Row returns the zero-based row.
func (p Position) Row() int { return p.row }

// Col returns the zero-based column.
func (p Position) Col() int { return p.col }

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.row, p.col)
}
