package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, size int) *Engine {
	t.Helper()
	e, err := NewEngine(size)
	require.NoError(t, err, "NewEngine(%d)", size)
	return e
}

func pos(t *testing.T, e *Engine, r, c int) Position {
	t.Helper()
	p, err := NewPosition(r, c, e)
	require.NoError(t, err, "NewPosition(%d,%d)", r, c)
	return p
}

// helper to apply a sequence of moves
func playMoves(t *testing.T, e *Engine, moves [][2]int) {
	t.Helper()
	for i, m := range moves {
		require.NoError(t, e.HandleFieldSelected(pos(t, e, m[0], m[1])), "move %d (%v)", i, m)
	}
}

func TestNewEngineBounds(t *testing.T) {
	for _, size := range []int{-5, -1, 0, 1} {
		e, err := NewEngine(size)
		assert.ErrorIs(t, err, ErrOutOfDomain, "size %d", size)
		assert.Nil(t, e, "size %d", size)
	}
	for _, size := range []int{2, 3, 4, 7} {
		_, err := NewEngine(size)
		assert.NoError(t, err, "size %d", size)
	}
}

func TestNewEngineInitialState(t *testing.T) {
	e := newEngine(t, 4)
	assert.Equal(t, 4, e.Size())
	assert.Equal(t, CrossPlayer, e.ActivePlayer())
	_, ok := e.Winner()
	assert.False(t, ok)
	assert.False(t, e.Finished())

	fields := e.Fields()
	require.Len(t, fields, 16)
	for i, f := range fields {
		assert.Equal(t, Empty, f, "cell %d", i)
	}
}

func TestTurnAlternatesOnlyOnSuccess(t *testing.T) {
	e := newEngine(t, 3)
	require.NoError(t, e.HandleFieldSelected(pos(t, e, 1, 1)))
	assert.Equal(t, CirclePlayer, e.ActivePlayer())
	assert.Equal(t, Cross, e.FieldStateAt(pos(t, e, 1, 1)))

	// rejected move does not flip the turn
	assert.Error(t, e.HandleFieldSelected(pos(t, e, 1, 1)))
	assert.Equal(t, CirclePlayer, e.ActivePlayer())

	require.NoError(t, e.HandleFieldSelected(pos(t, e, 0, 0)))
	assert.Equal(t, Circle, e.FieldStateAt(pos(t, e, 0, 0)))
	assert.Equal(t, CrossPlayer, e.ActivePlayer())
}

func TestOccupiedCellLeavesBoardUnchanged(t *testing.T) {
	e := newEngine(t, 3)
	playMoves(t, e, [][2]int{{0, 0}, {2, 2}})
	before := e.Fields()
	for _, m := range [][2]int{{0, 0}, {2, 2}} {
		assert.ErrorIs(t, e.HandleFieldSelected(pos(t, e, m[0], m[1])), ErrInvalidArgument, "move %v", m)
	}
	assert.Equal(t, before, e.Fields())
}

func TestFieldStateAtIsIdempotent(t *testing.T) {
	e := newEngine(t, 3)
	playMoves(t, e, [][2]int{{2, 1}})
	p := pos(t, e, 2, 1)
	assert.Equal(t, Cross, e.FieldStateAt(p))
	assert.Equal(t, Cross, e.FieldStateAt(p))
}

func TestFieldsReturnsCopy(t *testing.T) {
	e := newEngine(t, 2)
	f := e.Fields()
	f[0] = Circle
	assert.Equal(t, Empty, e.FieldStateAt(pos(t, e, 0, 0)))
}

// lines returns every winning line of an n×n board in scan order.
func lines(n int) [][][2]int {
	var out [][][2]int
	for r := 0; r < n; r++ {
		var ln [][2]int
		for c := 0; c < n; c++ {
			ln = append(ln, [2]int{r, c})
		}
		out = append(out, ln)
	}
	for c := 0; c < n; c++ {
		var ln [][2]int
		for r := 0; r < n; r++ {
			ln = append(ln, [2]int{r, c})
		}
		out = append(out, ln)
	}
	var diag, anti [][2]int
	for i := 0; i < n; i++ {
		diag = append(diag, [2]int{i, i})
		anti = append(anti, [2]int{i, n - 1 - i})
	}
	return append(out, diag, anti)
}

func onLine(line [][2]int, m [2]int) bool {
	for _, l := range line {
		if l == m {
			return true
		}
	}
	return false
}

func TestCrossWinsEveryLine(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5} {
		for _, line := range lines(n) {
			var fillers [][2]int
			for r := 0; r < n && len(fillers) < n-1; r++ {
				for c := 0; c < n && len(fillers) < n-1; c++ {
					if !onLine(line, [2]int{r, c}) {
						fillers = append(fillers, [2]int{r, c})
					}
				}
			}
			e := newEngine(t, n)
			for i, m := range line {
				playMoves(t, e, [][2]int{m})
				if i < len(fillers) {
					_, ok := e.Winner()
					require.False(t, ok, "n=%d line %v: winner after %d marks", n, line, i+1)
					playMoves(t, e, [][2]int{fillers[i]})
				}
			}
			w, ok := e.Winner()
			require.True(t, ok, "n=%d line %v", n, line)
			assert.Equal(t, CrossPlayer, w, "n=%d line %v", n, line)
		}
	}
}

func TestRowWin(t *testing.T) {
	e := newEngine(t, 3)
	playMoves(t, e, [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}})
	_, ok := e.Winner()
	require.False(t, ok, "winner declared too early")

	playMoves(t, e, [][2]int{{0, 2}})
	w, ok := e.Winner()
	require.True(t, ok)
	assert.Equal(t, CrossPlayer, w)

	p, ok := e.MaybeWinnerForRow(0)
	assert.True(t, ok)
	assert.Equal(t, CrossPlayer, p)
	_, ok = e.MaybeWinnerForRow(1)
	assert.False(t, ok)
}

func TestDiagonalWinForCircle(t *testing.T) {
	e := newEngine(t, 3)
	playMoves(t, e, [][2]int{{0, 1}, {0, 0}, {0, 2}, {1, 1}, {1, 0}, {2, 2}})
	w, ok := e.Winner()
	require.True(t, ok)
	assert.Equal(t, CirclePlayer, w)
}

func TestAntiDiagonalWin(t *testing.T) {
	e := newEngine(t, 3)
	playMoves(t, e, [][2]int{{0, 2}, {0, 0}, {1, 1}, {0, 1}, {2, 0}})
	w, ok := e.Winner()
	require.True(t, ok)
	assert.Equal(t, CrossPlayer, w)
}

func TestColumnWinForCircleOnLargerBoard(t *testing.T) {
	e := newEngine(t, 4)
	playMoves(t, e, [][2]int{
		{0, 0}, {0, 3},
		{1, 0}, {1, 3},
		{2, 1}, {2, 3},
		{3, 0}, {3, 3},
	})
	w, ok := e.Winner()
	require.True(t, ok)
	assert.Equal(t, CirclePlayer, w)

	p, ok := e.MaybeWinnerForColumn(3)
	assert.True(t, ok)
	assert.Equal(t, CirclePlayer, p)
	_, ok = e.MaybeWinnerForColumn(0)
	assert.False(t, ok)
}

func TestFullBoardWithoutLineHasNoWinner(t *testing.T) {
	e := newEngine(t, 3)
	playMoves(t, e, [][2]int{
		{0, 0}, {0, 1}, {0, 2},
		{1, 1}, {1, 0}, {1, 2},
		{2, 1}, {2, 0}, {2, 2},
	})
	_, ok := e.Winner()
	assert.False(t, ok)
	// no draw state: every further selection is an occupied cell
	assert.ErrorIs(t, e.HandleFieldSelected(pos(t, e, 1, 1)), ErrInvalidArgument)
}

func TestWinnerFreezesBoard(t *testing.T) {
	e := newEngine(t, 3)
	playMoves(t, e, [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}})
	before := e.Fields()
	turn := e.ActivePlayer()

	// empty and occupied cells are both silent no-ops now
	for _, m := range [][2]int{{2, 2}, {1, 2}, {0, 0}} {
		assert.NoError(t, e.HandleFieldSelected(pos(t, e, m[0], m[1])), "move %v", m)
	}
	assert.Equal(t, before, e.Fields())
	w, _ := e.Winner()
	assert.Equal(t, CrossPlayer, w)
	assert.Equal(t, turn, e.ActivePlayer())
}

func TestSingleLineQueriesArePermissive(t *testing.T) {
	e := newEngine(t, 3)
	for _, i := range []int{-1, 3, 100} {
		_, ok := e.MaybeWinnerForRow(i)
		assert.False(t, ok, "row %d", i)
		_, ok = e.MaybeWinnerForColumn(i)
		assert.False(t, ok, "col %d", i)
	}
}

func TestPlayerHelpers(t *testing.T) {
	assert.Equal(t, Cross, CrossPlayer.Mark())
	assert.Equal(t, Circle, CirclePlayer.Mark())
	assert.Equal(t, CirclePlayer, CrossPlayer.Other())
	assert.Equal(t, CrossPlayer, CirclePlayer.Other())
	assert.Equal(t, "X", CrossPlayer.String())
	assert.Equal(t, "O", CirclePlayer.String())
	assert.Equal(t, "", Empty.String())
}
