// Package scene is the window-independent half of the desktop client: it
// turns pointer positions into engine moves and engine state into a list of
// rectangles to paint.
package scene

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jaminalder/nxn-tic-tac-toe/internal/domain"
	"github.com/jaminalder/nxn-tic-tac-toe/internal/layout"
	"github.com/jaminalder/nxn-tic-tac-toe/internal/theme"
)

// ErrNoCell is returned for clicks that land outside every cell.
var ErrNoCell = errors.New("no cell at pointer")

// Cell is one board cell in window pixels.
type Cell struct {
	Row, Col int
	Rect     layout.Rect
	Style    theme.VisualStyle
}

// Scene drives one engine from pointer input.
type Scene struct {
	engine *domain.Engine
	grid   layout.Grid
	log    *zap.Logger
}

// New returns a scene for engine; log may be nil.
func New(engine *domain.Engine, log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scene{engine: engine, grid: layout.Grid{Cells: engine.Size()}, log: log}
}

// Engine returns the engine being displayed.
func (s *Scene) Engine() *domain.Engine { return s.engine }

// Click selects the cell under the pixel (px, py) of a width×height window.
// Rejected moves are logged and returned; the engine is left as it was.
func (s *Scene) Click(px, py float64, width, height int) error {
	tr := layout.Fit(s.grid, width, height)
	wx, wy := tr.ToWorld(px, py)
	row, col, ok := s.grid.CellAt(wx, wy)
	if !ok {
		s.log.Debug("click outside board", zap.Float64("x", px), zap.Float64("y", py))
		return ErrNoCell
	}
	pos, err := domain.NewPosition(row, col, s.engine)
	if err != nil {
		s.log.Warn("click rejected", zap.Int("row", row), zap.Int("col", col), zap.Error(err))
		return err
	}
	if err := s.engine.HandleFieldSelected(pos); err != nil {
		s.log.Warn("click rejected", zap.Stringer("pos", pos), zap.Error(err))
		return err
	}
	s.log.Info("field selected", zap.Stringer("pos", pos))
	if w, ok := s.engine.Winner(); ok {
		s.log.Info("game won", zap.Stringer("winner", w))
	}
	return nil
}

// Board returns the board background in window pixels.
func (s *Scene) Board(width, height int) layout.Rect {
	tr := layout.Fit(s.grid, width, height)
	size := s.grid.WorldSize()
	return tr.RectToScreen(layout.Rect{W: size, H: size})
}

// Cells returns every cell in row-major order, styled from current state.
func (s *Scene) Cells(width, height int) []Cell {
	tr := layout.Fit(s.grid, width, height)
	fields := s.engine.Fields()
	out := make([]Cell, 0, len(fields))
	for i, f := range fields {
		pos, err := domain.PositionFromIndex(i, s.engine)
		if err != nil {
			continue
		}
		out = append(out, Cell{
			Row:   pos.Row(),
			Col:   pos.Col(),
			Rect:  tr.RectToScreen(s.grid.CellRect(pos.Row(), pos.Col())),
			Style: theme.StyleFor(f),
		})
	}
	return out
}

// Status is the winner banner once the game is won, else whose turn it is.
func (s *Scene) Status() string {
	if banner := theme.WinnerBanner(s.engine.Winner()); banner != "" {
		return banner
	}
	return theme.TurnLabel(s.engine.ActivePlayer())
}

// Debug is the text of the diagnostics overlay.
func (s *Scene) Debug(width, height int) string {
	vp := layout.AspectViewport(width, height)
	return fmt.Sprintf("window size: %dx%d\nviewport: %.3f %.3f %.3f %.3f\nboard: %dx%d",
		width, height, vp.X, vp.Y, vp.W, vp.H, s.engine.Size(), s.engine.Size())
}
