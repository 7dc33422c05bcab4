// Package desktop runs the board in an ebiten window.
package desktop

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"github.com/jaminalder/nxn-tic-tac-toe/internal/layout"
	"github.com/jaminalder/nxn-tic-tac-toe/internal/scene"
	"github.com/jaminalder/nxn-tic-tac-toe/internal/theme"
)

// Game implements ebiten.Game around a scene.
type Game struct {
	scene   *scene.Scene
	log     *zap.Logger
	face    text.Face
	width   int
	height  int
	overlay bool
}

// NewGame wraps s for display; width and height are the initial window size.
func NewGame(s *scene.Scene, log *zap.Logger, width, height int) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{
		scene:  s,
		log:    log,
		face:   text.NewGoXFace(basicfont.Face7x13),
		width:  width,
		height: height,
	}
}

// Update handles input once per tick.
func (g *Game) Update() error {
	// F1 toggles the diagnostics overlay
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.overlay = !g.overlay
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		// rejections are already logged by the scene
		_ = g.scene.Click(float64(x), float64(y), g.width, g.height)
	}
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		_ = g.scene.Click(float64(x), float64(y), g.width, g.height)
	}
	return nil
}

// Draw paints the board from current engine state.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	board := g.scene.Board(g.width, g.height)
	fillRect(screen, board, theme.Background)

	for _, c := range g.scene.Cells(g.width, g.height) {
		fillRect(screen, c.Rect, c.Style.Fill)
		if c.Style.Symbol != "" {
			g.drawCentred(screen, c.Style.Symbol, c.Rect, c.Rect.H*0.6, c.Style.Accent)
		}
	}

	status := layout.Rect{X: board.X, Y: board.Y, W: board.W, H: board.H * 0.1}
	g.drawCentred(screen, g.scene.Status(), status, status.H*0.5, theme.Yellow)

	if g.overlay {
		ebitenutil.DebugPrint(screen, g.scene.Debug(g.width, g.height))
	}
}

// Layout tracks the window size so the board follows resizes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.log.Debug("window resized", zap.Int("width", outsideWidth), zap.Int("height", outsideHeight))
	}
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func fillRect(dst *ebiten.Image, r layout.Rect, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

// drawCentred draws s scaled to the given pixel height, centred in r.
func (g *Game) drawCentred(dst *ebiten.Image, s string, r layout.Rect, height float64, clr color.Color) {
	w, h := text.Measure(s, g.face, 0)
	if h == 0 {
		return
	}
	scale := height / h
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(r.X+(r.W-w*scale)/2, r.Y+(r.H-h*scale)/2)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, g.face, op)
}
