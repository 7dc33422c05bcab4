// Package theme maps engine state to colours and symbols. Nothing here holds
// state: every frame or page render asks StyleFor again.
package theme

import (
	"fmt"
	"image/color"

	"github.com/jaminalder/nxn-tic-tac-toe/internal/domain"
)

// Solarized palette.
var (
	Base03  = color.RGBA{0, 43, 54, 255}
	Base02  = color.RGBA{7, 54, 66, 255}
	Base01  = color.RGBA{88, 110, 117, 255}
	Base00  = color.RGBA{101, 123, 131, 255}
	Base0   = color.RGBA{131, 148, 150, 255}
	Base1   = color.RGBA{147, 161, 161, 255}
	Base2   = color.RGBA{238, 232, 213, 255}
	Base3   = color.RGBA{253, 246, 227, 255}
	Yellow  = color.RGBA{181, 137, 0, 255}
	Orange  = color.RGBA{203, 75, 22, 255}
	Red     = color.RGBA{220, 50, 47, 255}
	Magenta = color.RGBA{211, 54, 130, 255}
	Violet  = color.RGBA{108, 113, 196, 255}
	Blue    = color.RGBA{38, 139, 210, 255}
	Cyan    = color.RGBA{42, 161, 152, 255}
	Green   = color.RGBA{133, 153, 0, 255}
)

// Background is the colour behind the grid.
var Background = Base03

// VisualStyle is how a single cell is drawn.
type VisualStyle struct {
	Fill   color.RGBA
	Accent color.RGBA
	Symbol string
}

// StyleFor returns the style of a cell in state s.
func StyleFor(s domain.FieldState) VisualStyle {
	switch s {
	case domain.Circle:
		return VisualStyle{Fill: Green, Accent: Base3, Symbol: s.String()}
	case domain.Cross:
		return VisualStyle{Fill: Magenta, Accent: Base3, Symbol: s.String()}
	default:
		return VisualStyle{Fill: Base02, Accent: Base1}
	}
}

// WinnerBanner is the end-of-game text, empty while the game is open.
func WinnerBanner(p domain.Player, ok bool) string {
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s wins", p)
}

// TurnLabel describes whose move it is.
func TurnLabel(p domain.Player) string {
	return fmt.Sprintf("%s to move", p)
}

// Hex formats c as a CSS colour.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
