package game

import (
	"fmt"

	"github.com/Garsondee/particle-field/internal/field"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// action is a keyboard command.
type action int

const (
	actNone action = iota
	actRefresh
	actMore
	actFewer
	actToggleHUD
	actCopy
	actQuit
)

// keyActions maps keys to commands; several keys can share one.
var keyActions = map[ebiten.Key]action{
	ebiten.KeyR:          actRefresh,
	ebiten.KeyEqual:      actMore,
	ebiten.KeyKPAdd:      actMore,
	ebiten.KeyMinus:      actFewer,
	ebiten.KeyKPSubtract: actFewer,
	ebiten.KeyH:          actToggleHUD,
	ebiten.KeyC:          actCopy,
	ebiten.KeyEscape:     actQuit,
}

// handleInput feeds the cursor to the field and runs key commands.
func (g *Game) handleInput() {
	cx, cy := ebiten.CursorPosition()
	// Cursor is reported in layout (device) pixels.
	s := g.host.scale
	g.field.PointerMove(float64(cx)/s, float64(cy)/s, 0, 0)

	for key, a := range keyActions {
		if inpututil.IsKeyJustPressed(key) {
			g.apply(a)
		}
	}
}

// apply runs one command against the mounted field.
func (g *Game) apply(a action) {
	if g.field == nil {
		return
	}
	switch a {
	case actRefresh:
		g.opts.Refresh = !g.opts.Refresh
		g.field.Configure(g.opts)
	case actMore:
		g.opts.Quantity = g.field.Options().Quantity + quantityStep
		g.field.Configure(g.opts)
	case actFewer:
		q := g.field.Options().Quantity - quantityStep
		if q < 0 {
			q = 0
		}
		g.opts.Quantity = q
		g.field.Configure(g.opts)
	case actToggleHUD:
		g.showHUD = !g.showHUD
	case actCopy:
		g.copySettings()
	case actQuit:
		g.Close()
	}
}

// copySettings puts the current option summary on the clipboard.
func (g *Game) copySettings() {
	line := g.field.Options().Summary()
	frame := g.field.Stats().Frame
	if err := g.copyText(line); err != nil {
		g.log.Add(frame, field.CatConfig, "clipboard", fmt.Sprintf("copy failed: %v", err), 0)
		return
	}
	g.log.Add(frame, field.CatConfig, "clipboard", "copied: "+line, 0)
}
