package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	hudLineHeight = 14  // basicfont Face7x13 plus a pixel of leading
	hudCharWidth  = 7   // Face7x13 advance
	hudPad        = 6   // inner padding of the panel
	hudEventLines = 4   // recent events shown under the stats
	hudMaxChars   = 110 // longer lines are cut
)

var (
	hudPanelBg   = color.RGBA{R: 8, G: 10, B: 24, A: 200}
	hudPanelEdge = color.RGBA{R: 60, G: 80, B: 140, A: 220}
	hudText      = color.RGBA{R: 200, G: 215, B: 255, A: 255}
)

// hud renders a text panel at 1x into its own buffer, then blits it scaled
// to the device so the bitmap font stays crisp.
type hud struct {
	buf *ebiten.Image
}

func newHUD() *hud {
	return &hud{}
}

func (h *hud) draw(screen *ebiten.Image, scale float64, lines []string) {
	if len(lines) == 0 {
		return
	}
	widest := 0
	for _, l := range lines {
		if len(l) > widest {
			widest = len(l)
		}
	}
	w := widest*hudCharWidth + 2*hudPad
	hgt := len(lines)*hudLineHeight + 2*hudPad
	if h.buf == nil || h.buf.Bounds().Dx() != w || h.buf.Bounds().Dy() != hgt {
		if h.buf != nil {
			h.buf.Deallocate()
		}
		h.buf = ebiten.NewImage(w, hgt)
	}
	h.buf.Clear()
	vector.FillRect(h.buf, 0, 0, float32(w), float32(hgt), hudPanelBg, false)
	vector.StrokeRect(h.buf, 0, 0, float32(w), float32(hgt), 1.0, hudPanelEdge, false)
	for i, l := range lines {
		// text.Draw positions the baseline.
		text.Draw(h.buf, l, basicfont.Face7x13, hudPad, hudPad+11+i*hudLineHeight, hudText)
	}

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(8*scale, 8*scale)
	screen.DrawImage(h.buf, &op)
}

// hudLines builds the panel text from the field state.
func (g *Game) hudLines() []string {
	st := g.field.Stats()
	sf := g.field.Surface()
	lines := []string{
		fmt.Sprintf("particles %d  links %d  frame %d  skipped %d", st.Particles, st.Links, st.Frame, st.Skipped),
		fmt.Sprintf("surface %s  physical %dx%d", sf, sf.PhysicalW, sf.PhysicalH),
		"R refresh  +/- quantity  H hud  C copy  Esc quit",
	}
	for _, e := range g.log.Tail(hudEventLines) {
		lines = append(lines, e.String())
	}
	for i, l := range lines {
		if len(l) > hudMaxChars {
			lines[i] = l[:hudMaxChars]
		}
	}
	return lines
}
