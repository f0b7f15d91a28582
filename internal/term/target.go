// Package term hosts a particle field in a terminal. Each cell stands for a
// block of logical pixels; particles and links are drawn as glyphs.
package term

import (
	"image/color"
	"math"

	"github.com/Garsondee/particle-field/internal/field"
	"github.com/gdamore/tcell/v2"
)

// Logical pixels per terminal cell. Cells are roughly twice as tall as wide.
const (
	CellW = 8.0
	CellH = 16.0
)

const (
	glyphLink    = '·'
	glyphCircle  = '•'
	glyphPolygon = '◆'
)

// screenHost reports the terminal size in logical pixels.
type screenHost struct {
	screen tcell.Screen
}

func (h screenHost) LogicalSize() (float64, float64) {
	cols, rows := h.screen.Size()
	return float64(cols) * CellW, float64(rows) * CellH
}

// DeviceScale is always 1: cells have no sub-pixel density to exploit.
func (h screenHost) DeviceScale() float64 { return 1 }

// cellTarget draws onto a tcell screen.
type cellTarget struct {
	screen tcell.Screen
	cols   int
	rows   int
	scale  float64
	bg     tcell.Color
}

func newCellTarget(screen tcell.Screen) *cellTarget {
	return &cellTarget{screen: screen, scale: 1, bg: tcell.ColorBlack}
}

// SetPhysicalSize records the grid size; the screen itself is sized by the
// terminal.
func (t *cellTarget) SetPhysicalSize(w, h int) {
	t.cols = int(float64(w) / CellW)
	t.rows = int(float64(h) / CellH)
}

func (t *cellTarget) SetDisplaySize(float64, float64) {}

func (t *cellTarget) Context() (field.Canvas, bool) {
	if t.screen == nil || t.cols <= 0 || t.rows <= 0 {
		return nil, false
	}
	return (*cellCanvas)(t), true
}

// detach drops the screen; later frames are skipped.
func (t *cellTarget) detach() {
	t.screen = nil
}

type cellCanvas cellTarget

func (c *cellCanvas) Clear() {
	c.screen.Clear()
}

func (c *cellCanvas) SetScale(s float64) {
	c.scale = s
}

// cell converts logical coordinates to a cell, reporting false off-grid.
func (c *cellCanvas) cell(x, y float64) (int, int, bool) {
	cx := int(math.Floor(x * c.scale / CellW))
	cy := int(math.Floor(y * c.scale / CellH))
	if cx < 0 || cy < 0 || cx >= c.cols || cy >= c.rows {
		return 0, 0, false
	}
	return cx, cy, true
}

func (c *cellCanvas) put(cx, cy int, r rune, col color.NRGBA, alpha float64) {
	style := tcell.StyleDefault.Background(c.bg).Foreground(blend(col, alpha))
	c.screen.SetContent(cx, cy, r, nil, style)
}

func (c *cellCanvas) FillCircle(x, y, _ float64, col color.NRGBA, alpha float64) {
	if cx, cy, ok := c.cell(x, y); ok {
		c.put(cx, cy, glyphCircle, col, alpha)
	}
}

// FillPolygon draws nothing for fewer than three sides, like any path that
// encloses no area.
func (c *cellCanvas) FillPolygon(x, y, _ float64, sides int, col color.NRGBA, alpha float64) {
	if sides < 3 {
		return
	}
	if cx, cy, ok := c.cell(x, y); ok {
		c.put(cx, cy, glyphPolygon, col, alpha)
	}
}

// StrokeLine walks the cells between the endpoints (Bresenham).
func (c *cellCanvas) StrokeLine(x0, y0, x1, y1, _ float64, col color.NRGBA, alpha float64) {
	ax := int(math.Floor(x0 * c.scale / CellW))
	ay := int(math.Floor(y0 * c.scale / CellH))
	bx := int(math.Floor(x1 * c.scale / CellW))
	by := int(math.Floor(y1 * c.scale / CellH))

	dx := abs(bx - ax)
	dy := -abs(by - ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}
	err := dx + dy
	for {
		if ax >= 0 && ay >= 0 && ax < c.cols && ay < c.rows {
			c.put(ax, ay, glyphLink, col, alpha)
		}
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ax += sx
		}
		if e2 <= dx {
			err += dx
			ay += sy
		}
	}
}

// blend mixes col over black by alpha.
func blend(col color.NRGBA, alpha float64) tcell.Color {
	a := alpha * float64(col.A) / 255
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return tcell.NewRGBColor(
		int32(math.Round(float64(col.R)*a)),
		int32(math.Round(float64(col.G)*a)),
		int32(math.Round(float64(col.B)*a)),
	)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
