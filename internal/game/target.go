package game

import (
	"image/color"

	"github.com/Garsondee/particle-field/internal/field"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// windowHost reports the window's logical size and device scale, as last
// seen by Layout.
type windowHost struct {
	w, h  float64
	scale float64
}

func (h *windowHost) LogicalSize() (float64, float64) { return h.w, h.h }
func (h *windowHost) DeviceScale() float64             { return h.scale }

// imageTarget is an offscreen buffer at device resolution. Game.Draw blits
// it to the screen each frame.
type imageTarget struct {
	buf      *ebiten.Image
	scale    float32
	displayW float64
	displayH float64
}

func (t *imageTarget) SetPhysicalSize(w, h int) {
	if t.buf != nil {
		b := t.buf.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return
		}
		t.buf.Deallocate()
		t.buf = nil
	}
	if w > 0 && h > 0 {
		t.buf = ebiten.NewImage(w, h)
	}
}

func (t *imageTarget) SetDisplaySize(w, h float64) {
	t.displayW, t.displayH = w, h
}

func (t *imageTarget) Context() (field.Canvas, bool) {
	if t.buf == nil {
		return nil, false
	}
	return (*imageCanvas)(t), true
}

// release frees the buffer; the target has no context afterwards.
func (t *imageTarget) release() {
	if t.buf != nil {
		t.buf.Deallocate()
		t.buf = nil
	}
}

type imageCanvas imageTarget

func (c *imageCanvas) Clear() {
	c.buf.Clear()
}

func (c *imageCanvas) SetScale(s float64) {
	c.scale = float32(s)
}

func (c *imageCanvas) FillCircle(cx, cy, r float64, col color.NRGBA, alpha float64) {
	s := c.scale
	vector.FillCircle(c.buf, float32(cx)*s, float32(cy)*s, float32(r)*s, field.WithAlpha(col, alpha), true)
}

func (c *imageCanvas) FillPolygon(cx, cy, r float64, sides int, col color.NRGBA, alpha float64) {
	pts := field.PolygonVertices(cx, cy, r, sides)
	if pts == nil {
		return
	}
	s := c.scale
	var path vector.Path
	path.MoveTo(float32(pts[0].X)*s, float32(pts[0].Y)*s)
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X)*s, float32(p.Y)*s)
	}
	path.Close()

	opts := &vector.DrawPathOptions{AntiAlias: true}
	opts.ColorScale.ScaleWithColor(field.WithAlpha(col, alpha))
	vector.FillPath(c.buf, &path, &vector.FillOptions{}, opts)
}

func (c *imageCanvas) StrokeLine(x0, y0, x1, y1, width float64, col color.NRGBA, alpha float64) {
	s := c.scale
	vector.StrokeLine(c.buf, float32(x0)*s, float32(y0)*s, float32(x1)*s, float32(y1)*s,
		float32(width)*s, field.WithAlpha(col, alpha), true)
}
