// Package raster is a software drawing surface for the particle field. It
// fills an image.RGBA through the golang.org/x/image/vector rasteriser, so a
// field can run and be snapshotted without a window.
package raster

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/Garsondee/particle-field/internal/field"
	"golang.org/x/image/vector"
	"gonum.org/v1/gonum/spatial/r2"
)

// circleSegments is how many edges approximate a circle.
const circleSegments = 32

// ErrNoImage is returned when the target has no backing image yet.
var ErrNoImage = errors.New("raster target has no image")

// Target is a field.Target backed by an in-memory image.
type Target struct {
	img      *image.RGBA
	ras      *vector.Rasterizer
	bg       *image.Uniform
	scale    float64
	displayW float64
	displayH float64
}

// New returns an empty target that clears to bg.
func New(bg color.Color) *Target {
	return &Target{bg: image.NewUniform(bg), scale: 1}
}

func (t *Target) SetPhysicalSize(w, h int) {
	if w <= 0 || h <= 0 {
		t.img, t.ras = nil, nil
		return
	}
	if t.img != nil && t.img.Bounds().Dx() == w && t.img.Bounds().Dy() == h {
		return
	}
	t.img = image.NewRGBA(image.Rect(0, 0, w, h))
	t.ras = vector.NewRasterizer(w, h)
}

func (t *Target) SetDisplaySize(w, h float64) {
	t.displayW, t.displayH = w, h
}

// DisplaySize returns the logical size the image stands for.
func (t *Target) DisplaySize() (float64, float64) {
	return t.displayW, t.displayH
}

func (t *Target) Context() (field.Canvas, bool) {
	if t.img == nil {
		return nil, false
	}
	return (*canvas)(t), true
}

// Image returns the backing image, or nil before the first resize.
func (t *Target) Image() *image.RGBA {
	return t.img
}

// WritePNG encodes the current image.
func (t *Target) WritePNG(w io.Writer) error {
	if t.img == nil {
		return ErrNoImage
	}
	return png.Encode(w, t.img)
}

type canvas Target

func (c *canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), c.bg, image.Point{}, draw.Src)
}

func (c *canvas) SetScale(s float64) {
	c.scale = s
}

func (c *canvas) FillCircle(cx, cy, r float64, col color.NRGBA, alpha float64) {
	c.fill(field.PolygonVertices(cx, cy, r, circleSegments), col, alpha)
}

func (c *canvas) FillPolygon(cx, cy, r float64, sides int, col color.NRGBA, alpha float64) {
	c.fill(field.PolygonVertices(cx, cy, r, sides), col, alpha)
}

func (c *canvas) StrokeLine(x0, y0, x1, y1, width float64, col color.NRGBA, alpha float64) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return
	}
	// Offset both ends by half the width along the normal.
	nx, ny := -dy/length*width/2, dx/length*width/2
	c.fill([]r2.Vec{
		{X: x0 + nx, Y: y0 + ny},
		{X: x1 + nx, Y: y1 + ny},
		{X: x1 - nx, Y: y1 - ny},
		{X: x0 - nx, Y: y0 - ny},
	}, col, alpha)
}

// fill rasterises a closed path given in logical pixels.
func (c *canvas) fill(pts []r2.Vec, col color.NRGBA, alpha float64) {
	if len(pts) < 3 {
		return
	}
	b := c.img.Bounds()
	c.ras.Reset(b.Dx(), b.Dy())
	s := c.scale
	c.ras.MoveTo(float32(pts[0].X*s), float32(pts[0].Y*s))
	for _, p := range pts[1:] {
		c.ras.LineTo(float32(p.X*s), float32(p.Y*s))
	}
	c.ras.ClosePath()
	c.ras.Draw(c.img, b, image.NewUniform(field.WithAlpha(col, alpha)), image.Point{})
}
