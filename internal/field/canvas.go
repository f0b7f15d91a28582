package field

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Host is the container the field is mounted into. It reports the logical
// (CSS-pixel) size the surface should fill and the current device-pixel-ratio.
type Host interface {
	LogicalSize() (w, h float64)
	DeviceScale() float64
}

// Target is the drawing surface owned by a mounted field.
type Target interface {
	// SetPhysicalSize sets the backing store size in device pixels.
	SetPhysicalSize(w, h int)
	// SetDisplaySize sets the size the surface is shown at, in logical pixels.
	SetDisplaySize(w, h float64)
	// Context returns the drawing context, or false when the surface has no
	// usable context (unsupported or torn down).
	Context() (Canvas, bool)
}

// Canvas is a 2D drawing context. Coordinates are logical pixels; the
// implementation multiplies them by the scale set with SetScale.
// alpha is the global alpha applied on top of the colour's own alpha.
type Canvas interface {
	Clear()
	SetScale(s float64)
	FillCircle(cx, cy, r float64, c color.NRGBA, alpha float64)
	FillPolygon(cx, cy, r float64, sides int, c color.NRGBA, alpha float64)
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA, alpha float64)
}

// PolygonVertices returns the vertices of a regular polygon centred on
// (cx, cy) with circumradius r, starting at angle 0. Fewer than three sides
// enclose no area, so nothing is returned for them.
func PolygonVertices(cx, cy, r float64, sides int) []r2.Vec {
	if sides < 3 {
		return nil
	}
	out := make([]r2.Vec, sides)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(sides)
		out[i] = r2.Vec{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return out
}

// WithAlpha folds a global alpha into c's alpha channel.
func WithAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	c.A = uint8(math.Round(float64(c.A) * alpha))
	return c
}
