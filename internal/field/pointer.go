package field

import (
	"math"
	"sync/atomic"

	"gonum.org/v1/gonum/spatial/r2"
)

// Pointer is the shared pointer cell: the last known pointer position
// relative to the surface centre. Input handling writes it, the frame driver
// reads it once per tick. X and Y are independent, so a reader may see one
// field from an older write; that only shifts a cosmetic force for a frame.
type Pointer struct {
	x atomic.Uint64
	y atomic.Uint64
}

// Store sets the centre-relative position. Non-finite values are dropped.
func (p *Pointer) Store(x, y float64) bool {
	if !finite(x) || !finite(y) {
		return false
	}
	p.x.Store(math.Float64bits(x))
	p.y.Store(math.Float64bits(y))
	return true
}

// Load returns the centre-relative position.
func (p *Pointer) Load() r2.Vec {
	return r2.Vec{
		X: math.Float64frombits(p.x.Load()),
		Y: math.Float64frombits(p.y.Load()),
	}
}

// Project converts the centre-relative position to surface coordinates.
func (p *Pointer) Project(bounds Size) r2.Vec {
	v := p.Load()
	return r2.Vec{X: v.X + bounds.W/2, Y: v.Y + bounds.H/2}
}

// Track records a pointer event given in client coordinates, with the
// surface's top-left corner at (left, top). The position is kept only when it
// falls strictly inside the surface; otherwise the previous value stays.
func (p *Pointer) Track(clientX, clientY, left, top float64, bounds Size) bool {
	x := clientX - left - bounds.W/2
	y := clientY - top - bounds.H/2
	inside := x < bounds.W/2 && x > -bounds.W/2 && y < bounds.H/2 && y > -bounds.H/2
	if !inside {
		return false
	}
	return p.Store(x, y)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
