package field

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Pointer repulsion tuning, in logical pixels.
const (
	RepelRadius   = 200.0
	RepelStrength = 10.0
)

// Advance moves every particle one frame. pointer is in surface coordinates
// and must not be NaN; drift is added on top of each particle's velocity.
//
// A particle outside [0, bounds] after moving has the matching component of
// its step (velocity plus drift) reversed, so it may overshoot for a frame
// before heading back. With no drift this is plain velocity negation.
func Advance(ps []Particle, pointer r2.Vec, bounds Size, drift r2.Vec) {
	for i := range ps {
		p := &ps[i]
		p.Pos = r2.Add(p.Pos, r2.Add(p.Vel, drift))

		if p.Pos.X < 0 || p.Pos.X > bounds.W {
			p.Vel.X = bounce(p.Vel.X, drift.X)
		}
		if p.Pos.Y < 0 || p.Pos.Y > bounds.H {
			p.Vel.Y = bounce(p.Vel.Y, drift.Y)
		}

		p.Pos = r2.Add(p.Pos, RepelImpulse(p.Pos, pointer))
	}
}

// bounce returns the velocity component whose step, drift included, is the
// reverse of the step just taken.
func bounce(v, drift float64) float64 {
	return -v - 2*drift
}

// RepelImpulse returns the positional nudge a particle at pos receives from a
// pointer at pointer. It is zero at or beyond RepelRadius and when the two
// coincide.
func RepelImpulse(pos, pointer r2.Vec) r2.Vec {
	d := r2.Sub(pos, pointer)
	dist := r2.Norm(d)
	if dist >= RepelRadius || dist == 0 {
		return r2.Vec{}
	}
	force := (RepelRadius - dist) / RepelRadius
	return r2.Scale(force*RepelStrength/dist, d)
}
