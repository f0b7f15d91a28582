package field

import (
	"image/color"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// Shape is the render shape of a particle.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapePolygon
)

func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapePolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Particle is one simulated point. Colour, opacity, shape and sides are fixed
// at creation; position and velocity are mutated every frame.
type Particle struct {
	Pos     r2.Vec
	Vel     r2.Vec
	Size    float64
	Color   color.NRGBA
	Opacity float64
	Shape   Shape
	Sides   int

	LinkDistance float64
	LinkWidth    float64
	LinkOpacity  float64
}

// Size is a logical width/height pair.
type Size struct {
	W, H float64
}

// Store holds the current particle set.
type Store struct {
	particles []Particle
	rng       *rand.Rand
	policy    SizePolicy
	sides     int
	link      LinkStyle
}

// LinkStyle carries the per-particle link attributes assigned at creation.
type LinkStyle struct {
	Distance float64
	Width    float64
	Opacity  float64
}

// NewStore creates an empty store drawing randomness from rng.
func NewStore(rng *rand.Rand, policy SizePolicy, sides int, link LinkStyle) *Store {
	return &Store{rng: rng, policy: policy, sides: sides, link: link}
}

// Create replaces the particle set with quantity new particles placed inside
// bounds. No particle from the previous set survives.
func (s *Store) Create(quantity int, size float64, c color.NRGBA, bounds Size) {
	if quantity < 0 {
		quantity = 0
	}
	ps := make([]Particle, quantity)
	for i := range ps {
		ps[i] = s.newParticle(size, c, bounds)
	}
	s.particles = ps
}

func (s *Store) newParticle(size float64, c color.NRGBA, bounds Size) Particle {
	rng := s.rng
	p := Particle{
		Pos: r2.Vec{X: rng.Float64() * bounds.W, Y: rng.Float64() * bounds.H},
		Vel: r2.Vec{
			X: (rng.Float64() - 0.5) * 2,
			Y: (rng.Float64() - 0.5) * 2,
		},
		Size:         size,
		Color:        c,
		Opacity:      rng.Float64()*0.5 + 0.1,
		Shape:        ShapePolygon,
		Sides:        s.sides,
		LinkDistance: s.link.Distance,
		LinkWidth:    s.link.Width,
		LinkOpacity:  s.link.Opacity,
	}
	if s.policy == SizeJitter {
		p.Size = size*rng.Float64() + 1
	}
	if rng.Float64() > 0.5 {
		p.Shape = ShapeCircle
	}
	return p
}

// Particles returns the live particle slice. Callers in the frame loop mutate
// it in place.
func (s *Store) Particles() []Particle {
	return s.particles
}

// Len returns the number of particles.
func (s *Store) Len() int {
	return len(s.particles)
}

// Clear drops every particle.
func (s *Store) Clear() {
	s.particles = nil
}
