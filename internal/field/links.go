package field

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Link is one line between two particles closer than the first particle's
// link distance.
type Link struct {
	A, B    r2.Vec
	Width   float64
	Opacity float64
	Color   color.NRGBA
}

// LinkOpacity returns the stroke opacity for two particles d apart, using
// p's link attributes. It falls to zero at p.LinkDistance.
func LinkOpacity(p Particle, d float64) float64 {
	if d >= p.LinkDistance {
		return 0
	}
	return p.LinkOpacity * (1 - d/p.LinkDistance)
}

// EachLink calls fn for every unordered pair (i < j) closer than
// ps[i].LinkDistance and returns how many links it produced.
//
// The pass is O(n²) in len(ps). Fields are expected to hold tens of
// particles; a few hundred is still fine at 60 fps, beyond that it will not
// keep up.
func EachLink(ps []Particle, fn func(Link)) int {
	n := 0
	for i := 0; i < len(ps); i++ {
		p1 := &ps[i]
		for j := i + 1; j < len(ps); j++ {
			p2 := &ps[j]
			d := r2.Norm(r2.Sub(p1.Pos, p2.Pos))
			if d >= p1.LinkDistance {
				continue
			}
			n++
			if fn != nil {
				fn(Link{
					A:       p1.Pos,
					B:       p2.Pos,
					Width:   p1.LinkWidth,
					Opacity: LinkOpacity(*p1, d),
					Color:   p1.Color,
				})
			}
		}
	}
	return n
}

// DrawLinks strokes every link onto c and returns the count.
func DrawLinks(c Canvas, ps []Particle) int {
	return EachLink(ps, func(l Link) {
		c.StrokeLine(l.A.X, l.A.Y, l.B.X, l.B.Y, l.Width, l.Color, l.Opacity)
	})
}

// DrawParticle renders p at its current position.
func DrawParticle(c Canvas, p *Particle) {
	if p.Shape == ShapeCircle {
		c.FillCircle(p.Pos.X, p.Pos.Y, p.Size, p.Color, p.Opacity)
		return
	}
	c.FillPolygon(p.Pos.X, p.Pos.Y, p.Size, p.Sides, p.Color, p.Opacity)
}
