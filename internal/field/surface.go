package field

import (
	"fmt"
	"math"
)

// SurfaceState is the size of the drawing surface in logical and device
// pixels. PhysicalW/H are always LogicalW/H multiplied by Scale.
type SurfaceState struct {
	LogicalW  float64
	LogicalH  float64
	PhysicalW int
	PhysicalH int
	Scale     float64
}

// Bounds returns the logical size.
func (s SurfaceState) Bounds() Size {
	return Size{W: s.LogicalW, H: s.LogicalH}
}

func (s SurfaceState) String() string {
	return fmt.Sprintf("%gx%g@%g", s.LogicalW, s.LogicalH, s.Scale)
}

// Surface keeps a Target sized to its Host.
type Surface struct {
	host   Host
	target Target
	state  SurfaceState
}

// NewSurface binds a target to a host. Call Resize before drawing.
func NewSurface(host Host, target Target) *Surface {
	return &Surface{host: host, target: target, state: SurfaceState{Scale: 1}}
}

// Resize reads the host size and device-pixel-ratio, sizes the target's
// backing store to logical*dpr, shows it at the logical size and scales the
// context so draw calls can use logical pixels. Safe to call repeatedly.
func (s *Surface) Resize() SurfaceState {
	w, h := s.host.LogicalSize()
	if w < 0 || math.IsNaN(w) {
		w = 0
	}
	if h < 0 || math.IsNaN(h) {
		h = 0
	}
	dpr := s.host.DeviceScale()
	if dpr <= 0 || math.IsNaN(dpr) || math.IsInf(dpr, 0) {
		dpr = 1
	}
	s.state = SurfaceState{
		LogicalW:  w,
		LogicalH:  h,
		PhysicalW: int(w * dpr),
		PhysicalH: int(h * dpr),
		Scale:     dpr,
	}
	s.target.SetPhysicalSize(s.state.PhysicalW, s.state.PhysicalH)
	s.target.SetDisplaySize(w, h)
	if c, ok := s.target.Context(); ok {
		c.SetScale(dpr)
	}
	return s.state
}

// State returns the size computed by the last Resize.
func (s *Surface) State() SurfaceState {
	return s.state
}

// Context returns the target's drawing context.
func (s *Surface) Context() (Canvas, bool) {
	return s.target.Context()
}
