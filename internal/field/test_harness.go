package field

import "image/color"

// DrawOp is one recorded canvas call.
type DrawOp struct {
	Kind   string // clear, scale, circle, polygon, line
	X0, Y0 float64
	X1, Y1 float64
	R      float64 // radius for circle/polygon, width for line, factor for scale
	Sides  int
	Color  color.NRGBA
	Alpha  float64
}

// StaticHost is a Host with a fixed, settable size.
type StaticHost struct {
	W, H  float64
	Scale float64
}

func (h *StaticHost) LogicalSize() (float64, float64) { return h.W, h.H }
func (h *StaticHost) DeviceScale() float64             { return h.Scale }

// RecordingTarget is a Target that records every draw call instead of
// rendering. Tests use it to inspect frames.
type RecordingTarget struct {
	PhysicalW, PhysicalH int
	DisplayW, DisplayH   float64
	Scale                float64
	Ops                  []DrawOp
	// Detached makes Context fail, as if the surface had been torn down.
	Detached bool
}

func (t *RecordingTarget) SetPhysicalSize(w, h int) {
	t.PhysicalW, t.PhysicalH = w, h
}

func (t *RecordingTarget) SetDisplaySize(w, h float64) {
	t.DisplayW, t.DisplayH = w, h
}

func (t *RecordingTarget) Context() (Canvas, bool) {
	if t.Detached {
		return nil, false
	}
	return (*recordingCanvas)(t), true
}

// Reset drops recorded ops.
func (t *RecordingTarget) Reset() {
	t.Ops = t.Ops[:0]
}

// OpsOf returns the recorded ops of one kind.
func (t *RecordingTarget) OpsOf(kind string) []DrawOp {
	var out []DrawOp
	for _, op := range t.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// LastFrame returns the ops recorded since the most recent clear.
func (t *RecordingTarget) LastFrame() []DrawOp {
	for i := len(t.Ops) - 1; i >= 0; i-- {
		if t.Ops[i].Kind == "clear" {
			return t.Ops[i:]
		}
	}
	return t.Ops
}

type recordingCanvas RecordingTarget

func (c *recordingCanvas) Clear() {
	c.Ops = append(c.Ops, DrawOp{Kind: "clear"})
}

func (c *recordingCanvas) SetScale(s float64) {
	c.Scale = s
	c.Ops = append(c.Ops, DrawOp{Kind: "scale", R: s})
}

func (c *recordingCanvas) FillCircle(cx, cy, r float64, col color.NRGBA, alpha float64) {
	c.Ops = append(c.Ops, DrawOp{Kind: "circle", X0: cx, Y0: cy, R: r, Color: col, Alpha: alpha})
}

func (c *recordingCanvas) FillPolygon(cx, cy, r float64, sides int, col color.NRGBA, alpha float64) {
	c.Ops = append(c.Ops, DrawOp{Kind: "polygon", X0: cx, Y0: cy, R: r, Sides: sides, Color: col, Alpha: alpha})
}

func (c *recordingCanvas) StrokeLine(x0, y0, x1, y1, width float64, col color.NRGBA, alpha float64) {
	c.Ops = append(c.Ops, DrawOp{Kind: "line", X0: x0, Y0: y0, X1: x1, Y1: y1, R: width, Color: col, Alpha: alpha})
}
