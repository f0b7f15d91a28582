package term

import (
	"image/color"
	"testing"
	"time"

	"github.com/Garsondee/particle-field/internal/field"
	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"
)

func newTestScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func testOptions(quantity int) field.Options {
	opts := field.DefaultOptions()
	opts.Quantity = quantity
	opts.Sides = 5
	opts.Seed = 9
	return opts
}

func TestSession_SurfaceFollowsGrid(t *testing.T) {
	screen := newTestScreen(t, 40, 20)
	s := newSession(screen, testOptions(3), nil)
	defer s.stop()
	sf := s.field.Surface()
	if sf.LogicalW != 320 || sf.LogicalH != 320 {
		t.Fatalf("expected 320x320 logical surface, got %+v", sf)
	}
	if s.target.cols != 40 || s.target.rows != 20 {
		t.Fatalf("expected 40x20 grid, got %dx%d", s.target.cols, s.target.rows)
	}
}

func TestSession_DrawsParticleGlyphs(t *testing.T) {
	screen := newTestScreen(t, 40, 20)
	s := newSession(screen, testOptions(2), nil)
	defer s.stop()

	ps := s.field.Particles()
	ps[0].Pos, ps[0].Vel, ps[0].Shape = r2.Vec{X: 5*CellW + 1, Y: 5*CellH + 1}, r2.Vec{}, field.ShapeCircle
	ps[1].Pos, ps[1].Vel, ps[1].Shape = r2.Vec{X: 9*CellW + 1, Y: 5*CellH + 1}, r2.Vec{}, field.ShapePolygon
	// Keep the pointer (surface centre by default) away from both.
	s.field.PointerMove(300, 300, 0, 0)

	s.tick(time.Now())
	if r, _, _, _ := screen.GetContent(5, 5); r != glyphCircle {
		t.Fatalf("expected circle glyph at (5,5), got %q", r)
	}
	if r, _, _, _ := screen.GetContent(9, 5); r != glyphPolygon {
		t.Fatalf("expected polygon glyph at (9,5), got %q", r)
	}
	if r, _, _, _ := screen.GetContent(7, 5); r != glyphLink {
		t.Fatalf("expected link glyph between particles, got %q", r)
	}
	if r, _, _, _ := screen.GetContent(1, 0); r != 'p' {
		t.Fatalf("expected status line on row 0, got %q", r)
	}
}

func TestSession_PointerFromMouse(t *testing.T) {
	screen := newTestScreen(t, 40, 20)
	s := newSession(screen, testOptions(1), nil)
	defer s.stop()
	s.handle(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone), time.Now())
	got := s.field.Pointer().Load()
	want := r2.Vec{X: 10*CellW + CellW/2 - 160, Y: 5*CellH + CellH/2 - 160}
	if got != want {
		t.Fatalf("expected pointer %+v, got %+v", want, got)
	}
}

func TestSession_ResizeIsDebounced(t *testing.T) {
	screen := newTestScreen(t, 40, 20)
	s := newSession(screen, testOptions(4), nil)
	defer s.stop()
	t0 := time.Unix(100, 0)
	screen.SetSize(60, 20)
	s.handle(tcell.NewEventResize(60, 20), t0)
	s.tick(t0.Add(10 * time.Millisecond))
	if s.field.Surface().LogicalW != 320 {
		t.Fatal("resize applied before debounce")
	}
	s.tick(t0.Add(field.ResizeDebounce))
	if s.field.Surface().LogicalW != 480 || s.target.cols != 60 {
		t.Fatalf("expected 60-column surface, got %+v cols=%d", s.field.Surface(), s.target.cols)
	}
}

func TestSession_KeyCommands(t *testing.T) {
	screen := newTestScreen(t, 40, 20)
	s := newSession(screen, testOptions(5), nil)
	defer s.stop()
	if !s.handle(tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone), time.Now()) {
		t.Fatal("'+' must not quit")
	}
	if n := len(s.field.Particles()); n != 15 {
		t.Fatalf("expected 15 particles, got %d", n)
	}
	if s.handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), time.Now()) {
		t.Fatal("expected 'q' to quit")
	}
	if s.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), time.Now()) {
		t.Fatal("expected Esc to quit")
	}
}

func TestSession_StopSkipsLaterFrames(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	s := newSession(screen, testOptions(3), nil)
	s.stop()
	if s.frames.Pending() != 0 {
		t.Fatalf("expected nothing pending, got %d", s.frames.Pending())
	}
	if _, ok := s.target.Context(); ok {
		t.Fatal("expected a detached target")
	}
}

func TestBlend(t *testing.T) {
	got := blend(color.NRGBA{R: 200, G: 100, B: 50, A: 255}, 0.5)
	if got != tcell.NewRGBColor(100, 50, 25) {
		t.Fatalf("unexpected blend %v", got)
	}
}
