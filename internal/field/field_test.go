package field

import (
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

func mountTestField(t *testing.T, opts Options) (*Field, *FrameQueue, *RecordingTarget, *StaticHost, *EventLog) {
	t.Helper()
	host := &StaticHost{W: 800, H: 600, Scale: 1}
	target := &RecordingTarget{}
	q := &FrameQueue{}
	log := NewEventLog(false)
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	f := Mount(host, target, q, opts, log)
	return f, q, target, host, log
}

func TestMount_UnmountBeforeFirstTick(t *testing.T) {
	f, q, target, _, log := mountTestField(t, DefaultOptions())
	f.Unmount()
	if q.Pending() != 0 {
		t.Fatalf("expected no pending frame after unmount, got %d", q.Pending())
	}
	if ran := q.Pump(); ran != 0 {
		t.Fatalf("expected no frame after unmount, got %d", ran)
	}
	if len(target.OpsOf("clear")) != 0 {
		t.Fatal("expected nothing drawn")
	}
	if f.DriverState() != DriverCancelled {
		t.Fatalf("expected cancelled driver, got %s", f.DriverState())
	}
	if log.Count(CatLifecycle, "unmount") != 1 {
		t.Fatalf("expected one unmount event, log:\n%s", log.Format())
	}
	f.Unmount()
	if log.Count(CatLifecycle, "unmount") != 1 {
		t.Fatal("second unmount must be a no-op")
	}
}

func TestMount_CreatesQuantityParticles(t *testing.T) {
	opts := DefaultOptions()
	opts.Quantity = 37
	f, _, _, _, log := mountTestField(t, opts)
	if len(f.Particles()) != 37 {
		t.Fatalf("expected 37 particles, got %d", len(f.Particles()))
	}
	if f.DriverState() != DriverRunning {
		t.Fatalf("expected running driver, got %s", f.DriverState())
	}
	if !log.HasEntry(CatStore, "create", "37 particles") {
		t.Fatalf("expected create event, log:\n%s", log.Format())
	}
}

func TestFrame_DrawOrder(t *testing.T) {
	opts := DefaultOptions()
	opts.Quantity = 20
	f, q, target, _, _ := mountTestField(t, opts)
	// Cluster the particles so links exist.
	for i := range f.Particles() {
		f.Particles()[i].Pos = r2.Vec{X: 100 + float64(i), Y: 100}
	}
	q.Pump()

	frame := target.LastFrame()
	if len(frame) == 0 || frame[0].Kind != "clear" {
		t.Fatalf("expected frame to start with clear, got %+v", frame)
	}
	seenShape := false
	lines := 0
	for _, op := range frame[1:] {
		switch op.Kind {
		case "line":
			if seenShape {
				t.Fatal("links must be drawn before particles")
			}
			lines++
		case "circle", "polygon":
			seenShape = true
		}
	}
	if lines != 190 {
		t.Fatalf("expected 190 links for 20 clustered particles, got %d", lines)
	}
	if st := f.Stats(); st.Frame != 1 || st.Links != 190 || st.Particles != 20 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestFrame_TwoParticleLinkScenario(t *testing.T) {
	opts := DefaultOptions()
	opts.Quantity = 2
	f, q, target, _, _ := mountTestField(t, opts)
	ps := f.Particles()
	ps[0].Pos, ps[0].Vel = r2.Vec{X: 0, Y: 0}, r2.Vec{}
	ps[1].Pos, ps[1].Vel = r2.Vec{X: 10, Y: 0}, r2.Vec{}
	q.Pump()

	var lines []DrawOp
	for _, op := range target.LastFrame() {
		if op.Kind == "line" {
			lines = append(lines, op)
		}
	}
	if len(lines) != 1 {
		t.Fatalf("expected a single link, got %d", len(lines))
	}
	want := DefaultLinkOpacity * (1 - 10.0/150)
	if math.Abs(lines[0].Alpha-want) > 1e-12 {
		t.Fatalf("expected opacity %.6f, got %.6f", want, lines[0].Alpha)
	}
}

func TestFrame_SkipsWithoutContextAndRecovers(t *testing.T) {
	f, q, target, _, _ := mountTestField(t, DefaultOptions())
	target.Detached = true
	q.Pump()
	q.Pump()
	if st := f.Stats(); st.Skipped != 2 {
		t.Fatalf("expected 2 skipped frames, got %+v", st)
	}
	if len(target.OpsOf("clear")) != 0 {
		t.Fatal("expected nothing drawn while detached")
	}
	if q.Pending() != 1 {
		t.Fatalf("expected the driver to keep rescheduling, pending=%d", q.Pending())
	}
	target.Detached = false
	q.Pump()
	if len(target.OpsOf("clear")) != 1 {
		t.Fatal("expected drawing to resume once the context is back")
	}
}

func TestFrame_UsesPointerCell(t *testing.T) {
	opts := DefaultOptions()
	opts.Quantity = 1
	f, q, _, _, _ := mountTestField(t, opts)
	p := &f.Particles()[0]
	p.Pos, p.Vel = r2.Vec{X: 700, Y: 300}, r2.Vec{}

	// Pointer at client (650,300) on a surface at the origin: 50px left.
	f.PointerMove(650, 300, 0, 0)
	q.Pump()
	if p.Pos.X <= 700 {
		t.Fatalf("expected particle pushed right, got x=%.2f", p.Pos.X)
	}
}

func TestPointerMove_OutsideIgnored(t *testing.T) {
	f, _, _, _, _ := mountTestField(t, DefaultOptions())
	f.PointerMove(100, 100, 0, 0)
	before := f.Pointer().Load()
	f.PointerMove(900, 100, 0, 0)
	f.PointerMove(100, -5, 0, 0)
	f.PointerMove(math.NaN(), 10, 0, 0)
	if f.Pointer().Load() != before {
		t.Fatalf("expected pointer unchanged, got %+v want %+v", f.Pointer().Load(), before)
	}
	if before != (r2.Vec{X: -300, Y: -200}) {
		t.Fatalf("expected centre-relative (-300,-200), got %+v", before)
	}
}

func TestConfigure_RegeneratesOnlyWhenNeeded(t *testing.T) {
	opts := DefaultOptions()
	f, _, _, _, log := mountTestField(t, opts)
	creates := log.Count(CatStore, "create")

	same := f.Options()
	same.VX = 0.3
	f.Configure(same)
	if log.Count(CatStore, "create") != creates {
		t.Fatal("drift change must not regenerate")
	}
	if f.Options().VX != 0.3 {
		t.Fatalf("expected drift applied, got %.2f", f.Options().VX)
	}

	toggled := f.Options()
	toggled.Refresh = !toggled.Refresh
	old := f.Particles()
	f.Configure(toggled)
	if log.Count(CatStore, "create") != creates+1 {
		t.Fatal("refresh toggle must regenerate")
	}
	if len(old) > 0 && &old[0] == &f.Particles()[0] {
		t.Fatal("expected a new particle set")
	}

	more := f.Options()
	more.Quantity = 12
	f.Configure(more)
	if len(f.Particles()) != 12 {
		t.Fatalf("expected 12 particles, got %d", len(f.Particles()))
	}
}

func TestResize_Debounced(t *testing.T) {
	f, _, target, host, log := mountTestField(t, DefaultOptions())
	t0 := time.Unix(1000, 0)
	host.W, host.H = 1024, 768

	f.NotifyResize(t0)
	f.NotifyResize(t0.Add(50 * time.Millisecond))
	if f.Poll(t0.Add(120 * time.Millisecond)) {
		t.Fatal("resize fired before the debounce window closed")
	}
	if f.Surface().LogicalW != 800 {
		t.Fatalf("surface changed early: %+v", f.Surface())
	}
	if !f.Poll(t0.Add(150 * time.Millisecond)) {
		t.Fatal("expected the debounced resize to fire")
	}
	if f.Poll(t0.Add(400 * time.Millisecond)) {
		t.Fatal("debounced resize fired twice")
	}
	if f.Surface().LogicalW != 1024 || target.PhysicalW != 1024 {
		t.Fatalf("expected 1024 wide surface, got %+v", f.Surface())
	}
	if log.Count(CatSurface, "resize") != 2 {
		t.Fatalf("expected mount + debounced resize, log:\n%s", log.Format())
	}
	for _, p := range f.Particles() {
		if p.Pos.X < 0 || p.Pos.X >= 1024 || p.Pos.Y < 0 || p.Pos.Y >= 768 {
			t.Fatalf("regenerated particle outside new bounds: %+v", p.Pos)
		}
	}
}

func TestUnmount_LaterCallsAreNoOps(t *testing.T) {
	f, q, _, host, log := mountTestField(t, DefaultOptions())
	t0 := time.Unix(0, 0)
	f.NotifyResize(t0)
	f.Unmount()
	host.W = 10
	if f.Poll(t0.Add(time.Second)) {
		t.Fatal("resize fired after unmount")
	}
	f.PointerMove(10, 10, 0, 0)
	f.Configure(Options{Quantity: 3})
	if log.Count(CatConfig, "configure") != 0 {
		t.Fatal("configure ran after unmount")
	}
	if q.Pump() != 0 {
		t.Fatal("frame ran after unmount")
	}
}

func TestMount_LogsIgnoredTuning(t *testing.T) {
	opts := DefaultOptions()
	opts.Staticity = 50
	opts.Ease = 50
	_, _, _, _, log := mountTestField(t, opts)
	if !log.HasEntry(CatConfig, "ignored", "staticity=50") {
		t.Fatalf("expected ignored-config event, log:\n%s", log.Format())
	}
}

func TestField_DriftStaysInBounds(t *testing.T) {
	opts := DefaultOptions()
	opts.Quantity = 50
	opts.VX = 2
	opts.VY = -1.5
	opts.Seed = 7
	f, q, _, host, _ := mountTestField(t, opts)
	// Largest step after a bounce plus the strongest pointer nudge.
	const margin = 5 + RepelStrength
	for i := 0; i < 3000; i++ {
		q.Pump()
	}
	for i, p := range f.Particles() {
		if p.Pos.X < -margin || p.Pos.X > host.W+margin || p.Pos.Y < -margin || p.Pos.Y > host.H+margin {
			t.Fatalf("particle %d left the surface: (%.1f,%.1f)", i, p.Pos.X, p.Pos.Y)
		}
	}
}
