// Package field is a mouse-reactive particle field: moving points on a
// drawing surface, linked by lines when close, pushed away from the pointer,
// advanced once per frame by a cancellable frame driver.
//
// Hosts supply the container (Host), the drawing surface (Target) and a
// frame Scheduler, then Mount a Field. Everything on a Field must be called
// from the goroutine that pumps its scheduler; only the Pointer cell may be
// written from elsewhere.
package field

import (
	"fmt"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// Stats describes the most recent frame.
type Stats struct {
	Frame     int
	Particles int
	Links     int
	Skipped   int // frames skipped for lack of a drawing context
}

// Field is a mounted particle field.
type Field struct {
	opts    Options
	surface *Surface
	store   *Store
	pointer *Pointer
	driver  *Driver
	resize  *Debouncer
	log     *EventLog
	rng     *rand.Rand

	alive bool
	stats Stats
}

// Mount sizes the surface, creates the particles and starts the frame
// driver. The first frame runs on the scheduler's next frame. log may be nil.
func Mount(host Host, target Target, sched Scheduler, opts Options, log *EventLog) *Field {
	opts = opts.Normalize()
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- cosmetic only

	f := &Field{
		opts:    opts,
		surface: NewSurface(host, target),
		pointer: &Pointer{},
		resize:  NewDebouncer(ResizeDebounce),
		log:     log,
		rng:     rng,
		alive:   true,
	}
	f.store = NewStore(rng, opts.SizePolicy, opts.Sides, opts.linkStyle())
	f.driver = NewDriver(sched, f.frame)

	f.log.Add(0, CatLifecycle, "mount", opts.Summary(), float64(opts.Quantity))
	if opts.Staticity != 0 || opts.Ease != 0 {
		f.log.Add(0, CatConfig, "ignored",
			fmt.Sprintf("staticity=%g ease=%g have no effect", opts.Staticity, opts.Ease), 0)
	}
	f.init()
	if err := f.driver.Start(); err == nil {
		f.log.Add(0, CatLifecycle, "start", "frame driver running", 0)
	}
	return f
}

// init resizes the surface and regenerates the particle set.
func (f *Field) init() {
	st := f.surface.Resize()
	f.log.Add(f.stats.Frame, CatSurface, "resize",
		fmt.Sprintf("%s physical=%dx%d", st, st.PhysicalW, st.PhysicalH), st.Scale)
	f.store.Create(f.opts.Quantity, f.opts.Size, f.opts.Color, st.Bounds())
	f.log.Add(f.stats.Frame, CatStore, "create",
		fmt.Sprintf("%d particles", f.store.Len()), float64(f.store.Len()))
}

// frame is one tick of the frame driver: clear, links, then move and draw
// each particle. The pointer is sampled once, before anything moves.
func (f *Field) frame() {
	f.stats.Frame++
	c, ok := f.surface.Context()
	if !ok {
		f.stats.Skipped++
		f.log.AddVerbose(f.stats.Frame, CatFrame, "skipped", "no drawing context", 0)
		return
	}
	bounds := f.surface.State().Bounds()
	pointer := f.pointer.Project(bounds)
	ps := f.store.Particles()

	c.Clear()
	f.stats.Links = DrawLinks(c, ps)
	Advance(ps, pointer, bounds, r2.Vec{X: f.opts.VX, Y: f.opts.VY})
	for i := range ps {
		DrawParticle(c, &ps[i])
	}
	f.stats.Particles = len(ps)
	f.log.AddVerbose(f.stats.Frame, CatFrame, "drawn",
		fmt.Sprintf("particles=%d links=%d", len(ps), f.stats.Links), float64(f.stats.Links))
}

// Configure applies new options. Changes to anything that shapes the particle
// set, or a flipped Refresh, regenerate it; drift applies immediately.
func (f *Field) Configure(opts Options) {
	if !f.alive {
		return
	}
	opts = opts.Normalize()
	// The seed only matters at mount.
	opts.Seed = f.opts.Seed
	regen := f.opts.needsRegenerate(opts)
	f.opts = opts
	f.log.Add(f.stats.Frame, CatConfig, "configure", opts.Summary(), 0)
	if !regen {
		return
	}
	f.store = NewStore(f.rng, opts.SizePolicy, opts.Sides, opts.linkStyle())
	f.init()
}

// PointerMove records a pointer event in client coordinates; (left, top) is
// the surface's top-left corner in the same space.
func (f *Field) PointerMove(clientX, clientY, left, top float64) {
	if !f.alive {
		return
	}
	f.pointer.Track(clientX, clientY, left, top, f.surface.State().Bounds())
}

// NotifyResize reports that the host may have changed size. The field
// re-initialises once notifications have been quiet for ResizeDebounce.
func (f *Field) NotifyResize(now time.Time) {
	if !f.alive {
		return
	}
	f.resize.Trigger(now)
}

// Poll runs a due debounced resize. Hosts call it once per loop iteration.
func (f *Field) Poll(now time.Time) bool {
	if !f.alive || !f.resize.Fire(now) {
		return false
	}
	f.init()
	return true
}

// Unmount stops the frame driver and detaches the field. Later calls on the
// field do nothing.
func (f *Field) Unmount() {
	if !f.alive {
		return
	}
	f.alive = false
	f.driver.Stop()
	f.resize.Reset()
	f.store.Clear()
	f.log.Add(f.stats.Frame, CatLifecycle, "unmount", "frame driver cancelled", 0)
}

// Alive reports whether the field is still mounted.
func (f *Field) Alive() bool {
	return f.alive
}

// Options returns the normalised options in effect.
func (f *Field) Options() Options {
	return f.opts
}

// Particles returns the live particle set. Do not retain it across frames.
func (f *Field) Particles() []Particle {
	return f.store.Particles()
}

// Surface returns the current surface size.
func (f *Field) Surface() SurfaceState {
	return f.surface.State()
}

// Pointer returns the shared pointer cell.
func (f *Field) Pointer() *Pointer {
	return f.pointer
}

// DriverState returns the frame driver's lifecycle state.
func (f *Field) DriverState() DriverState {
	return f.driver.State()
}

// Stats returns counters for the most recent frame.
func (f *Field) Stats() Stats {
	return f.stats
}
