package field

import "errors"

// ErrDriverCancelled is returned when starting a driver that was stopped.
var ErrDriverCancelled = errors.New("frame driver cancelled")

// FrameHandle revokes one requested frame callback.
type FrameHandle interface {
	Cancel()
}

// Scheduler runs a callback once on the host's next frame.
type Scheduler interface {
	RequestFrame(fn func()) FrameHandle
}

// DriverState is the frame driver lifecycle.
type DriverState int

const (
	DriverIdle DriverState = iota
	DriverRunning
	DriverCancelled
)

func (s DriverState) String() string {
	switch s {
	case DriverIdle:
		return "idle"
	case DriverRunning:
		return "running"
	case DriverCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Driver calls step once per frame, rescheduling itself until stopped.
// Stopping is terminal; a new driver is needed to run again.
type Driver struct {
	sched   Scheduler
	step    func()
	state   DriverState
	pending FrameHandle
}

// NewDriver returns an idle driver.
func NewDriver(sched Scheduler, step func()) *Driver {
	return &Driver{sched: sched, step: step}
}

// Start requests the first frame. It does not run a frame itself.
func (d *Driver) Start() error {
	switch d.state {
	case DriverRunning:
		return nil
	case DriverCancelled:
		return ErrDriverCancelled
	}
	d.state = DriverRunning
	d.pending = d.sched.RequestFrame(d.tick)
	return nil
}

// Stop cancels the pending frame. No tick runs after Stop returns.
func (d *Driver) Stop() {
	if d.pending != nil {
		d.pending.Cancel()
		d.pending = nil
	}
	d.state = DriverCancelled
}

// State returns the current lifecycle state.
func (d *Driver) State() DriverState {
	return d.state
}

func (d *Driver) tick() {
	d.pending = nil
	if d.state != DriverRunning {
		return
	}
	d.step()
	// step may have stopped the driver.
	if d.state != DriverRunning {
		return
	}
	d.pending = d.sched.RequestFrame(d.tick)
}

// FrameQueue is a Scheduler pumped by a render-loop hook or a fixed ticker.
// It is not safe for concurrent use; the owning loop calls everything.
type FrameQueue struct {
	pending []*queuedFrame
}

type queuedFrame struct {
	fn        func()
	cancelled bool
}

type queueHandle struct {
	q *FrameQueue
	f *queuedFrame
}

func (h queueHandle) Cancel() {
	h.f.cancelled = true
	h.q.remove(h.f)
}

// RequestFrame queues fn for the next Pump.
func (q *FrameQueue) RequestFrame(fn func()) FrameHandle {
	f := &queuedFrame{fn: fn}
	q.pending = append(q.pending, f)
	return queueHandle{q: q, f: f}
}

func (q *FrameQueue) remove(f *queuedFrame) {
	for i, p := range q.pending {
		if p == f {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Pump runs every callback queued before the call. Callbacks requested while
// pumping wait for the next Pump. It returns how many callbacks ran.
func (q *FrameQueue) Pump() int {
	due := q.pending
	q.pending = nil
	ran := 0
	for _, f := range due {
		// an earlier callback in this batch may have cancelled it
		if f.cancelled {
			continue
		}
		f.fn()
		ran++
	}
	return ran
}

// Pending returns how many callbacks wait for the next Pump.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}
