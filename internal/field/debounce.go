package field

import "time"

// ResizeDebounce is how long resize notifications must settle before the
// field re-initialises.
const ResizeDebounce = 100 * time.Millisecond

// Debouncer coalesces bursts of triggers into one firing, delay after the
// last trigger. It is polled by its owner; nothing fires on its own.
type Debouncer struct {
	delay time.Duration
	due   time.Time
	armed bool
}

// NewDebouncer returns a disarmed debouncer.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger (re)arms the debouncer relative to now.
func (d *Debouncer) Trigger(now time.Time) {
	d.due = now.Add(d.delay)
	d.armed = true
}

// Fire reports true exactly once when the delay has passed since the last
// Trigger, and disarms.
func (d *Debouncer) Fire(now time.Time) bool {
	if !d.armed || now.Before(d.due) {
		return false
	}
	d.armed = false
	return true
}

// Armed reports whether a firing is pending.
func (d *Debouncer) Armed() bool {
	return d.armed
}

// Reset disarms without firing.
func (d *Debouncer) Reset() {
	d.armed = false
}
