package busy

import "sync/atomic"

// Tracker counts in-flight fetch sequences. A reference count instead of a
// shared boolean keeps overlapping sequences from clearing each other's state:
// the tracker reads busy until the last sequence ends, success or failure.
type Tracker struct {
	inFlight atomic.Int64
}

// NewTracker constructs an idle Tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin marks the start of a fetch sequence.
func (t *Tracker) Begin() {
	t.inFlight.Add(1)
}

// End marks the completion of a fetch sequence. Unbalanced calls clamp at zero.
func (t *Tracker) End() {
	if t.inFlight.Add(-1) < 0 {
		t.inFlight.Store(0)
	}
}

// InFlight returns the number of active sequences.
func (t *Tracker) InFlight() int64 {
	return t.inFlight.Load()
}

// Busy reports whether any sequence is still in flight.
func (t *Tracker) Busy() bool {
	return t.inFlight.Load() > 0
}

// Track runs fn inside a Begin/End pair. End runs even when fn fails, so a
// failed fetch cannot leave the tracker stuck busy.
func (t *Tracker) Track(fn func() error) error {
	t.Begin()
	defer t.End()
	return fn()
}
