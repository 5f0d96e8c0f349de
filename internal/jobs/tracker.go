// Package jobs tracks in-flight asynchronous submissions per id, plus one
// independent flag for the collection-wide bulk action.
package jobs

import (
	"sync"
	"time"
)

// DefaultDelay is the wait before the reconciling refetch after a successful submission.
const DefaultDelay = 1500 * time.Millisecond

type State int

const (
	Idle State = iota
	Submitting
	Completed
)

func (s State) String() string {
	switch s {
	case Submitting:
		return "submitting"
	case Completed:
		return "completed"
	default:
		return "idle"
	}
}

// Tracker is safe for concurrent use.
type Tracker struct {
	delay time.Duration

	mu     sync.Mutex
	states map[string]State
	bulk   bool
}

func NewTracker(delay time.Duration) *Tracker {
	if delay < 0 {
		delay = 0
	}

	return &Tracker{delay: delay, states: make(map[string]State)}
}

// Delay is the reconcile delay every caller schedules its refetch with.
func (t *Tracker) Delay() time.Duration {
	return t.delay
}

// Begin marks id as submitting. It returns false when id already has a
// submission in flight.
func (t *Tracker) Begin(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.states[id] == Submitting {
		return false
	}

	t.states[id] = Submitting

	return true
}

func (t *Tracker) Succeed(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.states[id] = Completed
}

// Fail returns id to idle.
func (t *Tracker) Fail(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.states, id)
}

func (t *Tracker) State(id string) State {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.states[id]
}

func (t *Tracker) Submitting(id string) bool {
	return t.State(id) == Submitting
}

// BeginBulk raises the bulk flag. Row states are not touched.
func (t *Tracker) BeginBulk() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.bulk {
		return false
	}

	t.bulk = true

	return true
}

func (t *Tracker) EndBulk() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.bulk = false
}

func (t *Tracker) BulkSubmitting() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.bulk
}

// ClearSettled drops Completed markers and keeps in-flight submissions.
func (t *Tracker) ClearSettled() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, s := range t.states {
		if s == Completed {
			delete(t.states, id)
		}
	}
}

// Reset forgets every row state and the bulk flag.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.states = make(map[string]State)
	t.bulk = false
}
