package combat

import "github.com/KirkDiggler/mine/internal/domain/shared"

// TickResult is what a schedulable reports after losing one tick
type TickResult int

const (
	// TickSilent means the entry is not ready yet
	TickSilent TickResult = iota
	// TickPop means the entry is ready and stays scheduled
	TickPop
	// TickPopDie means the entry is ready and leaves the schedule
	TickPopDie
)

func (r TickResult) String() string {
	switch r {
	case TickSilent:
		return "silent"
	case TickPop:
		return "pop"
	case TickPopDie:
		return "pop_die"
	default:
		return "unknown"
	}
}

// Timer counts ticks down to zero. A recurring timer re-arms from its period
// function each time it pops; a one-shot timer stays spent.
type Timer struct {
	remaining *shared.Counter
	period    func() int
}

// NewTimer creates a one-shot timer that pops after ticks ticks
func NewTimer(ticks int) *Timer {
	t := &Timer{}
	t.arm(ticks)
	return t
}

// NewRecurringTimer creates a timer that pops every period() ticks. The period
// is read again on every pop so speed changes apply to the next turn.
func NewRecurringTimer(period func() int) *Timer {
	t := &Timer{period: period}
	t.arm(period())
	return t
}

// Remaining returns the ticks left before the next pop
func (t *Timer) Remaining() int { return t.remaining.Value() }

// Recurring reports whether the timer re-arms itself
func (t *Timer) Recurring() bool { return t.period != nil }

// Tick removes one tick and reports whether the timer popped
func (t *Timer) Tick() TickResult {
	t.remaining.Reduce(1)
	if t.remaining.Value() > 0 {
		return TickSilent
	}
	if t.period == nil {
		return TickPopDie
	}
	t.arm(t.period())
	return TickPop
}

func (t *Timer) arm(ticks int) {
	if ticks < 1 {
		ticks = 1
	}
	t.remaining = shared.NewCounter(ticks, true)
}
