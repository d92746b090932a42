// Package timing accumulates empirical navigation durations and predicts
// whether a prospective trip is likely to blow its budget before it is
// attempted.
package timing

import (
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

const (
	// windowSize bounds the rolling sample window; older samples fall off.
	windowSize = 10

	// longHaulDistance and longHaulTimeouts gate the first predictor clause:
	// a trip longer than this, on a tracker that has already seen more than
	// longHaulTimeouts timeouts, is assumed to time out again.
	longHaulDistance = 200.0
	longHaulTimeouts = 3

	// paceUnit scales the rolling average into a projection: the projected
	// cost of a trip is (distance/paceUnit) average durations.
	paceUnit = 50.0

	// projectedBudget is the projection above which the second clause fires.
	projectedBudget = 30 * time.Second
)

// Tracker keeps a bounded window of successful navigation durations plus a
// lifetime timeout count. Failed attempts never contribute samples; slow
// successes would otherwise be indistinguishable from failures.
type Tracker struct {
	mu       sync.Mutex
	samples  []float64 // seconds, oldest first
	timeouts uint64
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{samples: make([]float64, 0, windowSize)}
}

// RecordSuccess appends a completed navigation's duration, evicting the
// oldest sample once the window is full.
func (t *Tracker) RecordSuccess(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.samples = append(t.samples, d.Seconds())
	if len(t.samples) > windowSize {
		t.samples = t.samples[len(t.samples)-windowSize:]
	}
}

// RecordTimeout bumps the lifetime timeout count.
func (t *Tracker) RecordTimeout() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timeouts++
}

// PredictTimeout reports whether a direct trip of the given distance should
// be skipped in favor of staged navigation. Either clause suffices: the
// tracker has a history of timeouts and the trip is long, or the rolling
// average projects past the budget. With no samples recorded the projection
// clause stays silent.
func (t *Tracker) PredictTimeout(distance float64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if distance > longHaulDistance && t.timeouts > longHaulTimeouts {
		return true
	}
	return t.projectionLocked(distance) > projectedBudget
}

// Projection estimates how long a trip of the given distance would take at
// the windowed average pace, or zero when no samples exist.
func (t *Tracker) Projection(distance float64) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.projectionLocked(distance)
}

func (t *Tracker) projectionLocked(distance float64) time.Duration {
	if len(t.samples) == 0 {
		return 0
	}
	avg := stat.Mean(t.samples, nil)
	return time.Duration(distance / paceUnit * avg * float64(time.Second))
}

// Average returns the mean of the current window, or zero when empty.
func (t *Tracker) Average() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.samples) == 0 {
		return 0
	}
	return time.Duration(stat.Mean(t.samples, nil) * float64(time.Second))
}

// Timeouts returns the lifetime timeout count.
func (t *Tracker) Timeouts() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timeouts
}

// Samples returns the number of durations currently in the window.
func (t *Tracker) Samples() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.samples)
}
