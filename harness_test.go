package bot

import (
	"context"
	"testing"
	"time"

	"mineflow/bot/logging"
)

// fakeClock drives the pilot's time source from a mutable instant.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

// navCall records one request the pilot issued to the navigator.
type navCall struct {
	goal    Goal
	timeout time.Duration
}

// fakeNavigator scripts navigator outcomes. Each Goto consumes the next
// scripted error (running dry means success), advances the fake clock by
// cost, and moves the agent to the goal on success.
type fakeNavigator struct {
	pos    Vec3
	calls  []navCall
	script []error
	cost   time.Duration
	clk    *fakeClock
}

func (f *fakeNavigator) Position() Vec3 { return f.pos }

func (f *fakeNavigator) Goto(_ context.Context, goal Goal, timeout time.Duration) error {
	f.calls = append(f.calls, navCall{goal: goal, timeout: timeout})
	if f.clk != nil && f.cost > 0 {
		f.clk.Advance(f.cost)
	}
	var err error
	if len(f.script) > 0 {
		err = f.script[0]
		f.script = f.script[1:]
	}
	if err == nil {
		f.pos = goal.Position
	}
	return err
}

func (f *fakeNavigator) lastCall(t *testing.T) navCall {
	t.Helper()
	if len(f.calls) == 0 {
		t.Fatalf("expected at least one navigator call")
	}
	return f.calls[len(f.calls)-1]
}

// capturePublisher collects events synchronously for assertions.
type capturePublisher struct {
	events []logging.Event
}

func (p *capturePublisher) Publish(ctx context.Context, event logging.Event) {
	p.events = append(p.events, event)
}

func (p *capturePublisher) ofType(eventType logging.EventType) []logging.Event {
	var matched []logging.Event
	for _, event := range p.events {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

// newTestPilot wires a pilot around scripted fakes and a deterministic clock.
func newTestPilot(cfg Config) (*Pilot, *fakeNavigator, *capturePublisher, *fakeClock) {
	clk := &fakeClock{now: time.Unix(5000, 0)}
	nav := &fakeNavigator{clk: clk, cost: time.Second}
	pub := &capturePublisher{}
	cfg.Publisher = pub
	cfg.Clock = clk
	return NewPilot(nav, cfg), nav, pub, clk
}
