package bot

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	loggingnav "mineflow/bot/logging/navigation"
)

func TestGotoDirectSuccess(t *testing.T) {
	p, nav, pub, _ := newTestPilot(Config{})
	goal := GoalAt(Vec3{Z: 100})

	err := p.Goto(context.Background(), goal)
	require.NoError(t, err)

	require.Len(t, nav.calls, 1, "a short trip should go straight to the navigator")
	call := nav.lastCall(t)
	assert.Equal(t, goal, call.goal)
	assert.Equal(t, 20*time.Second, call.timeout)

	stats := p.Stats()
	assert.Equal(t, 1, stats.CachedPaths, "successful route must be memoized")
	assert.Equal(t, 1, stats.TimingSamples)
	assert.Equal(t, int64(1000), stats.AverageTimeMillis)
	assert.Equal(t, uint64(1), stats.DirectSuccesses)
	assert.Equal(t, []ChunkCoord{{X: 0, Z: 6}}, p.VisitedChunks(), "destination chunk must be marked")

	completed := pub.ofType(loggingnav.EventGotoCompleted)
	require.Len(t, completed, 1)
	payload, ok := completed[0].Payload.(loggingnav.GotoCompletedPayload)
	require.True(t, ok, "unexpected payload type %T", completed[0].Payload)
	assert.Equal(t, loggingnav.OutcomeDirect, payload.Outcome)
	assert.Equal(t, int64(1000), payload.DurationMillis)
}

func TestGotoServesCachedRoute(t *testing.T) {
	p, nav, pub, _ := newTestPilot(Config{})
	goal := GoalAt(Vec3{Z: 100})

	require.NoError(t, p.Goto(context.Background(), goal))
	nav.pos = Vec3{} // agent wandered back; same endpoints, warm cache

	require.NoError(t, p.Goto(context.Background(), goal))

	require.Len(t, nav.calls, 5, "replay should drive 3 hops plus the final approach")
	for i, wantZ := range []float64{25, 50, 75} {
		call := nav.calls[1+i]
		assert.Equal(t, Vec3{Z: wantZ}, call.goal.Position, "hop %d target", i)
		assert.Equal(t, 5.0, call.goal.Tolerance, "hop %d tolerance", i)
		assert.Equal(t, 15*time.Second, call.timeout, "hop %d timeout", i)
	}
	final := nav.calls[4]
	assert.Equal(t, Vec3{Z: 100}, final.goal.Position)
	assert.Equal(t, 2.0, final.goal.Tolerance)
	assert.Equal(t, 10*time.Second, final.timeout)

	stats := p.Stats()
	assert.Equal(t, uint64(1), stats.CacheHits)
	assert.Equal(t, uint64(1), stats.CacheReplays)
	assert.Equal(t, uint64(3), stats.HopsReached)
	assert.Equal(t, 1, stats.TimingSamples, "replays must not contribute duration samples")

	report := p.LastHopReport()
	assert.Equal(t, 3, report.Reached())
	assert.Equal(t, 0, report.Skipped())
	assert.True(t, report.FinalReached)

	assert.Equal(t, []ChunkCoord{{X: 0, Z: 1}, {X: 0, Z: 3}, {X: 0, Z: 4}, {X: 0, Z: 6}}, p.VisitedChunks())

	hits := pub.ofType(loggingnav.EventRouteCacheHit)
	require.Len(t, hits, 1)
	payload, ok := hits[0].Payload.(loggingnav.RouteCachePayload)
	require.True(t, ok)
	assert.Equal(t, 4, payload.Waypoints)

	completed := pub.ofType(loggingnav.EventGotoCompleted)
	require.Len(t, completed, 2)
	second, ok := completed[1].Payload.(loggingnav.GotoCompletedPayload)
	require.True(t, ok)
	assert.Equal(t, loggingnav.OutcomeCache, second.Outcome)
}

func TestGotoFallbackAfterDirectTimeout(t *testing.T) {
	p, nav, _, _ := newTestPilot(Config{})
	nav.script = []error{fmt.Errorf("pathfind budget exhausted: %w", ErrTimeout)}

	err := p.Goto(context.Background(), GoalAt(Vec3{Z: 100}))
	require.NoError(t, err, "planner fallback should rescue a direct timeout")

	require.Len(t, nav.calls, 5, "1 direct attempt + 3 hops + final approach")
	assert.Equal(t, 0.0, nav.calls[0].goal.Tolerance)
	assert.Equal(t, 5.0, nav.calls[1].goal.Tolerance)

	stats := p.Stats()
	assert.Equal(t, uint64(1), stats.Timeouts)
	assert.Equal(t, uint64(1), stats.FallbackRetries)
	assert.Equal(t, uint64(1), stats.PlannerRuns)
	assert.Equal(t, 0, stats.TimingSamples, "failed attempts must not contribute samples")
	assert.Equal(t, uint64(0), stats.Failures)
}

func TestGotoTimeoutWithoutFallbackSurfaces(t *testing.T) {
	p, nav, _, _ := newTestPilot(Config{})
	nav.script = []error{ErrTimeout}

	err := p.Goto(context.Background(), GoalAt(Vec3{Z: 100}), WithoutFallback())
	require.ErrorIs(t, err, ErrTimeout)

	assert.Len(t, nav.calls, 1, "fallback disabled must not invoke the planner")
	stats := p.Stats()
	assert.Equal(t, uint64(1), stats.Timeouts)
	assert.Equal(t, uint64(0), stats.FallbackRetries)
	assert.Equal(t, uint64(1), stats.Failures)
}

func TestGotoUnreachableNeverRetried(t *testing.T) {
	p, nav, _, _ := newTestPilot(Config{})
	scripted := fmt.Errorf("no route into the void: %w", ErrUnreachable)
	nav.script = []error{scripted}

	err := p.Goto(context.Background(), GoalAt(Vec3{Z: 100}))
	require.ErrorIs(t, err, ErrUnreachable)
	assert.Equal(t, scripted, err, "non-timeout failures must surface unchanged")

	assert.Len(t, nav.calls, 1, "unreachable must not trigger the planner")
	stats := p.Stats()
	assert.Equal(t, uint64(0), stats.Timeouts, "unreachable is not timeout bookkeeping")
	assert.Equal(t, uint64(1), stats.Failures)
}

func TestGotoPredictorSkipsDirectAfterTimeouts(t *testing.T) {
	p, nav, pub, _ := newTestPilot(Config{})
	nav.script = []error{ErrTimeout, ErrTimeout, ErrTimeout, ErrTimeout}

	// Four timeouts at an unremarkable distance prime the history.
	for i := 0; i < 4; i++ {
		err := p.Goto(context.Background(), GoalAt(Vec3{Z: 100}), WithoutFallback())
		require.ErrorIs(t, err, ErrTimeout)
	}
	require.Len(t, nav.calls, 4)

	// 250 units with more than 3 timeouts on record: no direct attempt.
	err := p.Goto(context.Background(), GoalAt(Vec3{Z: 250}))
	require.NoError(t, err)

	require.Len(t, nav.calls, 12, "7 hops + final approach, no direct call")
	assert.Equal(t, 5.0, nav.calls[4].goal.Tolerance, "first post-priming call must be a hop")
	assert.Equal(t, 2.0, nav.calls[11].goal.Tolerance)

	stats := p.Stats()
	assert.Equal(t, uint64(1), stats.PredictedTimeouts)
	assert.Equal(t, uint64(1), stats.PlannerRuns)
	assert.Equal(t, uint64(0), stats.FallbackRetries)

	predicted := pub.ofType(loggingnav.EventTimeoutPredicted)
	require.Len(t, predicted, 1)
	payload, ok := predicted[0].Payload.(loggingnav.TimeoutPredictedPayload)
	require.True(t, ok)
	assert.Equal(t, 250.0, payload.Distance)
	assert.Equal(t, uint64(4), payload.Timeouts)
}

func TestGotoPredictorProjectionClause(t *testing.T) {
	p, nav, _, _ := newTestPilot(Config{})
	nav.cost = 8 * time.Second

	// One 8s success puts the windowed average at 8s.
	require.NoError(t, p.Goto(context.Background(), GoalAt(Vec3{Z: 100})))
	require.Len(t, nav.calls, 1)

	// 250 units at 8s per 50 units projects 40s, past the 30s ceiling.
	require.NoError(t, p.Goto(context.Background(), GoalAt(Vec3{Z: 350})))

	require.Len(t, nav.calls, 9, "prime + 7 hops + final approach")
	assert.Equal(t, 5.0, nav.calls[1].goal.Tolerance, "projection veto must skip the direct attempt")
	assert.Equal(t, uint64(1), p.Stats().PredictedTimeouts)
}

func TestGotoWithoutCacheSkipsLookup(t *testing.T) {
	p, nav, _, _ := newTestPilot(Config{})
	goal := GoalAt(Vec3{Z: 100})

	require.NoError(t, p.Goto(context.Background(), goal))
	nav.pos = Vec3{}

	require.NoError(t, p.Goto(context.Background(), goal, WithoutCache()))

	require.Len(t, nav.calls, 2, "second request must go direct, not replay")
	assert.Equal(t, 0.0, nav.calls[1].goal.Tolerance)

	stats := p.Stats()
	assert.Equal(t, uint64(0), stats.CacheHits)
	assert.Equal(t, uint64(1), stats.CacheMisses, "only the first request consulted the cache")
	assert.Equal(t, uint64(2), stats.DirectSuccesses)
	assert.Equal(t, 1, stats.CachedPaths, "direct success still refreshes the memo")
}

func TestReplayFinalTimeoutTriggersFallback(t *testing.T) {
	p, nav, _, _ := newTestPilot(Config{})
	goal := GoalAt(Vec3{Z: 100})

	require.NoError(t, p.Goto(context.Background(), goal))
	nav.pos = Vec3{}
	// Replay reaches all three hops, then the final approach times out. The
	// single fallback run starts 25 units out, so it is final-approach only.
	nav.script = []error{nil, nil, nil, ErrTimeout}

	err := p.Goto(context.Background(), goal)
	require.NoError(t, err)

	require.Len(t, nav.calls, 6, "prime + 4 replay calls + 1 fallback final approach")
	stats := p.Stats()
	assert.Equal(t, uint64(1), stats.Timeouts)
	assert.Equal(t, uint64(1), stats.CacheReplays)
	assert.Equal(t, uint64(1), stats.FallbackRetries)
	assert.Equal(t, uint64(1), stats.PlannerRuns)
	assert.Equal(t, 1, stats.TimingSamples, "replay outcomes never feed the duration window")
}

func TestGotoTimeoutOption(t *testing.T) {
	t.Run("explicit override", func(t *testing.T) {
		p, nav, _, _ := newTestPilot(Config{})
		require.NoError(t, p.Goto(context.Background(), GoalNear(Vec3{Z: 10}, 1.5), WithTimeout(3*time.Second)))
		assert.Equal(t, 3*time.Second, nav.lastCall(t).timeout)
		assert.Equal(t, 1.5, nav.lastCall(t).goal.Tolerance, "request tolerance must reach the navigator")
	})

	t.Run("configured default", func(t *testing.T) {
		p, nav, _, _ := newTestPilot(Config{GotoTimeout: 7 * time.Second})
		require.NoError(t, p.Goto(context.Background(), GoalAt(Vec3{Z: 10})))
		assert.Equal(t, 7*time.Second, nav.lastCall(t).timeout)
	})

	t.Run("non-positive override ignored", func(t *testing.T) {
		p, nav, _, _ := newTestPilot(Config{})
		require.NoError(t, p.Goto(context.Background(), GoalAt(Vec3{Z: 10}), WithTimeout(-time.Second)))
		assert.Equal(t, 20*time.Second, nav.lastCall(t).timeout)
	})
}

func TestGotoLifecycleEventsShareTrace(t *testing.T) {
	p, _, pub, _ := newTestPilot(Config{AgentID: "miner-7"})

	require.NoError(t, p.Goto(context.Background(), GoalAt(Vec3{Z: 100})))

	started := pub.ofType(loggingnav.EventGotoStarted)
	stored := pub.ofType(loggingnav.EventRouteCacheStored)
	discovered := pub.ofType(loggingnav.EventChunkDiscovered)
	completed := pub.ofType(loggingnav.EventGotoCompleted)
	require.Len(t, started, 1)
	require.Len(t, stored, 1)
	require.Len(t, discovered, 1)
	require.Len(t, completed, 1)

	trace := started[0].TraceID
	require.NotEmpty(t, trace)
	assert.Equal(t, trace, stored[0].TraceID)
	assert.Equal(t, trace, discovered[0].TraceID)
	assert.Equal(t, trace, completed[0].TraceID)
	assert.Equal(t, "miner-7", completed[0].Actor.ID)
}

func TestGotoFailurePublishesFailedEvent(t *testing.T) {
	p, nav, pub, _ := newTestPilot(Config{})
	nav.script = []error{ErrUnreachable}

	err := p.Goto(context.Background(), GoalAt(Vec3{Z: 100}))
	require.Error(t, err)

	failed := pub.ofType(loggingnav.EventGotoFailed)
	require.Len(t, failed, 1)
	payload, ok := failed[0].Payload.(loggingnav.GotoFailedPayload)
	require.True(t, ok)
	assert.Equal(t, ErrUnreachable.Error(), payload.Reason)
	assert.Equal(t, 100.0, payload.Distance)
	assert.Empty(t, pub.ofType(loggingnav.EventGotoCompleted))
}

func TestFreshPilotStatsAreZero(t *testing.T) {
	p, _, _, _ := newTestPilot(Config{})
	if diff := cmp.Diff(Stats{}, p.Stats()); diff != "" {
		t.Fatalf("fresh pilot stats mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorClassification(t *testing.T) {
	wrapped := fmt.Errorf("hop 3: %w", ErrTimeout)
	if !errors.Is(wrapped, ErrTimeout) {
		t.Fatalf("expected wrapped timeout to classify as ErrTimeout")
	}
	if errors.Is(wrapped, ErrUnreachable) {
		t.Fatalf("timeout must not classify as unreachable")
	}
}
