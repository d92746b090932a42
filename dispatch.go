package bot

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"mineflow/bot/internal/geo"
	loggingnav "mineflow/bot/logging/navigation"
)

// Goto navigates the agent to the goal. The dispatcher picks between a
// direct navigator call, a cached-route replay, and staged chunk navigation:
// requests the timing history flags as likely timeouts skip the direct
// attempt entirely, and a direct attempt that does time out is retried
// exactly once through the planner when fallback is enabled.
//
// Callers must serialize requests; a second Goto issued before the first
// resolves violates the single-agent contract.
func (p *Pilot) Goto(ctx context.Context, goal Goal, opts ...GotoOption) error {
	options := p.newGotoOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return p.dispatch(ctx, goal, options)
}

func (p *Pilot) dispatch(ctx context.Context, goal Goal, opts gotoOptions) error {
	trace := uuid.NewString()
	p.telemetry.RecordRequest()

	from := p.nav.Position()
	distance := geo.Dist(from, goal.Position)
	started := p.clock.Now()

	loggingnav.GotoStarted(ctx, p.pub, p.actor, trace, loggingnav.GotoStartedPayload{
		Target:        pointAt(goal.Position),
		Distance:      distance,
		TimeoutMillis: opts.timeout.Milliseconds(),
		UseCache:      opts.useCache,
		Fallback:      opts.fallback,
	})

	// History says a direct attempt at this distance would blow its budget;
	// stage the route instead of burning the full timeout first.
	if p.tracker.PredictTimeout(distance) {
		p.telemetry.RecordPredictedTimeout()
		loggingnav.TimeoutPredicted(ctx, p.pub, p.actor, trace, loggingnav.TimeoutPredictedPayload{
			Distance:        distance,
			Timeouts:        p.tracker.Timeouts(),
			ProjectedMillis: p.tracker.Projection(distance).Milliseconds(),
		})
		return p.finish(ctx, trace, distance, started, loggingnav.OutcomePlanner,
			p.chunkGoto(ctx, goal.Position, trace))
	}

	if opts.useCache {
		if route, ok := p.cache.Get(from, goal.Position); ok && len(route) > 0 {
			err := p.replay(ctx, route, distance, trace)
			if err == nil {
				return p.finish(ctx, trace, distance, started, loggingnav.OutcomeCache, nil)
			}
			if errors.Is(err, ErrTimeout) {
				p.tracker.RecordTimeout()
				if opts.fallback {
					p.telemetry.RecordFallbackRetry()
					return p.finish(ctx, trace, distance, started, loggingnav.OutcomePlanner,
						p.chunkGoto(ctx, goal.Position, trace))
				}
			}
			return p.finish(ctx, trace, distance, started, "", err)
		}
	}

	directStart := p.clock.Now()
	err := p.nav.Goto(ctx, goal, opts.timeout)
	if err == nil {
		p.tracker.RecordSuccess(p.clock.Now().Sub(directStart))
		route := append(p.decompose(from, goal.Position), goal.Position)
		p.cache.Put(from, goal.Position, route)
		loggingnav.RouteCacheStored(ctx, p.pub, p.actor, trace, loggingnav.RouteCachePayload{
			Waypoints: len(route),
			Distance:  distance,
		})
		p.markVisited(ctx, goal.Position, trace)
		p.telemetry.RecordDirectSuccess()
		return p.finish(ctx, trace, distance, started, loggingnav.OutcomeDirect, nil)
	}

	if errors.Is(err, ErrTimeout) {
		p.tracker.RecordTimeout()
		if opts.fallback {
			p.telemetry.RecordFallbackRetry()
			return p.finish(ctx, trace, distance, started, loggingnav.OutcomePlanner,
				p.chunkGoto(ctx, goal.Position, trace))
		}
	}
	return p.finish(ctx, trace, distance, started, "", err)
}

// replay drives a memoized route: every element but the last by the hop
// mechanism, the last (the original goal) by the tight final approach.
// Replays never contribute duration samples; hop timings say nothing about
// whole direct navigations.
func (p *Pilot) replay(ctx context.Context, route []Vec3, distance float64, trace string) error {
	p.telemetry.RecordCacheReplay()
	loggingnav.RouteCacheHit(ctx, p.pub, p.actor, trace, loggingnav.RouteCachePayload{
		Waypoints: len(route),
		Distance:  distance,
	})
	report, err := p.driveRoute(ctx, route[:len(route)-1], route[len(route)-1], trace)
	p.setLastReport(report)
	return err
}

// finish publishes the terminal event for a request and settles its error.
func (p *Pilot) finish(ctx context.Context, trace string, distance float64, started time.Time, outcome string, err error) error {
	if err != nil {
		p.telemetry.RecordFailure()
		loggingnav.GotoFailed(ctx, p.pub, p.actor, trace, loggingnav.GotoFailedPayload{
			Reason:   err.Error(),
			Distance: distance,
		})
		return err
	}
	loggingnav.GotoCompleted(ctx, p.pub, p.actor, trace, loggingnav.GotoCompletedPayload{
		Outcome:        outcome,
		DurationMillis: p.clock.Now().Sub(started).Milliseconds(),
		Distance:       distance,
	})
	return nil
}
