package bot

import (
	"context"
	"fmt"
	"math"

	"mineflow/bot/internal/geo"
	loggingnav "mineflow/bot/logging/navigation"
)

// HopResult classifies one sub-request of a staged route.
type HopResult int

const (
	HopReached HopResult = iota
	HopSkipped
)

func (r HopResult) String() string {
	switch r {
	case HopReached:
		return "reached"
	case HopSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Hop pairs an intermediate waypoint with its outcome.
type Hop struct {
	Target Vec3
	Result HopResult
}

// HopReport accumulates the per-hop outcomes of the most recent staged
// route, whether it came from the planner or from a cached-route replay.
// Skipped hops never fail the route; only the final approach can.
type HopReport struct {
	Hops         []Hop
	FinalReached bool
}

// Reached counts intermediate hops the navigator settled on.
func (r HopReport) Reached() int {
	n := 0
	for _, h := range r.Hops {
		if h.Result == HopReached {
			n++
		}
	}
	return n
}

// Skipped counts intermediate hops that failed and were passed over.
func (r HopReport) Skipped() int {
	n := 0
	for _, h := range r.Hops {
		if h.Result == HopSkipped {
			n++
		}
	}
	return n
}

// decompose slices the straight segment from one position to another into
// floor(d/spacing) evenly spaced intermediate waypoints, interpolated at
// t = i/(n+1). A segment shorter than the spacing yields none.
func (p *Pilot) decompose(from, to Vec3) []Vec3 {
	d := geo.Dist(from, to)
	n := int(math.Floor(d / p.cfg.WaypointSpacing))
	if n <= 0 {
		return nil
	}
	points := make([]Vec3, 0, n)
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n+1)
		points = append(points, geo.Lerp(from, to, t))
	}
	return points
}

// chunkGoto drives the agent toward target through fixed-interval waypoints.
// Long straight-line requests degrade the navigator's per-call search badly;
// bounding each hop keeps every sub-request cheap and yields partial progress
// instead of one large atomic failure.
func (p *Pilot) chunkGoto(ctx context.Context, target Vec3, trace string) error {
	p.telemetry.RecordPlannerRun()
	from := p.nav.Position()
	report, err := p.driveRoute(ctx, p.decompose(from, target), target, trace)
	p.setLastReport(report)
	if err != nil {
		return fmt.Errorf("chunk route: %w", err)
	}
	return nil
}

// driveRoute issues one short sub-request per intermediate waypoint, then a
// tighter final approach to the target itself. A failed intermediate hop is
// logged, reported, and passed over; every attempted hop marks its chunk
// visited regardless of outcome. The final approach's error is returned.
func (p *Pilot) driveRoute(ctx context.Context, intermediates []Vec3, target Vec3, trace string) (HopReport, error) {
	report := HopReport{}
	if len(intermediates) > 0 {
		report.Hops = make([]Hop, 0, len(intermediates))
	}

	for i, wp := range intermediates {
		err := p.nav.Goto(ctx, Goal{Position: wp, Tolerance: p.cfg.HopTolerance}, p.cfg.HopTimeout)
		p.markVisited(ctx, wp, trace)
		if err != nil {
			report.Hops = append(report.Hops, Hop{Target: wp, Result: HopSkipped})
			p.telemetry.RecordHopSkipped()
			loggingnav.HopSkipped(ctx, p.pub, p.actor, trace, loggingnav.HopSkippedPayload{
				Index:  i,
				Total:  len(intermediates),
				Target: pointAt(wp),
				Reason: err.Error(),
			})
			continue
		}
		report.Hops = append(report.Hops, Hop{Target: wp, Result: HopReached})
		p.telemetry.RecordHopReached()
	}

	err := p.nav.Goto(ctx, Goal{Position: target, Tolerance: p.cfg.FinalTolerance}, p.cfg.FinalTimeout)
	if err != nil {
		return report, err
	}
	report.FinalReached = true
	p.markVisited(ctx, target, trace)
	return report, nil
}
