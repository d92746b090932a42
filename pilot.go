// Package bot adapts "go to X" requests to a point-to-point navigator that
// may be slow or fail outright on long routes. A Pilot predicts timeout risk
// from empirical timing history, memoizes traveled routes with TTL and
// capacity bounds, splits long requests into fixed-interval waypoint chains,
// and remembers named locations and visited chunks along the way.
package bot

import (
	"context"
	"sync"

	"mineflow/bot/internal/chunks"
	"mineflow/bot/internal/geo"
	"mineflow/bot/internal/pathcache"
	"mineflow/bot/internal/timing"
	"mineflow/bot/logging"
	loggingnav "mineflow/bot/logging/navigation"
)

// Pilot owns the adaptive navigation state of a single agent. Construct one
// Pilot per agent and keep it for the agent's lifetime: timing history, the
// route memo, and chunk memory are process-scoped and never persisted.
//
// Navigation is single-threaded by contract. The read-only accessors (Stats,
// VisitedChunks, LastHopReport, Waypoint lookups) are safe to call from a
// monitoring goroutine while a navigation is in flight.
type Pilot struct {
	nav   Navigator
	cfg   Config
	pub   logging.Publisher
	clock logging.Clock
	actor logging.EntityRef

	tracker   *timing.Tracker
	cache     *pathcache.Cache
	visited   *chunks.Set
	telemetry *telemetryCounters

	mu         sync.Mutex
	waypoints  map[string]Vec3
	lastReport HopReport
}

// NewPilot wires a pilot around the given navigator. nav must be non-nil.
// Zero-value config fields fall back to defaults.
func NewPilot(nav Navigator, cfg Config) *Pilot {
	cfg = cfg.normalized()
	return &Pilot{
		nav:       nav,
		cfg:       cfg,
		pub:       cfg.Publisher,
		clock:     cfg.Clock,
		actor:     logging.EntityRef{ID: cfg.AgentID, Kind: logging.EntityKindAgent},
		tracker:   timing.NewTracker(),
		cache:     pathcache.New(cfg.CacheTTL, cfg.CacheCapacity, pathcache.WithClock(cfg.Clock.Now)),
		visited:   chunks.NewSet(),
		telemetry: newTelemetryCounters(),
		waypoints: make(map[string]Vec3),
	}
}

// LastHopReport returns the per-hop outcomes of the most recent staged route,
// from either the planner or a cached-route replay.
func (p *Pilot) LastHopReport() HopReport {
	p.mu.Lock()
	defer p.mu.Unlock()
	report := p.lastReport
	report.Hops = append([]Hop(nil), p.lastReport.Hops...)
	return report
}

func (p *Pilot) setLastReport(report HopReport) {
	p.mu.Lock()
	p.lastReport = report
	p.mu.Unlock()
}

// VisitedChunks returns the chunks the agent has touched, ordered by X then Z.
func (p *Pilot) VisitedChunks() []ChunkCoord {
	return p.visited.Coords()
}

// markVisited records the chunk containing pos and publishes a discovery
// event on first visit.
func (p *Pilot) markVisited(ctx context.Context, pos Vec3, trace string) {
	if !p.visited.Mark(pos) {
		return
	}
	c := chunks.At(pos)
	loggingnav.ChunkDiscovered(ctx, p.pub, p.actor, trace, loggingnav.ChunkDiscoveredPayload{
		ChunkX: c.X,
		ChunkZ: c.Z,
		Total:  p.visited.Len(),
	})
}

// PurgeExpiredRoutes drops expired cache entries and reports how many were
// removed. Expiry is otherwise lazy; nothing calls this implicitly.
func (p *Pilot) PurgeExpiredRoutes() int {
	return p.cache.PurgeExpired()
}

func pointAt(v geo.Vec3) loggingnav.Point {
	return loggingnav.Point{X: v.X, Y: v.Y, Z: v.Z}
}
