package bot

// Stats is a side-effect-free diagnostic snapshot of a pilot's adaptive
// state. Counter fields are cumulative since construction.
type Stats struct {
	CachedPaths       int    `json:"cachedPaths"`
	Waypoints         int    `json:"waypoints"`
	VisitedChunks     int    `json:"visitedChunks"`
	AverageTimeMillis int64  `json:"averageTimeMillis"`
	Timeouts          uint64 `json:"timeouts"`
	TimingSamples     int    `json:"timingSamples"`

	CacheHits      uint64 `json:"cacheHits"`
	CacheMisses    uint64 `json:"cacheMisses"`
	CacheEvictions uint64 `json:"cacheEvictions"`

	Requests          uint64 `json:"requests"`
	DirectSuccesses   uint64 `json:"directSuccesses"`
	CacheReplays      uint64 `json:"cacheReplays"`
	PlannerRuns       uint64 `json:"plannerRuns"`
	FallbackRetries   uint64 `json:"fallbackRetries"`
	PredictedTimeouts uint64 `json:"predictedTimeouts"`
	HopsReached       uint64 `json:"hopsReached"`
	HopsSkipped       uint64 `json:"hopsSkipped"`
	Failures          uint64 `json:"failures"`
}

// Stats assembles the snapshot. Safe to call while a navigation is in flight.
func (p *Pilot) Stats() Stats {
	p.mu.Lock()
	waypoints := len(p.waypoints)
	p.mu.Unlock()

	cacheStats := p.cache.Stats()
	counters := p.telemetry.Snapshot()

	return Stats{
		CachedPaths:       p.cache.Len(),
		Waypoints:         waypoints,
		VisitedChunks:     p.visited.Len(),
		AverageTimeMillis: p.tracker.Average().Milliseconds(),
		Timeouts:          p.tracker.Timeouts(),
		TimingSamples:     p.tracker.Samples(),

		CacheHits:      cacheStats.Hits,
		CacheMisses:    cacheStats.Misses,
		CacheEvictions: cacheStats.Evictions,

		Requests:          counters.Requests,
		DirectSuccesses:   counters.DirectSuccesses,
		CacheReplays:      counters.CacheReplays,
		PlannerRuns:       counters.PlannerRuns,
		FallbackRetries:   counters.FallbackRetries,
		PredictedTimeouts: counters.PredictedTimeouts,
		HopsReached:       counters.HopsReached,
		HopsSkipped:       counters.HopsSkipped,
		Failures:          counters.Failures,
	}
}
