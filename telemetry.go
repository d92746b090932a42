package bot

import "sync/atomic"

type telemetryCounters struct {
	requests          atomic.Uint64
	directSuccesses   atomic.Uint64
	cacheReplays      atomic.Uint64
	plannerRuns       atomic.Uint64
	fallbackRetries   atomic.Uint64
	predictedTimeouts atomic.Uint64
	hopsReached       atomic.Uint64
	hopsSkipped       atomic.Uint64
	failures          atomic.Uint64
}

type telemetrySnapshot struct {
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

func newTelemetryCounters() *telemetryCounters {
	return &telemetryCounters{}
}

func (t *telemetryCounters) RecordRequest() {
	t.requests.Add(1)
}

func (t *telemetryCounters) RecordDirectSuccess() {
	t.directSuccesses.Add(1)
}

func (t *telemetryCounters) RecordCacheReplay() {
	t.cacheReplays.Add(1)
}

func (t *telemetryCounters) RecordPlannerRun() {
	t.plannerRuns.Add(1)
}

func (t *telemetryCounters) RecordFallbackRetry() {
	t.fallbackRetries.Add(1)
}

func (t *telemetryCounters) RecordPredictedTimeout() {
	t.predictedTimeouts.Add(1)
}

func (t *telemetryCounters) RecordHopReached() {
	t.hopsReached.Add(1)
}

func (t *telemetryCounters) RecordHopSkipped() {
	t.hopsSkipped.Add(1)
}

func (t *telemetryCounters) RecordFailure() {
	t.failures.Add(1)
}

func (t *telemetryCounters) Snapshot() telemetrySnapshot {
	return telemetrySnapshot{
		Requests:          t.requests.Load(),
		DirectSuccesses:   t.directSuccesses.Load(),
		CacheReplays:      t.cacheReplays.Load(),
		PlannerRuns:       t.plannerRuns.Load(),
		FallbackRetries:   t.fallbackRetries.Load(),
		PredictedTimeouts: t.predictedTimeouts.Load(),
		HopsReached:       t.hopsReached.Load(),
		HopsSkipped:       t.hopsSkipped.Load(),
		Failures:          t.failures.Load(),
	}
}
