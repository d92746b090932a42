package navigation

import (
	"context"

	"mineflow/bot/logging"
)

const (
	// EventGotoStarted is emitted when a navigation request enters the dispatcher.
	EventGotoStarted logging.EventType = "navigation.goto_started"
	// EventGotoCompleted is emitted when a navigation request ends successfully.
	EventGotoCompleted logging.EventType = "navigation.goto_completed"
	// EventGotoFailed is emitted when a navigation request ends in an error.
	EventGotoFailed logging.EventType = "navigation.goto_failed"
	// EventTimeoutPredicted is emitted when the timing history vetoes a direct attempt.
	EventTimeoutPredicted logging.EventType = "navigation.timeout_predicted"
	// EventHopSkipped is emitted when an intermediate hop fails and the plan continues.
	EventHopSkipped logging.EventType = "navigation.hop_skipped"
	// EventChunkDiscovered is emitted the first time a chunk is marked visited.
	EventChunkDiscovered logging.EventType = "navigation.chunk_discovered"
	// EventRouteCacheHit is emitted when a cached route is replayed.
	EventRouteCacheHit logging.EventType = "cache.route_hit"
	// EventRouteCacheStored is emitted when a fresh route is memoized.
	EventRouteCacheStored logging.EventType = "cache.route_stored"
	// EventWaypointRegistered is emitted when a named waypoint is added or overwritten.
	EventWaypointRegistered logging.EventType = "waypoint.registered"
	// EventWaypointRemoved is emitted when a named waypoint is deleted.
	EventWaypointRemoved logging.EventType = "waypoint.removed"
)

// Goto outcomes recorded on EventGotoCompleted.
const (
	OutcomeDirect  = "direct"
	OutcomeCache   = "cache"
	OutcomePlanner = "planner"
)

// Point mirrors a world position in event payloads without tying the logging
// tree to the geometry package.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// GotoStartedPayload captures the request parameters as the dispatcher sees them.
type GotoStartedPayload struct {
	Target        Point   `json:"target"`
	Distance      float64 `json:"distance"`
	TimeoutMillis int64   `json:"timeoutMillis"`
	UseCache      bool    `json:"useCache"`
	Fallback      bool    `json:"fallback"`
}

// GotoStarted publishes a debug event at the top of a navigation request.
func GotoStarted(ctx context.Context, pub logging.Publisher, actor logging.EntityRef, trace string, payload GotoStartedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventGotoStarted,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryNavigation,
		Payload:  payload,
		TraceID:  trace,
	})
}

// GotoCompletedPayload records how a request succeeded and how long it took.
type GotoCompletedPayload struct {
	Outcome        string  `json:"outcome"`
	DurationMillis int64   `json:"durationMillis"`
	Distance       float64 `json:"distance"`
}

// GotoCompleted publishes the success event for a navigation request.
func GotoCompleted(ctx context.Context, pub logging.Publisher, actor logging.EntityRef, trace string, payload GotoCompletedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventGotoCompleted,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryNavigation,
		Payload:  payload,
		TraceID:  trace,
	})
}

// GotoFailedPayload records the terminal error of a navigation request.
type GotoFailedPayload struct {
	Reason   string  `json:"reason"`
	Distance float64 `json:"distance"`
}

// GotoFailed publishes the failure event for a navigation request.
func GotoFailed(ctx context.Context, pub logging.Publisher, actor logging.EntityRef, trace string, payload GotoFailedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventGotoFailed,
		Actor:    actor,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryNavigation,
		Payload:  payload,
		TraceID:  trace,
	})
}

// TimeoutPredictedPayload explains why the direct attempt was skipped.
type TimeoutPredictedPayload struct {
	Distance        float64 `json:"distance"`
	Timeouts        uint64  `json:"timeouts"`
	ProjectedMillis int64   `json:"projectedMillis"`
}

// TimeoutPredicted publishes the predictor's veto of a direct attempt.
func TimeoutPredicted(ctx context.Context, pub logging.Publisher, actor logging.EntityRef, trace string, payload TimeoutPredictedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventTimeoutPredicted,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryNavigation,
		Payload:  payload,
		TraceID:  trace,
	})
}

// HopSkippedPayload identifies which intermediate hop failed and why.
type HopSkippedPayload struct {
	Index  int    `json:"index"`
	Total  int    `json:"total"`
	Target Point  `json:"target"`
	Reason string `json:"reason"`
}

// HopSkipped publishes a warning for a failed intermediate hop. The plan
// continues; this event is the only trace the miss leaves besides the report.
func HopSkipped(ctx context.Context, pub logging.Publisher, actor logging.EntityRef, trace string, payload HopSkippedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventHopSkipped,
		Actor:    actor,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryNavigation,
		Payload:  payload,
		TraceID:  trace,
	})
}

// ChunkDiscoveredPayload identifies a newly visited chunk column.
type ChunkDiscoveredPayload struct {
	ChunkX int `json:"chunkX"`
	ChunkZ int `json:"chunkZ"`
	Total  int `json:"total"`
}

// ChunkDiscovered publishes the first visit to a chunk.
func ChunkDiscovered(ctx context.Context, pub logging.Publisher, actor logging.EntityRef, trace string, payload ChunkDiscoveredPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventChunkDiscovered,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryNavigation,
		Payload:  payload,
		TraceID:  trace,
	})
}

// RouteCachePayload sizes the route involved in a cache hit or store.
type RouteCachePayload struct {
	Waypoints int     `json:"waypoints"`
	Distance  float64 `json:"distance"`
}

// RouteCacheHit publishes a replayed-route event.
func RouteCacheHit(ctx context.Context, pub logging.Publisher, actor logging.EntityRef, trace string, payload RouteCachePayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventRouteCacheHit,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryCache,
		Payload:  payload,
		TraceID:  trace,
	})
}

// RouteCacheStored publishes a memoized-route event.
func RouteCacheStored(ctx context.Context, pub logging.Publisher, actor logging.EntityRef, trace string, payload RouteCachePayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventRouteCacheStored,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryCache,
		Payload:  payload,
		TraceID:  trace,
	})
}

// WaypointPayload names a registry entry and its position.
type WaypointPayload struct {
	Name     string `json:"name"`
	Position Point  `json:"position"`
}

// WaypointRegistered publishes a registry upsert.
func WaypointRegistered(ctx context.Context, pub logging.Publisher, actor logging.EntityRef, payload WaypointPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventWaypointRegistered,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryNavigation,
		Payload:  payload,
	})
}

// WaypointRemoved publishes a registry deletion.
func WaypointRemoved(ctx context.Context, pub logging.Publisher, actor logging.EntityRef, payload WaypointPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventWaypointRemoved,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryNavigation,
		Payload:  payload,
	})
}

func publish(ctx context.Context, pub logging.Publisher, event logging.Event) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, event)
}
