package bot

import (
	"strings"
	"time"

	"mineflow/bot/logging"
)

const defaultAgentID = "agent"

const (
	defaultGotoTimeout     = 20 * time.Second
	defaultCacheTTL        = 5 * time.Minute
	defaultCacheCapacity   = 100
	defaultWaypointSpacing = 32.0
	defaultHopTimeout      = 15 * time.Second
	defaultHopTolerance    = 5.0
	defaultFinalTimeout    = 10 * time.Second
	defaultFinalTolerance  = 2.0
)

// Config captures the tunables of a pilot. The zero value is usable; every
// field falls back to its default when left unset.
type Config struct {
	// AgentID names the agent in published events.
	AgentID string

	// GotoTimeout bounds the direct navigation attempt.
	GotoTimeout time.Duration

	// CacheTTL and CacheCapacity bound the route memo.
	CacheTTL      time.Duration
	CacheCapacity int

	// WaypointSpacing is the distance between staged intermediate waypoints.
	WaypointSpacing float64

	// HopTimeout and HopTolerance govern intermediate hops of a staged route.
	HopTimeout   time.Duration
	HopTolerance float64

	// FinalTimeout and FinalTolerance govern the tight approach to the
	// actual target at the end of a staged route.
	FinalTimeout   time.Duration
	FinalTolerance float64

	// Publisher receives structured navigation events. Nil disables them.
	Publisher logging.Publisher

	// Clock supplies the time source for duration measurement and cache
	// expiry. Nil means the system clock.
	Clock logging.Clock
}

// normalized returns a config with defaults applied.
func (cfg Config) normalized() Config {
	normalized := cfg
	normalized.AgentID = strings.TrimSpace(normalized.AgentID)
	if normalized.AgentID == "" {
		normalized.AgentID = defaultAgentID
	}
	if normalized.GotoTimeout <= 0 {
		normalized.GotoTimeout = defaultGotoTimeout
	}
	if normalized.CacheTTL <= 0 {
		normalized.CacheTTL = defaultCacheTTL
	}
	if normalized.CacheCapacity <= 0 {
		normalized.CacheCapacity = defaultCacheCapacity
	}
	if normalized.WaypointSpacing <= 0 {
		normalized.WaypointSpacing = defaultWaypointSpacing
	}
	if normalized.HopTimeout <= 0 {
		normalized.HopTimeout = defaultHopTimeout
	}
	if normalized.HopTolerance <= 0 {
		normalized.HopTolerance = defaultHopTolerance
	}
	if normalized.FinalTimeout <= 0 {
		normalized.FinalTimeout = defaultFinalTimeout
	}
	if normalized.FinalTolerance <= 0 {
		normalized.FinalTolerance = defaultFinalTolerance
	}
	if normalized.Publisher == nil {
		normalized.Publisher = logging.NopPublisher()
	}
	if normalized.Clock == nil {
		normalized.Clock = logging.ClockFunc(time.Now)
	}
	return normalized
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		AgentID:         defaultAgentID,
		GotoTimeout:     defaultGotoTimeout,
		CacheTTL:        defaultCacheTTL,
		CacheCapacity:   defaultCacheCapacity,
		WaypointSpacing: defaultWaypointSpacing,
		HopTimeout:      defaultHopTimeout,
		HopTolerance:    defaultHopTolerance,
		FinalTimeout:    defaultFinalTimeout,
		FinalTolerance:  defaultFinalTolerance,
		Publisher:       logging.NopPublisher(),
		Clock:           logging.ClockFunc(time.Now),
	}
}
