package bot

import "errors"

// Failure classes surfaced by the pilot. Callers and Navigator
// implementations classify with errors.Is; wrapped variants are fine.
var (
	// ErrTimeout marks a navigation attempt that did not settle within its
	// budget. The dispatcher converts exactly one direct-path timeout into a
	// staged retry when fallback is enabled.
	ErrTimeout = errors.New("navigation timed out")

	// ErrUnreachable marks a goal the navigator determined has no route.
	// Never retried: the staged planner drives the same navigator and would
	// fail identically.
	ErrUnreachable = errors.New("goal unreachable")

	// ErrWaypointNotFound marks a reference to an unregistered waypoint name.
	ErrWaypointNotFound = errors.New("waypoint not found")

	// ErrWaypointName rejects registration under an empty name.
	ErrWaypointName = errors.New("waypoint name must not be empty")
)
