package bot

import (
	"context"
	"time"
)

// Goal describes where a navigation request should end and how close counts
// as arrived. Tolerance zero demands the exact block; positive values accept
// any position within that many units of the target.
type Goal struct {
	Position  Vec3
	Tolerance float64
}

// GoalAt returns an exact-arrival goal for the position.
func GoalAt(p Vec3) Goal {
	return Goal{Position: p}
}

// GoalNear returns a goal satisfied anywhere within tolerance units of the
// position.
func GoalNear(p Vec3, tolerance float64) Goal {
	return Goal{Position: p, Tolerance: tolerance}
}

// Navigator is the point-to-point movement capability the pilot orchestrates.
// It is treated as an opaque, possibly slow, possibly failing black box; the
// pilot never inspects its search strategy.
//
// Goto must block until the agent settles: arrived, failed, or out of time.
// Errors are classified with errors.Is against ErrTimeout and ErrUnreachable;
// implementations should wrap those sentinels. The timeout bounds wall-clock
// duration of the attempt and is the only cancellation mechanism the pilot
// relies on; ctx is passed through for the navigator's own use.
type Navigator interface {
	Position() Vec3
	Goto(ctx context.Context, goal Goal, timeout time.Duration) error
}
