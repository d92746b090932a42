package bot

import (
	"context"
	"fmt"
	"sort"

	loggingnav "mineflow/bot/logging/navigation"
)

// AddWaypoint registers a named location, overwriting any previous entry with
// the same name. Registered waypoints never expire. The only validation is
// that the name is non-empty.
func (p *Pilot) AddWaypoint(name string, pos Vec3) error {
	if name == "" {
		return ErrWaypointName
	}
	p.mu.Lock()
	p.waypoints[name] = pos
	p.mu.Unlock()
	loggingnav.WaypointRegistered(context.Background(), p.pub, p.actor, loggingnav.WaypointPayload{
		Name:     name,
		Position: pointAt(pos),
	})
	return nil
}

// GotoWaypoint resolves a registered name and navigates to it. Unknown names
// fail with ErrWaypointNotFound before the navigator is touched.
func (p *Pilot) GotoWaypoint(ctx context.Context, name string, opts ...GotoOption) error {
	p.mu.Lock()
	pos, ok := p.waypoints[name]
	p.mu.Unlock()
	if !ok {
		return fmt.Errorf("waypoint %q: %w", name, ErrWaypointNotFound)
	}
	return p.Goto(ctx, GoalAt(pos), opts...)
}

// Waypoint reports the position registered under the name.
func (p *Pilot) Waypoint(name string) (Vec3, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pos, ok := p.waypoints[name]
	return pos, ok
}

// RemoveWaypoint deletes a registered name and reports whether it existed.
func (p *Pilot) RemoveWaypoint(name string) bool {
	p.mu.Lock()
	pos, ok := p.waypoints[name]
	if ok {
		delete(p.waypoints, name)
	}
	p.mu.Unlock()
	if ok {
		loggingnav.WaypointRemoved(context.Background(), p.pub, p.actor, loggingnav.WaypointPayload{
			Name:     name,
			Position: pointAt(pos),
		})
	}
	return ok
}

// WaypointNames returns the registered names in sorted order.
func (p *Pilot) WaypointNames() []string {
	p.mu.Lock()
	names := make([]string, 0, len(p.waypoints))
	for name := range p.waypoints {
		names = append(names, name)
	}
	p.mu.Unlock()
	sort.Strings(names)
	return names
}
