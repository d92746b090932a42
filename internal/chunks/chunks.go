// Package chunks tracks which 16x16 world columns an agent has touched.
// Membership is keyed on the horizontal plane only; height never changes
// the column a position belongs to.
package chunks

import (
	"sort"
	"sync"

	"mineflow/bot/internal/geo"
)

// Size is the side length of a chunk in world units.
const Size = 16

// Coord identifies a chunk column by its floored chunk-space coordinates.
type Coord struct {
	X int
	Z int
}

// At returns the chunk containing the given world position. Floor division
// keeps negative coordinates in the correct column: x=-0.5 lands in chunk -1,
// not chunk 0.
func At(p geo.Vec3) Coord {
	return Coord{
		X: geo.FloorInt(p.X / Size),
		Z: geo.FloorInt(p.Z / Size),
	}
}

// Set records visited chunks for the lifetime of the process. Entries are
// never removed.
type Set struct {
	mu   sync.Mutex
	seen map[Coord]struct{}
}

// NewSet returns an empty visited-chunk set.
func NewSet() *Set {
	return &Set{seen: make(map[Coord]struct{})}
}

// Mark records the chunk containing p and reports whether it was new.
func (s *Set) Mark(p geo.Vec3) bool {
	c := At(p)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[c]; ok {
		return false
	}
	s.seen[c] = struct{}{}
	return true
}

// Visited reports whether the chunk has been marked.
func (s *Set) Visited(c Coord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[c]
	return ok
}

// Len returns the number of distinct chunks marked so far.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

// Coords returns a snapshot of the visited chunks, ordered by X then Z.
func (s *Set) Coords() []Coord {
	s.mu.Lock()
	out := make([]Coord, 0, len(s.seen))
	for c := range s.seen {
		out = append(out, c)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Z < out[j].Z
	})
	return out
}
