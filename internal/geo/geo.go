// Package geo provides the small amount of vector math the navigation
// layer needs. Coordinates follow the world convention: X and Z span the
// horizontal plane, Y is vertical.
package geo

import "math"

// Vec3 represents a 3D point in world units.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Vec3) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dz := b.Z - a.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Lerp interpolates linearly from a to b. t=0 yields a, t=1 yields b;
// values outside [0,1] extrapolate along the same line.
func Lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

// FloorInt truncates a world coordinate toward negative infinity. Block and
// cell identities are derived this way so that negative coordinates bucket
// consistently with positive ones.
func FloorInt(v float64) int {
	return int(math.Floor(v))
}
