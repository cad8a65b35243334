package components

import "math"

// Position is a world position in arena units.
type Position struct {
	X, Y float64
}

// Velocity is a heading vector; creatures keep it at unit length while moving.
type Velocity struct {
	X, Y float64
}

// Dist returns the Euclidean distance between two positions.
func Dist(a, b Position) float64 {
	return math.Sqrt(DistSq(a, b))
}

// DistSq returns the squared Euclidean distance between two positions.
func DistSq(a, b Position) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// Len returns the magnitude of the velocity.
func (v Velocity) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}
