// Package geom holds the ground-plane vector math shared by the simulation.
package geom

import "math"

// Vec2 is a position or direction on the ground plane (world X and Z).
type Vec2 struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

func V(x, z float64) Vec2 { return Vec2{X: x, Z: z} }

func (a Vec2) Add(b Vec2) Vec2      { return Vec2{a.X + b.X, a.Z + b.Z} }
func (a Vec2) Sub(b Vec2) Vec2      { return Vec2{a.X - b.X, a.Z - b.Z} }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Z * s} }
func (a Vec2) Len() float64         { return math.Hypot(a.X, a.Z) }
func (a Vec2) Dist(b Vec2) float64  { return a.Sub(b).Len() }
func (a Vec2) IsZero() bool         { return a.X == 0 && a.Z == 0 }
func (a Vec2) Heading() float64     { return math.Atan2(a.X, a.Z) }

// DistSq is the squared distance, for range checks without a sqrt.
func (a Vec2) DistSq(b Vec2) float64 {
	d := a.Sub(b)
	return d.X*d.X + d.Z*d.Z
}

// Normalize returns the unit vector in a's direction, or zero for a zero vector.
func (a Vec2) Normalize() Vec2 {
	l := a.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Z / l}
}

// MoveToward steps from a toward target by at most maxStep without overshooting.
func (a Vec2) MoveToward(target Vec2, maxStep float64) Vec2 {
	d := target.Sub(a)
	l := d.Len()
	if l <= maxStep || l == 0 {
		return target
	}
	return a.Add(d.Scale(maxStep / l))
}

// FromAngle returns the unit vector for a heading in radians.
func FromAngle(rad float64) Vec2 {
	return Vec2{math.Sin(rad), math.Cos(rad)}
}
