// Package physics holds the geometry, narrow-phase, contact and impulse
// routines of the collision pipeline, plus the viewport-sized ImplicitGrid.
//
// World space is screen oriented: +X right, +Y down, rotations in radians.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Epsilon is the tolerance used when comparing contact distances.
const Epsilon = 0.0005

// fallbackAxis is the separation direction of exactly coincident shapes.
var fallbackAxis = cp.Vector{X: 1, Y: 0}

// CreateBoxVertices returns the four corners of a width x height box around
// the origin, clockwise from top-left: top-left, top-right, bottom-right,
// bottom-left.
func CreateBoxVertices(width, height float64) []cp.Vector {
	hw := math.Abs(width) / 2
	hh := math.Abs(height) / 2
	return []cp.Vector{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}
}

// TransformVertices rotates each local vertex by angle about the origin and
// translates it to center. dst is reused when it has the right length.
func TransformVertices(dst, local []cp.Vector, center cp.Vector, angle float64) []cp.Vector {
	if len(dst) != len(local) {
		dst = make([]cp.Vector, len(local))
	}
	rot := cp.ForAngle(angle)
	for i, v := range local {
		dst[i] = center.Add(v.Rotate(rot))
	}
	return dst
}

// normalize returns v scaled to unit length, or false for a zero vector.
func normalize(v cp.Vector) (cp.Vector, bool) {
	l := v.Length()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return cp.Vector{}, false
	}
	return v.Mult(1 / l), true
}

func projectVertices(vertices []cp.Vector, axis cp.Vector) (min, max float64) {
	min = math.MaxFloat64
	max = -math.MaxFloat64
	for _, v := range vertices {
		p := v.Dot(axis)
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	return min, max
}

// PointSegmentDistance returns the point of segment ab closest to p and the
// squared distance between them.
func PointSegmentDistance(p, a, b cp.Vector) (cp.Vector, float64) {
	ab := b.Sub(a)
	lenSq := ab.LengthSq()
	if lenSq == 0 {
		return a, p.DistanceSq(a)
	}
	d := p.Sub(a).Dot(ab) / lenSq
	var closest cp.Vector
	switch {
	case d <= 0:
		closest = a
	case d >= 1:
		closest = b
	default:
		closest = a.Add(ab.Mult(d))
	}
	return closest, p.DistanceSq(closest)
}

// closestPointOnPolygon returns the boundary point of the polygon nearest p.
func closestPointOnPolygon(p cp.Vector, vertices []cp.Vector) (cp.Vector, float64) {
	best := math.MaxFloat64
	var closest cp.Vector
	for i := range vertices {
		c, distSq := PointSegmentDistance(p, vertices[i], vertices[(i+1)%len(vertices)])
		if distSq < best {
			best = distSq
			closest = c
		}
	}
	return closest, best
}

// pointInPolygon reports whether p lies strictly inside a convex polygon of
// either winding.
func pointInPolygon(p cp.Vector, vertices []cp.Vector) bool {
	if len(vertices) < 3 {
		return false
	}
	sign := 0
	for i := range vertices {
		a := vertices[i]
		b := vertices[(i+1)%len(vertices)]
		c := b.Sub(a).Cross(p.Sub(a))
		switch {
		case c > 0:
			if sign < 0 {
				return false
			}
			sign = 1
		case c < 0:
			if sign > 0 {
				return false
			}
			sign = -1
		default:
			return false
		}
	}
	return true
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

func nearlyEqualVector(a, b cp.Vector) bool {
	return a.DistanceSq(b) < Epsilon*Epsilon
}

// VerticesBB returns the axis-aligned bounds of vertices. B is the minimum Y
// and T the maximum Y.
func VerticesBB(vertices []cp.Vector) cp.BB {
	if len(vertices) == 0 {
		return cp.BB{}
	}
	bb := cp.BB{L: vertices[0].X, B: vertices[0].Y, R: vertices[0].X, T: vertices[0].Y}
	for _, v := range vertices[1:] {
		bb.L = math.Min(bb.L, v.X)
		bb.R = math.Max(bb.R, v.X)
		bb.B = math.Min(bb.B, v.Y)
		bb.T = math.Max(bb.T, v.Y)
	}
	return bb
}
