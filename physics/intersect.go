package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// The intersection routines return a unit normal pointing from shape A to
// shape B and the penetration depth along it. Normal and depth are only
// meaningful when ok is true.

// IntersectPolygons runs the separating axis test over the edge normals of
// both convex polygons, A's edges first. On equal overlap the first axis
// encountered wins, which keeps results deterministic for a given vertex
// order.
func IntersectPolygons(verticesA []cp.Vector, centerA cp.Vector, verticesB []cp.Vector, centerB cp.Vector) (ok bool, normal cp.Vector, depth float64) {
	if len(verticesA) < 2 || len(verticesB) < 2 {
		return false, cp.Vector{}, 0
	}
	depth = math.MaxFloat64
	found := false

	for _, vertices := range [2][]cp.Vector{verticesA, verticesB} {
		for i := range vertices {
			edge := vertices[(i+1)%len(vertices)].Sub(vertices[i])
			axis, valid := normalize(edge.Perp())
			if !valid {
				continue
			}
			minA, maxA := projectVertices(verticesA, axis)
			minB, maxB := projectVertices(verticesB, axis)
			if minA >= maxB || minB >= maxA {
				return false, cp.Vector{}, 0
			}
			axisDepth := math.Min(maxB-minA, maxA-minB)
			if axisDepth < depth {
				depth = axisDepth
				normal = axis
				found = true
			}
		}
	}
	if !found {
		return false, cp.Vector{}, 0
	}

	if centerB.Sub(centerA).Dot(normal) < 0 {
		normal = normal.Neg()
	}
	return true, normal, depth
}

// IntersectCirclePolygon tests the circle (shape A) against a convex polygon
// (shape B). The closest boundary point decides the outcome. The normal
// runs from the circle toward the polygon, so a caller that processes the
// polygon first must negate it to keep first-to-second polarity.
func IntersectCirclePolygon(circleCenter cp.Vector, radius float64, vertices []cp.Vector, polygonCenter cp.Vector) (ok bool, normal cp.Vector, depth float64) {
	if len(vertices) < 2 || radius <= 0 {
		return false, cp.Vector{}, 0
	}
	closest, distSq := closestPointOnPolygon(circleCenter, vertices)
	inside := pointInPolygon(circleCenter, vertices)
	if !inside && distSq >= radius*radius {
		return false, cp.Vector{}, 0
	}

	dist := math.Sqrt(distSq)
	toCenter := circleCenter.Sub(closest)
	if n, valid := normalize(toCenter); valid {
		// closest->center points from polygon to circle; flip it to A->B.
		normal = n.Neg()
		if inside {
			normal = n
		}
	} else if n, valid := normalize(polygonCenter.Sub(circleCenter)); valid {
		normal = n
	} else {
		normal = fallbackAxis
	}

	if inside {
		depth = radius + dist
	} else {
		depth = radius - dist
	}
	return true, normal, depth
}

// IntersectCircles overlaps when the center distance is below the radius
// sum. Coincident centers separate along a fixed axis.
func IntersectCircles(centerA cp.Vector, radiusA float64, centerB cp.Vector, radiusB float64) (ok bool, normal cp.Vector, depth float64) {
	radii := radiusA + radiusB
	delta := centerB.Sub(centerA)
	dist := delta.Length()
	if dist >= radii {
		return false, cp.Vector{}, 0
	}
	normal, valid := normalize(delta)
	if !valid {
		normal = fallbackAxis
	}
	return true, normal, radii - dist
}
