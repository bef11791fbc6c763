package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/ecs/component"
)

// Manifold describes one confirmed collision between shape A and shape B.
// It borrows the bodies and colliders for the current tick only.
type Manifold struct {
	BodyA     *component.RigidBody
	BodyB     *component.RigidBody
	ColliderA *component.Collider
	ColliderB *component.Collider

	// CenterA and CenterB are the shape centers the contact arms are measured from.
	CenterA cp.Vector
	CenterB cp.Vector

	Normal       cp.Vector
	Depth        float64
	Contacts     [2]cp.Vector
	ContactCount int
}

// SetContacts stores up to two contact points.
func (m *Manifold) SetContacts(points ...cp.Vector) {
	m.ContactCount = 0
	for _, p := range points {
		if m.ContactCount == len(m.Contacts) {
			break
		}
		m.Contacts[m.ContactCount] = p
		m.ContactCount++
	}
}

// FindPolygonContactPoints returns the one or two points where polygons A and
// B touch. Vertex against edge yields one point, edge against edge two.
func FindPolygonContactPoints(verticesA, verticesB []cp.Vector) (contact1, contact2 cp.Vector, count int) {
	minDistSq := math.MaxFloat64
	scan := func(points, edges []cp.Vector) {
		for _, p := range points {
			for i := range edges {
				point, distSq := PointSegmentDistance(p, edges[i], edges[(i+1)%len(edges)])
				switch {
				case nearlyEqual(distSq, minDistSq):
					if count == 1 && !nearlyEqualVector(point, contact1) {
						contact2 = point
						count = 2
					}
				case distSq < minDistSq:
					minDistSq = distSq
					contact1 = point
					count = 1
				}
			}
		}
	}
	scan(verticesB, verticesA)
	scan(verticesA, verticesB)
	return contact1, contact2, count
}

// FindCircleContactPoint returns the point on the circle surface facing the
// other shape.
func FindCircleContactPoint(center cp.Vector, radius float64, towardOther cp.Vector) cp.Vector {
	dir, ok := normalize(towardOther)
	if !ok {
		dir = fallbackAxis
	}
	return center.Add(dir.Mult(radius))
}
