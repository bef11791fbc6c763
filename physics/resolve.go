package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/ecs/component"
)

// SeparateColliders pushes the two transforms apart by normal*depth, normal
// pointing from A to B. A non-Dynamic side stays put and the other side takes
// the whole vector; two Dynamic bodies split it evenly. It reports which
// sides moved.
func SeparateColliders(ta, tb *component.Transform, ra, rb *component.RigidBody, normal cp.Vector, depth float64) (movedA, movedB bool) {
	if ta == nil || tb == nil || depth <= 0 {
		return false, false
	}
	mtv := normal.Mult(depth)
	dynA := ra.IsDynamic()
	dynB := rb.IsDynamic()
	switch {
	case dynA && dynB:
		half := mtv.Mult(0.5)
		ta.Translate(half.Neg())
		tb.Translate(half)
		return true, true
	case dynA:
		ta.Translate(mtv.Neg())
		return true, false
	case dynB:
		tb.Translate(mtv)
		return false, true
	default:
		return false, false
	}
}

// ResolveCollision applies one linear impulse along the manifold normal,
// ignoring rotation. The lower restitution of the pair is used. Separating
// pairs and pairs with no inverse mass are left untouched.
func ResolveCollision(m *Manifold) {
	if m == nil || m.BodyA == nil || m.BodyB == nil {
		return
	}
	a, b := m.BodyA, m.BodyB
	relative := b.Velocity.Sub(a.Velocity)
	velAlongNormal := relative.Dot(m.Normal)
	if velAlongNormal > 0 {
		return
	}
	invMassSum := a.InverseMass + b.InverseMass
	if invMassSum <= 0 {
		return
	}
	e := math.Min(a.Restitution, b.Restitution)
	j := -(1 + e) * velAlongNormal / invMassSum
	impulse := m.Normal.Mult(j)
	a.Velocity = a.Velocity.Sub(impulse.Mult(a.InverseMass))
	b.Velocity = b.Velocity.Add(impulse.Mult(b.InverseMass))
}

// ResolveCollisionWithRotation distributes the impulse across the manifold
// contacts, including the angular term of each contact arm. Impulses are all
// computed from the incoming velocities before any is applied.
func ResolveCollisionWithRotation(m *Manifold) {
	if m == nil || m.BodyA == nil || m.BodyB == nil || m.ContactCount == 0 {
		return
	}
	a, b := m.BodyA, m.BodyB
	if a.InverseMass+b.InverseMass <= 0 {
		return
	}
	e := math.Min(a.Restitution, b.Restitution)
	count := m.ContactCount

	var impulses [2]cp.Vector
	var armsA, armsB [2]cp.Vector
	applied := false
	for i := 0; i < count; i++ {
		ra := m.Contacts[i].Sub(m.CenterA)
		rb := m.Contacts[i].Sub(m.CenterB)
		armsA[i], armsB[i] = ra, rb

		raPerp := ra.Perp()
		rbPerp := rb.Perp()
		relative := b.Velocity.Add(rbPerp.Mult(b.AngularVelocity)).
			Sub(a.Velocity.Add(raPerp.Mult(a.AngularVelocity)))
		contactVel := relative.Dot(m.Normal)
		if contactVel > 0 {
			continue
		}

		raPerpDotN := raPerp.Dot(m.Normal)
		rbPerpDotN := rbPerp.Dot(m.Normal)
		denom := a.InverseMass + b.InverseMass +
			raPerpDotN*raPerpDotN*a.InverseInertia +
			rbPerpDotN*rbPerpDotN*b.InverseInertia
		if denom <= 0 {
			continue
		}
		j := -(1 + e) * contactVel / denom / float64(count)
		impulses[i] = m.Normal.Mult(j)
		applied = true
	}
	if !applied {
		return
	}

	for i := 0; i < count; i++ {
		impulse := impulses[i]
		a.Velocity = a.Velocity.Add(impulse.Neg().Mult(a.InverseMass))
		a.AngularVelocity += -armsA[i].Cross(impulse) * a.InverseInertia
		b.Velocity = b.Velocity.Add(impulse.Mult(b.InverseMass))
		b.AngularVelocity += armsB[i].Cross(impulse) * b.InverseInertia
	}
}
