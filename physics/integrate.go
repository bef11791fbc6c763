package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/ecs/component"
)

// Integrate advances one body by dt with semi-implicit Euler. Dynamic bodies
// accelerate by force*inverseMass plus gravity; Kinematic bodies keep their
// velocity; Static bodies never move. Accumulated force is cleared. It
// reports whether the transform changed.
func Integrate(rb *component.RigidBody, t *component.Transform, gravity cp.Vector, dt float64) bool {
	if rb == nil || t == nil || dt <= 0 {
		return false
	}
	switch rb.Type {
	case component.BodyDynamic:
		rb.Acceleration = rb.Force.Mult(rb.InverseMass).Add(gravity)
		rb.Velocity = rb.Velocity.Add(rb.Acceleration.Mult(dt))
	case component.BodyKinematic:
		rb.Acceleration = cp.Vector{}
	default:
		rb.Force = cp.Vector{}
		return false
	}
	rb.Force = cp.Vector{}
	if rb.Velocity == (cp.Vector{}) && rb.AngularVelocity == 0 {
		return false
	}
	t.Translate(rb.Velocity.Mult(dt))
	t.Rotation += rb.AngularVelocity * dt
	rb.TransformUpdateRequired = true
	return true
}

// ApplyForce accumulates a force for the next integration.
func ApplyForce(rb *component.RigidBody, force cp.Vector) {
	if rb == nil {
		return
	}
	rb.Force = rb.Force.Add(force)
}

// KineticEnergy returns the linear plus angular kinetic energy of rb.
func KineticEnergy(rb *component.RigidBody) float64 {
	if rb == nil || rb.Type != component.BodyDynamic {
		return 0
	}
	return 0.5*rb.Mass*rb.Velocity.LengthSq() + 0.5*rb.Inertia*rb.AngularVelocity*rb.AngularVelocity
}
