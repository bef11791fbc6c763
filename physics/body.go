package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/ecs/component"
)

// NewBoxBody builds a box body of the given local size. Mass is density
// times area.
func NewBoxBody(bodyType component.BodyType, width, height, density, restitution float64) component.RigidBody {
	rb := component.RigidBody{
		Type:                    bodyType,
		Density:                 density,
		Restitution:             clampRestitution(restitution),
		Area:                    math.Abs(width * height),
		Shape:                   component.ShapeBox,
		Vertices:                CreateBoxVertices(width, height),
		TransformUpdateRequired: true,
	}
	SetMassFromDensity(&rb, rb.Area)
	rb.Inertia = rb.Mass * (width*width + height*height) / 12
	RefreshInverseMass(&rb)
	return rb
}

// NewCircleBody builds a circle body of the given radius.
func NewCircleBody(bodyType component.BodyType, radius, density, restitution float64) component.RigidBody {
	rb := component.RigidBody{
		Type:        bodyType,
		Density:     density,
		Restitution: clampRestitution(restitution),
		Area:        math.Pi * radius * radius,
		Shape:       component.ShapeCircle,
	}
	SetMassFromDensity(&rb, rb.Area)
	rb.Inertia = rb.Mass * radius * radius / 2
	RefreshInverseMass(&rb)
	return rb
}

// StaticBody returns the immovable stand-in used for colliders that carry no
// RigidBody. Callers keep it as a local value. Its restitution is 1 so the
// pair's minimum is always the real body's.
func StaticBody() component.RigidBody {
	return component.RigidBody{Type: component.BodyStatic, Restitution: 1}
}

// SetMassFromDensity sets Area and Mass from the body's Density. Inertia is
// left to the shape constructors.
func SetMassFromDensity(rb *component.RigidBody, area float64) {
	if rb == nil {
		return
	}
	rb.Area = math.Abs(area)
	rb.Mass = rb.Area * rb.Density
	RefreshInverseMass(rb)
}

// SetMass overrides the mass, rescaling inertia to keep the same shape.
func SetMass(rb *component.RigidBody, mass float64) {
	if rb == nil {
		return
	}
	if rb.Mass > 0 {
		rb.Inertia *= mass / rb.Mass
	}
	rb.Mass = mass
	RefreshInverseMass(rb)
}

// SetBodyType changes the body type and recomputes the inverse values.
func SetBodyType(rb *component.RigidBody, t component.BodyType) {
	if rb == nil {
		return
	}
	rb.Type = t
	RefreshInverseMass(rb)
}

// RefreshInverseMass keeps InverseMass and InverseInertia consistent with the
// body type: reciprocals for Dynamic bodies, exactly 0 otherwise.
func RefreshInverseMass(rb *component.RigidBody) {
	if rb == nil {
		return
	}
	rb.InverseMass = 0
	rb.InverseInertia = 0
	if rb.Type != component.BodyDynamic {
		return
	}
	if rb.Mass > 0 {
		rb.InverseMass = 1 / rb.Mass
	}
	if rb.Inertia > 0 {
		rb.InverseInertia = 1 / rb.Inertia
	}
}

func clampRestitution(e float64) float64 {
	return math.Max(0, math.Min(1, e))
}

// UpdateBoxBody recomputes the transformed vertex cache of a box body when
// its transform changed, then clears the flag.
func UpdateBoxBody(rb *component.RigidBody, t *component.Transform) {
	if rb == nil || t == nil || rb.Shape != component.ShapeBox {
		return
	}
	if !rb.TransformUpdateRequired && len(rb.TransformedVertices) == len(rb.Vertices) {
		return
	}
	scale := scaleOf(t)
	if len(rb.TransformedVertices) != len(rb.Vertices) {
		rb.TransformedVertices = make([]cp.Vector, len(rb.Vertices))
	}
	rot := cp.ForAngle(t.Rotation)
	pos := t.Position()
	for i, v := range rb.Vertices {
		scaled := cp.Vector{X: v.X * scale.X, Y: v.Y * scale.Y}
		rb.TransformedVertices[i] = pos.Add(scaled.Rotate(rot))
	}
	rb.TransformUpdateRequired = false
}

// BodyFollowTransform resyncs the body's cached geometry with t. Only box
// bodies cache vertices.
func BodyFollowTransform(rb *component.RigidBody, t *component.Transform) {
	if rb == nil || t == nil {
		return
	}
	if rb.Shape != component.ShapeBox {
		rb.TransformUpdateRequired = false
		return
	}
	rb.TransformUpdateRequired = true
	UpdateBoxBody(rb, t)
}
