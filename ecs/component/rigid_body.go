package component

import "github.com/jakecoffman/cp"

type BodyType int

const (
	BodyStatic BodyType = iota
	BodyDynamic
	BodyKinematic
)

func (t BodyType) String() string {
	switch t {
	case BodyStatic:
		return "static"
	case BodyDynamic:
		return "dynamic"
	case BodyKinematic:
		return "kinematic"
	default:
		return "unknown"
	}
}

// ShapeType tags the geometry a RigidBody caches vertices for.
type ShapeType int

const (
	ShapeBox ShapeType = iota
	ShapeCircle
	// ShapeLine is reserved. No narrow-phase routine handles it.
	ShapeLine
)

// RigidBody stores per-entity dynamics state.
//
// InverseMass is 1/Mass for Dynamic bodies and exactly 0 otherwise.
// TransformedVertices are valid only after the current tick's transform sync.
type RigidBody struct {
	Velocity        cp.Vector
	AngularVelocity float64
	Type            BodyType

	Force        cp.Vector
	Acceleration cp.Vector

	Density        float64
	Mass           float64
	InverseMass    float64
	Inertia        float64
	InverseInertia float64
	Restitution    float64
	Area           float64

	Shape               ShapeType
	Vertices            []cp.Vector
	TransformedVertices []cp.Vector

	TransformUpdateRequired bool
}

// IsDynamic reports whether the body responds to impulses.
func (rb *RigidBody) IsDynamic() bool {
	return rb != nil && rb.Type == BodyDynamic
}

var RigidBodyComponent = NewComponent[RigidBody]()
