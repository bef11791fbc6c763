package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
	"github.com/milk9111/rigid2d/physics"
)

// DefaultDensity is used when a BodySpec leaves Density at zero.
const DefaultDensity = 1.0

// BodySpec describes the dynamics of a spawned body.
type BodySpec struct {
	Type        component.BodyType
	Density     float64
	Restitution float64
	Velocity    cp.Vector
	Rotation    float64
}

func (s BodySpec) density() float64 {
	if s.Density <= 0 {
		return DefaultDensity
	}
	return s.Density
}

// addStep adapts ecs.Add to an ecs.Build step, labelling the error.
func addStep[T any](w *ecs.World, kind component.ComponentKind[T], value *T, label string) func(ecs.Entity) error {
	return func(e ecs.Entity) error {
		if err := ecs.Add(w, e, kind, value); err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
		return nil
	}
}

// NewBox spawns a box with a Transform, RigidBody and box Collider. The
// transform keeps unit scale; the size lives in the collider and the body.
func NewBox(w *ecs.World, pos cp.Vector, width, height float64, spec BodySpec) (ecs.Entity, error) {
	tr := &component.Transform{X: pos.X, Y: pos.Y, ScaleX: 1, ScaleY: 1, Rotation: spec.Rotation}

	rb := physics.NewBoxBody(spec.Type, width, height, spec.density(), spec.Restitution)
	rb.Velocity = spec.Velocity
	physics.UpdateBoxBody(&rb, tr)

	col := &component.Collider{}
	col.EnableBox(cp.Vector{X: width, Y: height})
	physics.UpdateCollider(col, tr)

	return ecs.Build(w,
		addStep(w, component.TransformComponent.Kind(), tr, "box: add transform"),
		addStep(w, component.RigidBodyComponent.Kind(), &rb, "box: add rigid body"),
		addStep(w, component.ColliderComponent.Kind(), col, "box: add collider"),
	)
}

// NewCircle spawns a circle with a Transform, RigidBody and circle Collider.
func NewCircle(w *ecs.World, pos cp.Vector, radius float64, spec BodySpec) (ecs.Entity, error) {
	tr := &component.Transform{X: pos.X, Y: pos.Y, ScaleX: 1, ScaleY: 1, Rotation: spec.Rotation}

	rb := physics.NewCircleBody(spec.Type, radius, spec.density(), spec.Restitution)
	rb.Velocity = spec.Velocity

	col := &component.Collider{}
	col.EnableCircle(radius)
	physics.UpdateCollider(col, tr)

	return ecs.Build(w,
		addStep(w, component.TransformComponent.Kind(), tr, "circle: add transform"),
		addStep(w, component.RigidBodyComponent.Kind(), &rb, "circle: add rigid body"),
		addStep(w, component.ColliderComponent.Kind(), col, "circle: add collider"),
	)
}

// NewStaticBox spawns collision geometry with no RigidBody, such as a wall.
// The collision system treats it as an immovable body.
func NewStaticBox(w *ecs.World, pos cp.Vector, width, height float64) (ecs.Entity, error) {
	tr := &component.Transform{X: pos.X, Y: pos.Y, ScaleX: 1, ScaleY: 1}

	col := &component.Collider{}
	col.EnableBox(cp.Vector{X: width, Y: height})
	physics.UpdateCollider(col, tr)

	return ecs.Build(w,
		addStep(w, component.TransformComponent.Kind(), tr, "static box: add transform"),
		addStep(w, component.ColliderComponent.Kind(), col, "static box: add collider"),
	)
}

// NewCamera spawns an active camera centered on pos.
func NewCamera(w *ecs.World, pos cp.Vector, zoom float64) (ecs.Entity, error) {
	tr := &component.Transform{X: pos.X, Y: pos.Y, ScaleX: 1, ScaleY: 1}
	return ecs.Build(w,
		addStep(w, component.TransformComponent.Kind(), tr, "camera: add transform"),
		addStep(w, component.CameraComponent.Kind(), &component.Camera{Zoom: zoom, Active: true}, "camera: add camera"),
	)
}
