package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
	"github.com/milk9111/rigid2d/physics"
)

// DefaultTimeStep matches ebiten's default 60 ticks per second.
const DefaultTimeStep = 1.0 / 60.0

// PhysicsConfig tunes integration.
type PhysicsConfig struct {
	Gravity  cp.Vector
	TimeStep float64
	// Substeps splits each tick into this many integrate+collide passes.
	Substeps int
}

func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		Gravity:  cp.Vector{X: 0, Y: 980},
		TimeStep: DefaultTimeStep,
		Substeps: 1,
	}
}

// PhysicsSystem advances bodies and runs the collision pipeline after each
// substep.
type PhysicsSystem struct {
	config     PhysicsConfig
	collisions *CollisionSystem
}

func NewPhysicsSystem(config PhysicsConfig, collisions *CollisionSystem) *PhysicsSystem {
	ps := &PhysicsSystem{collisions: collisions}
	ps.Configure(config)
	return ps
}

// Configure replaces the integration settings. Non-positive values fall back
// to the defaults.
func (ps *PhysicsSystem) Configure(config PhysicsConfig) {
	if ps == nil {
		return
	}
	if config.TimeStep <= 0 {
		config.TimeStep = DefaultTimeStep
	}
	if config.Substeps < 1 {
		config.Substeps = 1
	}
	ps.config = config
}

func (ps *PhysicsSystem) Config() PhysicsConfig {
	return ps.config
}

func (ps *PhysicsSystem) Collisions() *CollisionSystem {
	if ps == nil {
		return nil
	}
	return ps.collisions
}

// Update advances one tick of TimeStep seconds.
func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.Advance(w, ps.config.TimeStep)
}

// Advance integrates dt seconds split into the configured substeps.
func (ps *PhysicsSystem) Advance(w *ecs.World, dt float64) {
	if ps == nil || w == nil || dt <= 0 {
		return
	}
	step := dt / float64(ps.config.Substeps)
	for i := 0; i < ps.config.Substeps; i++ {
		ps.integrate(w, step)
		if ps.collisions != nil {
			ps.collisions.Update(w)
		}
	}
}

func (ps *PhysicsSystem) integrate(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.RigidBodyComponent.Kind(), func(e ecs.Entity, rb *component.RigidBody) {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		physics.Integrate(rb, t, ps.config.Gravity, dt)
	})
}
