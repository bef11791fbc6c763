package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/prefabs"
)

// ConfigsFromSpec converts a loaded physics prefab into system settings.
func ConfigsFromSpec(spec *prefabs.PhysicsSpec) (PhysicsConfig, CollisionConfig) {
	if spec == nil {
		return DefaultPhysicsConfig(), CollisionConfig{}
	}
	pc := PhysicsConfig{
		Gravity:  cp.Vector{X: spec.Gravity.X, Y: spec.Gravity.Y},
		TimeStep: spec.TimeStep,
		Substeps: spec.Substeps,
	}
	cc := CollisionConfig{
		Resolver:     ParseResolverMode(spec.Resolver),
		CullWithGrid: spec.CullWithGrid,
	}
	return pc, cc
}
