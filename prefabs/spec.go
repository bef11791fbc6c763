package prefabs

import (
	"fmt"
	"os"

	"github.com/milk9111/rigid2d/physics"
	"gopkg.in/yaml.v3"
)

// PhysicsFile is the default physics config prefab.
const PhysicsFile = "physics.yaml"

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type DebugSpec struct {
	ShowColliders bool `yaml:"show_colliders"`
	ShowGrid      bool `yaml:"show_grid"`
	ShowVelocity  bool `yaml:"show_velocity"`
	ShowContacts  bool `yaml:"show_contacts"`
}

// PhysicsSpec configures the physics and collision systems.
type PhysicsSpec struct {
	Grid         physics.GridConfig `yaml:"grid"`
	CullWithGrid bool               `yaml:"cull_with_grid"`
	Gravity      VectorSpec         `yaml:"gravity"`
	TimeStep     float64            `yaml:"time_step"`
	Substeps     int                `yaml:"substeps"`
	Resolver     string             `yaml:"resolver"`
	Debug        DebugSpec          `yaml:"debug"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadPhysicsSpec loads the embedded (or disk override) physics config.
func LoadPhysicsSpec() (*PhysicsSpec, error) {
	spec, err := LoadSpec[PhysicsSpec](PhysicsFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", PhysicsFile, err)
	}
	return &spec, nil
}

// LoadPhysicsSpecFile reads a physics config from an arbitrary path.
func LoadPhysicsSpecFile(path string) (*PhysicsSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", path, err)
	}
	var spec PhysicsSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", path, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", path, err)
	}
	return &spec, nil
}

// Validate checks the values that have no safe fallback.
func (s PhysicsSpec) Validate() error {
	if err := s.Grid.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}
	if s.TimeStep < 0 {
		return fmt.Errorf("%w: negative time_step %v", ErrInvalidSpec, s.TimeStep)
	}
	if s.Substeps < 0 {
		return fmt.Errorf("%w: negative substeps %d", ErrInvalidSpec, s.Substeps)
	}
	switch s.Resolver {
	case "", "linear", "rotation":
	default:
		return fmt.Errorf("%w: unknown resolver %q", ErrInvalidSpec, s.Resolver)
	}
	return nil
}
