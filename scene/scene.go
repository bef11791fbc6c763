// Package scene saves and loads the physics state of a world as YAML.
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
	"gopkg.in/yaml.v3"
)

var ErrNoEntities = errors.New("scene: document has no entities")

type entityDoc struct {
	Transform component.Transform  `yaml:"transform"`
	RigidBody *component.RigidBody `yaml:"rigid_body,omitempty"`
	Collider  *component.Collider  `yaml:"collider,omitempty"`
	Camera    *component.Camera    `yaml:"camera,omitempty"`
}

type document struct {
	Entities []entityDoc `yaml:"entities"`
}

// Save writes every entity that has a Transform plus a RigidBody, Collider or
// Camera.
func Save(w *ecs.World, out io.Writer) error {
	var doc document
	for _, e := range ecs.Query(w, component.TransformComponent.Kind()) {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		ed := entityDoc{Transform: *t}
		if rb, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind()); ok {
			ed.RigidBody = rb
		}
		if c, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
			ed.Collider = c
		}
		if cam, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok {
			ed.Camera = cam
		}
		if ed.RigidBody == nil && ed.Collider == nil && ed.Camera == nil {
			continue
		}
		doc.Entities = append(doc.Entities, ed)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("scene: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("scene: encode: %w", err)
	}
	return nil
}

// Load creates one entity per document entry and returns them in order.
func Load(w *ecs.World, in io.Reader) ([]ecs.Entity, error) {
	var doc document
	if err := yaml.NewDecoder(in).Decode(&doc); err != nil {
		return nil, fmt.Errorf("scene: decode: %w", err)
	}
	if len(doc.Entities) == 0 {
		return nil, ErrNoEntities
	}

	created := make([]ecs.Entity, 0, len(doc.Entities))
	for i := range doc.Entities {
		e, err := loadEntity(w, i, doc.Entities[i])
		if err != nil {
			return created, err
		}
		created = append(created, e)
	}
	return created, nil
}

// loadEntity builds one document entry. A failed add destroys the entity so
// the world never holds a partial one.
func loadEntity(w *ecs.World, i int, ed entityDoc) (ecs.Entity, error) {
	steps := []func(ecs.Entity) error{
		func(e ecs.Entity) error {
			t := ed.Transform
			if err := ecs.Add(w, e, component.TransformComponent.Kind(), &t); err != nil {
				return fmt.Errorf("scene: entity %d: add transform: %w", i, err)
			}
			return nil
		},
	}
	if ed.RigidBody != nil {
		steps = append(steps, func(e ecs.Entity) error {
			if err := ecs.Add(w, e, component.RigidBodyComponent.Kind(), ed.RigidBody); err != nil {
				return fmt.Errorf("scene: entity %d: add rigid body: %w", i, err)
			}
			return nil
		})
	}
	if ed.Collider != nil {
		steps = append(steps, func(e ecs.Entity) error {
			if err := ecs.Add(w, e, component.ColliderComponent.Kind(), ed.Collider); err != nil {
				return fmt.Errorf("scene: entity %d: add collider: %w", i, err)
			}
			return nil
		})
	}
	if ed.Camera != nil {
		steps = append(steps, func(e ecs.Entity) error {
			if err := ecs.Add(w, e, component.CameraComponent.Kind(), ed.Camera); err != nil {
				return fmt.Errorf("scene: entity %d: add camera: %w", i, err)
			}
			return nil
		})
	}
	return ecs.Build(w, steps...)
}

// SaveFile writes the scene to path, replacing any existing file.
func SaveFile(w *ecs.World, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("scene: create %s: %w", path, err)
	}
	if err := Save(w, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// LoadFile reads a scene from path into w.
func LoadFile(w *ecs.World, path string) ([]ecs.Entity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(w, f)
}
