package ecs

import "github.com/milk9111/rigid2d/ecs/component"

func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

// Build creates an entity and runs each step against it in order. When a
// step fails the entity is destroyed before the error is returned.
func Build(w *World, steps ...func(Entity) error) (Entity, error) {
	e := w.CreateEntity()
	for _, step := range steps {
		if err := step(e); err != nil {
			w.DestroyEntity(e)
			return 0, err
		}
	}
	return e, nil
}

func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

func Entities(w *World) []Entity {
	return w.Entities()
}

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if value == nil {
		return component.ErrNilComponent
	}
	return w.AddComponent(e, kind, value)
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.RemoveComponent(e, kind)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.HasComponent(e, kind)
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	value, ok := w.GetComponent(e, kind)
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	if !ok {
		return nil, false
	}
	return cast, true
}

// ForEach calls fn for every entity carrying kind. The entity list is
// snapshotted first so fn may add or remove components.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	store := w.store(kind.ID(), false)
	ents := append([]Entity(nil), store.Entities()...)
	for _, e := range ents {
		if v, ok := store.Get(e).(*T); ok {
			fn(e, v)
		}
	}
}

func Query(w *World, kinds ...component.Kind) []Entity {
	return w.Query(kinds...)
}

func First(w *World, kind component.Kind) (Entity, bool) {
	return w.First(kind)
}
