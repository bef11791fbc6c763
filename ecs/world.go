package ecs

import "github.com/milk9111/rigid2d/ecs/component"

// World owns entities and their components.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and retires its handle.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns all live entities in creation order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return append([]Entity(nil), w.entities.live...)
}

// AddComponent attaches or replaces a component value.
func (w *World) AddComponent(e Entity, kind component.Kind, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if kind == nil || kind.ID() == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

// GetComponent returns the raw component value for e.
func (w *World) GetComponent(e Entity, kind component.Kind) (any, bool) {
	if w == nil || kind == nil {
		return nil, false
	}
	store := w.store(kind.ID(), false)
	if !store.Has(e) {
		return nil, false
	}
	return store.Get(e), true
}

// HasComponent reports whether e carries a component of kind.
func (w *World) HasComponent(e Entity, kind component.Kind) bool {
	if w == nil || kind == nil {
		return false
	}
	return w.store(kind.ID(), false).Has(e)
}

// RemoveComponent detaches a component. It reports whether one was present.
func (w *World) RemoveComponent(e Entity, kind component.Kind) bool {
	if w == nil || kind == nil {
		return false
	}
	return w.store(kind.ID(), false).Remove(e)
}

// Query returns the live entities that carry every kind.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	// iterate smallest set
	smallest := 0
	for i, s := range sets {
		if s.Len() < sets[smallest].Len() {
			smallest = i
		}
	}
	out := make([]Entity, 0, sets[smallest].Len())
	for _, e := range sets[smallest].Entities() {
		match := true
		for i, s := range sets {
			if i != smallest && !s.Has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// First returns any entity carrying kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	if w == nil || kind == nil {
		return 0, false
	}
	ents := w.store(kind.ID(), false).Entities()
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if s, ok := w.stores[id]; ok {
		return s
	}
	if !create {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s := &SparseSet{}
	w.stores[id] = s
	return s
}
