package ecs

// EntitySet is a sparse set of entity handles with O(1) add, remove and
// membership. Capacity grows with the highest slot id seen, there is no
// fixed maximum entity count.
type EntitySet struct {
	dense  []Entity
	sparse []int
}

func (s *EntitySet) Has(e Entity) bool {
	id := int(e.id())
	if s == nil || id <= 0 || id-1 >= len(s.sparse) {
		return false
	}
	idx := s.sparse[id-1]
	return idx >= 0 && idx < len(s.dense) && s.dense[idx] == e
}

// Add inserts e. It reports whether e was newly added.
func (s *EntitySet) Add(e Entity) bool {
	id := int(e.id())
	if s == nil || id <= 0 || s.Has(e) {
		return false
	}
	for id-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	s.dense = append(s.dense, e)
	s.sparse[id-1] = len(s.dense) - 1
	return true
}

// Remove deletes e. It reports whether e was present.
func (s *EntitySet) Remove(e Entity) bool {
	if s == nil || !s.Has(e) {
		return false
	}
	id := int(e.id())
	idx := s.sparse[id-1]
	last := len(s.dense) - 1
	lastEnt := s.dense[last]
	s.dense[idx] = lastEnt
	s.sparse[int(lastEnt.id())-1] = idx
	s.dense = s.dense[:last]
	s.sparse[id-1] = -1
	return true
}

// Clear empties the set while keeping its allocations.
func (s *EntitySet) Clear() {
	if s == nil {
		return
	}
	for _, e := range s.dense {
		s.sparse[int(e.id())-1] = -1
	}
	s.dense = s.dense[:0]
}

func (s *EntitySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}

// Entities returns the members in insertion order, modulo removals.
func (s *EntitySet) Entities() []Entity {
	if s == nil {
		return nil
	}
	return s.dense
}
