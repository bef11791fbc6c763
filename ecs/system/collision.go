package system

import (
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
	"github.com/milk9111/rigid2d/physics"
)

// ResolverMode selects the impulse resolver used by the narrow phase.
type ResolverMode int

const (
	ResolveWithRotation ResolverMode = iota
	ResolveLinear
)

func (m ResolverMode) String() string {
	if m == ResolveLinear {
		return "linear"
	}
	return "rotation"
}

// ParseResolverMode maps a config string to a mode; unknown values select
// the rotation-aware resolver.
func ParseResolverMode(s string) ResolverMode {
	if s == "linear" {
		return ResolveLinear
	}
	return ResolveWithRotation
}

// CollisionConfig tunes the collision pipeline.
type CollisionConfig struct {
	Resolver ResolverMode
	// CullWithGrid drops candidate pairs whose grid cells are disjoint.
	CullWithGrid bool
}

// ContactPair is a broad-phase candidate. A is processed as the first shape.
type ContactPair struct {
	A ecs.Entity
	B ecs.Entity
}

// CollisionSystem runs Step, BroadPhase and NarrowPhase once per Update.
type CollisionSystem struct {
	grid   *physics.ImplicitGrid
	config CollisionConfig

	pairs     []ContactPair
	manifolds []physics.Manifold

	colliding map[ecs.Entity]ecs.Entity
}

func NewCollisionSystem(grid *physics.ImplicitGrid, config CollisionConfig) *CollisionSystem {
	return &CollisionSystem{
		grid:      grid,
		config:    config,
		colliding: make(map[ecs.Entity]ecs.Entity),
	}
}

// Configure replaces the pipeline settings; they apply from the next Update.
func (cs *CollisionSystem) Configure(config CollisionConfig) {
	if cs == nil {
		return
	}
	cs.config = config
}

func (cs *CollisionSystem) Config() CollisionConfig {
	return cs.config
}

func (cs *CollisionSystem) Grid() *physics.ImplicitGrid {
	if cs == nil {
		return nil
	}
	return cs.grid
}

// Pairs returns the candidate pairs of the last BroadPhase.
func (cs *CollisionSystem) Pairs() []ContactPair {
	return cs.pairs
}

// Manifolds returns the manifolds built by the last NarrowPhase. Their body
// and collider references are only valid until the next Update, and BodyA or
// BodyB is nil for a side that has no RigidBody.
func (cs *CollisionSystem) Manifolds() []physics.Manifold {
	return cs.manifolds
}

func (cs *CollisionSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	cs.Step(w)
	cs.BroadPhase(w)
	cs.NarrowPhase(w)
	cs.emitEvents(w)
}

// Step syncs collider and body geometry with this tick's transforms, resets
// the collision flags and rebuilds the grid.
func (cs *CollisionSystem) Step(w *ecs.World) {
	ecs.ForEach(w, component.ColliderComponent.Kind(), func(e ecs.Entity, c *component.Collider) {
		c.IsColliding = false
		c.CollidingWith = 0
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			physics.UpdateCollider(c, t)
		}
	})
	ecs.ForEach(w, component.RigidBodyComponent.Kind(), func(e ecs.Entity, rb *component.RigidBody) {
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			physics.BodyFollowTransform(rb, t)
		}
	})

	if cs.grid != nil {
		cs.grid.ClearGrid()
		cs.grid.AddIntoCell(w)
	}
}

// BroadPhase enumerates every unordered pair of collidable entities where at
// least one side has a RigidBody.
func (cs *CollisionSystem) BroadPhase(w *ecs.World) {
	cs.pairs = cs.pairs[:0]
	ents := w.Query(component.ColliderComponent.Kind(), component.TransformComponent.Kind())
	for i := 0; i < len(ents); i++ {
		a := ents[i]
		hasA := ecs.Has(w, a, component.RigidBodyComponent.Kind())
		for j := i + 1; j < len(ents); j++ {
			b := ents[j]
			if !hasA && !ecs.Has(w, b, component.RigidBodyComponent.Kind()) {
				continue
			}
			if cs.culled(a, b) {
				continue
			}
			cs.pairs = append(cs.pairs, ContactPair{A: a, B: b})
		}
	}
}

// culled reports whether the grid proves a and b cannot touch. Only pairs
// fully inside the grid are ever culled.
func (cs *CollisionSystem) culled(a, b ecs.Entity) bool {
	if !cs.config.CullWithGrid || cs.grid == nil {
		return false
	}
	if cs.grid.Placement(a) != physics.GridInside || cs.grid.Placement(b) != physics.GridInside {
		return false
	}
	return !cs.grid.SharesCell(a, b)
}

// bodyRef is one side of a pair during the narrow phase.
type bodyRef struct {
	entity    ecs.Entity
	transform *component.Transform
	collider  *component.Collider
	body      *component.RigidBody
	// fallback backs body when the entity has no RigidBody.
	fallback component.RigidBody
}

func (cs *CollisionSystem) lookup(w *ecs.World, e ecs.Entity, ref *bodyRef) bool {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	c, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
	if !ok {
		return false
	}
	ref.entity = e
	ref.transform = t
	ref.collider = c
	if rb, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind()); ok {
		ref.body = rb
	} else {
		ref.fallback = physics.StaticBody()
		ref.body = &ref.fallback
	}
	return true
}

// NarrowPhase tests every candidate pair in broad-phase order and responds to
// each hit with separation, contact generation and impulse resolution.
func (cs *CollisionSystem) NarrowPhase(w *ecs.World) {
	cs.manifolds = cs.manifolds[:0]
	var a, b bodyRef
	for _, pair := range cs.pairs {
		if !cs.lookup(w, pair.A, &a) || !cs.lookup(w, pair.B, &b) {
			continue
		}
		cs.testPair(&a, &b)
	}
}

func (cs *CollisionSystem) testPair(a, b *bodyRef) {
	ca, cb := a.collider, b.collider

	if ca.Shapes.Has(component.ShapeMaskBox) && cb.Shapes.Has(component.ShapeMaskBox) {
		if ok, n, d := physics.IntersectPolygons(ca.Box.TransformedVertices, ca.Box.Center, cb.Box.TransformedVertices, cb.Box.Center); ok {
			c1, c2, count := physics.FindPolygonContactPoints(ca.Box.TransformedVertices, cb.Box.TransformedVertices)
			cs.respond(a, b, n, d, ca.Box.Center, cb.Box.Center, func(m *physics.Manifold) {
				m.SetContacts(c1, c2)
				m.ContactCount = count
			})
		}
	}

	if ca.Shapes.Has(component.ShapeMaskCircle) && cb.Shapes.Has(component.ShapeMaskBox) {
		if ok, n, d := physics.IntersectCirclePolygon(ca.Circle.Center, ca.Circle.Radius, cb.Box.TransformedVertices, cb.Box.Center); ok {
			contact := physics.FindCircleContactPoint(ca.Circle.Center, ca.Circle.Radius, n)
			cs.respond(a, b, n, d, ca.Circle.Center, cb.Box.Center, func(m *physics.Manifold) {
				m.SetContacts(contact)
			})
		}
	}

	if ca.Shapes.Has(component.ShapeMaskBox) && cb.Shapes.Has(component.ShapeMaskCircle) {
		// The circle routine reports circle->box; negate so the normal still
		// points from the first-processed shape to the second.
		if ok, n, d := physics.IntersectCirclePolygon(cb.Circle.Center, cb.Circle.Radius, ca.Box.TransformedVertices, ca.Box.Center); ok {
			n = n.Neg()
			contact := physics.FindCircleContactPoint(cb.Circle.Center, cb.Circle.Radius, n.Neg())
			cs.respond(a, b, n, d, ca.Box.Center, cb.Circle.Center, func(m *physics.Manifold) {
				m.SetContacts(contact)
			})
		}
	}

	if ca.Shapes.Has(component.ShapeMaskCircle) && cb.Shapes.Has(component.ShapeMaskCircle) {
		if ok, n, d := physics.IntersectCircles(ca.Circle.Center, ca.Circle.Radius, cb.Circle.Center, cb.Circle.Radius); ok {
			contact := physics.FindCircleContactPoint(ca.Circle.Center, ca.Circle.Radius, n)
			cs.respond(a, b, n, d, ca.Circle.Center, cb.Circle.Center, func(m *physics.Manifold) {
				m.SetContacts(contact)
			})
		}
	}
}

// respond handles one confirmed hit. Contacts are computed from the geometry
// the test ran against; the colliders are resynced after the transforms move.
func (cs *CollisionSystem) respond(a, b *bodyRef, normal cp.Vector, depth float64, centerA, centerB cp.Vector, contacts func(*physics.Manifold)) {
	a.collider.IsColliding = true
	a.collider.CollidingWith = uint64(b.entity)
	b.collider.IsColliding = true
	b.collider.CollidingWith = uint64(a.entity)

	m := physics.Manifold{
		BodyA:     a.body,
		BodyB:     b.body,
		ColliderA: a.collider,
		ColliderB: b.collider,
		CenterA:   centerA,
		CenterB:   centerB,
		Normal:    normal,
		Depth:     depth,
	}
	contacts(&m)

	movedA, movedB := physics.SeparateColliders(a.transform, b.transform, a.body, b.body, normal, depth)

	switch cs.config.Resolver {
	case ResolveLinear:
		physics.ResolveCollision(&m)
	default:
		physics.ResolveCollisionWithRotation(&m)
	}
	// Stand-in static bodies are reused by the next pair, so they are not
	// retained.
	if a.body == &a.fallback {
		m.BodyA = nil
	}
	if b.body == &b.fallback {
		m.BodyB = nil
	}
	cs.manifolds = append(cs.manifolds, m)

	if movedA {
		cs.resync(a)
	}
	if movedB {
		cs.resync(b)
	}
}

func (cs *CollisionSystem) resync(ref *bodyRef) {
	physics.UpdateCollider(ref.collider, ref.transform)
	if ref.body != &ref.fallback {
		physics.BodyFollowTransform(ref.body, ref.transform)
	}
}

// emitEvents pushes begin/end events for colliders whose flag changed. Begin
// events follow collider order and end events follow entity order.
func (cs *CollisionSystem) emitEvents(w *ecs.World) {
	events := w.Events()
	current := make(map[ecs.Entity]ecs.Entity, len(cs.colliding))
	ecs.ForEach(w, component.ColliderComponent.Kind(), func(e ecs.Entity, c *component.Collider) {
		if !c.IsColliding {
			return
		}
		other := ecs.Entity(c.CollidingWith)
		current[e] = other
		if _, was := cs.colliding[e]; !was {
			events.Push(ecs.Event{Type: ecs.EventTypeCollision, Data: ecs.CollisionEvent{Entity: e, Other: other, Kind: ecs.CollisionEventBegin}})
		}
	})
	var ended []ecs.Entity
	for e := range cs.colliding {
		if _, still := current[e]; !still {
			ended = append(ended, e)
		}
	}
	sort.Slice(ended, func(i, j int) bool { return ended[i] < ended[j] })
	for _, e := range ended {
		events.Push(ecs.Event{Type: ecs.EventTypeCollision, Data: ecs.CollisionEvent{Entity: e, Other: cs.colliding[e], Kind: ecs.CollisionEventEnd}})
	}
	cs.colliding = current
}
