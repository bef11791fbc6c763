package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
	"github.com/milk9111/rigid2d/ecs/entity"
	"github.com/milk9111/rigid2d/physics"
)

var dynamic = entity.BodySpec{Type: component.BodyDynamic}

func mustBox(t *testing.T, w *ecs.World, x, y, size float64, spec entity.BodySpec) ecs.Entity {
	t.Helper()
	e, err := entity.NewBox(w, cp.Vector{X: x, Y: y}, size, size, spec)
	if err != nil {
		t.Fatalf("spawn box: %v", err)
	}
	return e
}

func mustCircle(t *testing.T, w *ecs.World, x, y, radius float64, spec entity.BodySpec) ecs.Entity {
	t.Helper()
	e, err := entity.NewCircle(w, cp.Vector{X: x, Y: y}, radius, spec)
	if err != nil {
		t.Fatalf("spawn circle: %v", err)
	}
	return e
}

func mustWall(t *testing.T, w *ecs.World, x, y, width, height float64) ecs.Entity {
	t.Helper()
	e, err := entity.NewStaticBox(w, cp.Vector{X: x, Y: y}, width, height)
	if err != nil {
		t.Fatalf("spawn wall: %v", err)
	}
	return e
}

func collider(t *testing.T, w *ecs.World, e ecs.Entity) *component.Collider {
	t.Helper()
	c, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no collider", e)
	}
	return c
}

func transform(t *testing.T, w *ecs.World, e ecs.Entity) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no transform", e)
	}
	return tr
}

func TestCollisionSystemBoxBox(t *testing.T) {
	w := ecs.NewWorld()
	a := mustBox(t, w, 0, 0, 10, dynamic)
	b := mustBox(t, w, 8, 0, 10, dynamic)

	cs := NewCollisionSystem(nil, CollisionConfig{})
	cs.Update(w)

	if len(cs.Pairs()) != 1 || len(cs.Manifolds()) != 1 {
		t.Fatalf("expected 1 pair and 1 manifold, got %d %d", len(cs.Pairs()), len(cs.Manifolds()))
	}
	m := cs.Manifolds()[0]
	if m.Normal != (cp.Vector{X: 1}) || math.Abs(m.Depth-2) > 1e-9 || m.ContactCount != 2 {
		t.Fatalf("unexpected manifold %+v", m)
	}

	ca, cb := collider(t, w, a), collider(t, w, b)
	if !ca.IsColliding || !cb.IsColliding {
		t.Fatalf("both colliders should be flagged")
	}
	if ca.CollidingWith != uint64(b) || cb.CollidingWith != uint64(a) {
		t.Fatalf("unexpected peers %v %v", ca.CollidingWith, cb.CollidingWith)
	}

	ta, tb := transform(t, w, a), transform(t, w, b)
	if math.Abs(ta.X+1) > 1e-9 || math.Abs(tb.X-9) > 1e-9 {
		t.Fatalf("expected an even split to -1 and 9, got %v %v", ta.X, tb.X)
	}
	if math.Abs(ca.Box.Center.X+1) > 1e-9 {
		t.Fatalf("collider must be resynced after separation, got %v", ca.Box.Center)
	}
}

func TestCollisionSystemMiss(t *testing.T) {
	moving := func(vx float64) entity.BodySpec {
		return entity.BodySpec{Type: component.BodyDynamic, Velocity: cp.Vector{X: vx}}
	}
	tests := []struct {
		name  string
		spawn func(t *testing.T, w *ecs.World) (ecs.Entity, ecs.Entity)
	}{
		{"box_box", func(t *testing.T, w *ecs.World) (ecs.Entity, ecs.Entity) {
			return mustBox(t, w, 0, 0, 10, moving(5)), mustBox(t, w, 50, 0, 10, moving(-5))
		}},
		{"circle_circle", func(t *testing.T, w *ecs.World) (ecs.Entity, ecs.Entity) {
			return mustCircle(t, w, 0, 0, 5, moving(5)), mustCircle(t, w, 50, 0, 5, moving(-5))
		}},
		{"box_circle", func(t *testing.T, w *ecs.World) (ecs.Entity, ecs.Entity) {
			return mustBox(t, w, 0, 0, 10, moving(5)), mustCircle(t, w, 50, 0, 5, moving(-5))
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			a, b := tc.spawn(t, w)
			beforeA, beforeB := *transform(t, w, a), *transform(t, w, b)
			bodyA, _ := ecs.Get(w, a, component.RigidBodyComponent.Kind())
			bodyB, _ := ecs.Get(w, b, component.RigidBodyComponent.Kind())
			velA, velB := bodyA.Velocity, bodyB.Velocity
			spinA, spinB := bodyA.AngularVelocity, bodyB.AngularVelocity

			cs := NewCollisionSystem(nil, CollisionConfig{})
			cs.Update(w)

			if len(cs.Pairs()) != 1 || len(cs.Manifolds()) != 0 {
				t.Fatalf("expected 1 pair and no manifolds, got %d %d", len(cs.Pairs()), len(cs.Manifolds()))
			}
			if collider(t, w, a).IsColliding || collider(t, w, b).IsColliding {
				t.Fatalf("separated shapes must not be flagged")
			}
			if *transform(t, w, a) != beforeA || *transform(t, w, b) != beforeB {
				t.Fatalf("a miss moved a transform: %+v %+v", *transform(t, w, a), *transform(t, w, b))
			}
			if bodyA.Velocity != velA || bodyB.Velocity != velB || bodyA.AngularVelocity != spinA || bodyB.AngularVelocity != spinB {
				t.Fatalf("a miss changed a body: %+v %+v", bodyA, bodyB)
			}
		})
	}
}

func TestCollisionSystemLaterMissKeepsHit(t *testing.T) {
	w := ecs.NewWorld()
	a := mustBox(t, w, 0, 0, 10, dynamic)
	mustBox(t, w, 8, 0, 10, dynamic)
	mustBox(t, w, 200, 0, 10, dynamic)

	cs := NewCollisionSystem(nil, CollisionConfig{})
	cs.Update(w)
	if !collider(t, w, a).IsColliding {
		t.Fatalf("a later miss must not clear an earlier hit")
	}
}

func TestCollisionSystemFlagsResetEachTick(t *testing.T) {
	w := ecs.NewWorld()
	a := mustBox(t, w, 0, 0, 10, dynamic)
	b := mustBox(t, w, 8, 0, 10, dynamic)

	cs := NewCollisionSystem(nil, CollisionConfig{})
	cs.Update(w)
	transform(t, w, b).X = 100
	cs.Update(w)
	if collider(t, w, a).IsColliding || collider(t, w, b).IsColliding {
		t.Fatalf("flags must reset once the shapes part")
	}
}

func TestCollisionSystemSkipsBodilessPairs(t *testing.T) {
	w := ecs.NewWorld()
	mustWall(t, w, 0, 0, 10, 10)
	mustWall(t, w, 5, 0, 10, 10)

	cs := NewCollisionSystem(nil, CollisionConfig{})
	cs.Update(w)
	if len(cs.Pairs()) != 0 {
		t.Fatalf("pairs without any rigid body must be skipped, got %d", len(cs.Pairs()))
	}
}

func TestCollisionSystemWallIsImmovable(t *testing.T) {
	w := ecs.NewWorld()
	wall := mustWall(t, w, 0, 0, 10, 10)
	ball := mustCircle(t, w, 7, 0, 3, entity.BodySpec{Type: component.BodyDynamic, Restitution: 1, Velocity: cp.Vector{X: -10}})

	cs := NewCollisionSystem(nil, CollisionConfig{})
	cs.Update(w)

	if len(cs.Manifolds()) != 1 {
		t.Fatalf("expected 1 manifold, got %d", len(cs.Manifolds()))
	}
	m := cs.Manifolds()[0]
	if (m.BodyA == nil) == (m.BodyB == nil) {
		t.Fatalf("exactly the wall side should have no body: %+v", m)
	}
	if tr := transform(t, w, wall); tr.X != 0 || tr.Y != 0 {
		t.Fatalf("wall moved to %v", tr.Position())
	}
	if tr := transform(t, w, ball); math.Abs(tr.X-8) > 1e-9 {
		t.Fatalf("expected the ball pushed to x=8, got %v", tr.X)
	}
	rb, _ := ecs.Get(w, ball, component.RigidBodyComponent.Kind())
	if rb.Velocity.X <= 0 {
		t.Fatalf("expected the ball to bounce, got %v", rb.Velocity)
	}
}

func TestCollisionSystemBoxCircleNormal(t *testing.T) {
	tests := []struct {
		name      string
		boxFirst  bool
		wantSignX float64
	}{
		{"box_then_circle", true, 1},
		{"circle_then_box", false, -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			if tc.boxFirst {
				mustBox(t, w, 0, 0, 10, dynamic)
				mustCircle(t, w, 7, 0, 3, dynamic)
			} else {
				mustCircle(t, w, 7, 0, 3, dynamic)
				mustBox(t, w, 0, 0, 10, dynamic)
			}
			cs := NewCollisionSystem(nil, CollisionConfig{})
			cs.Update(w)
			if len(cs.Manifolds()) != 1 {
				t.Fatalf("expected 1 manifold, got %d", len(cs.Manifolds()))
			}
			m := cs.Manifolds()[0]
			if m.Normal.X*tc.wantSignX <= 0 || math.Abs(m.Depth-1) > 1e-9 {
				t.Fatalf("normal must point from the first shape to the second, got %v depth %v", m.Normal, m.Depth)
			}
		})
	}
}

func TestCollisionSystemEvents(t *testing.T) {
	w := ecs.NewWorld()
	a := mustBox(t, w, 0, 0, 10, dynamic)
	b := mustBox(t, w, 8, 0, 10, dynamic)

	cs := NewCollisionSystem(nil, CollisionConfig{})
	cs.Update(w)
	begins := w.Events().CollisionEvents()
	if len(begins) != 2 {
		t.Fatalf("expected 2 begin events, got %+v", begins)
	}
	for _, evt := range begins {
		if evt.Kind != ecs.CollisionEventBegin {
			t.Fatalf("expected begin, got %+v", evt)
		}
	}

	// Separation left the boxes exactly touching; push them back into overlap.
	transform(t, w, a).X = 0
	transform(t, w, b).X = 8
	cs.Update(w)
	if got := w.Events().CollisionEvents(); len(got) != 0 {
		t.Fatalf("expected no events while state is unchanged, got %+v", got)
	}

	transform(t, w, b).X = 100
	cs.Update(w)
	ends := w.Events().CollisionEvents()
	if len(ends) != 2 {
		t.Fatalf("expected 2 end events, got %+v", ends)
	}
	for i, want := range []ecs.Entity{a, b} {
		if ends[i].Kind != ecs.CollisionEventEnd || ends[i].Entity != want {
			t.Fatalf("end event %d: expected %v, got %+v", i, want, ends[i])
		}
	}
}

func TestCollisionSystemEndEventsSorted(t *testing.T) {
	w := ecs.NewWorld()
	var boxes []ecs.Entity
	for i := 0; i < 4; i++ {
		x := float64(i) * 100
		boxes = append(boxes, mustBox(t, w, x, 0, 10, dynamic), mustBox(t, w, x+8, 0, 10, dynamic))
	}
	cs := NewCollisionSystem(nil, CollisionConfig{})
	cs.Update(w)
	w.Events().CollisionEvents()

	for i, e := range boxes {
		transform(t, w, e).Y = float64(i+1) * 1000
	}
	cs.Update(w)
	ends := w.Events().CollisionEvents()
	if len(ends) != len(boxes) {
		t.Fatalf("expected %d end events, got %+v", len(boxes), ends)
	}
	for i, e := range boxes {
		if ends[i].Entity != e {
			t.Fatalf("end events out of entity order at %d: %+v", i, ends)
		}
	}
}

func TestCollisionSystemGridCulling(t *testing.T) {
	viewport := &physics.FixedViewport{Width: 400, Height: 400, ZoomLevel: 1, CenterPos: cp.Vector{X: 200, Y: 200}}
	tests := []struct {
		name      string
		cull      bool
		bx, by    float64
		wantPairs int
	}{
		{"disjoint_cells_culled", true, 350, 350, 0},
		{"culling_disabled", false, 350, 350, 1},
		{"shared_cell_kept", true, 70, 70, 1},
		{"outside_never_culled", true, 900, 900, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			mustBox(t, w, 50, 50, 10, dynamic)
			mustBox(t, w, tc.bx, tc.by, 10, dynamic)

			grid := physics.NewImplicitGrid(physics.DefaultGridConfig(), viewport)
			cs := NewCollisionSystem(grid, CollisionConfig{CullWithGrid: tc.cull})
			cs.Update(w)
			if len(cs.Pairs()) != tc.wantPairs {
				t.Fatalf("expected %d pairs, got %d", tc.wantPairs, len(cs.Pairs()))
			}
		})
	}
}

func TestCollisionSystemLinearResolver(t *testing.T) {
	w := ecs.NewWorld()
	spec := entity.BodySpec{Type: component.BodyDynamic, Restitution: 1}
	spec.Velocity = cp.Vector{X: 10}
	a := mustBox(t, w, 0, 0, 10, spec)
	spec.Velocity = cp.Vector{X: -10}
	b := mustBox(t, w, 8, 0, 10, spec)

	cs := NewCollisionSystem(nil, CollisionConfig{Resolver: ResolveLinear})
	cs.Update(w)

	ra, _ := ecs.Get(w, a, component.RigidBodyComponent.Kind())
	rb, _ := ecs.Get(w, b, component.RigidBodyComponent.Kind())
	if math.Abs(ra.Velocity.X+10) > 1e-9 || math.Abs(rb.Velocity.X-10) > 1e-9 {
		t.Fatalf("expected swapped velocities, got %v %v", ra.Velocity, rb.Velocity)
	}
	if ra.AngularVelocity != 0 || rb.AngularVelocity != 0 {
		t.Fatalf("linear resolver must not spin bodies")
	}
}

func TestParseResolverMode(t *testing.T) {
	tests := []struct {
		in   string
		want ResolverMode
	}{
		{"linear", ResolveLinear},
		{"rotation", ResolveWithRotation},
		{"", ResolveWithRotation},
		{"bogus", ResolveWithRotation},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := ParseResolverMode(tc.in); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
