package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/ecs/component"
)

// scaleOf treats a zero scale component as 1 so a zero Transform still
// yields usable geometry.
func scaleOf(t *component.Transform) cp.Vector {
	s := t.Scale()
	if s.X == 0 {
		s.X = 1
	}
	if s.Y == 0 {
		s.Y = 1
	}
	return s
}

// UpdateBoxCollider places the box at the transform: center is position plus
// offset, size is scale times SizeScale, and the vertices are rotated by the
// transform rotation about the center.
func UpdateBoxCollider(box *component.BoxCollider, t *component.Transform) {
	if box == nil || t == nil {
		return
	}
	scale := scaleOf(t)
	box.Center = t.Position().Add(box.Offset)
	box.Width = scale.X * box.SizeScale.X
	box.Height = scale.Y * box.SizeScale.Y
	box.Vertices = CreateBoxVertices(box.Width, box.Height)
	box.TransformedVertices = TransformVertices(box.TransformedVertices, box.Vertices, box.Center, t.Rotation)
}

// UpdateCircleCollider places the circle at the transform. The radius is the
// larger absolute scale component times RadiusScale.
func UpdateCircleCollider(circle *component.CircleCollider, t *component.Transform) {
	if circle == nil || t == nil {
		return
	}
	scale := scaleOf(t)
	circle.Center = t.Position().Add(circle.Offset)
	circle.Radius = math.Max(math.Abs(scale.X), math.Abs(scale.Y)) * circle.RadiusScale
}

// UpdateCollider refreshes every enabled shape of c.
func UpdateCollider(c *component.Collider, t *component.Transform) {
	if c == nil || t == nil {
		return
	}
	if c.Shapes.Has(component.ShapeMaskBox) {
		UpdateBoxCollider(&c.Box, t)
	}
	if c.Shapes.Has(component.ShapeMaskCircle) {
		UpdateCircleCollider(&c.Circle, t)
	}
}

// ColliderBB returns the world bounds of every enabled shape. ok is false
// when no box or circle is enabled.
func ColliderBB(c *component.Collider) (bb cp.BB, ok bool) {
	if c == nil {
		return cp.BB{}, false
	}
	if c.Shapes.Has(component.ShapeMaskBox) && len(c.Box.TransformedVertices) > 0 {
		bb = VerticesBB(c.Box.TransformedVertices)
		ok = true
	}
	if c.Shapes.Has(component.ShapeMaskCircle) {
		cb := cp.NewBBForCircle(c.Circle.Center, math.Abs(c.Circle.Radius))
		if ok {
			bb = bb.Merge(cb)
		} else {
			bb = cb
		}
		ok = true
	}
	return bb, ok
}

// ColliderCenter returns the center of the first enabled shape, box first.
func ColliderCenter(c *component.Collider) cp.Vector {
	switch {
	case c == nil:
		return cp.Vector{}
	case c.Shapes.Has(component.ShapeMaskBox):
		return c.Box.Center
	case c.Shapes.Has(component.ShapeMaskCircle):
		return c.Circle.Center
	default:
		return cp.Vector{}
	}
}
