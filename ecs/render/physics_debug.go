package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
	"github.com/milk9111/rigid2d/ecs/system"
	"github.com/milk9111/rigid2d/physics"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
	velocityScale       = 0.1
)

var (
	colliderColor  = color.NRGBA{R: 50, G: 255, B: 50, A: 230}
	collidingColor = color.NRGBA{R: 255, G: 60, B: 60, A: 230}
	gridColor      = color.NRGBA{R: 120, G: 120, B: 255, A: 120}
	velocityColor  = color.NRGBA{R: 255, G: 200, B: 40, A: 230}
	contactColor   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// DebugToggles gate each debug overlay.
type DebugToggles struct {
	ShowColliders bool
	ShowGrid      bool
	ShowVelocity  bool
	ShowContacts  bool
}

// PhysicsDebug draws the collision pipeline state in world space.
type PhysicsDebug struct {
	Toggles  DebugToggles
	viewport physics.Viewport
	screen   *ebiten.Image
	center   cp.Vector
	zoom     float64
	half     cp.Vector
}

func NewPhysicsDebug(viewport physics.Viewport, toggles DebugToggles) *PhysicsDebug {
	return &PhysicsDebug{Toggles: toggles, viewport: viewport}
}

// Draw renders every enabled overlay onto screen.
func (d *PhysicsDebug) Draw(screen *ebiten.Image, w *ecs.World, cs *system.CollisionSystem) {
	if d == nil || screen == nil || w == nil {
		return
	}
	d.begin(screen)
	if d.Toggles.ShowGrid && cs != nil {
		d.DrawGrid(cs.Grid())
	}
	if d.Toggles.ShowColliders {
		d.drawColliders(w)
	}
	if d.Toggles.ShowVelocity {
		d.drawVelocities(w)
	}
	if d.Toggles.ShowContacts && cs != nil {
		d.drawContacts(cs.Manifolds())
	}
}

// DrawStats prints pair and manifold counts in the top-left corner.
func (d *PhysicsDebug) DrawStats(screen *ebiten.Image, cs *system.CollisionSystem) {
	if screen == nil || cs == nil {
		return
	}
	text := fmt.Sprintf("TPS: %0.1f\nPairs: %d\nContacts: %d", ebiten.ActualTPS(), len(cs.Pairs()), len(cs.Manifolds()))
	if g := cs.Grid(); g != nil {
		text += fmt.Sprintf("\nGrid in/overlap/out: %d/%d/%d", len(g.Inside()), len(g.Overlap()), len(g.Outside()))
	}
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

// DrawGrid draws the cell boundaries of the implicit grid.
func (d *PhysicsDebug) DrawGrid(g *physics.ImplicitGrid) {
	if g == nil || d.screen == nil {
		return
	}
	for _, line := range g.Lines() {
		d.drawLine(line[0], line[1], gridColor)
	}
}

func (d *PhysicsDebug) begin(screen *ebiten.Image) {
	d.screen = screen
	d.zoom = 1
	d.center = cp.Vector{}
	b := screen.Bounds()
	d.half = cp.Vector{X: float64(b.Dx()) / 2, Y: float64(b.Dy()) / 2}
	if d.viewport != nil {
		if z := d.viewport.Zoom(); z > 0 {
			d.zoom = z
		}
		d.center = d.viewport.Center()
	}
}

func (d *PhysicsDebug) drawColliders(w *ecs.World) {
	ecs.ForEach(w, component.ColliderComponent.Kind(), func(_ ecs.Entity, c *component.Collider) {
		clr := colliderColor
		if c.IsColliding {
			clr = collidingColor
		}
		if c.Shapes.Has(component.ShapeMaskBox) {
			d.drawPolygon(c.Box.TransformedVertices, clr)
		}
		if c.Shapes.Has(component.ShapeMaskCircle) {
			d.drawCircle(c.Circle.Center, c.Circle.Radius, clr)
		}
	})
}

func (d *PhysicsDebug) drawVelocities(w *ecs.World) {
	ecs.ForEach(w, component.RigidBodyComponent.Kind(), func(e ecs.Entity, rb *component.RigidBody) {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok || rb.Type == component.BodyStatic {
			return
		}
		from := t.Position()
		if c, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
			from = physics.ColliderCenter(c)
		}
		d.drawLine(from, from.Add(rb.Velocity.Mult(velocityScale)), velocityColor)
	})
}

func (d *PhysicsDebug) drawContacts(manifolds []physics.Manifold) {
	for _, m := range manifolds {
		for i := 0; i < m.ContactCount; i++ {
			d.drawDot(m.Contacts[i], contactColor)
		}
	}
}

func (d *PhysicsDebug) drawLine(a, b cp.Vector, clr color.Color) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	ebitenutil.DrawLine(d.screen, x1, y1, x2, y2, clr)
}

func (d *PhysicsDebug) drawPolygon(verts []cp.Vector, clr color.Color) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], clr)
	}
}

func (d *PhysicsDebug) drawCircle(center cp.Vector, radius float64, clr color.Color) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, clr)
}

func (d *PhysicsDebug) drawDot(pos cp.Vector, clr color.Color) {
	half := debugDotSize / 2 / d.zoom
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, clr)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, clr)
}

func (d *PhysicsDebug) toScreen(v cp.Vector) (float64, float64) {
	return (v.X-d.center.X)*d.zoom + d.half.X, (v.Y-d.center.Y)*d.zoom + d.half.Y
}
