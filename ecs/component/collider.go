package component

import "github.com/jakecoffman/cp"

// ShapeMask selects which shapes of a Collider are enabled. Several may be
// enabled at once, each is updated and tested independently.
type ShapeMask uint8

const (
	ShapeMaskBox ShapeMask = 1 << iota
	ShapeMaskCircle
	ShapeMaskLine
)

func (m ShapeMask) Has(s ShapeMask) bool {
	return m&s != 0
}

// BoxCollider is an oriented box. Size is Transform scale times SizeScale.
type BoxCollider struct {
	Center              cp.Vector
	Offset              cp.Vector
	SizeScale           cp.Vector
	Width               float64
	Height              float64
	Vertices            []cp.Vector
	TransformedVertices []cp.Vector
}

// CircleCollider radius is max(|scale.x|, |scale.y|) times RadiusScale.
type CircleCollider struct {
	Center      cp.Vector
	Offset      cp.Vector
	Radius      float64
	RadiusScale float64
}

// Collider aggregates the enabled shapes of an entity and the last evaluated
// collision outcome. Geometry is valid only after the current tick's update.
type Collider struct {
	Shapes ShapeMask
	Box    BoxCollider
	Circle CircleCollider

	// IsColliding is cleared once at the start of each tick and set by any
	// hit, so a later miss in the same tick never clears it. CollidingWith
	// holds the last entity hit.
	IsColliding   bool
	CollidingWith uint64
}

// EnableBox turns the box shape on with the given size scale.
func (c *Collider) EnableBox(sizeScale cp.Vector) {
	c.Shapes |= ShapeMaskBox
	c.Box.SizeScale = sizeScale
}

// EnableCircle turns the circle shape on with the given radius scale.
func (c *Collider) EnableCircle(radiusScale float64) {
	c.Shapes |= ShapeMaskCircle
	c.Circle.RadiusScale = radiusScale
}

var ColliderComponent = NewComponent[Collider]()
