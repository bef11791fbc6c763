package component

import "github.com/jakecoffman/cp"

// Transform is an entity's world placement. Rotation is in radians.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

func (t *Transform) Position() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

func (t *Transform) SetPosition(p cp.Vector) {
	t.X = p.X
	t.Y = p.Y
}

// Translate moves the transform by d.
func (t *Transform) Translate(d cp.Vector) {
	t.X += d.X
	t.Y += d.Y
}

func (t *Transform) Scale() cp.Vector {
	return cp.Vector{X: t.ScaleX, Y: t.ScaleY}
}

var TransformComponent = NewComponent[Transform]()
