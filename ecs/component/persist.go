package component

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"
)

// The YAML field names below are persisted in scene files and must stay stable.

type vecDoc struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func toVecDoc(v cp.Vector) vecDoc {
	return vecDoc{X: v.X, Y: v.Y}
}

func (d vecDoc) vector() cp.Vector {
	return cp.Vector{X: d.X, Y: d.Y}
}

func toVecDocs(vs []cp.Vector) []vecDoc {
	if len(vs) == 0 {
		return nil
	}
	out := make([]vecDoc, len(vs))
	for i, v := range vs {
		out[i] = toVecDoc(v)
	}
	return out
}

func fromVecDocs(ds []vecDoc) []cp.Vector {
	if len(ds) == 0 {
		return nil
	}
	out := make([]cp.Vector, len(ds))
	for i, d := range ds {
		out[i] = d.vector()
	}
	return out
}

type rigidBodyDoc struct {
	Velocity                vecDoc   `yaml:"velocity"`
	AngularVelocity         float64  `yaml:"angular_velocity"`
	BodyType                int      `yaml:"body_type"`
	Force                   vecDoc   `yaml:"force"`
	Acceleration            vecDoc   `yaml:"acceleration"`
	Density                 float64  `yaml:"density"`
	Mass                    float64  `yaml:"mass"`
	InverseMass             float64  `yaml:"inverse_mass"`
	Inertia                 float64  `yaml:"inertia"`
	InverseInertia          float64  `yaml:"inverse_inertia"`
	Restitution             float64  `yaml:"restitution"`
	Area                    float64  `yaml:"area"`
	ShapeType               int      `yaml:"shape_type"`
	Vertices                []vecDoc `yaml:"vertices"`
	TransformedVertices     []vecDoc `yaml:"transformed_vertices"`
	TransformUpdateRequired bool     `yaml:"transform_update_required"`
}

func (rb RigidBody) MarshalYAML() (interface{}, error) {
	return rigidBodyDoc{
		Velocity:                toVecDoc(rb.Velocity),
		AngularVelocity:         rb.AngularVelocity,
		BodyType:                int(rb.Type),
		Force:                   toVecDoc(rb.Force),
		Acceleration:            toVecDoc(rb.Acceleration),
		Density:                 rb.Density,
		Mass:                    rb.Mass,
		InverseMass:             rb.InverseMass,
		Inertia:                 rb.Inertia,
		InverseInertia:          rb.InverseInertia,
		Restitution:             rb.Restitution,
		Area:                    rb.Area,
		ShapeType:               int(rb.Shape),
		Vertices:                toVecDocs(rb.Vertices),
		TransformedVertices:     toVecDocs(rb.TransformedVertices),
		TransformUpdateRequired: rb.TransformUpdateRequired,
	}, nil
}

func (rb *RigidBody) UnmarshalYAML(value *yaml.Node) error {
	var doc rigidBodyDoc
	if err := value.Decode(&doc); err != nil {
		return fmt.Errorf("component: decode rigid body: %w", err)
	}
	bodyType := BodyType(doc.BodyType)
	if bodyType < BodyStatic || bodyType > BodyKinematic {
		return fmt.Errorf("component: decode rigid body: unknown body type %d", doc.BodyType)
	}
	shape := ShapeType(doc.ShapeType)
	if shape < ShapeBox || shape > ShapeLine {
		return fmt.Errorf("component: decode rigid body: unknown shape type %d", doc.ShapeType)
	}
	*rb = RigidBody{
		Velocity:                doc.Velocity.vector(),
		AngularVelocity:         doc.AngularVelocity,
		Type:                    bodyType,
		Force:                   doc.Force.vector(),
		Acceleration:            doc.Acceleration.vector(),
		Density:                 doc.Density,
		Mass:                    doc.Mass,
		InverseMass:             doc.InverseMass,
		Inertia:                 doc.Inertia,
		InverseInertia:          doc.InverseInertia,
		Restitution:             doc.Restitution,
		Area:                    doc.Area,
		Shape:                   shape,
		Vertices:                fromVecDocs(doc.Vertices),
		TransformedVertices:     fromVecDocs(doc.TransformedVertices),
		TransformUpdateRequired: doc.TransformUpdateRequired,
	}
	return nil
}

type boxDoc struct {
	Center              vecDoc   `yaml:"center"`
	Offset              vecDoc   `yaml:"offset"`
	SizeScale           vecDoc   `yaml:"size_scale"`
	Width               float64  `yaml:"width"`
	Height              float64  `yaml:"height"`
	Vertices            []vecDoc `yaml:"vertices"`
	TransformedVertices []vecDoc `yaml:"transformed_vertices"`
}

type circleDoc struct {
	Center      vecDoc  `yaml:"center"`
	Offset      vecDoc  `yaml:"offset"`
	Radius      float64 `yaml:"radius"`
	RadiusScale float64 `yaml:"radius_scale"`
}

type colliderDoc struct {
	BoxEnabled    bool       `yaml:"box_enabled"`
	Box           *boxDoc    `yaml:"box,omitempty"`
	CircleEnabled bool       `yaml:"circle_enabled"`
	Circle        *circleDoc `yaml:"circle,omitempty"`
	LineEnabled   bool       `yaml:"line_enabled,omitempty"`
}

// MarshalYAML writes only the data of enabled shapes. Collision flags are
// per-tick state and never persisted.
func (c Collider) MarshalYAML() (interface{}, error) {
	doc := colliderDoc{
		BoxEnabled:    c.Shapes.Has(ShapeMaskBox),
		CircleEnabled: c.Shapes.Has(ShapeMaskCircle),
		LineEnabled:   c.Shapes.Has(ShapeMaskLine),
	}
	if doc.BoxEnabled {
		doc.Box = &boxDoc{
			Center:              toVecDoc(c.Box.Center),
			Offset:              toVecDoc(c.Box.Offset),
			SizeScale:           toVecDoc(c.Box.SizeScale),
			Width:               c.Box.Width,
			Height:              c.Box.Height,
			Vertices:            toVecDocs(c.Box.Vertices),
			TransformedVertices: toVecDocs(c.Box.TransformedVertices),
		}
	}
	if doc.CircleEnabled {
		doc.Circle = &circleDoc{
			Center:      toVecDoc(c.Circle.Center),
			Offset:      toVecDoc(c.Circle.Offset),
			Radius:      c.Circle.Radius,
			RadiusScale: c.Circle.RadiusScale,
		}
	}
	return doc, nil
}

// UnmarshalYAML clears every shape flag before applying the loaded ones so a
// reused Collider never keeps a stale shape enabled.
func (c *Collider) UnmarshalYAML(value *yaml.Node) error {
	var doc colliderDoc
	if err := value.Decode(&doc); err != nil {
		return fmt.Errorf("component: decode collider: %w", err)
	}
	c.Shapes &^= ShapeMaskBox | ShapeMaskCircle | ShapeMaskLine
	c.Box = BoxCollider{}
	c.Circle = CircleCollider{}
	c.IsColliding = false
	c.CollidingWith = 0

	if doc.BoxEnabled {
		c.Shapes |= ShapeMaskBox
		if doc.Box != nil {
			c.Box = BoxCollider{
				Center:              doc.Box.Center.vector(),
				Offset:              doc.Box.Offset.vector(),
				SizeScale:           doc.Box.SizeScale.vector(),
				Width:               doc.Box.Width,
				Height:              doc.Box.Height,
				Vertices:            fromVecDocs(doc.Box.Vertices),
				TransformedVertices: fromVecDocs(doc.Box.TransformedVertices),
			}
		}
	}
	if doc.CircleEnabled {
		c.Shapes |= ShapeMaskCircle
		if doc.Circle != nil {
			c.Circle = CircleCollider{
				Center:      doc.Circle.Center.vector(),
				Offset:      doc.Circle.Offset.vector(),
				Radius:      doc.Circle.Radius,
				RadiusScale: doc.Circle.RadiusScale,
			}
		}
	}
	if doc.LineEnabled {
		c.Shapes |= ShapeMaskLine
	}
	return nil
}

type transformDoc struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

func (t Transform) MarshalYAML() (interface{}, error) {
	return transformDoc(t), nil
}

func (t *Transform) UnmarshalYAML(value *yaml.Node) error {
	var doc transformDoc
	if err := value.Decode(&doc); err != nil {
		return fmt.Errorf("component: decode transform: %w", err)
	}
	*t = Transform(doc)
	return nil
}
