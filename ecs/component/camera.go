package component

// Camera marks the entity whose Transform is the viewport center.
type Camera struct {
	Zoom   float64
	Active bool
}

var CameraComponent = NewComponent[Camera]()
