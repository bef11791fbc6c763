package physics

import "github.com/jakecoffman/cp"

// Viewport is the camera/window collaborator the ImplicitGrid is sized from.
type Viewport interface {
	// Size returns the visible area in screen pixels.
	Size() (width, height float64)
	// Zoom returns the camera zoom; values <= 0 are treated as 1.
	Zoom() float64
	// Center returns the camera center in world space.
	Center() cp.Vector
	// Minimized reports whether the window is minimized.
	Minimized() bool
}

// FixedViewport is a Viewport with constant values, for headless runs.
type FixedViewport struct {
	Width       float64
	Height      float64
	ZoomLevel   float64
	CenterPos   cp.Vector
	IsMinimized bool
}

func (v FixedViewport) Size() (float64, float64) { return v.Width, v.Height }
func (v FixedViewport) Zoom() float64            { return v.ZoomLevel }
func (v FixedViewport) Center() cp.Vector        { return v.CenterPos }
func (v FixedViewport) Minimized() bool          { return v.IsMinimized }

// worldViewportSize converts the viewport size to world units.
func worldViewportSize(v Viewport) (float64, float64) {
	if v == nil {
		return 0, 0
	}
	w, h := v.Size()
	zoom := v.Zoom()
	if zoom <= 0 {
		zoom = 1
	}
	return w / zoom, h / zoom
}
