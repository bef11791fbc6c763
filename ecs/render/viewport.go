package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
)

// EbitenViewport reads the window from ebiten and the camera from the active
// Camera entity of a world.
type EbitenViewport struct {
	world   *ecs.World
	layoutW int
	layoutH int
}

func NewEbitenViewport(w *ecs.World) *EbitenViewport {
	return &EbitenViewport{world: w}
}

// SetLayout records the logical screen size reported by Game.Layout.
func (v *EbitenViewport) SetLayout(width, height int) {
	v.layoutW = width
	v.layoutH = height
}

// Size prefers the logical layout, then the monitor in fullscreen, then the
// window size.
func (v *EbitenViewport) Size() (float64, float64) {
	if v.layoutW > 0 && v.layoutH > 0 {
		return float64(v.layoutW), float64(v.layoutH)
	}
	if ebiten.IsFullscreen() {
		w, h := ebiten.Monitor().Size()
		return float64(w), float64(h)
	}
	w, h := ebiten.WindowSize()
	return float64(w), float64(h)
}

func (v *EbitenViewport) Zoom() float64 {
	if _, cam, ok := v.camera(); ok && cam.Zoom > 0 {
		return cam.Zoom
	}
	return 1
}

func (v *EbitenViewport) Center() cp.Vector {
	e, _, ok := v.camera()
	if !ok {
		w, h := v.Size()
		return cp.Vector{X: w / 2, Y: h / 2}
	}
	if t, ok := ecs.Get(v.world, e, component.TransformComponent.Kind()); ok {
		return t.Position()
	}
	return cp.Vector{}
}

func (v *EbitenViewport) Minimized() bool {
	return ebiten.IsWindowMinimized()
}

func (v *EbitenViewport) camera() (ecs.Entity, *component.Camera, bool) {
	if v == nil || v.world == nil {
		return 0, nil, false
	}
	var found ecs.Entity
	var cam *component.Camera
	ecs.ForEach(v.world, component.CameraComponent.Kind(), func(e ecs.Entity, c *component.Camera) {
		if cam == nil || (c.Active && !cam.Active) {
			found, cam = e, c
		}
	})
	return found, cam, cam != nil
}
