package system

import (
	"github.com/milk9111/treasurerun/common"
	"github.com/milk9111/treasurerun/ecs"
	"github.com/milk9111/treasurerun/ecs/component"
)

// CameraSystem keeps the camera centered on its target, lagging inside the
// deadzone and clamped to the level bounds.
type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
	snapped      bool
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.snapped = false
	}
	camComp, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	if !ecs.IsAlive(w, cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, camComp.TargetName)
	}
	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	if cs.snapped {
		camTransform.X = common.FollowAxis(camTransform.X, target.X, camComp.DeadzoneW, camComp.Lerp)
		camTransform.Y = common.FollowAxis(camTransform.Y, target.Y, camComp.DeadzoneH, camComp.Lerp)
	} else {
		camTransform.X, camTransform.Y = target.X, target.Y
		cs.snapped = true
	}

	if e, ok := w.First(component.LevelBoundsComponent.Kind()); ok {
		if b, ok := ecs.Get(w, e, component.LevelBoundsComponent.Kind()); ok {
			viewW, viewH := cameraView(camComp)
			camTransform.X = common.ClampView(camTransform.X, viewW, b.Width)
			camTransform.Y = common.ClampView(camTransform.Y, viewH, b.Height)
		}
	}
}

// cameraView is the world-space size visible through the camera.
func cameraView(c *component.Camera) (float64, float64) {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	viewW, viewH := c.ViewW, c.ViewH
	if viewW <= 0 {
		viewW = common.BaseWidth
	}
	if viewH <= 0 {
		viewH = common.BaseHeight
	}
	return viewW / zoom, viewH / zoom
}

// cameraCenter returns the camera's view center and zoom, or the screen
// center at zoom 1 when the world has no camera.
func cameraCenter(w *ecs.World) (x, y, zoom float64) {
	x, y, zoom = common.BaseWidth/2, common.BaseHeight/2, 1
	e, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return x, y, zoom
	}
	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		x, y = tr.X, tr.Y
	}
	if c, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok && c.Zoom > 0 {
		zoom = c.Zoom
	}
	return x, y, zoom
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "player" || name == "" {
		if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}
