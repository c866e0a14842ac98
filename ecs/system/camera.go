package system

import (
	"github.com/milk9111/tilewalker/common"
	"github.com/milk9111/tilewalker/ecs"
	"github.com/milk9111/tilewalker/ecs/component"
)

// CameraSystem centers the camera on the player without showing anything past
// the map edges. On an axis where the map is smaller than the viewport the
// camera sits on the map midpoint.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	camEntity, ok := w.First(component.CameraTagComponent.Kind(), component.CameraComponent.Kind(), component.TransformComponent.Kind())
	if !ok {
		return
	}
	target, ok := w.First(component.PlayerTagComponent.Kind(), component.TransformComponent.Kind())
	if !ok {
		return
	}
	level, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}

	cam, _ := ecs.Get(w, camEntity, component.CameraComponent)
	viewW, viewH := cam.WorldViewport()
	if viewW <= 0 || viewH <= 0 {
		return
	}

	bounds, _ := ecs.Get(w, level, component.LevelBoundsComponent)
	targetTransform, _ := ecs.Get(w, target, component.TransformComponent)

	camTransform, _ := ecs.Get(w, camEntity, component.TransformComponent)
	camTransform.X = clampAxis(targetTransform.X, bounds.Min.X, bounds.Max.X, viewW/2)
	camTransform.Y = clampAxis(targetTransform.Y, bounds.Min.Y, bounds.Max.Y, viewH/2)
	_ = ecs.Add(w, camEntity, component.TransformComponent, camTransform)
}

func clampAxis(v, lo, hi, half float64) float64 {
	minC := lo + half
	maxC := hi - half
	if minC > maxC {
		return (lo + hi) / 2
	}
	return common.Clamp(v, minC, maxC)
}
