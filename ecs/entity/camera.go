package entity

import (
	"fmt"

	"github.com/milk9111/tilewalker/ecs"
	"github.com/milk9111/tilewalker/ecs/component"
)

const CameraPrefab = "camera.yaml"

func NewCamera(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if prefabPath == "" {
		prefabPath = CameraPrefab
	}
	e, err := BuildEntity(w, prefabPath)
	if err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}
	if !ecs.Has(w, e, component.CameraComponent) {
		DestroyEntity(w, e)
		return 0, fmt.Errorf("camera: prefab %q has no camera component", prefabPath)
	}
	return e, nil
}

// SetCameraViewport records the screen size the camera renders into. Frontends
// call it on every layout change.
func SetCameraViewport(w *ecs.World, width, height float64) {
	camEntity, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent)
	if cam.ViewportW == width && cam.ViewportH == height {
		return
	}
	cam.ViewportW = width
	cam.ViewportH = height
	_ = ecs.Add(w, camEntity, component.CameraComponent, cam)
}
