package system

import (
	"github.com/milk9111/tilewalker/common"
	"github.com/milk9111/tilewalker/ecs"
	"github.com/milk9111/tilewalker/ecs/component"
)

// VisibleBoundsSystem recomputes the on-screen world rectangle from the
// settled camera.
type VisibleBoundsSystem struct{}

func NewVisibleBoundsSystem() *VisibleBoundsSystem {
	return &VisibleBoundsSystem{}
}

func (s *VisibleBoundsSystem) Update(w *ecs.World) {
	camEntity, ok := w.First(component.CameraTagComponent.Kind(), component.CameraComponent.Kind(), component.TransformComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent)
	viewW, viewH := cam.WorldViewport()
	if viewW <= 0 || viewH <= 0 {
		return
	}
	tr, _ := ecs.Get(w, camEntity, component.TransformComponent)
	half := common.Vec2{X: viewW / 2, Y: viewH / 2}
	center := common.Vec2{X: tr.X, Y: tr.Y}
	_ = ecs.Add(w, camEntity, component.VisibleBoundsComponent, component.VisibleBounds{
		Min: center.Sub(half),
		Max: center.Add(half),
	})
}
