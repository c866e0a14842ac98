package system

import (
	"testing"

	"github.com/milk9111/tilewalker/common"
	"github.com/milk9111/tilewalker/ecs"
	"github.com/milk9111/tilewalker/ecs/component"
)

func newCamera(t *testing.T, w *ecs.World, viewW, viewH, zoom float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.CameraTagComponent, component.CameraTag{})
	mustAdd(t, w, e, component.CameraComponent, component.Camera{Zoom: zoom, ViewportW: viewW, ViewportH: viewH})
	mustAdd(t, w, e, component.TransformComponent, component.Transform{})
	return e
}

func newTarget(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.PlayerTagComponent, component.PlayerTag{})
	mustAdd(t, w, e, component.TransformComponent, component.Transform{X: x, Y: y})
	return e
}

func TestCameraClamp(t *testing.T) {
	// 20x10 tiles of 32: map spans (0,0)-(640,320), viewport 200x100
	cases := []struct {
		name         string
		targetX      float64
		targetY      float64
		wantX, wantY float64
		viewW, viewH float64
		mapW, mapH   int
	}{
		{"follows_inside", 300, 160, 300, 160, 200, 100, 20, 10},
		{"clamps_min", 10, 10, 100, 50, 200, 100, 20, 10},
		{"clamps_max", 630, 310, 540, 270, 200, 100, 20, 10},
		{"midpoint_when_map_narrower", 10, 160, 48, 160, 200, 100, 3, 10},
		{"midpoint_both_axes", 10, 10, 48, 32, 200, 100, 3, 2},
		{"exact_fit", 0, 0, 320, 160, 640, 320, 20, 10},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			newLevel(t, w, c.mapW, c.mapH)
			cam := newCamera(t, w, c.viewW, c.viewH, 1)
			newTarget(t, w, c.targetX, c.targetY)

			ecs.NewScheduler(NewCameraSystem()).Update(w, 0)

			tr, _ := ecs.Get(w, cam, component.TransformComponent)
			if !common.ApproxEqual(tr.X, c.wantX, 1e-9) || !common.ApproxEqual(tr.Y, c.wantY, 1e-9) {
				t.Fatalf("camera at (%v,%v), want (%v,%v)", tr.X, tr.Y, c.wantX, c.wantY)
			}
		})
	}
}

func TestCameraZoomShrinksWorldViewport(t *testing.T) {
	w := ecs.NewWorld()
	newLevel(t, w, 20, 10)
	cam := newCamera(t, w, 400, 200, 2)
	newTarget(t, w, 0, 0)

	ecs.NewScheduler(NewCameraSystem()).Update(w, 0)

	tr, _ := ecs.Get(w, cam, component.TransformComponent)
	if tr.X != 100 || tr.Y != 50 {
		t.Fatalf("expected zoomed clamp at (100,50), got (%v,%v)", tr.X, tr.Y)
	}
}

func TestCameraSkipsWithoutData(t *testing.T) {
	cases := []struct {
		name  string
		setup func(t *testing.T, w *ecs.World)
	}{
		{"no_level", func(t *testing.T, w *ecs.World) { newTarget(t, w, 300, 160) }},
		{"no_target", func(t *testing.T, w *ecs.World) { newLevel(t, w, 20, 10) }},
		{"no_viewport", func(t *testing.T, w *ecs.World) {
			newLevel(t, w, 20, 10)
			newTarget(t, w, 300, 160)
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			viewW := 200.0
			if c.name == "no_viewport" {
				viewW = 0
			}
			cam := newCamera(t, w, viewW, 100, 1)
			c.setup(t, w)

			ecs.NewScheduler(NewCameraSystem()).Update(w, 0)

			tr, _ := ecs.Get(w, cam, component.TransformComponent)
			if tr.X != 0 || tr.Y != 0 {
				t.Fatalf("camera should not move, got (%v,%v)", tr.X, tr.Y)
			}
		})
	}
}

func TestVisibleBoundsFollowCamera(t *testing.T) {
	w := ecs.NewWorld()
	newLevel(t, w, 20, 10)
	cam := newCamera(t, w, 200, 100, 1)
	newTarget(t, w, 300, 160)

	if vb, ok := ecs.Get(w, cam, component.VisibleBoundsComponent); ok && !vb.Empty() {
		t.Fatalf("bounds should be unset before the first update")
	}

	ecs.NewScheduler(NewCameraSystem(), NewVisibleBoundsSystem()).Update(w, 0)

	vb, ok := ecs.Get(w, cam, component.VisibleBoundsComponent)
	if !ok {
		t.Fatalf("expected visible bounds")
	}
	if vb.Min != (common.Vec2{X: 200, Y: 110}) || vb.Max != (common.Vec2{X: 400, Y: 210}) {
		t.Fatalf("unexpected bounds %+v", vb)
	}
}
