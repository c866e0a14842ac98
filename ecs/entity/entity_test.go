package entity

import (
	"errors"
	"testing"

	"github.com/milk9111/tilewalker/common"
	"github.com/milk9111/tilewalker/ecs"
	"github.com/milk9111/tilewalker/ecs/component"
	"github.com/milk9111/tilewalker/grid"
	"github.com/milk9111/tilewalker/levels"
	"github.com/milk9111/tilewalker/prefabs"
	"github.com/milk9111/tilewalker/spatial"
)

func loadCorridor(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	lvl, err := levels.LoadLevelFromFS("corridor")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	e, err := LoadLevelToWorld(w, lvl, common.Vec2{})
	if err != nil {
		t.Fatalf("level to world: %v", err)
	}
	return e
}

func TestLoadLevelToWorld(t *testing.T) {
	w := ecs.NewWorld()
	level := loadCorridor(t, w)

	bounds, ok := ecs.Get(w, level, component.LevelBoundsComponent)
	if !ok {
		t.Fatalf("expected level bounds")
	}
	if bounds.Width != 12 || bounds.Height != 3 || bounds.Max != (common.Vec2{X: 384, Y: 96}) {
		t.Fatalf("unexpected bounds %+v", bounds)
	}

	tiles, _ := ecs.Get(w, level, component.TileMapComponent)
	if c, _ := tiles.At(grid.Tile{X: 1, Y: 1}); !c.Walkable || c.Floor != "stone" {
		t.Fatalf("expected walkable stone at (1,1), got %+v", c)
	}

	idx, _ := ecs.Get(w, level, component.LevelIndexComponent)
	// 12 top + 12 bottom + 2 end walls
	if idx.Index.Len() != 26 {
		t.Fatalf("expected 26 static occupants, got %d", idx.Index.Len())
	}
	m := bounds.Mapper()
	if !idx.Index.Occupied(spatial.RectFromCenter(m.TileToWorld(grid.Tile{X: 0, Y: 1}), 4, 4), 0) {
		t.Fatalf("wall cell should be occupied")
	}
	if idx.Index.Occupied(spatial.RectFromCenter(m.TileToWorld(grid.Tile{X: 5, Y: 1}), 10, 10), 0) {
		t.Fatalf("floor cell should be free")
	}
}

func TestNewPlayerUsesLevelSpawn(t *testing.T) {
	w := ecs.NewWorld()
	level := loadCorridor(t, w)

	player, err := NewPlayer(w, "")
	if err != nil {
		t.Fatalf("new player: %v", err)
	}

	pos, _ := ecs.Get(w, player, component.ActorPositionComponent)
	if pos.Tile != (grid.Tile{X: 1, Y: 1}) {
		t.Fatalf("expected spawn (1,1), got %+v", pos.Tile)
	}
	tr, _ := ecs.Get(w, player, component.TransformComponent)
	if tr.X != 48 || tr.Y != 48 || tr.ScaleX != 1 {
		t.Fatalf("unexpected transform %+v", tr)
	}

	anims, ok := ecs.Get(w, player, component.DirectionalAnimationsComponent)
	if !ok || len(anims.Clips) != 4 {
		t.Fatalf("expected four clips, got %+v", anims)
	}
	if ms, _ := ecs.Get(w, player, component.MoveSpeedComponent); ms.TilesPerSecond != 8 {
		t.Fatalf("expected speed 8, got %v", ms.TilesPerSecond)
	}

	idx, _ := ecs.Get(w, level, component.LevelIndexComponent)
	occ, ok := ecs.Get(w, player, component.OccupantComponent)
	if !ok {
		t.Fatalf("player should occupy the index")
	}
	probe := spatial.RectFromCenter(common.Vec2{X: 48, Y: 48}, 2, 2)
	if !idx.Index.Occupied(probe, 0) {
		t.Fatalf("player rectangle missing from index")
	}
	if idx.Index.Occupied(probe, uint64(player)) {
		t.Fatalf("player rectangle should be excluded for its owner")
	}

	if !DestroyEntity(w, player) {
		t.Fatalf("destroy player failed")
	}
	if idx.Index.Occupied(probe, 0) {
		t.Fatalf("destroying the player should release handle %d", occ.Handle)
	}
}

func TestNewPlayerWithoutLevel(t *testing.T) {
	w := ecs.NewWorld()
	player, err := NewPlayer(w, "player.yaml")
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	if ecs.Has(w, player, component.OccupantComponent) {
		t.Fatalf("no occupant expected without a level index")
	}
	pos, _ := ecs.Get(w, player, component.ActorPositionComponent)
	if pos.Tile != (grid.Tile{X: 1, Y: 1}) {
		t.Fatalf("expected prefab spawn (1,1), got %+v", pos.Tile)
	}
}

func TestNewCameraAndViewport(t *testing.T) {
	w := ecs.NewWorld()
	cam, err := NewCamera(w, "")
	if err != nil {
		t.Fatalf("new camera: %v", err)
	}
	if !ecs.Has(w, cam, component.CameraTagComponent) || !ecs.Has(w, cam, component.VisibleBoundsComponent) {
		t.Fatalf("camera prefab incomplete")
	}

	SetCameraViewport(w, 640, 360)
	c, _ := ecs.Get(w, cam, component.CameraComponent)
	if c.ViewportW != 640 || c.ViewportH != 360 || c.Zoom != 2 {
		t.Fatalf("unexpected camera %+v", c)
	}
}

func TestBuildEntityErrors(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := BuildEntity(nil, "player.yaml"); err == nil {
		t.Fatalf("expected error for nil world")
	}
	if _, err := BuildEntity(w, "missing.yaml"); err == nil {
		t.Fatalf("expected error for missing prefab")
	}
	if w.Len() != 0 {
		t.Fatalf("failed builds must not leak entities, have %d", w.Len())
	}
}

func TestAddDirectionalAnimationRejectsInvalid(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	raw := map[string]any{
		"clips": map[string]any{
			"forward": map[string]any{"first": 0, "last": 3, "fps": 10},
			"left":    map[string]any{"first": 2, "last": 5, "fps": 10},
		},
	}
	err := addDirectionalAnimation(w, e, raw, &buildContext{})
	if err == nil {
		t.Fatalf("expected overlap error")
	}
	if !errors.Is(err, prefabs.ErrInvalidAnimation) {
		t.Fatalf("expected ErrInvalidAnimation, got %v", err)
	}
}

func TestReloadEntity(t *testing.T) {
	w := ecs.NewWorld()
	loadCorridor(t, w)
	player, err := NewPlayer(w, "")
	if err != nil {
		t.Fatalf("new player: %v", err)
	}

	_ = ecs.Add(w, player, component.MoveSpeedComponent, component.MoveSpeed{TilesPerSecond: 1})
	_ = ecs.Add(w, player, component.AnimationStateComponent, component.AnimationState{First: 0, Last: 3, FPS: 10})

	if err := ReloadEntity(w, player, PlayerPrefab); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if ms, _ := ecs.Get(w, player, component.MoveSpeedComponent); ms.TilesPerSecond != 8 {
		t.Fatalf("reload should restore speed 8, got %v", ms.TilesPerSecond)
	}
	if ecs.Has(w, player, component.AnimationStateComponent) {
		t.Fatalf("reload should clear the running clip")
	}

	w.DestroyEntity(player)
	if err := ReloadEntity(w, player, PlayerPrefab); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestLoadScene(t *testing.T) {
	w := ecs.NewWorld()
	spec := prefabs.GameSpec{Level: "corridor", Player: "player.yaml", Camera: "camera.yaml"}

	scene, err := LoadScene(w, spec, "meadow", 640, 360)
	if err != nil {
		t.Fatalf("load scene: %v", err)
	}

	bounds, _ := ecs.Get(w, scene.Level, component.LevelBoundsComponent)
	if bounds.Width != 24 || bounds.Min != (common.Vec2{X: -320, Y: -180}) {
		t.Fatalf("expected meadow anchored at the window origin, got %+v", bounds)
	}
	tr, _ := ecs.Get(w, scene.Player, component.TransformComponent)
	if tr.X != -240 || tr.Y != -100 {
		t.Fatalf("expected player on spawn (2,2) at (-240,-100), got (%v,%v)", tr.X, tr.Y)
	}
	cam, _ := ecs.Get(w, scene.Camera, component.CameraComponent)
	if cam.ViewportW != 640 || cam.ViewportH != 360 {
		t.Fatalf("expected viewport 640x360, got %+v", cam)
	}

	if _, err := LoadScene(ecs.NewWorld(), spec, "missing", 640, 360); err == nil {
		t.Fatalf("expected an error for a missing level")
	}
}
