package system

import (
	"testing"

	"github.com/milk9111/tilewalker/common"
	"github.com/milk9111/tilewalker/ecs"
	"github.com/milk9111/tilewalker/ecs/component"
	"github.com/milk9111/tilewalker/grid"
	"github.com/milk9111/tilewalker/spatial"
)

const testTileSize = 32.0

// newLevel adds a width x height map anchored at the world origin.
func newLevel(t *testing.T, w *ecs.World, width, height int) component.LevelBounds {
	t.Helper()
	m := grid.NewMapper(testTileSize, common.Vec2{})
	min, max := m.Extent(width, height)
	bounds := component.LevelBounds{Min: min, Max: max, TileSize: testTileSize, Width: width, Height: height}

	cells := make([]component.Cell, width*height)
	for i := range cells {
		cells[i] = component.Cell{Walkable: true, Floor: "grass"}
	}

	e := w.CreateEntity()
	mustAdd(t, w, e, component.LevelTagComponent, component.LevelTag{})
	mustAdd(t, w, e, component.LevelBoundsComponent, bounds)
	mustAdd(t, w, e, component.TileMapComponent, component.TileMap{Width: width, Height: height, Cells: cells})
	mustAdd(t, w, e, component.LevelIndexComponent, component.LevelIndex{Index: spatial.NewSpace()})
	return bounds
}

// levelSpace returns the index attached by newLevel.
func levelSpace(t *testing.T, w *ecs.World) spatial.Index {
	t.Helper()
	level, ok := w.First(component.LevelIndexComponent.Kind())
	if !ok {
		t.Fatalf("no level index")
	}
	idx, _ := ecs.Get(w, level, component.LevelIndexComponent)
	return idx.Index
}

// newActor adds a player standing at tile with the default hitbox.
func newActor(t *testing.T, w *ecs.World, tile grid.Tile, speed float64) ecs.Entity {
	t.Helper()
	m := grid.NewMapper(testTileSize, common.Vec2{})
	p := m.TileToWorld(tile)

	e := w.CreateEntity()
	mustAdd(t, w, e, component.PlayerTagComponent, component.PlayerTag{})
	mustAdd(t, w, e, component.ActorPositionComponent, component.ActorPosition{Tile: tile})
	mustAdd(t, w, e, component.TransformComponent, component.Transform{X: p.X, Y: p.Y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.InputComponent, component.Input{})
	mustAdd(t, w, e, component.MoveSpeedComponent, component.MoveSpeed{TilesPerSecond: speed})
	mustAdd(t, w, e, component.HitboxComponent, component.Hitbox{})
	return e
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, h component.ComponentHandle[T], v T) {
	t.Helper()
	if err := ecs.Add(w, e, h, v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func setInput(t *testing.T, w *ecs.World, e ecs.Entity, in component.Input) {
	t.Helper()
	mustAdd(t, w, e, component.InputComponent, in)
}

func countEvents(events []ecs.Event, typ string) int {
	n := 0
	for _, evt := range events {
		if evt.Type == typ {
			n++
		}
	}
	return n
}
