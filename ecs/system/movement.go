package system

import (
	"math"

	"github.com/milk9111/tilewalker/common"
	"github.com/milk9111/tilewalker/ecs"
	"github.com/milk9111/tilewalker/ecs/component"
	"github.com/milk9111/tilewalker/grid"
	"github.com/milk9111/tilewalker/spatial"
)

// DefaultTilesPerSecond applies to actors without a MoveSpeed.
const DefaultTilesPerSecond = 8.0

// MovementSystem turns held directions into tile-to-tile moves. An idle actor
// starts a move when the destination is inside the map and free in the level
// index; a moving actor interpolates its transform until progress reaches 1.
type MovementSystem struct {
	// last rejected destination per actor, so a held key reports one bump
	blocked map[ecs.Entity]grid.Tile
}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{blocked: make(map[ecs.Entity]grid.Tile)}
}

func (s *MovementSystem) Update(w *ecs.World) {
	level, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	bounds, _ := ecs.Get(w, level, component.LevelBoundsComponent)
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}
	tiles, _ := ecs.Get(w, level, component.TileMapComponent)
	idx, _ := ecs.Get(w, level, component.LevelIndexComponent)
	mapper := bounds.Mapper()

	dt := w.Delta()
	if dt < 0 {
		dt = 0
	}

	for _, e := range w.Query(component.ActorPositionComponent.Kind(), component.TransformComponent.Kind()) {
		if !ecs.Has(w, e, component.MoveComponent) {
			s.start(w, e, idx.Index, bounds, mapper, tiles)
		}
		if mv, ok := ecs.Get(w, e, component.MoveComponent); ok {
			s.step(w, e, mv, dt, idx.Index, mapper, tiles)
		}
	}
}

func (s *MovementSystem) start(w *ecs.World, e ecs.Entity, index spatial.Index, bounds component.LevelBounds, mapper grid.Mapper, tiles component.TileMap) {
	in, ok := ecs.Get(w, e, component.InputComponent)
	if !ok || !in.Any() {
		delete(s.blocked, e)
		return
	}

	dir := directionOf(in)
	if dir == (grid.Tile{}) {
		return
	}

	pos, _ := ecs.Get(w, e, component.ActorPositionComponent)
	if !bounds.InBounds(pos.Tile) {
		return
	}
	target := bounds.ClampTile(pos.Tile.Add(dir))
	step := grid.Tile{X: target.X - pos.Tile.X, Y: target.Y - pos.Tile.Y}
	if step == (grid.Tile{}) {
		return
	}

	origin := mapper.TileToWorld(pos.Tile)
	dest := origin.Add(common.Vec2{X: float64(step.X), Y: float64(step.Y)}.Scale(mapper.TileSize))

	hb, _ := ecs.Get(w, e, component.HitboxComponent)
	hw, hh := hb.Size()
	if index != nil && index.Occupied(spatial.RectFromCenter(dest, hw, hh), uint64(e)) {
		if last, seen := s.blocked[e]; !seen || last != target {
			s.blocked[e] = target
			pushMoveEvent(w, EventMoveBlocked, MoveEvent{Entity: e, From: pos.Tile, To: target, Floor: floorAt(tiles, target)})
		}
		return
	}
	delete(s.blocked, e)

	speed := DefaultTilesPerSecond
	if ms, ok := ecs.Get(w, e, component.MoveSpeedComponent); ok && ms.TilesPerSecond > 0 {
		speed = ms.TilesPerSecond
	}
	if step.X != 0 && step.Y != 0 {
		speed /= math.Sqrt2
	}

	_ = ecs.Add(w, e, component.MoveComponent, component.Move{
		Origin:      common.Vec3{X: origin.X, Y: origin.Y, Z: pos.Z},
		Destination: common.Vec3{X: dest.X, Y: dest.Y, Z: pos.Z},
		Speed:       speed,
	})
	pushMoveEvent(w, EventMoveStarted, MoveEvent{Entity: e, From: pos.Tile, To: target, Floor: floorAt(tiles, target)})
}

func (s *MovementSystem) step(w *ecs.World, e ecs.Entity, mv component.Move, dt float64, index spatial.Index, mapper grid.Mapper, tiles component.TileMap) {
	mv.Progress = math.Min(1, mv.Progress+dt*mv.Speed)

	tr, _ := ecs.Get(w, e, component.TransformComponent)
	tr.SetPosition(common.Lerp3(mv.Origin, mv.Destination, mv.Progress))
	_ = ecs.Add(w, e, component.TransformComponent, tr)

	if mv.Progress < 1 {
		_ = ecs.Add(w, e, component.MoveComponent, mv)
		return
	}

	pos, _ := ecs.Get(w, e, component.ActorPositionComponent)
	from := pos.Tile
	pos.Tile = mapper.WorldToTile(mv.Destination.XY())
	_ = ecs.Add(w, e, component.ActorPositionComponent, pos)

	if occ, ok := ecs.Get(w, e, component.OccupantComponent); ok && index != nil {
		hb, _ := ecs.Get(w, e, component.HitboxComponent)
		hw, hh := hb.Size()
		index.Move(occ.Handle, spatial.RectFromCenter(mv.Destination.XY(), hw, hh))
	}

	ecs.Remove(w, e, component.MoveComponent)
	pushMoveEvent(w, EventMoveCompleted, MoveEvent{Entity: e, From: from, To: pos.Tile, Floor: floorAt(tiles, pos.Tile)})
}

// directionOf combines held keys additively; opposing keys cancel.
func directionOf(in component.Input) grid.Tile {
	var d grid.Tile
	if in.Forward {
		d.Y++
	}
	if in.Backward {
		d.Y--
	}
	if in.Left {
		d.X--
	}
	if in.Right {
		d.X++
	}
	return d
}

func floorAt(tiles component.TileMap, t grid.Tile) string {
	c, _ := tiles.At(t)
	return c.Floor
}
