package entity

import (
	"fmt"

	"github.com/milk9111/tilewalker/common"
	"github.com/milk9111/tilewalker/ecs"
	"github.com/milk9111/tilewalker/ecs/component"
	"github.com/milk9111/tilewalker/grid"
	"github.com/milk9111/tilewalker/levels"
	"github.com/milk9111/tilewalker/spatial"
)

// LoadLevelToWorld creates the level entity: map bounds anchored at origin,
// the tile map, the spawn tile, and an occupancy index holding one static
// rectangle per non-walkable cell.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level, origin common.Vec2) (ecs.Entity, error) {
	if w == nil || lvl == nil {
		return 0, fmt.Errorf("level: world and level are required")
	}
	if err := lvl.Validate(); err != nil {
		return 0, fmt.Errorf("level: %s: %w", lvl.Name, err)
	}

	mapper := grid.NewMapper(lvl.TileSize, origin)
	min, max := mapper.Extent(lvl.Width, lvl.Height)

	cells := make([]component.Cell, lvl.Width*lvl.Height)
	index := spatial.NewSpace()
	for y := 0; y < lvl.Height; y++ {
		for x := 0; x < lvl.Width; x++ {
			c, _ := lvl.Cell(x, y)
			cells[y*lvl.Width+x] = component.Cell{Walkable: c.Walkable, Floor: c.Floor}
			if c.Walkable {
				continue
			}
			cmin, cmax := mapper.CellRect(grid.Tile{X: x, Y: y})
			index.Insert(spatial.Rect{Min: cmin, Max: cmax}, spatial.Static, 0)
		}
	}

	e := w.CreateEntity()
	adds := []func() error{
		func() error { return ecs.Add(w, e, component.LevelTagComponent, component.LevelTag{}) },
		func() error {
			return ecs.Add(w, e, component.LevelBoundsComponent, component.LevelBounds{
				Min:      min,
				Max:      max,
				TileSize: mapper.TileSize,
				Width:    lvl.Width,
				Height:   lvl.Height,
			})
		},
		func() error {
			return ecs.Add(w, e, component.TileMapComponent, component.TileMap{Width: lvl.Width, Height: lvl.Height, Cells: cells})
		},
		func() error {
			return ecs.Add(w, e, component.LevelSpawnComponent, component.LevelSpawn{Tile: grid.Tile{X: lvl.Spawn.X, Y: lvl.Spawn.Y}})
		},
		func() error { return ecs.Add(w, e, component.LevelIndexComponent, component.LevelIndex{Index: index}) },
	}
	for _, add := range adds {
		if err := add(); err != nil {
			w.DestroyEntity(e)
			return 0, fmt.Errorf("level: %s: %w", lvl.Name, err)
		}
	}
	return e, nil
}
