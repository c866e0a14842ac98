package component

import (
	"github.com/milk9111/tilewalker/common"
	"github.com/milk9111/tilewalker/grid"
	"github.com/milk9111/tilewalker/spatial"
)

// LevelBounds stores the world-space extent of the loaded map and the tile
// addressing it was built with.
type LevelBounds struct {
	Min      common.Vec2
	Max      common.Vec2
	TileSize float64
	Width    int
	Height   int
}

// Mapper returns the coordinate mapper anchored at the map minimum.
func (b LevelBounds) Mapper() grid.Mapper {
	return grid.NewMapper(b.TileSize, b.Min)
}

// InBounds reports whether t addresses a cell of the map.
func (b LevelBounds) InBounds(t grid.Tile) bool {
	return t.X >= 0 && t.Y >= 0 && t.X < b.Width && t.Y < b.Height
}

// ClampTile pulls t into the map.
func (b LevelBounds) ClampTile(t grid.Tile) grid.Tile {
	return grid.Tile{
		X: common.ClampInt(t.X, 0, b.Width-1),
		Y: common.ClampInt(t.Y, 0, b.Height-1),
	}
}

var LevelBoundsComponent = NewComponent[LevelBounds]()

// LevelIndex exposes the occupancy index built for the loaded map.
type LevelIndex struct {
	Index spatial.Index
}

var LevelIndexComponent = NewComponent[LevelIndex]()

// LevelSpawn is the tile the player starts on.
type LevelSpawn struct {
	Tile grid.Tile
}

var LevelSpawnComponent = NewComponent[LevelSpawn]()
