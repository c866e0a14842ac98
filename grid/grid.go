// Package grid converts between integer tile addresses and continuous world
// positions.
package grid

import (
	"math"

	"github.com/milk9111/tilewalker/common"
)

// Tile is the integer address of a grid cell.
type Tile struct {
	X, Y int
}

func (t Tile) Add(o Tile) Tile {
	return Tile{X: t.X + o.X, Y: t.Y + o.Y}
}

// Mapper maps tiles to world points and back. Origin is the world position of
// the bottom-left corner of tile (0,0).
type Mapper struct {
	TileSize float64
	Origin   common.Vec2
}

func NewMapper(tileSize float64, origin common.Vec2) Mapper {
	if tileSize <= 0 {
		tileSize = common.DefaultTileSize
	}
	return Mapper{TileSize: tileSize, Origin: origin}
}

// WindowOrigin is the origin used before visible bounds are tracked: the
// bottom-left corner of a window centered on the world origin.
func WindowOrigin(windowW, windowH float64) common.Vec2 {
	return common.Vec2{X: -windowW / 2, Y: -windowH / 2}
}

// TileToWorld returns the center of the tile's cell.
func (m Mapper) TileToWorld(t Tile) common.Vec2 {
	half := m.TileSize / 2
	return common.Vec2{
		X: m.Origin.X + float64(t.X)*m.TileSize + half,
		Y: m.Origin.Y + float64(t.Y)*m.TileSize + half,
	}
}

func (m Mapper) WorldToTile(p common.Vec2) Tile {
	return Tile{
		X: int(math.Floor((p.X - m.Origin.X) / m.TileSize)),
		Y: int(math.Floor((p.Y - m.Origin.Y) / m.TileSize)),
	}
}

// Extent returns the world-space corners of a width x height tile map.
func (m Mapper) Extent(width, height int) (min, max common.Vec2) {
	min = m.Origin
	max = common.Vec2{
		X: m.Origin.X + float64(width)*m.TileSize,
		Y: m.Origin.Y + float64(height)*m.TileSize,
	}
	return min, max
}

// CellRect returns the world-space corners of a tile's cell.
func (m Mapper) CellRect(t Tile) (min, max common.Vec2) {
	min = common.Vec2{
		X: m.Origin.X + float64(t.X)*m.TileSize,
		Y: m.Origin.Y + float64(t.Y)*m.TileSize,
	}
	return min, common.Vec2{X: min.X + m.TileSize, Y: min.Y + m.TileSize}
}
