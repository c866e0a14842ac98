package component

import "github.com/milk9111/tilewalker/grid"

// Cell is the per-tile metadata the engine cares about.
type Cell struct {
	Walkable bool
	Floor    string
}

// TileMap holds cells row by row, row 0 at the bottom of the map.
type TileMap struct {
	Width  int
	Height int
	Cells  []Cell
}

// At returns the cell at t.
func (m TileMap) At(t grid.Tile) (Cell, bool) {
	if t.X < 0 || t.Y < 0 || t.X >= m.Width || t.Y >= m.Height {
		return Cell{}, false
	}
	i := t.Y*m.Width + t.X
	if i >= len(m.Cells) {
		return Cell{}, false
	}
	return m.Cells[i], true
}

var TileMapComponent = NewComponent[TileMap]()
