package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a rectangular tile map. Rows are listed top to bottom as they
// appear on screen; tile y=0 is the bottom row.
type Level struct {
	Name     string          `json:"name"`
	Width    int             `json:"width"`
	Height   int             `json:"height"`
	TileSize float64         `json:"tile_size"`
	Spawn    Point           `json:"spawn"`
	Legend   map[string]Cell `json:"legend"`
	Rows     []string        `json:"rows"`
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Cell struct {
	Walkable bool   `json:"walkable"`
	Floor    string `json:"floor"`
}

// LoadLevelFromFS reads an embedded level. The .json extension is optional.
func LoadLevelFromFS(name string) (*Level, error) {
	return LoadLevel(LevelsFS, name)
}

func LoadLevel(fsys fs.FS, name string) (*Level, error) {
	name = path.Base(strings.TrimSpace(name))
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	return &lvl, nil
}

// Validate checks that the rows match the declared size, every glyph is in the
// legend, and the spawn is a walkable cell.
func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", l.Width, l.Height)
	}
	if len(l.Rows) != l.Height {
		return fmt.Errorf("expected %d rows, got %d", l.Height, len(l.Rows))
	}
	for i, row := range l.Rows {
		if len([]rune(row)) != l.Width {
			return fmt.Errorf("row %d: expected %d cells, got %d", i, l.Width, len([]rune(row)))
		}
		for _, r := range row {
			if _, ok := l.Legend[string(r)]; !ok {
				return fmt.Errorf("row %d: glyph %q not in legend", i, r)
			}
		}
	}
	spawn, ok := l.Cell(l.Spawn.X, l.Spawn.Y)
	if !ok || !spawn.Walkable {
		return fmt.Errorf("spawn (%d,%d) is not a walkable cell", l.Spawn.X, l.Spawn.Y)
	}
	return nil
}

// Cell returns the cell at tile (x, y), with y counted up from the bottom row.
func (l *Level) Cell(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height || len(l.Rows) != l.Height {
		return Cell{}, false
	}
	row := []rune(l.Rows[l.Height-1-y])
	if x >= len(row) {
		return Cell{}, false
	}
	c, ok := l.Legend[string(row[x])]
	return c, ok
}

// Glyph returns the legend key drawn at tile (x, y).
func (l *Level) Glyph(x, y int) rune {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height || len(l.Rows) != l.Height {
		return ' '
	}
	row := []rune(l.Rows[l.Height-1-y])
	if x >= len(row) {
		return ' '
	}
	return row[x]
}
