// Package termview draws the world onto a tcell screen, one tile per cell.
package termview

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/milk9111/tilewalker/common"
	"github.com/milk9111/tilewalker/ecs"
	"github.com/milk9111/tilewalker/ecs/component"
)

// HUDRows is the number of bottom rows reserved for status text.
const HUDRows = 2

type Glyph struct {
	Text  string
	Style tcell.Style
}

var defaultFloors = map[string]Glyph{
	"grass": {".", tcell.StyleDefault.Foreground(tcell.ColorGreen)},
	"sand":  {":", tcell.StyleDefault.Foreground(tcell.ColorYellow)},
	"stone": {"=", tcell.StyleDefault.Foreground(tcell.ColorSilver)},
	"water": {"~", tcell.StyleDefault.Foreground(tcell.ColorBlue)},
	"wall":  {"#", tcell.StyleDefault.Foreground(tcell.ColorGray)},
}

var (
	unknownFloor = Glyph{"?", tcell.StyleDefault.Foreground(tcell.ColorRed)}
	playerStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	playerIdle   = "@"
	playerFacing = map[component.Direction]string{
		component.DirectionForward:  "^",
		component.DirectionBackward: "v",
		component.DirectionLeft:     "<",
		component.DirectionRight:    ">",
	}
)

type View struct {
	screen tcell.Screen
	floors map[string]Glyph
	cellW  int
}

func New(screen tcell.Screen) *View {
	v := &View{screen: screen, floors: defaultFloors}
	v.cellW = v.measure()
	return v
}

// SetFloorGlyphs overrides glyphs per floor kind. Wide glyphs make every tile
// two columns.
func (v *View) SetFloorGlyphs(glyphs map[string]Glyph) {
	merged := make(map[string]Glyph, len(defaultFloors)+len(glyphs))
	for k, g := range defaultFloors {
		merged[k] = g
	}
	for k, g := range glyphs {
		merged[k] = g
	}
	v.floors = merged
	v.cellW = v.measure()
}

func (v *View) measure() int {
	w := runewidth.StringWidth(playerIdle)
	for _, g := range v.floors {
		w = max(w, runewidth.StringWidth(g.Text))
	}
	for _, s := range playerFacing {
		w = max(w, runewidth.StringWidth(s))
	}
	return max(w, 1)
}

// Viewport returns the map area size in world units for a map of tileSize
// tiles.
func (v *View) Viewport(tileSize float64) (float64, float64) {
	cols, rows := v.gridSize()
	return float64(cols) * tileSize, float64(rows) * tileSize
}

func (v *View) gridSize() (int, int) {
	sw, sh := v.screen.Size()
	return sw / v.cellW, max(sh-HUDRows, 0)
}

// Draw renders the visible part of the map, the player, and the status lines.
func (v *View) Draw(w *ecs.World, status ...string) {
	v.screen.Clear()
	v.drawMap(w)
	v.drawHUD(status)
	v.screen.Show()
}

func (v *View) drawMap(w *ecs.World) {
	level, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	camEntity, ok := w.First(component.CameraComponent.Kind(), component.VisibleBoundsComponent.Kind())
	if !ok {
		return
	}
	vb, _ := ecs.Get(w, camEntity, component.VisibleBoundsComponent)
	if vb.Empty() {
		return
	}

	bounds, _ := ecs.Get(w, level, component.LevelBoundsComponent)
	tiles, _ := ecs.Get(w, level, component.TileMapComponent)
	mapper := bounds.Mapper()
	ts := mapper.TileSize
	cols, rows := v.gridSize()

	cellAt := func(cx, cy int) common.Vec2 {
		// screen rows grow downward, world y grows upward
		return common.Vec2{
			X: vb.Min.X + (float64(cx)+0.5)*ts,
			Y: vb.Max.Y - (float64(cy)+0.5)*ts,
		}
	}

	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			cell, ok := tiles.At(mapper.WorldToTile(cellAt(cx, cy)))
			if !ok {
				continue
			}
			g, ok := v.floors[cell.Floor]
			if !ok {
				g = unknownFloor
			}
			v.put(cx*v.cellW, cy, g.Text, g.Style)
		}
	}

	player, ok := w.First(component.PlayerTagComponent.Kind(), component.TransformComponent.Kind())
	if !ok {
		return
	}
	tr, _ := ecs.Get(w, player, component.TransformComponent)
	cx := int((tr.X - vb.Min.X) / ts)
	cy := int((vb.Max.Y - tr.Y) / ts)
	if cx < 0 || cy < 0 || cx >= cols || cy >= rows {
		return
	}
	v.put(cx*v.cellW, cy, playerGlyph(w, player), playerStyle)
}

// playerGlyph points the way the active walk clip faces.
func playerGlyph(w *ecs.World, player ecs.Entity) string {
	state, ok := ecs.Get(w, player, component.AnimationStateComponent)
	if !ok {
		return playerIdle
	}
	anims, _ := ecs.Get(w, player, component.DirectionalAnimationsComponent)
	for _, dir := range component.Directions {
		if clip, ok := anims.Clip(dir); ok && clip.SameRange(state.First, state.Last) {
			return playerFacing[dir]
		}
	}
	return playerIdle
}

func (v *View) drawHUD(lines []string) {
	sw, sh := v.screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i := 0; i < HUDRows && i < len(lines); i++ {
		y := sh - HUDRows + i
		if y < 0 {
			continue
		}
		x := 0
		for _, r := range lines[i] {
			rw := runewidth.RuneWidth(r)
			if x+rw > sw {
				break
			}
			v.screen.SetContent(x, y, r, nil, style)
			x += max(rw, 1)
		}
	}
}

// put draws one glyph, padding narrow glyphs to the cell width.
func (v *View) put(x, y int, text string, style tcell.Style) {
	runes := []rune(text)
	if len(runes) == 0 {
		return
	}
	v.screen.SetContent(x, y, runes[0], runes[1:], style)
	for pad := runewidth.StringWidth(text); pad < v.cellW; pad++ {
		v.screen.SetContent(x+pad, y, ' ', nil, style)
	}
}
