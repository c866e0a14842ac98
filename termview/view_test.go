package termview

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/tilewalker/common"
	"github.com/milk9111/tilewalker/ecs"
	"github.com/milk9111/tilewalker/ecs/component"
	"github.com/milk9111/tilewalker/ecs/system"
	"github.com/milk9111/tilewalker/grid"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	ss.SetSize(w, h)
	if err := ss.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	ss.SetSize(w, h)
	return ss
}

// buildWorld lays out a 6x4 map with a wall column at x=3 and a player at
// tile (1,1).
func buildWorld(t *testing.T, v *View) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	const ts = 10.0
	m := grid.NewMapper(ts, common.Vec2{})
	min, max := m.Extent(6, 4)

	cells := make([]component.Cell, 6*4)
	for i := range cells {
		cells[i] = component.Cell{Walkable: true, Floor: "grass"}
		if i%6 == 3 {
			cells[i] = component.Cell{Floor: "wall"}
		}
	}
	level := w.CreateEntity()
	mustAdd(t, w, level, component.LevelBoundsComponent, component.LevelBounds{Min: min, Max: max, TileSize: ts, Width: 6, Height: 4})
	mustAdd(t, w, level, component.TileMapComponent, component.TileMap{Width: 6, Height: 4, Cells: cells})

	cam := w.CreateEntity()
	vw, vh := v.Viewport(ts)
	mustAdd(t, w, cam, component.CameraTagComponent, component.CameraTag{})
	mustAdd(t, w, cam, component.CameraComponent, component.Camera{Zoom: 1, ViewportW: vw, ViewportH: vh})
	mustAdd(t, w, cam, component.TransformComponent, component.Transform{})

	player := w.CreateEntity()
	p := m.TileToWorld(grid.Tile{X: 1, Y: 1})
	mustAdd(t, w, player, component.PlayerTagComponent, component.PlayerTag{})
	mustAdd(t, w, player, component.TransformComponent, component.Transform{X: p.X, Y: p.Y})

	ecs.NewScheduler(system.NewCameraSystem(), system.NewVisibleBoundsSystem()).Update(w, 0)
	return w, player
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, h component.ComponentHandle[T], v T) {
	t.Helper()
	if err := ecs.Add(w, e, h, v); err != nil {
		t.Fatalf("add: %v", err)
	}
}

func runeAt(ss tcell.SimulationScreen, x, y int) rune {
	r, _, _, _ := ss.GetContent(x, y)
	return r
}

func TestDrawWholeMap(t *testing.T) {
	// 6 columns by 4 map rows + HUD: the whole map fits exactly
	ss := newSimScreen(t, 6, 4+HUDRows)
	v := New(ss)
	w, _ := buildWorld(t, v)

	v.Draw(w, "tile 1,1", "")

	// map row y=3 is screen row 0; the player at (1,1) is screen row 2
	cases := []struct {
		x, y int
		want rune
	}{
		{0, 0, '.'},
		{3, 0, '#'},
		{3, 3, '#'},
		{1, 2, '@'},
		{0, 3, '.'},
		{0, 4, 't'},
	}
	for _, c := range cases {
		if got := runeAt(ss, c.x, c.y); got != c.want {
			t.Fatalf("cell (%d,%d) = %q, want %q", c.x, c.y, got, c.want)
		}
	}
}

func TestPlayerGlyphFollowsClip(t *testing.T) {
	ss := newSimScreen(t, 6, 4+HUDRows)
	v := New(ss)
	w, player := buildWorld(t, v)

	mustAdd(t, w, player, component.DirectionalAnimationsComponent, component.DirectionalAnimations{Clips: map[component.Direction]component.Clip{
		component.DirectionLeft: {First: 8, Last: 11, FPS: 10},
	}})
	mustAdd(t, w, player, component.AnimationStateComponent, component.AnimationState{First: 8, Last: 11, FPS: 10})

	v.Draw(w)
	if got := runeAt(ss, 1, 2); got != '<' {
		t.Fatalf("expected player facing left, got %q", got)
	}
}

func TestWideGlyphsDoubleCells(t *testing.T) {
	ss := newSimScreen(t, 12, 4+HUDRows)
	v := New(ss)
	v.SetFloorGlyphs(map[string]Glyph{"grass": {Text: "🌱"}})
	if v.cellW != 2 {
		t.Fatalf("expected two-column cells, got %d", v.cellW)
	}
	vw, _ := v.Viewport(10)
	if vw != 60 {
		t.Fatalf("expected 6 tiles across, got %v world units", vw)
	}

	w, _ := buildWorld(t, v)
	v.Draw(w)
	if got := runeAt(ss, 6, 0); got != '#' {
		t.Fatalf("wall should start at column 6, got %q", got)
	}
	if got := runeAt(ss, 2, 2); got != '@' {
		t.Fatalf("player should be at column 2, got %q", got)
	}
}

func TestDrawWithoutBoundsIsBlank(t *testing.T) {
	ss := newSimScreen(t, 6, 4+HUDRows)
	v := New(ss)
	v.Draw(ecs.NewWorld())
	if got := runeAt(ss, 0, 0); got != ' ' {
		t.Fatalf("expected blank screen, got %q", got)
	}
}
