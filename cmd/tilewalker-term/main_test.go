package main

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/tilewalker/ecs"
	"github.com/milk9111/tilewalker/ecs/component"
	"github.com/milk9111/tilewalker/grid"
	"github.com/milk9111/tilewalker/prefabs"
)

const tick = 1.0 / 60

func newTestSession(t *testing.T, level string) *session {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(80, 26)
	t.Cleanup(screen.Fini)

	spec, err := prefabs.LoadGameSpec("game.yaml")
	if err != nil {
		t.Fatalf("load game spec: %v", err)
	}
	s, err := newSession(screen, spec, level, "")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	// held keys never time out
	frozen := time.Unix(100, 0)
	s.keys.SetClock(func() time.Time { return frozen })
	return s
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func playerTile(t *testing.T, s *session) grid.Tile {
	t.Helper()
	pos, ok := ecs.Get(s.world, s.scene.Player, component.ActorPositionComponent)
	if !ok {
		t.Fatalf("player has no position")
	}
	return pos.Tile
}

func TestSessionFitsCameraToTerminal(t *testing.T) {
	s := newTestSession(t, "corridor")

	cam, ok := ecs.Get(s.world, s.scene.Camera, component.CameraComponent)
	if !ok {
		t.Fatalf("expected a camera")
	}
	wantW, wantH := s.view.Viewport(32)
	if cam.Zoom != 1 || cam.ViewportW != wantW || cam.ViewportH != wantH {
		t.Fatalf("expected zoom 1 and viewport %vx%v, got %+v", wantW, wantH, cam)
	}
}

func TestSessionWalksAndDraws(t *testing.T) {
	s := newTestSession(t, "corridor")
	if got := playerTile(t, s); got != (grid.Tile{X: 1, Y: 1}) {
		t.Fatalf("expected spawn (1,1), got %v", got)
	}

	if s.handleKey(key('d')) {
		t.Fatalf("movement key should not quit")
	}
	// 8 tiles/s at 60 ticks/s needs 8 ticks for one tile
	for i := 0; i < 8; i++ {
		s.frame(tick, tick)
	}
	if got := playerTile(t, s); got != (grid.Tile{X: 2, Y: 1}) {
		t.Fatalf("expected (2,1) after one move, got %v", got)
	}
	if ecs.Has(s.world, s.scene.Player, component.MoveComponent) {
		t.Fatalf("move should be complete")
	}
	if vis, _ := ecs.Get(s.world, s.scene.Camera, component.VisibleBoundsComponent); vis.Empty() {
		t.Fatalf("visible bounds should be computed after a frame")
	}
	if status := s.status(); !strings.HasPrefix(status[0], "tile 2,1") {
		t.Fatalf("unexpected status %q", status[0])
	}
}

func TestSessionPauseAndQuit(t *testing.T) {
	s := newTestSession(t, "corridor")

	s.handleKey(key('p'))
	if !s.paused {
		t.Fatalf("p should pause")
	}
	s.handleKey(key('d'))
	for i := 0; i < 10; i++ {
		s.frame(tick, tick)
	}
	if got := playerTile(t, s); got != (grid.Tile{X: 1, Y: 1}) {
		t.Fatalf("paused session moved the player to %v", got)
	}
	if !strings.Contains(s.status()[0], "[paused]") {
		t.Fatalf("status should show the pause")
	}

	if !s.handleKey(key('q')) {
		t.Fatalf("q should quit")
	}
}

func TestSessionBumpCountsBlockedMoves(t *testing.T) {
	s := newTestSession(t, "corridor")
	s.debug = true

	// the corridor wall sits right above the spawn
	s.handleKey(key('w'))
	for i := 0; i < 5; i++ {
		s.frame(tick, tick)
	}
	if s.blocked != 1 {
		t.Fatalf("expected one blocked move while held, got %d", s.blocked)
	}
	if got := s.status()[1]; !strings.Contains(got, "blocked 1") {
		t.Fatalf("debug status should report the bump, got %q", got)
	}
}

func TestFloorGlyphs(t *testing.T) {
	glyphs := floorGlyphs(map[string]prefabs.FloorSpec{
		"grass": {Color: "#00ff00", Glyph: ","},
		"bad":   {Color: "green", Glyph: "?"},
		"blank": {Color: "#ffffff"},
	})
	if len(glyphs) != 2 {
		t.Fatalf("expected two glyphs, got %v", glyphs)
	}
	grass := glyphs["grass"]
	if grass.Text != "," {
		t.Fatalf("unexpected grass glyph %+v", grass)
	}
	if fg, _, _ := grass.Style.Decompose(); fg != tcell.NewRGBColor(0, 0xff, 0) {
		t.Fatalf("expected green foreground, got %v", fg)
	}
	if fg, _, _ := glyphs["bad"].Style.Decompose(); fg != tcell.ColorDefault {
		t.Fatalf("unparsable color should keep the default style")
	}
}
