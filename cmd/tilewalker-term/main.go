// Command tilewalker-term runs the tile walker in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/tilewalker/common"
	"github.com/milk9111/tilewalker/ecs"
	"github.com/milk9111/tilewalker/ecs/component"
	"github.com/milk9111/tilewalker/ecs/entity"
	"github.com/milk9111/tilewalker/ecs/system"
	"github.com/milk9111/tilewalker/input"
	"github.com/milk9111/tilewalker/input/terminal"
	"github.com/milk9111/tilewalker/prefabs"
	"github.com/milk9111/tilewalker/sfx"
	"github.com/milk9111/tilewalker/termview"
	"golang.design/x/clipboard"
)

func main() {
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	script := flag.String("script", "", "tengo script in prefabs/scripts driving input")
	mute := flag.Bool("mute", false, "disable sound cues")
	logPath := flag.String("log", "", "write log output to this file instead of discarding it")
	flag.Parse()

	// the screen owns the terminal; log lines would corrupt it
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	spec, err := prefabs.LoadGameSpec("game.yaml")
	if err != nil {
		fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fatal(err)
	}
	if err := screen.Init(); err != nil {
		fatal(err)
	}

	err = run(screen, spec, *levelName, *script, !*mute && spec.Terminal.Sound)
	screen.Fini()
	if err != nil {
		fatal(err)
	}
}

type session struct {
	world   *ecs.World
	scene   entity.Scene
	view    *termview.View
	keys    *terminal.Source
	script  *input.ScriptSource
	input   *system.InputSystem
	sound   *sfx.Player
	paused  bool
	debug   bool
	copied  string
	blocked int

	simulation   *ecs.Scheduler
	presentation *ecs.Scheduler
}

func newSession(screen tcell.Screen, spec prefabs.GameSpec, levelName, script string) (*session, error) {
	keys, err := terminal.New(spec.Keys, time.Duration(spec.Terminal.HoldMillis)*time.Millisecond)
	if err != nil {
		return nil, err
	}

	s := &session{world: ecs.NewWorld(), view: termview.New(screen), keys: keys}
	if glyphs := floorGlyphs(spec.Floors); len(glyphs) > 0 {
		s.view.SetFloorGlyphs(glyphs)
	}

	// the map is anchored at the origin of the first viewport
	viewW, viewH := s.view.Viewport(common.DefaultTileSize)
	if s.scene, err = entity.LoadScene(s.world, spec, levelName, viewW, viewH); err != nil {
		return nil, err
	}
	s.fitCamera()

	var source system.InputSource = keys
	if script != "" {
		if s.script, err = input.LoadScriptSource(script); err != nil {
			return nil, err
		}
		source = input.Any{keys, s.script}
	}
	s.input = system.NewInputSystem(source)

	s.simulation = ecs.NewScheduler(s.input, system.NewMovementSystem())
	s.presentation = ecs.NewScheduler(
		system.NewAnimationSystem(),
		system.NewCameraSystem(),
		system.NewVisibleBoundsSystem(),
	)
	return s, nil
}

func run(screen tcell.Screen, spec prefabs.GameSpec, levelName, script string, sound bool) error {
	s, err := newSession(screen, spec, levelName, script)
	if err != nil {
		return err
	}

	if sound {
		s.sound = sfx.NewPlayer()
		if err := s.sound.Open(); err != nil {
			log.Printf("sound disabled: %v", err)
		}
		defer s.sound.Close()
	}

	events := make(chan tcell.Event, 32)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	tick := time.Second / time.Duration(spec.TPS)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	lastDraw := time.Now()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				s.fitCamera()
			case *tcell.EventKey:
				if s.handleKey(ev) {
					return nil
				}
			}
		case <-ticker.C:
			now := time.Now()
			s.frame(tick.Seconds(), now.Sub(lastDraw).Seconds())
			lastDraw = now
		}
	}
}

// handleKey applies a key event and reports whether the session should end.
func (s *session) handleKey(ev *tcell.EventKey) bool {
	switch s.keys.HandleKey(ev) {
	case terminal.ActionQuit:
		return true
	case terminal.ActionPause:
		s.paused = !s.paused
		s.keys.Release()
	case terminal.ActionDebug:
		s.debug = !s.debug
	case terminal.ActionCopyTile:
		s.copyTile()
	}
	return false
}

// frame runs one simulation tick of tickDt and one presentation pass of
// drawDt, then draws. A paused session only redraws.
func (s *session) frame(tickDt, drawDt float64) {
	if !s.paused {
		s.simulation.Update(s.world, tickDt)
		s.handleEvents(s.world.Events().Drain())
		s.checkScript()
		s.presentation.Update(s.world, drawDt)
	}
	s.view.Draw(s.world, s.status()...)
}

// fitCamera sizes the camera to the terminal grid, one world unit per unit.
func (s *session) fitCamera() {
	bounds, ok := ecs.Get(s.world, s.scene.Level, component.LevelBoundsComponent)
	if !ok {
		return
	}
	if cam, ok := ecs.Get(s.world, s.scene.Camera, component.CameraComponent); ok && cam.Zoom != 1 {
		cam.Zoom = 1
		_ = ecs.Add(s.world, s.scene.Camera, component.CameraComponent, cam)
	}
	viewW, viewH := s.view.Viewport(bounds.TileSize)
	entity.SetCameraViewport(s.world, viewW, viewH)
}

func (s *session) handleEvents(events []ecs.Event) {
	for _, evt := range events {
		if evt.Type == system.EventMoveBlocked {
			s.blocked++
		}
	}
	if s.sound != nil {
		s.sound.Handle(events)
	}
}

func (s *session) checkScript() {
	if s.script == nil {
		return
	}
	if err := s.script.Err(); err != nil {
		log.Printf("script %s stopped: %v", s.script.Name(), err)
		s.script = nil
		s.input.SetSource(s.keys)
	}
}

func (s *session) copyTile() {
	pos, ok := ecs.Get(s.world, s.scene.Player, component.ActorPositionComponent)
	if !ok {
		return
	}
	text := fmt.Sprintf("%d,%d", pos.Tile.X, pos.Tile.Y)
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	s.copied = text
}

func (s *session) status() []string {
	w, p := s.world, s.scene.Player
	pos, _ := ecs.Get(w, p, component.ActorPositionComponent)
	state := "idle"
	if mv, ok := ecs.Get(w, p, component.MoveComponent); ok {
		state = fmt.Sprintf("moving %.0f%%", mv.Progress*100)
	}
	line := fmt.Sprintf("tile %d,%d  %s", pos.Tile.X, pos.Tile.Y, state)
	if s.paused {
		line += "  [paused]"
	}
	if s.copied != "" {
		line += "  copied " + s.copied
	}

	if !s.debug {
		return []string{line, "move: wasd/arrows  pause: p  quit: q"}
	}
	sprite, _ := ecs.Get(w, p, component.SpriteComponent)
	vis, _ := ecs.Get(w, s.scene.Camera, component.VisibleBoundsComponent)
	return []string{line, fmt.Sprintf("frame %d  blocked %d  visible (%.0f,%.0f)-(%.0f,%.0f)",
		sprite.Frame, s.blocked, vis.Min.X, vis.Min.Y, vis.Max.X, vis.Max.Y)}
}

// floorGlyphs turns configured floor glyphs into terminal glyphs colored
// like the desktop tiles.
func floorGlyphs(floors map[string]prefabs.FloorSpec) map[string]termview.Glyph {
	glyphs := make(map[string]termview.Glyph, len(floors))
	for name, f := range floors {
		if f.Glyph == "" {
			continue
		}
		style := tcell.StyleDefault
		if c, err := f.RGBA(); err == nil && f.Color != "" {
			style = style.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		}
		glyphs[name] = termview.Glyph{Text: f.Glyph, Style: style}
	}
	return glyphs
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
