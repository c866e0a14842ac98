package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/tilewalker/ecs"
	"github.com/milk9111/tilewalker/ecs/component"
	"github.com/milk9111/tilewalker/ecs/entity"
	"github.com/milk9111/tilewalker/ecs/render"
	"github.com/milk9111/tilewalker/ecs/system"
	"github.com/milk9111/tilewalker/input"
	"github.com/milk9111/tilewalker/input/keyboard"
	"github.com/milk9111/tilewalker/prefabs"
	"golang.design/x/clipboard"
)

type GameOptions struct {
	Level  string
	Script string
	Debug  bool
	Watch  bool
}

type Game struct {
	spec  prefabs.GameSpec
	world *ecs.World
	scene entity.Scene

	keys   *keyboard.Keyboard
	script *input.ScriptSource
	input  *system.InputSystem

	simulation   *ecs.Scheduler
	presentation *ecs.Scheduler
	renderer     *render.Renderer

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI

	watcher   *prefabs.Watcher
	clipboard bool

	debug     bool
	lastDraw  time.Time
	lastEvent string
	frames    int
}

func NewGame(spec prefabs.GameSpec, opts GameOptions) (*Game, error) {
	keys, err := keyboard.New(spec.Keys)
	if err != nil {
		return nil, err
	}

	g := &Game{
		spec:     spec,
		world:    ecs.NewWorld(),
		keys:     keys,
		renderer: render.NewRenderer(),
		debug:    opts.Debug,
	}
	g.renderer.Debug = opts.Debug
	for name, f := range spec.Floors {
		if f.Color == "" {
			continue
		}
		c, err := f.RGBA()
		if err != nil {
			log.Printf("floor %s: %v", name, err)
			continue
		}
		g.renderer.SetFloorColor(name, c)
	}

	g.scene, err = entity.LoadScene(g.world, spec, opts.Level, float64(spec.Window.Width), float64(spec.Window.Height))
	if err != nil {
		return nil, err
	}

	var source system.InputSource = keys
	if opts.Script != "" {
		g.script, err = input.LoadScriptSource(opts.Script)
		if err != nil {
			return nil, err
		}
		source = input.Any{keys, g.script}
	}
	g.input = system.NewInputSystem(source)

	g.simulation = ecs.NewScheduler(
		g.input,
		system.NewMovementSystem(),
	)
	g.presentation = ecs.NewScheduler(
		system.NewAnimationSystem(),
		system.NewCameraSystem(),
		system.NewVisibleBoundsSystem(),
	)
	g.pauseUI = NewPauseUI(g)

	if opts.Watch {
		g.watcher, err = prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts"))
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		}
	}
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		g.clipboard = true
	}
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++
	g.drainWatcher()

	if g.keys.JustPressed(keyboard.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	if g.keys.JustPressed(keyboard.ActionDebug) {
		g.debug = !g.debug
		g.renderer.Debug = g.debug
	}
	if g.keys.JustPressed(keyboard.ActionCopyTile) {
		g.copyPlayerTile()
	}

	g.simulation.Update(g.world, 1/float64(ebiten.TPS()))
	for _, evt := range g.world.Events().Drain() {
		g.lastEvent = evt.Type
	}

	if g.script != nil {
		if err := g.script.Err(); err != nil {
			log.Printf("script %s stopped: %v", g.script.Name(), err)
			g.script = nil
			g.input.SetSource(g.keys)
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	now := time.Now()
	dt := 0.0
	if !g.lastDraw.IsZero() {
		dt = now.Sub(g.lastDraw).Seconds()
	}
	g.lastDraw = now

	if !g.paused {
		g.presentation.Update(g.world, dt)
	}
	g.renderer.Draw(g.world, screen)

	if g.debug {
		ebitenutil.DebugPrint(screen, g.debugText())
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	entity.SetCameraViewport(g.world, float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		log.Printf("watch: %v", err)
	default:
	}
	for {
		name, ok := g.watcher.Poll()
		if !ok {
			return
		}
		switch {
		case name == filepath.Base(g.spec.Player):
			if err := entity.ReloadEntity(g.world, g.scene.Player, g.spec.Player); err != nil {
				log.Printf("reload %s: %v", name, err)
				continue
			}
			log.Printf("reloaded %s", name)
		case g.script != nil && strings.TrimSuffix(name, ".tengo") == strings.TrimSuffix(g.script.Name(), ".tengo"):
			script, err := input.LoadScriptSource(g.script.Name())
			if err != nil {
				log.Printf("reload %s: %v", name, err)
				continue
			}
			g.script = script
			g.input.SetSource(input.Any{g.keys, script})
			log.Printf("reloaded %s", name)
		}
	}
}

func (g *Game) copyPlayerTile() {
	if !g.clipboard {
		return
	}
	pos, ok := ecs.Get(g.world, g.scene.Player, component.ActorPositionComponent)
	if !ok {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(fmt.Sprintf("%d,%d", pos.Tile.X, pos.Tile.Y)))
}

func (g *Game) debugText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.2f  TPS: %.2f  frames: %d\n", ebiten.ActualFPS(), ebiten.ActualTPS(), g.frames)

	w, p := g.world, g.scene.Player
	if pos, ok := ecs.Get(w, p, component.ActorPositionComponent); ok {
		fmt.Fprintf(&b, "tile: %d,%d\n", pos.Tile.X, pos.Tile.Y)
	}
	if mv, ok := ecs.Get(w, p, component.MoveComponent); ok {
		fmt.Fprintf(&b, "move: %.2f\n", mv.Progress)
	} else {
		b.WriteString("move: idle\n")
	}
	if s, ok := ecs.Get(w, p, component.SpriteComponent); ok {
		fmt.Fprintf(&b, "frame: %d\n", s.Frame)
	}
	if vis, ok := ecs.Get(w, g.scene.Camera, component.VisibleBoundsComponent); ok {
		fmt.Fprintf(&b, "visible: (%.0f,%.0f)-(%.0f,%.0f)\n", vis.Min.X, vis.Min.Y, vis.Max.X, vis.Max.Y)
	}
	if g.lastEvent != "" {
		fmt.Fprintf(&b, "event: %s\n", g.lastEvent)
	}
	return b.String()
}
