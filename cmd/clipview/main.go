// Command clipview previews a prefab's directional clips. Hold a movement key
// to play its clip through the same animation system the game uses.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"

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
)

const viewSize = 512

type clipGame struct {
	world  *ecs.World
	actor  ecs.Entity
	anim   *ecs.Scheduler
	input  *system.InputSystem
	sheet  *ebiten.Image
	scale  float64
	prefab string
}

func (g *clipGame) Update() error {
	g.input.Update(g.world)
	g.anim.Update(g.world, 1/float64(ebiten.TPS()))
	return nil
}

func (g *clipGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x20, 0xff})
	s, ok := ecs.Get(g.world, g.actor, component.SpriteComponent)
	if !ok || g.sheet == nil {
		return
	}

	fx, fy := s.FrameOrigin()
	frame, ok := g.sheet.SubImage(image.Rect(fx, fy, fx+s.FrameW, fy+s.FrameH)).(*ebiten.Image)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(g.scale, g.scale)
	op.GeoM.Translate((viewSize-float64(s.FrameW)*g.scale)/2, (viewSize-float64(s.FrameH)*g.scale)/2)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(frame, op)

	clip := "idle"
	if st, ok := ecs.Get(g.world, g.actor, component.AnimationStateComponent); ok {
		clip = fmt.Sprintf("%d..%d @ %d fps", st.First, st.Last, st.FPS)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s\nframe %d  clip %s", g.prefab, s.Frame, clip))
}

func (g *clipGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

func main() {
	prefab := flag.String("prefab", entity.PlayerPrefab, "prefab with sprite and directional_animation components")
	scale := flag.Float64("scale", 8, "pixel scale")
	hold := flag.String("hold", "", "keep a direction held (forward, backward, left, right)")
	flag.Parse()

	spec, err := prefabs.LoadGameSpec("game.yaml")
	if err != nil {
		log.Fatal(err)
	}
	keys, err := keyboard.New(spec.Keys)
	if err != nil {
		log.Fatal(err)
	}

	var source system.InputSource = keys
	if *hold != "" {
		dir, ok := component.ParseDirection(*hold)
		if !ok {
			log.Fatalf("unknown direction %q", *hold)
		}
		source = input.Any{keys, heldInput(dir)}
	}

	w := ecs.NewWorld()
	actor, err := entity.BuildEntity(w, *prefab)
	if err != nil {
		log.Fatal(err)
	}
	// the input system only feeds player-tagged entities
	_ = ecs.Add(w, actor, component.PlayerTagComponent, component.PlayerTag{})
	_ = ecs.Add(w, actor, component.InputComponent, component.Input{})

	s, ok := ecs.Get(w, actor, component.SpriteComponent)
	if !ok {
		log.Fatalf("%s has no sprite component", *prefab)
	}
	sheet, err := render.LoadSheet(s.Sheet)
	if err != nil {
		log.Fatal(err)
	}

	g := &clipGame{
		world:  w,
		actor:  actor,
		anim:   ecs.NewScheduler(system.NewAnimationSystem()),
		input:  system.NewInputSystem(source),
		sheet:  sheet,
		scale:  *scale,
		prefab: *prefab,
	}
	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle("clipview")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func heldInput(dir component.Direction) input.Fixed {
	var in component.Input
	switch dir {
	case component.DirectionForward:
		in.Forward = true
	case component.DirectionBackward:
		in.Backward = true
	case component.DirectionLeft:
		in.Left = true
	case component.DirectionRight:
		in.Right = true
	}
	return input.Fixed(in)
}
