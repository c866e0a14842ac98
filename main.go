package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilewalker/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	script := flag.String("script", "", "tengo script in prefabs/scripts driving input")
	watch := flag.Bool("watch", false, "reload prefabs and scripts when they change on disk")
	flag.Parse()

	spec, err := prefabs.LoadGameSpec("game.yaml")
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(spec.Window.Width, spec.Window.Height)
	ebiten.SetWindowTitle(spec.Title)
	ebiten.SetTPS(spec.TPS)

	game, err := NewGame(spec, GameOptions{
		Level:  *levelName,
		Script: *script,
		Debug:  *debug,
		Watch:  *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
