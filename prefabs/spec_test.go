package prefabs

import (
	"errors"
	"image/color"
	"testing"
)

func TestDirectionalAnimationValidate(t *testing.T) {
	cases := []struct {
		name    string
		clips   map[string]ClipSpec
		wantErr bool
	}{
		{"valid", map[string]ClipSpec{
			"forward":  {First: 0, Last: 3, FPS: 10},
			"backward": {First: 4, Last: 7, FPS: 10},
		}, false},
		{"single_frame", map[string]ClipSpec{"left": {First: 2, Last: 2, FPS: 1}}, false},
		{"empty", nil, false},
		{"unknown_direction", map[string]ClipSpec{"up": {First: 0, Last: 1, FPS: 5}}, true},
		{"reversed_range", map[string]ClipSpec{"left": {First: 3, Last: 1, FPS: 5}}, true},
		{"negative_first", map[string]ClipSpec{"left": {First: -1, Last: 1, FPS: 5}}, true},
		{"zero_fps", map[string]ClipSpec{"right": {First: 0, Last: 1, FPS: 0}}, true},
		{"fps_overflow", map[string]ClipSpec{"right": {First: 0, Last: 1, FPS: 300}}, true},
		{"overlap", map[string]ClipSpec{
			"forward": {First: 0, Last: 4, FPS: 10},
			"left":    {First: 4, Last: 7, FPS: 10},
		}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := DirectionalAnimationSpec{Clips: c.clips}.Validate()
			if c.wantErr {
				if !errors.Is(err, ErrInvalidAnimation) {
					t.Fatalf("expected ErrInvalidAnimation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestEmbeddedPrefabsDecode(t *testing.T) {
	game, err := LoadGameSpec("game.yaml")
	if err != nil {
		t.Fatalf("load game spec: %v", err)
	}
	if game.TPS != 60 || game.Level == "" || len(game.Keys.Forward) == 0 {
		t.Fatalf("unexpected game spec %+v", game)
	}

	if f := game.Floors["grass"]; f.Glyph != "." || f.Color == "" {
		t.Fatalf("expected a grass floor style, got %+v", f)
	}

	for _, name := range []string{game.Player, game.Camera} {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(name)
			if err != nil {
				t.Fatalf("load %s: %v", name, err)
			}
			if len(spec.Components) == 0 {
				t.Fatalf("%s has no components", name)
			}
		})
	}

	player, err := LoadEntityBuildSpec(game.Player)
	if err != nil {
		t.Fatalf("load player: %v", err)
	}
	anim, err := DecodeComponentSpec[DirectionalAnimationSpec](player.Components["directional_animation"])
	if err != nil {
		t.Fatalf("decode animation: %v", err)
	}
	if err := anim.Validate(); err != nil {
		t.Fatalf("shipped animation table invalid: %v", err)
	}
	if len(anim.Clips) != 4 {
		t.Fatalf("expected four clips, got %d", len(anim.Clips))
	}
}

func TestGameSpecDefaults(t *testing.T) {
	var g GameSpec
	g.applyDefaults()
	if g.Window.Width != defaultWindowWidth || g.Window.Height != defaultWindowHeight {
		t.Fatalf("unexpected window defaults %+v", g.Window)
	}
	if g.TPS != defaultTPS || g.Player != "player.yaml" || g.Camera != "camera.yaml" {
		t.Fatalf("unexpected defaults %+v", g)
	}
	if g.Terminal.HoldMillis != defaultHoldMillis {
		t.Fatalf("unexpected hold default %d", g.Terminal.HoldMillis)
	}
}

func TestCleanPaths(t *testing.T) {
	cases := []struct {
		in, prefab, script string
	}{
		{"player.yaml", "player.yaml", "scripts/player.yaml"},
		{"prefabs/player.yaml", "player.yaml", "scripts/player.yaml"},
		{"demo", "demo", "scripts/demo.tengo"},
		{"prefabs/scripts/demo.tengo", "scripts/demo.tengo", "scripts/demo.tengo"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := cleanPrefabPath(c.in); got != c.prefab {
				t.Fatalf("cleanPrefabPath(%q) = %q, want %q", c.in, got, c.prefab)
			}
			if got := cleanScriptPath(c.in); got != c.script {
				t.Fatalf("cleanScriptPath(%q) = %q, want %q", c.in, got, c.script)
			}
		})
	}
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"demo", "wander.tengo"} {
		data, err := LoadScript(name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("%s is empty", name)
		}
	}
}

func TestFloorSpecRGBA(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"hex", "#2f7d32", color.RGBA{R: 0x2f, G: 0x7d, B: 0x32, A: 0xff}, false},
		{"upper", "#FFA000", color.RGBA{R: 0xff, G: 0xa0, B: 0x00, A: 0xff}, false},
		{"empty", "", color.RGBA{}, true},
		{"no_hash", "2f7d32", color.RGBA{}, true},
		{"short", "#fff", color.RGBA{}, true},
		{"not_hex", "#zzzzzz", color.RGBA{}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := FloorSpec{Color: c.in}.RGBA()
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected an error for %q", c.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != c.want {
				t.Fatalf("RGBA(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}
