package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

var ErrInvalidAnimation = errors.New("prefabs: invalid animation")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type WindowSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// KeyBindingsSpec lists key names per action. Names are resolved by each
// frontend.
type KeyBindingsSpec struct {
	Forward  []string `yaml:"forward"`
	Backward []string `yaml:"backward"`
	Left     []string `yaml:"left"`
	Right    []string `yaml:"right"`
	Pause    []string `yaml:"pause"`
	CopyTile []string `yaml:"copy_tile"`
	Debug    []string `yaml:"debug"`
}

type TerminalSpec struct {
	// HoldMillis is how long a key counts as held after its last repeat.
	HoldMillis int  `yaml:"hold_ms"`
	Sound      bool `yaml:"sound"`
}

type GameSpec struct {
	Title    string          `yaml:"title"`
	Window   WindowSpec      `yaml:"window"`
	TPS      int             `yaml:"tps"`
	Level    string          `yaml:"level"`
	Player   string          `yaml:"player"`
	Camera   string          `yaml:"camera"`
	Keys     KeyBindingsSpec `yaml:"keys"`
	Terminal TerminalSpec    `yaml:"terminal"`
	// Floors overrides how each floor kind is drawn.
	Floors map[string]FloorSpec `yaml:"floors"`
}

// FloorSpec styles one floor kind: Color is "#rrggbb" for the desktop fill
// and the terminal glyph, Glyph is the terminal text.
type FloorSpec struct {
	Color string `yaml:"color"`
	Glyph string `yaml:"glyph"`
}

// RGBA parses Color.
func (f FloorSpec) RGBA() (color.RGBA, error) {
	var c color.RGBA
	if len(f.Color) != 7 || f.Color[0] != '#' {
		return c, fmt.Errorf("prefabs: floor color %q: want #rrggbb", f.Color)
	}
	v, err := strconv.ParseUint(f.Color[1:], 16, 32)
	if err != nil {
		return c, fmt.Errorf("prefabs: floor color %q: %w", f.Color, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

const (
	defaultWindowWidth  = 1280
	defaultWindowHeight = 720
	defaultTPS          = 60
	defaultHoldMillis   = 150
)

func LoadGameSpec(filename string) (GameSpec, error) {
	spec, err := LoadSpec[GameSpec](filename)
	if err != nil {
		return spec, err
	}
	spec.applyDefaults()
	return spec, nil
}

func (g *GameSpec) applyDefaults() {
	if g.Title == "" {
		g.Title = "tilewalker"
	}
	if g.Window.Width <= 0 {
		g.Window.Width = defaultWindowWidth
	}
	if g.Window.Height <= 0 {
		g.Window.Height = defaultWindowHeight
	}
	if g.TPS <= 0 {
		g.TPS = defaultTPS
	}
	if g.Player == "" {
		g.Player = "player.yaml"
	}
	if g.Camera == "" {
		g.Camera = "camera.yaml"
	}
	if g.Terminal.HoldMillis <= 0 {
		g.Terminal.HoldMillis = defaultHoldMillis
	}
}

type TileSpec struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type ActorSpec struct {
	Spawn TileSpec `yaml:"spawn"`
	Z     float64  `yaml:"z"`
}

type TransformSpec struct {
	ScaleX float64 `yaml:"scale_x"`
	ScaleY float64 `yaml:"scale_y"`
}

type MoveSpeedSpec struct {
	TilesPerSecond float64 `yaml:"tiles_per_second"`
}

type HitboxSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type SpriteSpec struct {
	Sheet   string `yaml:"sheet"`
	Frame   int    `yaml:"frame"`
	FrameW  int    `yaml:"frame_w"`
	FrameH  int    `yaml:"frame_h"`
	Columns int    `yaml:"columns"`
}

type ClipSpec struct {
	First int `yaml:"first"`
	Last  int `yaml:"last"`
	FPS   int `yaml:"fps"`
}

// DirectionalAnimationSpec maps forward/backward/left/right to frame ranges.
type DirectionalAnimationSpec struct {
	Clips map[string]ClipSpec `yaml:"clips"`
}

var clipNames = map[string]bool{"forward": true, "backward": true, "left": true, "right": true}

// Validate checks every clip for a known direction, an ordered range, a frame
// rate in 1..255, and no frame shared with another clip.
func (s DirectionalAnimationSpec) Validate() error {
	names := make([]string, 0, len(s.Clips))
	for name, clip := range s.Clips {
		if !clipNames[name] {
			return fmt.Errorf("%w: unknown direction %q", ErrInvalidAnimation, name)
		}
		if clip.First < 0 || clip.First > clip.Last {
			return fmt.Errorf("%w: %s: range %d..%d", ErrInvalidAnimation, name, clip.First, clip.Last)
		}
		if clip.FPS <= 0 || clip.FPS > 255 {
			return fmt.Errorf("%w: %s: fps %d", ErrInvalidAnimation, name, clip.FPS)
		}
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		return s.Clips[names[i]].First < s.Clips[names[j]].First
	})
	for i := 1; i < len(names); i++ {
		prev, cur := s.Clips[names[i-1]], s.Clips[names[i]]
		if cur.First <= prev.Last {
			return fmt.Errorf("%w: %s overlaps %s", ErrInvalidAnimation, names[i], names[i-1])
		}
	}
	return nil
}

type CameraSpec struct {
	Zoom float64 `yaml:"zoom"`
}
