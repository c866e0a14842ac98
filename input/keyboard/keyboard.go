// Package keyboard reads movement and command keys from ebiten.
package keyboard

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tilewalker/ecs/component"
	"github.com/milk9111/tilewalker/prefabs"
)

type Action int

const (
	ActionPause Action = iota
	ActionCopyTile
	ActionDebug
)

// Keyboard is an input source for the desktop frontend. Gamepad d-pad and
// left stick are read alongside the bound keys.
type Keyboard struct {
	forward  []ebiten.Key
	backward []ebiten.Key
	left     []ebiten.Key
	right    []ebiten.Key
	actions  map[Action][]ebiten.Key
}

// New resolves the configured key names.
func New(spec prefabs.KeyBindingsSpec) (*Keyboard, error) {
	k := &Keyboard{actions: make(map[Action][]ebiten.Key)}
	var err error
	bind := func(names []string) []ebiten.Key {
		keys, e := resolve(names)
		if e != nil && err == nil {
			err = e
		}
		return keys
	}
	k.forward = bind(spec.Forward)
	k.backward = bind(spec.Backward)
	k.left = bind(spec.Left)
	k.right = bind(spec.Right)
	k.actions[ActionPause] = bind(spec.Pause)
	k.actions[ActionCopyTile] = bind(spec.CopyTile)
	k.actions[ActionDebug] = bind(spec.Debug)
	if err != nil {
		return nil, err
	}
	return k, nil
}

func (k *Keyboard) Poll() component.Input {
	in := component.Input{
		Forward:  anyPressed(k.forward),
		Backward: anyPressed(k.backward),
		Left:     anyPressed(k.left),
		Right:    anyPressed(k.right),
	}

	const stickDeadzone = 0.5
	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		in.Left = in.Left || x < -stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft)
		in.Right = in.Right || x > stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight)
		// stick y grows downward
		in.Forward = in.Forward || y < -stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftTop)
		in.Backward = in.Backward || y > stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom)
	}
	return in
}

// JustPressed reports whether any key bound to a reported this tick.
func (k *Keyboard) JustPressed(a Action) bool {
	for _, key := range k.actions[a] {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}

func anyPressed(keys []ebiten.Key) bool {
	for _, key := range keys {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

var namedKeys = map[string]ebiten.Key{
	"arrowup":    ebiten.KeyArrowUp,
	"arrowdown":  ebiten.KeyArrowDown,
	"arrowleft":  ebiten.KeyArrowLeft,
	"arrowright": ebiten.KeyArrowRight,
	"escape":     ebiten.KeyEscape,
	"space":      ebiten.KeySpace,
	"enter":      ebiten.KeyEnter,
	"tab":        ebiten.KeyTab,
	"f1":         ebiten.KeyF1,
	"f2":         ebiten.KeyF2,
	"f3":         ebiten.KeyF3,
	"f4":         ebiten.KeyF4,
	"a":          ebiten.KeyA,
	"b":          ebiten.KeyB,
	"c":          ebiten.KeyC,
	"d":          ebiten.KeyD,
	"e":          ebiten.KeyE,
	"f":          ebiten.KeyF,
	"g":          ebiten.KeyG,
	"h":          ebiten.KeyH,
	"i":          ebiten.KeyI,
	"j":          ebiten.KeyJ,
	"k":          ebiten.KeyK,
	"l":          ebiten.KeyL,
	"m":          ebiten.KeyM,
	"n":          ebiten.KeyN,
	"o":          ebiten.KeyO,
	"p":          ebiten.KeyP,
	"q":          ebiten.KeyQ,
	"r":          ebiten.KeyR,
	"s":          ebiten.KeyS,
	"t":          ebiten.KeyT,
	"u":          ebiten.KeyU,
	"v":          ebiten.KeyV,
	"w":          ebiten.KeyW,
	"x":          ebiten.KeyX,
	"y":          ebiten.KeyY,
	"z":          ebiten.KeyZ,
	"0":          ebiten.KeyDigit0,
	"1":          ebiten.KeyDigit1,
	"2":          ebiten.KeyDigit2,
	"3":          ebiten.KeyDigit3,
	"4":          ebiten.KeyDigit4,
	"5":          ebiten.KeyDigit5,
	"6":          ebiten.KeyDigit6,
	"7":          ebiten.KeyDigit7,
	"8":          ebiten.KeyDigit8,
	"9":          ebiten.KeyDigit9,
}

// resolve maps names such as "W", "ArrowUp", or "F3" to ebiten keys.
func resolve(names []string) ([]ebiten.Key, error) {
	keys := make([]ebiten.Key, 0, len(names))
	for _, name := range names {
		key, ok := lookup(name)
		if !ok {
			return nil, fmt.Errorf("keyboard: unknown key %q", name)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func lookup(name string) (ebiten.Key, bool) {
	key, ok := namedKeys[strings.ToLower(strings.TrimSpace(name))]
	return key, ok
}
