// Package terminal turns tcell key events into held-direction snapshots.
// Terminals report presses and auto-repeats but never releases, so a
// direction counts as held for a short window after its last event.
package terminal

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/tilewalker/ecs/component"
	"github.com/milk9111/tilewalker/prefabs"
)

type Action int

const (
	ActionNone Action = iota
	ActionMove
	ActionPause
	ActionDebug
	ActionCopyTile
	ActionQuit
)

type binding struct {
	key tcell.Key
	ch  rune
}

// Source is fed from the event loop and polled by the simulation. It is not
// safe for concurrent use.
type Source struct {
	hold    time.Duration
	now     func() time.Time
	last    map[component.Direction]time.Time
	dirs    map[binding]component.Direction
	actions map[binding]Action
}

func New(spec prefabs.KeyBindingsSpec, hold time.Duration) (*Source, error) {
	s := &Source{
		hold:    hold,
		now:     time.Now,
		last:    make(map[component.Direction]time.Time),
		dirs:    make(map[binding]component.Direction),
		actions: make(map[binding]Action),
	}

	dirs := []struct {
		names []string
		dir   component.Direction
	}{
		{spec.Forward, component.DirectionForward},
		{spec.Backward, component.DirectionBackward},
		{spec.Left, component.DirectionLeft},
		{spec.Right, component.DirectionRight},
	}
	for _, d := range dirs {
		for _, name := range d.names {
			b, err := lookup(name)
			if err != nil {
				return nil, err
			}
			s.dirs[b] = d.dir
		}
	}

	actions := []struct {
		names  []string
		action Action
	}{
		{spec.Pause, ActionPause},
		{spec.Debug, ActionDebug},
		{spec.CopyTile, ActionCopyTile},
	}
	for _, a := range actions {
		for _, name := range a.names {
			b, err := lookup(name)
			if err != nil {
				return nil, err
			}
			s.actions[b] = a.action
		}
	}
	s.actions[binding{key: tcell.KeyCtrlC}] = ActionQuit
	s.actions[binding{key: tcell.KeyRune, ch: 'q'}] = ActionQuit
	return s, nil
}

// SetClock replaces the time source.
func (s *Source) SetClock(now func() time.Time) {
	s.now = now
}

// HandleKey records a key event and reports what it was bound to.
func (s *Source) HandleKey(ev *tcell.EventKey) Action {
	if ev == nil {
		return ActionNone
	}
	b := bindingOf(ev)
	if dir, ok := s.dirs[b]; ok {
		s.last[dir] = s.now()
		return ActionMove
	}
	if a, ok := s.actions[b]; ok {
		return a
	}
	return ActionNone
}

func (s *Source) Poll() component.Input {
	now := s.now()
	held := func(d component.Direction) bool {
		t, ok := s.last[d]
		return ok && now.Sub(t) < s.hold
	}
	return component.Input{
		Forward:  held(component.DirectionForward),
		Backward: held(component.DirectionBackward),
		Left:     held(component.DirectionLeft),
		Right:    held(component.DirectionRight),
	}
}

// Release forgets every held direction.
func (s *Source) Release() {
	clear(s.last)
}

func bindingOf(ev *tcell.EventKey) binding {
	if ev.Key() == tcell.KeyRune {
		return binding{key: tcell.KeyRune, ch: unicode.ToLower(ev.Rune())}
	}
	return binding{key: ev.Key()}
}

var namedKeys = map[string]tcell.Key{
	"arrowup":    tcell.KeyUp,
	"arrowdown":  tcell.KeyDown,
	"arrowleft":  tcell.KeyLeft,
	"arrowright": tcell.KeyRight,
	"escape":     tcell.KeyEscape,
	"enter":      tcell.KeyEnter,
	"tab":        tcell.KeyTab,
	"f1":         tcell.KeyF1,
	"f2":         tcell.KeyF2,
	"f3":         tcell.KeyF3,
	"f4":         tcell.KeyF4,
}

func lookup(name string) (binding, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if k, ok := namedKeys[n]; ok {
		return binding{key: k}, nil
	}
	if n == "space" {
		return binding{key: tcell.KeyRune, ch: ' '}, nil
	}
	if r := []rune(n); len(r) == 1 {
		return binding{key: tcell.KeyRune, ch: r[0]}, nil
	}
	return binding{}, fmt.Errorf("terminal: unknown key %q", name)
}
