// Package input provides direction snapshot sources that do not depend on a
// windowing backend: fixed snapshots, OR-combined sources, and tengo scripts.
package input

import "github.com/milk9111/tilewalker/ecs/component"

// Source yields the direction state for the current tick.
type Source interface {
	Poll() component.Input
}

// Fixed always reports the same snapshot.
type Fixed component.Input

func (f Fixed) Poll() component.Input {
	return component.Input(f)
}

// Any reports a direction as held when any of its sources holds it, so a
// player can steer over a script.
type Any []Source

func (a Any) Poll() component.Input {
	var out component.Input
	for _, s := range a {
		if s == nil {
			continue
		}
		in := s.Poll()
		out.Forward = out.Forward || in.Forward
		out.Backward = out.Backward || in.Backward
		out.Left = out.Left || in.Left
		out.Right = out.Right || in.Right
	}
	return out
}
