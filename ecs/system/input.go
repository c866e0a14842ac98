package system

import (
	"github.com/milk9111/tilewalker/ecs"
	"github.com/milk9111/tilewalker/ecs/component"
)

// InputSource yields the direction state for the current tick.
type InputSource interface {
	Poll() component.Input
}

// InputSystem copies one snapshot per tick onto every player-controlled
// entity.
type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

// SetSource swaps the snapshot provider, e.g. when a script takes over.
func (s *InputSystem) SetSource(source InputSource) {
	s.source = source
}

func (s *InputSystem) Update(w *ecs.World) {
	var in component.Input
	if s.source != nil {
		in = s.source.Poll()
	}

	for _, e := range w.Query(component.PlayerTagComponent.Kind(), component.InputComponent.Kind()) {
		_ = ecs.Add(w, e, component.InputComponent, in)
	}
}
