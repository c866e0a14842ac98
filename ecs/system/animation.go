package system

import (
	"github.com/milk9111/tilewalker/ecs"
	"github.com/milk9111/tilewalker/ecs/component"
)

// AnimationSystem plays the walk clip of the highest-priority held direction.
// Clips follow input, not committed movement, so a blocked actor still walks
// in place. A clip plays once: after its last frame the sprite returns to the
// first frame and the state is cleared, and a still-held direction restarts it
// on the next frame.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (s *AnimationSystem) Update(w *ecs.World) {
	dt := w.Delta()
	if dt < 0 {
		dt = 0
	}

	for _, e := range w.Query(component.SpriteComponent.Kind(), component.DirectionalAnimationsComponent.Kind()) {
		sprite, _ := ecs.Get(w, e, component.SpriteComponent)
		anims, _ := ecs.Get(w, e, component.DirectionalAnimationsComponent)
		in, _ := ecs.Get(w, e, component.InputComponent)

		state, playing := ecs.Get(w, e, component.AnimationStateComponent)
		clip, want := selectClip(in, anims)
		switch {
		case !want:
			if playing {
				sprite.Frame = state.First
				playing = false
			}
		case !playing || !clip.SameRange(state.First, state.Last):
			state = component.AnimationState{First: clip.First, Last: clip.Last, FPS: clip.FPS}
			sprite.Frame = clip.First
			playing = true
		}

		if playing {
			playing = advance(&state, &sprite, dt)
		}

		_ = ecs.Add(w, e, component.SpriteComponent, sprite)
		if playing {
			_ = ecs.Add(w, e, component.AnimationStateComponent, state)
		} else {
			ecs.Remove(w, e, component.AnimationStateComponent)
		}
	}
}

// selectClip returns the clip of the first held direction in priority order
// that has one configured.
func selectClip(in component.Input, anims component.DirectionalAnimations) (component.Clip, bool) {
	held := [...]bool{in.Forward, in.Backward, in.Left, in.Right}
	for i, dir := range component.Directions {
		if !held[i] {
			continue
		}
		if clip, ok := anims.Clip(dir); ok {
			return clip, true
		}
	}
	return component.Clip{}, false
}

// advance steps the frame once per elapsed frame duration and reports whether
// the clip is still playing.
func advance(state *component.AnimationState, sprite *component.Sprite, dt float64) bool {
	dur := state.FrameDuration()
	if dur <= 0 || state.Last < state.First {
		sprite.Frame = state.First
		return false
	}
	if sprite.Frame < state.First || sprite.Frame > state.Last {
		sprite.Frame = state.First
	}

	state.Elapsed += dt
	for state.Elapsed >= dur {
		state.Elapsed -= dur
		if sprite.Frame >= state.Last {
			sprite.Frame = state.First
			return false
		}
		sprite.Frame++
	}
	return true
}
