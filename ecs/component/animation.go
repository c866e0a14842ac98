package component

import "fmt"

type Direction int

const (
	DirectionForward Direction = iota
	DirectionBackward
	DirectionLeft
	DirectionRight
)

// Directions lists directions in clip selection priority.
var Directions = [...]Direction{DirectionForward, DirectionBackward, DirectionLeft, DirectionRight}

func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection maps a prefab key to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "forward":
		return DirectionForward, true
	case "backward":
		return DirectionBackward, true
	case "left":
		return DirectionLeft, true
	case "right":
		return DirectionRight, true
	}
	return 0, false
}

// Clip is an inclusive range of sprite sheet frames played at FPS.
type Clip struct {
	First int
	Last  int
	FPS   uint8
}

func (c Clip) SameRange(first, last int) bool {
	return c.First == first && c.Last == last
}

// DirectionalAnimations maps each direction to its walk clip.
type DirectionalAnimations struct {
	Clips map[Direction]Clip
}

// Clip returns the clip for d, if one is configured.
func (d DirectionalAnimations) Clip(dir Direction) (Clip, bool) {
	c, ok := d.Clips[dir]
	return c, ok
}

var DirectionalAnimationsComponent = NewComponent[DirectionalAnimations]()

// AnimationState is present only while a clip plays. Elapsed accumulates time
// toward the next frame.
type AnimationState struct {
	First   int
	Last    int
	FPS     uint8
	Elapsed float64
}

// FrameDuration returns seconds per frame, or 0 when FPS is unset.
func (a AnimationState) FrameDuration() float64 {
	if a.FPS == 0 {
		return 0
	}
	return 1 / float64(a.FPS)
}

var AnimationStateComponent = NewComponent[AnimationState]()
