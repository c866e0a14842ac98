package sfx

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/milk9111/tilewalker/ecs"
	"github.com/milk9111/tilewalker/ecs/system"
)

// Cue describes one tone.
type Cue struct {
	Freq     float64
	Wave     Wave
	Duration time.Duration
	Volume   float64 // 0..1
}

var floorPitch = map[string]float64{
	"grass": 196,
	"sand":  174.6,
	"stone": 293.7,
	"wood":  246.9,
}

const defaultFloorPitch = 220.0

// CueFor maps a movement event to a cue. Completed moves play a footstep
// pitched by the floor walked onto; blocked moves play a low bump.
func CueFor(evt ecs.Event) (Cue, bool) {
	mv, ok := evt.Data.(system.MoveEvent)
	if !ok {
		return Cue{}, false
	}
	switch evt.Type {
	case system.EventMoveCompleted:
		pitch, ok := floorPitch[mv.Floor]
		if !ok {
			pitch = defaultFloorPitch
		}
		return Cue{Freq: pitch, Wave: WaveTriangle, Duration: 60 * time.Millisecond, Volume: 0.4}, true
	case system.EventMoveBlocked:
		return Cue{Freq: 82.4, Wave: WaveSquare, Duration: 90 * time.Millisecond, Volume: 0.25}, true
	}
	return Cue{}, false
}

// Streamer renders c at rate.
func (c Cue) Streamer(rate beep.SampleRate) beep.Streamer {
	attack := 5 * time.Millisecond
	release := c.Duration / 2
	s := newTone(c.Freq, c.Wave, c.Duration, attack, release, rate)
	return volume(s, c.Volume)
}

// volume scales linearly; effects.Volume works in log2 steps.
func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}
