package sfx

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/milk9111/tilewalker/ecs"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes cues into the speaker. A Player that failed to open the audio
// device stays usable and drops every cue.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	enabled bool
}

func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Open starts the speaker. It may be called once per process.
func (p *Player) Open() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.enabled = true
	return nil
}

func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.enabled = false
}

// Handle plays the cue of every event that has one.
func (p *Player) Handle(events []ecs.Event) {
	for _, evt := range events {
		if cue, ok := CueFor(evt); ok {
			p.Play(cue)
		}
	}
}

func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	speaker.Lock()
	p.mixer.Add(c.Streamer(sampleRate))
	speaker.Unlock()
}
