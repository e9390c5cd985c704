// Package audio plays synthesized sound effects and the ambient loop
// through the system speaker. A Player that failed to initialize stays
// silent, so the game always runs without an audio device.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-quest/internal/games/quest"
)

const sampleRate = beep.SampleRate(44100)

// Player implements quest.AudioSink on top of a beep mixer.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      *effects.Volume
	ambient     *beep.Ctrl
	initialized bool
}

var _ quest.AudioSink = (*Player)(nil)

// NewPlayer creates a silent player with a linear master volume in [0, 1].
// Call Init to open the speaker.
func NewPlayer(volume float64) *Player {
	mixer := &beep.Mixer{}
	return &Player{
		mixer:  mixer,
		master: masterVolume(mixer, volume),
	}
}

// masterVolume converts a linear gain to beep's base-2 volume.
func masterVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(min(vol, 1))}
}

// Init opens the speaker. It is safe to call more than once.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.master)
	p.initialized = true
	return nil
}

// Close silences everything. The speaker itself stays open.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	if p.ambient != nil {
		p.ambient.Paused = true
	}
	p.mixer.Clear()
	speaker.Unlock()
	p.ambient = nil
	p.initialized = false
}

// Play starts a one-shot effect.
func (p *Player) Play(s quest.Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.add(Effect(s))
}

// StartAmbient starts the background loop unless it is already playing.
func (p *Player) StartAmbient() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	if p.ambient != nil && !p.ambient.Paused {
		return
	}
	p.ambient = &beep.Ctrl{Streamer: beep.Loop(-1, NewAmbientGenerator(sampleRate))}
	p.add(p.ambient)
}

// StopAmbient pauses the background loop.
func (p *Player) StopAmbient() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ambient == nil {
		return
	}
	speaker.Lock()
	p.ambient.Paused = true
	speaker.Unlock()
}

// add must be called with p.mu held.
func (p *Player) add(s beep.Streamer) {
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Effect returns a finite streamer for a sound.
func Effect(s quest.Sound) beep.Streamer {
	switch s {
	case quest.SoundSwing:
		// Short downward whoosh
		return beep.Take(sampleRate.N(120*time.Millisecond), NewToneGenerator(sampleRate, 520, 180, 25))
	case quest.SoundCast:
		// Rising burst
		return beep.Take(sampleRate.N(250*time.Millisecond), NewToneGenerator(sampleRate, 220, 880, 10))
	default:
		// Bright chime
		return beep.Take(sampleRate.N(200*time.Millisecond), NewToneGenerator(sampleRate, 988, 1319, 12))
	}
}
