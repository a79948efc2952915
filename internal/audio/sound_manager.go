// Package audio plays synthesized sound effects for runner events using
// beep. Every method is safe to call when no audio device is available.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/catrun/internal/runner"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager turns runner events into sounds.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	sounds      map[runner.Event]func(beep.SampleRate) beep.Streamer
}

// NewSoundManager creates a sound manager. Call Initialize to open the device.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
		sounds: map[runner.Event]func(beep.SampleRate) beep.Streamer{
			runner.EventJump:        JumpSound,
			runner.EventItem:        ItemSound,
			runner.EventShieldBlock: ShieldSound,
			runner.EventFire:        FireSound,
			runner.EventGameOver:    GameOverSound,
		},
	}
}

// Initialize opens the speaker. On error the manager stays silent.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Initialized reports whether a device is open.
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetMuted mutes or unmutes all effects.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

// ToggleMute flips the mute state and returns the new value.
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	return sm.muted
}

// Muted reports the mute state.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Play starts the sound for one event.
func (sm *SoundManager) Play(ev runner.Event) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	build, ok := sm.sounds[ev]
	if !ok {
		return
	}

	speaker.Lock()
	sm.mixer.Add(build(sampleRate))
	speaker.Unlock()
}

// PlayEvents plays the sounds for a tick's events. Game over replaces
// everything else queued in the same tick.
func (sm *SoundManager) PlayEvents(events []runner.Event) {
	for _, ev := range events {
		if ev == runner.EventGameOver {
			sm.Play(ev)
			return
		}
	}
	for _, ev := range events {
		sm.Play(ev)
	}
}
