// Package audio plays short playback cues through the system speaker.
//
// Every operation is a no-op until Initialize succeeds, so the viewer runs
// unchanged on machines without an audio device.
package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// SoundManager implements engine.Cues with beep
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	ctrl        *beep.Ctrl
	volume      float64
	initialized bool
	played      int
}

// NewSoundManager creates a sound manager at volume 0..1
func NewSoundManager(volume float64) *SoundManager {
	sm := &SoundManager{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
	}
	sm.ctrl = &beep.Ctrl{Streamer: sm.mixer}
	return sm
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	// Initialize speaker with sample rate and buffer size
	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	sm.ctrl.Paused = false
	speaker.Play(sm.ctrl)
	sm.initialized = true
	return nil
}

// Cleanup silences pending cues and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.ctrl.Paused = true
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	sm.initialized = false
}

// SetMuted pauses or resumes cue output
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		sm.ctrl.Paused = muted
		return
	}
	speaker.Lock()
	sm.ctrl.Paused = muted
	speaker.Unlock()
}

// Loop plays the wrap chime
func (sm *SoundManager) Loop() {
	sm.play(LoopSound(sampleRate, sm.volume))
}

// Boundary plays the end-of-sequence blip
func (sm *SoundManager) Boundary() {
	sm.play(BoundarySound(sampleRate, sm.volume))
}

// Played counts cues handed to the mixer
func (sm *SoundManager) Played() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.volume <= 0 {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played++
}

// Name implements service.Service
func (sm *SoundManager) Name() string {
	return "audio"
}

// Dependencies implements service.Service
func (sm *SoundManager) Dependencies() []string {
	return nil
}

// Start implements service.Service
// A missing audio device leaves the manager silent instead of failing
func (sm *SoundManager) Start() error {
	if err := sm.Initialize(); err != nil {
		log.Printf("audio: disabled: %v", err)
	}
	return nil
}

// Stop implements service.Service
func (sm *SoundManager) Stop() error {
	sm.Cleanup()
	return nil
}
