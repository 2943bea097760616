package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/OpticalFlyer/laststanding/item"
	"github.com/OpticalFlyer/laststanding/match"
)

const (
	sampleRate = beep.SampleRate(44100)

	blipDuration  = 60 * time.Millisecond
	noteDuration  = 140 * time.Millisecond
	baseBlipFreq  = 330.0
	blipFreqStep  = 22.0
	volumeQuieter = -1.5
)

// fanfare is a rising major arpeggio played for the winner.
var fanfare = []float64{523.25, 659.25, 783.99, 1046.50}

// SoundManager plays short synthesized cues for round events.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

var _ match.Listener = (*SoundManager)(nil)

// NewSoundManager creates a silent sound manager. Call Initialize to open
// the speaker.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker. On failure the manager stays silent.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything still queued.
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

func (sm *SoundManager) RoundReset(int) {}

// Eliminated plays a blip whose pitch rises as the field shrinks.
func (sm *SoundManager) Eliminated(_ *item.Item, remaining int) {
	sm.play(blip(remaining))
}

// Crowned plays the winner fanfare.
func (sm *SoundManager) Crowned(*item.Item) {
	notes := make([]beep.Streamer, 0, len(fanfare))
	for _, f := range fanfare {
		if n := tone(f, noteDuration); n != nil {
			notes = append(notes, n)
		}
	}
	sm.play(beep.Seq(notes...))
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

func blip(remaining int) beep.Streamer {
	freq := baseBlipFreq + blipFreqStep*float64(max(0, 16-remaining))
	return tone(freq, blipDuration)
}

func tone(freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil
	}
	return &effects.Volume{
		Streamer: beep.Take(sampleRate.N(d), sine),
		Base:     2,
		Volume:   volumeQuieter,
	}
}
