package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// Cue timing
const (
	loopNoteDuration  = 90 * time.Millisecond
	loopAttack        = 5 * time.Millisecond
	loopRelease       = 60 * time.Millisecond
	boundaryDuration  = 120 * time.Millisecond
	boundaryAttack    = 5 * time.Millisecond
	boundaryRelease   = 100 * time.Millisecond
	boundaryFrequency = 220.0 // A3
)

// waveform maps a phase in [0, 1) to a sample in [-1, 1]
type waveform func(phase float64) float64

var waveforms = map[WaveType]waveform{
	WaveSine: func(p float64) float64 { return math.Sin(2 * math.Pi * p) },
	WaveSquare: func(p float64) float64 {
		if p < 0.5 {
			return 1
		}
		return -1
	},
	WaveTriangle: func(p float64) float64 { return 1 - 4*math.Abs(p-0.5) },
}

// tone is a fixed-length mono wave duplicated onto both channels
type tone struct {
	shape waveform
	step  float64 // Phase advance per sample
	phase float64
	left  int // Samples still to produce
}

// NewOscillator streams duration of a wave at freq
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	shape, ok := waveforms[wave]
	if !ok {
		shape = waveforms[WaveSine]
	}
	return &tone{
		shape: shape,
		step:  freq / float64(rate),
		left:  rate.N(duration),
	}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if t.left <= 0 {
			return i, i > 0
		}
		v := t.shape(t.phase)
		samples[i] = [2]float64{v, v}
		t.phase += t.step
		t.phase -= math.Floor(t.phase)
		t.left--
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// ramp fades a stream in over attack samples and out over the last release samples
type ramp struct {
	src                   beep.Streamer
	pos                   int
	attack, release, span int
}

// NewEnvelope shapes s over duration with linear attack and release ramps
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &ramp{
		src:     s,
		attack:  rate.N(attack),
		release: rate.N(release),
		span:    rate.N(duration),
	}
}

// gain is the envelope level at sample pos
func (r *ramp) gain(pos int) float64 {
	g := 1.0
	if pos < r.attack {
		g = float64(pos) / float64(r.attack)
	}
	if tail := r.span - pos; r.release > 0 && tail <= r.release {
		g = math.Min(g, float64(tail)/float64(r.release))
	}
	return g
}

func (r *ramp) Stream(samples [][2]float64) (int, bool) {
	n, ok := r.src.Stream(samples)
	for i := 0; i < n; i++ {
		if r.pos >= r.span {
			return i, i > 0
		}
		g := r.gain(r.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		r.pos++
	}
	return n, ok
}

func (r *ramp) Err() error { return r.src.Err() }

// newVolume scales s linearly by vol; 0 volume is silent
// math.Log2(0) is -Inf, so silence is requested explicitly
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func note(freq float64, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(freq, loopNoteDuration, WaveTriangle, rate)
	return NewEnvelope(osc, loopNoteDuration, loopAttack, loopRelease, rate)
}

// LoopSound is a rising two-note chime (E5, A5) played when playback wraps
func LoopSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return newVolume(beep.Seq(note(659.25, rate), note(880.0, rate)), vol)
}

// BoundarySound is a short low blip played when playback hits either end
func BoundarySound(rate beep.SampleRate, vol float64) beep.Streamer {
	osc := NewOscillator(boundaryFrequency, boundaryDuration, WaveSine, rate)
	shaped := NewEnvelope(osc, boundaryDuration, boundaryAttack, boundaryRelease, rate)
	return newVolume(shaped, vol)
}
