package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to completion and returns every sample
func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok || n == 0 {
			return out
		}
	}
}

// TestOscillatorWaves verifies every wave shape stays in [-1, 1]
func TestOscillatorWaves(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveTriangle} {
		osc := NewOscillator(440.0, 50*time.Millisecond, wave, rate)

		samples := make([][2]float64, 100)
		n, ok := osc.Stream(samples)
		if !ok || n != 100 {
			t.Fatalf("wave %d: expected 100 samples, got %d (ok=%v)", wave, n, ok)
		}
		for i := 0; i < n; i++ {
			if samples[i][0] < -1.0 || samples[i][0] > 1.0 {
				t.Errorf("wave %d sample %d out of range: %f", wave, i, samples[i][0])
			}
			if samples[i][0] != samples[i][1] {
				t.Errorf("wave %d sample %d: channels differ", wave, i)
			}
		}
		if osc.Err() != nil {
			t.Errorf("Expected no error, got: %v", osc.Err())
		}
	}
}

// TestOscillatorSquare verifies square wave levels
func TestOscillatorSquare(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(220.0, 50*time.Millisecond, WaveSquare, rate)

	samples := make([][2]float64, 50)
	n, _ := osc.Stream(samples)
	for i := 0; i < n; i++ {
		if v := samples[i][0]; v != -1.0 && v != 1.0 {
			t.Errorf("Square wave sample %d should be -1.0 or 1.0, got %f", i, v)
		}
	}
}

// TestOscillatorDuration verifies oscillator respects duration
func TestOscillatorDuration(t *testing.T) {
	rate := beep.SampleRate(44100)
	duration := 10 * time.Millisecond
	expected := rate.N(duration)

	osc := NewOscillator(440.0, duration, WaveSine, rate)

	samples := make([][2]float64, expected*2)
	n, ok := osc.Stream(samples)
	if n != expected || !ok {
		t.Errorf("Expected %d samples with ok=true, got %d (ok=%v)", expected, n, ok)
	}

	n2, ok2 := osc.Stream(make([][2]float64, 10))
	if ok2 || n2 != 0 {
		t.Errorf("Expected finished stream, got n=%d ok=%v", n2, ok2)
	}
}

// TestEnvelopeShape verifies the attack ramp and the release tail
func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	duration := 100 * time.Millisecond
	attack := 20 * time.Millisecond
	release := 20 * time.Millisecond

	// Square wave at a frequency that keeps phase < 0.5 for the whole span: constant 1.0
	osc := NewOscillator(1, duration, WaveSquare, rate)
	samples := drain(NewEnvelope(osc, duration, attack, release, rate))

	if len(samples) != 100 {
		t.Fatalf("Expected 100 samples, got %d", len(samples))
	}
	if samples[0][0] != 0 {
		t.Errorf("Attack should start silent, got %f", samples[0][0])
	}
	if math.Abs(samples[10][0]-0.5) > 1e-9 {
		t.Errorf("Mid-attack should be 0.5, got %f", samples[10][0])
	}
	if samples[50][0] != 1 {
		t.Errorf("Sustain should be full level, got %f", samples[50][0])
	}
	if math.Abs(samples[90][0]-0.5) > 1e-9 {
		t.Errorf("Mid-release should be 0.5, got %f", samples[90][0])
	}
}

// TestCueSounds verifies cue streams are finite and bounded
func TestCueSounds(t *testing.T) {
	tests := []struct {
		name string
		s    beep.Streamer
		want int
	}{
		{"loop", LoopSound(sampleRate, 1), 2 * sampleRate.N(loopNoteDuration)},
		{"boundary", BoundarySound(sampleRate, 1), sampleRate.N(boundaryDuration)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := drain(tt.s)
			if len(samples) != tt.want {
				t.Errorf("Expected %d samples, got %d", tt.want, len(samples))
			}
			peak := 0.0
			for _, s := range samples {
				peak = math.Max(peak, math.Abs(s[0]))
			}
			if peak == 0 || peak > 1 {
				t.Errorf("Peak %f outside (0, 1]", peak)
			}
		})
	}
}

// TestSilentVolume verifies zero volume produces silence
func TestSilentVolume(t *testing.T) {
	for _, s := range drain(BoundarySound(sampleRate, 0)) {
		if s[0] != 0 || s[1] != 0 {
			t.Fatalf("Expected silence, got %v", s)
		}
	}
}
