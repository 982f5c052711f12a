package engine

import (
	"sort"

	"github.com/chewxy/math32"

	"github.com/lixenwraith/parview/vmath"
)

// Timer is the playback clock: a signed index into a table of rates and a
// virtual time advanced by the selected rate each tick
type Timer struct {
	rates     []float32 // Ascending, unique, positive
	rateIndex int       // 0 stopped, +i rates[i-1] forward, -i reverse
	t         float32

	length    int
	hasLength bool

	// LoopPause enables looping: after the last frame the clock holds for
	// this many frames, then wraps to 0. Nil plays once and stops at the end.
	LoopPause *float32
	// FPS scales each tick: T advances by Dt()/FPS
	FPS float32
}

// DefaultRates is the viewer's table: 1/128 .. 1/2, 1, 2, 3 .. 128
func DefaultRates() []float32 {
	steps := []float32{1, 2, 3, 4, 6, 8, 12, 16, 24, 32, 48, 64, 96, 128}
	rates := make([]float32, 0, 2*len(steps)-1)
	for i := len(steps) - 1; i > 0; i-- {
		rates = append(rates, 1/steps[i])
	}
	return append(rates, steps...)
}

// NewTimer creates a stopped-at-zero clock over a sequence of length frames
// Non-positive and non-finite rates are dropped; an empty table becomes [1]
func NewTimer(rates []float32, length int, hasLength bool) *Timer {
	clean := make([]float32, 0, len(rates))
	for _, r := range rates {
		if r > 0 && !math32.IsInf(r, 0) && !math32.IsNaN(r) {
			clean = append(clean, r)
		}
	}
	sort.Slice(clean, func(i, j int) bool { return clean[i] < clean[j] })

	uniq := clean[:0]
	for i, r := range clean {
		if i == 0 || r != clean[i-1] {
			uniq = append(uniq, r)
		}
	}
	if len(uniq) == 0 {
		uniq = []float32{1}
	}

	if length < 0 {
		length = 0
	}
	return &Timer{
		rates:     uniq,
		rateIndex: 1,
		length:    length,
		hasLength: hasLength,
		FPS:       1,
	}
}

// NewUnboundedTimer creates a clock with no sequence length
func NewUnboundedTimer(rates []float32) *Timer {
	return NewTimer(rates, 0, false)
}

// AtLeast selects the slowest rate not below |target| in target's
// direction, or the fastest one if none qualifies, and returns the new Dt
func (t *Timer) AtLeast(target float32) float32 {
	sign := 1
	if target < 0 {
		sign = -1
	}
	abs := math32.Abs(target)

	i := sort.Search(len(t.rates), func(i int) bool { return t.rates[i] >= abs })
	if i == len(t.rates) {
		i = len(t.rates) - 1
	}
	t.rateIndex = sign * (i + 1)
	return t.Dt()
}

// Reverse flips direction; a stopped clock stays stopped
func (t *Timer) Reverse() {
	t.rateIndex = -t.rateIndex
}

// Faster steps one rate away from stop, resuming forward when stopped
func (t *Timer) Faster() {
	n := len(t.rates)
	switch {
	case t.rateIndex == 0:
		t.rateIndex = 1
	case t.rateIndex >= n:
		t.rateIndex = n
	case t.rateIndex <= -n:
		t.rateIndex = -n
	case t.rateIndex > 0:
		t.rateIndex++
	default:
		t.rateIndex--
	}
}

// Slower steps one rate toward stop
func (t *Timer) Slower() {
	switch {
	case t.rateIndex > 0:
		t.rateIndex--
	case t.rateIndex < 0:
		t.rateIndex++
	}
}

// Dt is the signed rate in frames per second of wall time at FPS 1
func (t *Timer) Dt() float32 {
	switch {
	case t.rateIndex > 0:
		return t.rates[t.rateIndex-1]
	case t.rateIndex < 0:
		return -t.rates[-t.rateIndex-1]
	default:
		return 0
	}
}

// Time is the virtual time in frames
func (t *Timer) Time() float32 {
	return t.t
}

// RateIndex is the signed rate selector, 0 when stopped
func (t *Timer) RateIndex() int {
	return t.rateIndex
}

// Rates returns a copy of the normalized table
func (t *Timer) Rates() []float32 {
	out := make([]float32, len(t.rates))
	copy(out, t.rates)
	return out
}

// Length returns the sequence length and whether one is set
func (t *Timer) Length() (int, bool) {
	return t.length, t.hasLength
}

// SetLength changes the sequence length, as after a reload
// Time is kept; Index clamps into the new range
func (t *Timer) SetLength(n int) {
	if n < 0 {
		n = 0
	}
	t.length = n
	t.hasLength = true
}

func (t *Timer) fps() float32 {
	if t.FPS <= 0 || math32.IsNaN(t.FPS) {
		return 1
	}
	return t.FPS
}

// Incr advances virtual time by one tick and applies the boundary policy
func (t *Timer) Incr() {
	t.t += t.Dt() / t.fps()
	if !vmath.Finite(t.t) {
		t.t = 0
	}

	if loop, ok := t.loopLength(); ok {
		t.t = math32.Mod(t.t, loop)
		if t.t < 0 {
			t.t += loop
		}
		if t.t >= loop {
			t.t = 0
		}
		return
	}
	if t.t < 0 {
		t.t = 0
	}
}

// loopLength is len+pause when both are set and the sum is positive and finite
// A NaN or infinite pause plays once instead
func (t *Timer) loopLength() (float32, bool) {
	if !t.hasLength || t.LoopPause == nil || !vmath.Finite(*t.LoopPause) {
		return 0, false
	}
	loop := float32(t.length) + *t.LoopPause
	if !(loop > 0) || !vmath.Finite(loop) {
		return 0, false
	}
	return loop, true
}

// Index is the frame to show for the current virtual time, always in
// [0, length) when a length is set
func (t *Timer) Index() int {
	if !(t.t >= 0) || math32.IsInf(t.t, 1) {
		return 0
	}
	if !t.hasLength {
		return int(t.t)
	}
	if t.length == 0 {
		return 0
	}

	tt := t.t
	if loop, ok := t.loopLength(); ok {
		tt = math32.Mod(tt, loop)
	}
	ix := int(math32.Floor(tt))
	return min(max(ix, 0), t.length-1)
}

// TotalLoopTime is the length, plus the pause when looping
func (t *Timer) TotalLoopTime() (float32, bool) {
	if !t.hasLength {
		return 0, false
	}
	if loop, ok := t.loopLength(); ok {
		return loop, true
	}
	return float32(t.length), true
}
