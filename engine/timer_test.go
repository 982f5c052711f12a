package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pause(p float32) *float32 { return &p }

func TestTimerRateNormalization(t *testing.T) {
	tests := []struct {
		name  string
		rates []float32
		want  []float32
	}{
		{"empty", nil, []float32{1}},
		{"sorted", []float32{4, 1, 2}, []float32{1, 2, 4}},
		{"deduped", []float32{2, 1, 2, 1}, []float32{1, 2}},
		{"non-positive dropped", []float32{-1, 0, 3}, []float32{3}},
		{"all invalid", []float32{-2, 0}, []float32{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := NewUnboundedTimer(tt.rates)
			assert.Equal(t, tt.want, tm.Rates())
			assert.Equal(t, 1, tm.RateIndex())
			assert.Equal(t, tt.want[0], tm.Dt())
			assert.Zero(t, tm.Time())
		})
	}
}

func TestTimerEmptyMatchesUnit(t *testing.T) {
	a := NewUnboundedTimer(nil)
	b := NewUnboundedTimer([]float32{1})
	for i := 0; i < 5; i++ {
		a.Incr()
		b.Incr()
		assert.Equal(t, b.Index(), a.Index())
	}
}

// Sequence from the reference playback test: indices after each step
func TestTimerDts(t *testing.T) {
	tm := NewUnboundedTimer([]float32{1, 2, 4})

	steps := []struct {
		op    func()
		dt    float32
		index int
	}{
		{nil, 1, 1},
		{tm.Faster, 2, 3},
		{tm.Faster, 4, 7},
		{tm.Faster, 4, 11},
		{tm.Reverse, -4, 7},
		{tm.Faster, -4, 3},
		{tm.Reverse, 4, 7},
		{tm.Reverse, -4, 3},
		{tm.Slower, -2, 1},
		{tm.Slower, -1, 0},
		{tm.Slower, 0, 0},
		{tm.Slower, 0, 0},
	}

	for i, s := range steps {
		if s.op != nil {
			s.op()
		}
		require.Equal(t, s.dt, tm.Dt(), "step %d dt", i)
		tm.Incr()
		require.Equal(t, s.index, tm.Index(), "step %d index", i)
	}
}

func TestTimerPauseLoop(t *testing.T) {
	tm := NewTimer([]float32{1, 2, 4}, 5, true)
	tm.LoopPause = pause(5)
	tm.FPS = 2
	tm.Faster()
	tm.Faster()
	require.Equal(t, float32(4), tm.Dt())

	var got []int
	for i := 0; i < 5; i++ {
		tm.Incr()
		got = append(got, tm.Index())
	}
	assert.Equal(t, []int{2, 4, 4, 4, 0}, got)
}

func TestTimerLoopWrapsBackward(t *testing.T) {
	tm := NewTimer([]float32{1}, 4, true)
	tm.LoopPause = pause(2)
	tm.Reverse()

	tm.Incr()
	assert.Equal(t, float32(5), tm.Time())
	assert.Equal(t, 3, tm.Index(), "pause region holds the last frame")
}

func TestTimerClamps(t *testing.T) {
	t.Run("unbounded reverse stays at zero", func(t *testing.T) {
		tm := NewUnboundedTimer([]float32{1})
		tm.Reverse()
		for i := 0; i < 3; i++ {
			tm.Incr()
			assert.Zero(t, tm.Index())
			assert.Zero(t, tm.Time())
		}
	})

	t.Run("unbounded forward strictly increases", func(t *testing.T) {
		tm := NewUnboundedTimer([]float32{1})
		prev := tm.Index()
		for i := 0; i < 10; i++ {
			tm.Incr()
			require.Greater(t, tm.Index(), prev)
			prev = tm.Index()
		}
	})

	t.Run("bounded holds last frame", func(t *testing.T) {
		tm := NewTimer([]float32{1}, 3, true)
		for i := 0; i < 10; i++ {
			tm.Incr()
		}
		assert.Equal(t, float32(10), tm.Time())
		assert.Equal(t, 2, tm.Index())
	})

	t.Run("empty sequence", func(t *testing.T) {
		tm := NewTimer([]float32{1}, 0, true)
		tm.Incr()
		assert.Zero(t, tm.Index())
	})
}

func TestTimerFasterSlowerInverse(t *testing.T) {
	rates := []float32{1, 2, 4, 8}
	for _, start := range []int{1, 2, 3, -1, -2, -3} {
		tm := NewUnboundedTimer(rates)
		for tm.RateIndex() != start {
			if start > 0 {
				tm.Faster()
			} else {
				if tm.RateIndex() > 0 {
					tm.Reverse()
					continue
				}
				tm.Faster()
			}
		}
		tm.Faster()
		tm.Slower()
		assert.Equal(t, start, tm.RateIndex(), "start %d", start)
	}
}

func TestTimerSaturationAndStop(t *testing.T) {
	tm := NewUnboundedTimer([]float32{1, 2})
	tm.Faster()
	tm.Faster()
	tm.Faster()
	assert.Equal(t, 2, tm.RateIndex())

	tm.Reverse()
	tm.Faster()
	assert.Equal(t, -2, tm.RateIndex())

	tm.Slower()
	tm.Slower()
	tm.Slower()
	assert.Zero(t, tm.RateIndex())
	tm.Reverse()
	assert.Zero(t, tm.RateIndex(), "stopped stays stopped")

	tm.Faster()
	assert.Equal(t, 1, tm.RateIndex(), "resumes forward")
}

func TestTimerReverseInvolution(t *testing.T) {
	tm := NewUnboundedTimer([]float32{1, 2, 4})
	tm.Faster()
	before := tm.RateIndex()
	tm.Reverse()
	tm.Reverse()
	assert.Equal(t, before, tm.RateIndex())
}

func TestTimerAtLeast(t *testing.T) {
	tests := []struct {
		target float32
		want   float32
	}{
		{0, 1},
		{1.5, 2},
		{2, 2},
		{100, 4},
		{-3, -4},
		{-0.5, -1},
	}

	for _, tt := range tests {
		tm := NewUnboundedTimer([]float32{1, 2, 4})
		assert.Equal(t, tt.want, tm.AtLeast(tt.target), "target %v", tt.target)
		assert.Equal(t, tt.want, tm.Dt())
	}
}

func TestTimerTotalLoopTime(t *testing.T) {
	_, ok := NewUnboundedTimer(nil).TotalLoopTime()
	assert.False(t, ok)

	tm := NewTimer(nil, 7, true)
	total, ok := tm.TotalLoopTime()
	assert.True(t, ok)
	assert.Equal(t, float32(7), total)

	tm.LoopPause = pause(3)
	total, _ = tm.TotalLoopTime()
	assert.Equal(t, float32(10), total)
}

func TestTimerSetLengthClamps(t *testing.T) {
	tm := NewTimer([]float32{1}, 10, true)
	for i := 0; i < 8; i++ {
		tm.Incr()
	}
	assert.Equal(t, 8, tm.Index())

	tm.SetLength(4)
	assert.Equal(t, 3, tm.Index())
	assert.Equal(t, float32(8), tm.Time())
}

func TestTimerNonFiniteLoopPause(t *testing.T) {
	tests := []struct {
		name  string
		pause float32
	}{
		{"nan", float32(math.NaN())},
		{"inf", float32(math.Inf(1))},
		{"-inf", float32(math.Inf(-1))},
		{"loop not positive", -9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := NewTimer([]float32{1}, 5, true)
			tm.LoopPause = pause(tt.pause)

			// Plays once: holds the last frame instead of wrapping
			for i := 1; i <= 12; i++ {
				tm.Incr()
				assert.Equal(t, float32(i), tm.Time())
				assert.Equal(t, min(i, 4), tm.Index())
			}

			total, ok := tm.TotalLoopTime()
			assert.True(t, ok)
			assert.Equal(t, float32(5), total)
		})
	}
}

func TestTimerIndexStaysInRange(t *testing.T) {
	times := []float32{
		float32(math.NaN()),
		float32(math.Inf(1)),
		float32(math.Inf(-1)),
		-3.5,
		-0.25,
		4.999,
		1e9,
	}

	for _, looping := range []bool{false, true} {
		for _, v := range times {
			tm := NewTimer([]float32{1}, 5, true)
			if looping {
				tm.LoopPause = pause(2)
			}
			tm.t = v
			ix := tm.Index()
			assert.GreaterOrEqual(t, ix, 0, "t=%v looping=%v", v, looping)
			assert.Less(t, ix, 5, "t=%v looping=%v", v, looping)
		}
	}
}

func TestTimerIncrResetsNonFiniteTime(t *testing.T) {
	tm := NewTimer([]float32{1}, 5, true)
	tm.t = float32(math.NaN())
	tm.Incr()
	assert.Zero(t, tm.Time())
	assert.Zero(t, tm.Index())
}

func TestTimerZeroFPS(t *testing.T) {
	tm := NewUnboundedTimer([]float32{1})
	tm.FPS = 0
	tm.Incr()
	assert.Equal(t, float32(1), tm.Time())
}

func TestDefaultRates(t *testing.T) {
	r := DefaultRates()
	require.Len(t, r, 27)
	assert.Equal(t, float32(1.0/128), r[0])
	assert.Equal(t, float32(1.0/2), r[12])
	assert.Equal(t, float32(1), r[13])
	assert.Equal(t, float32(3), r[15])
	assert.Equal(t, float32(128), r[26])
	assert.Equal(t, r, NewUnboundedTimer(r).Rates(), "already normalized")
}
