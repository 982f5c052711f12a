package status

import "sync/atomic"

// Metric names published by the viewer loop
const (
	FrameIndex   = "frame.index"
	FrameCount   = "frame.count"
	FrameCaption = "frame.caption"
	LiveObjects  = "objects.live"
	TimerTime    = "timer.time"
	TimerDt      = "timer.dt"
	TimerPaused  = "timer.paused"
	Coloring     = "palette.coloring"
	Reloads      = "loader.reloads"
)

// Registry groups typed metric maps
// The viewer loop writes; the status endpoint reads
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount is the number of metrics across all maps
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot copies every current value into one flat map
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) { out[k] = v.Load() })
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = v.Load() })
	r.Floats.Range(func(k string, v *AtomicFloat) { out[k] = v.Load() })
	r.Strings.Range(func(k string, v *AtomicString) { out[k] = v.Load() })
	return out
}
