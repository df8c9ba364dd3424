package perf

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Stats summarizes the durations seen by a Recorder
type Stats struct {
	Name          string
	Count         int64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	SlowOps       int64
}

// AvgDuration returns the mean duration, zero when nothing was recorded
func (s Stats) AvgDuration() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Count)
}

// Recorder accumulates durations of a repeated operation such as a frame render
type Recorder struct {
	name      string
	logger    *slog.Logger
	threshold time.Duration
	count     int64
	totalDur  int64
	maxDur    int64
	slowOps   int64
}

func NewRecorder(name string, logger *slog.Logger, threshold time.Duration) *Recorder {
	return &Recorder{
		name:      name,
		logger:    logger,
		threshold: threshold,
	}
}

// Start returns a func that records the time elapsed since Start was called
func (r *Recorder) Start() func() {
	start := time.Now()
	return func() {
		r.Record(time.Since(start))
	}
}

func (r *Recorder) Record(elapsed time.Duration) {
	ns := elapsed.Nanoseconds()
	atomic.AddInt64(&r.count, 1)
	atomic.AddInt64(&r.totalDur, ns)

	for {
		maxDur := atomic.LoadInt64(&r.maxDur)
		if ns <= maxDur || atomic.CompareAndSwapInt64(&r.maxDur, maxDur, ns) {
			break
		}
	}

	if elapsed >= r.threshold {
		atomic.AddInt64(&r.slowOps, 1)
		if r.logger != nil {
			r.logger.Debug(r.name+"_slow", "duration_ms", elapsed.Milliseconds(), "threshold_ms", r.threshold.Milliseconds())
		}
	}
}

func (r *Recorder) Stats() Stats {
	return Stats{
		Name:          r.name,
		Count:         atomic.LoadInt64(&r.count),
		TotalDuration: time.Duration(atomic.LoadInt64(&r.totalDur)),
		MaxDuration:   time.Duration(atomic.LoadInt64(&r.maxDur)),
		SlowOps:       atomic.LoadInt64(&r.slowOps),
	}
}

// LogStats writes a one-line summary at debug level
func (r *Recorder) LogStats() {
	stats := r.Stats()
	if stats.Count == 0 || r.logger == nil {
		return
	}
	r.logger.Debug(r.name+"_stats",
		"count", stats.Count,
		"avg_us", stats.AvgDuration().Microseconds(),
		"max_us", stats.MaxDuration.Microseconds(),
		"slow_ops", stats.SlowOps,
	)
}
