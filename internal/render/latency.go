package render

import (
	"sort"
	"sync"
	"time"
)

// Operation labels for latency series.
const (
	OpParse  = "parse"
	OpRender = "render"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
}

// LatencySnapshot is a point-in-time aggregate of one operation's samples.
type LatencySnapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// LatencyStats tracks recent durations per operation within a rolling window.
// Parse and render latencies are kept as separate series so the stats endpoint
// can report them independently.
type LatencyStats struct {
	mu     sync.Mutex
	series map[string][]sample
	maxAge time.Duration
}

func NewLatencyStats(maxAge time.Duration) *LatencyStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &LatencyStats{
		series: make(map[string][]sample),
		maxAge: maxAge,
	}
}

// Record adds a duration sample to the named operation's series.
func (s *LatencyStats) Record(op string, d time.Duration) {
	if d < 0 {
		d = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(op, now)
	s.series[op] = append(s.series[op], sample{
		timestamp:  now,
		durationMs: d.Milliseconds(),
	})
}

// Snapshot aggregates every operation's in-window samples. Operations with no
// recent samples are omitted.
func (s *LatencyStats) Snapshot() map[string]LatencySnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]LatencySnapshot, len(s.series))
	for op := range s.series {
		s.pruneLocked(op, now)
		samples := s.series[op]
		if len(samples) == 0 {
			continue
		}

		values := make([]int64, 0, len(samples))
		var sum int64
		for _, sm := range samples {
			values = append(values, sm.durationMs)
			sum += sm.durationMs
		}
		sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

		out[op] = LatencySnapshot{
			Count: len(values),
			MinMs: values[0],
			MaxMs: values[len(values)-1],
			AvgMs: float64(sum) / float64(len(values)),
			P50Ms: percentile(values, 50),
			P95Ms: percentile(values, 95),
			P99Ms: percentile(values, 99),
		}
	}
	return out
}

func (s *LatencyStats) pruneLocked(op string, now time.Time) {
	samples := s.series[op]
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range samples {
		if !sm.timestamp.Before(cutoff) {
			samples[writeIdx] = sm
			writeIdx++
		}
	}
	if writeIdx == 0 {
		delete(s.series, op)
		return
	}
	s.series[op] = samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
