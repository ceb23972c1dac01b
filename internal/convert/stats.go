package convert

import (
	"sort"
	"sync"
	"time"
)

type runSample struct {
	timestamp  time.Time
	groups     int
	lines      int
	durationMs int64
}

// StatsSnapshot is a point-in-time aggregate of recent conversion runs.
type StatsSnapshot struct {
	Runs        int     `json:"runs"`
	TotalGroups int     `json:"total_groups"`
	TotalLines  int     `json:"total_lines"`
	MinMs       int64   `json:"min_ms"`
	MaxMs       int64   `json:"max_ms"`
	AvgMs       float64 `json:"avg_ms"`
	P50Ms       float64 `json:"p50_ms"`
	P95Ms       float64 `json:"p95_ms"`
}

// RunStats tracks conversion run durations within a rolling window. It is
// used by the service mode to report recent throughput.
type RunStats struct {
	mu      sync.Mutex
	samples []runSample
	maxAge  time.Duration
}

func NewRunStats(maxAge time.Duration) *RunStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &RunStats{
		samples: make([]runSample, 0, 64),
		maxAge:  maxAge,
	}
}

// Record adds one completed run to the window.
func (s *RunStats) Record(res Result) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, runSample{
		timestamp:  now,
		groups:     res.Groups,
		lines:      res.Lines,
		durationMs: res.Elapsed.Milliseconds(),
	})
}

// Snapshot aggregates the runs still inside the window.
func (s *RunStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)

	snap := StatsSnapshot{Runs: len(s.samples)}
	if snap.Runs == 0 {
		return snap
	}

	durations := make([]int64, 0, len(s.samples))
	var total int64
	for _, smp := range s.samples {
		snap.TotalGroups += smp.groups
		snap.TotalLines += smp.lines
		durations = append(durations, smp.durationMs)
		total += smp.durationMs
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	snap.MinMs = durations[0]
	snap.MaxMs = durations[len(durations)-1]
	snap.AvgMs = float64(total) / float64(len(durations))
	snap.P50Ms = percentile(durations, 0.50)
	snap.P95Ms = percentile(durations, 0.95)
	return snap
}

func (s *RunStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	keep := s.samples[:0]
	for _, smp := range s.samples {
		if smp.timestamp.After(cutoff) {
			keep = append(keep, smp)
		}
	}
	s.samples = keep
}

func percentile(sorted []int64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return float64(sorted[0])
	}
	rank := p * float64(len(sorted)-1)
	lo := int(rank)
	hi := lo + 1
	if hi >= len(sorted) {
		return float64(sorted[len(sorted)-1])
	}
	frac := rank - float64(lo)
	return float64(sorted[lo])*(1-frac) + float64(sorted[hi])*frac
}
