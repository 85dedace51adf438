package pipeline

import (
	"sort"
	"sync"
	"time"
)

// FileFailure records one input that was not converted.
type FileFailure struct {
	Path string
	Err  error
}

// RunStats tracks aggregate counters and byte totals across a batch run.
type RunStats struct {
	OutputRoot string

	Total      int
	Converted  int
	Failed     int
	Skipped    int // Unreadable inputs.
	NotStarted int // Left unprocessed after an interrupt.

	AMR  int // Files classified per family.
	SILK int

	TotalInputBytes  int64
	TotalOutputBytes int64
	AudioDuration    time.Duration // Sum of probed intermediate durations.

	Failures []FileFailure // Failed conversions, sorted by path.
	Skips    []FileFailure // Unreadable inputs, sorted by path.
}

// Processed returns the number of files that reached a final state.
func (s *RunStats) Processed() int {
	return s.Converted + s.Failed + s.Skipped
}

// statsRecorder serializes RunStats updates from concurrent workers.
type statsRecorder struct {
	mu sync.Mutex
	s  RunStats
}

func (r *statsRecorder) update(fn func(s *RunStats)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.s)
}

// snapshot returns the stats with failure lists sorted for stable output.
func (r *statsRecorder) snapshot() RunStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.s
	s.Failures = sortedFailures(r.s.Failures)
	s.Skips = sortedFailures(r.s.Skips)
	return s
}

func sortedFailures(in []FileFailure) []FileFailure {
	out := append([]FileFailure(nil), in...)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
