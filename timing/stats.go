package timing

import (
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Stats accumulates duration samples in memory, keyed by operation. It
// implements Observer and is safe for concurrent use.
type Stats struct {
	mu      sync.Mutex
	samples map[string][]float64
}

// NewStats returns an empty sample store.
func NewStats() *Stats {
	return &Stats{samples: make(map[string][]float64)}
}

// Observe appends one sample for the operation.
func (s *Stats) Observe(operation string, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples[operation] = append(s.samples[operation], d.Seconds())
	return nil
}

// Summary describes the samples recorded for one operation.
type Summary struct {
	Count  int
	Mean   time.Duration
	StdDev time.Duration
	P50    time.Duration
	P90    time.Duration
	P99    time.Duration
}

// Snapshot summarizes the samples of one operation. ok is false when nothing
// was recorded for it.
func (s *Stats) Snapshot(operation string) (sum Summary, ok bool) {
	s.mu.Lock()
	samples := append([]float64(nil), s.samples[operation]...)
	s.mu.Unlock()
	if len(samples) == 0 {
		return Summary{}, false
	}
	sort.Float64s(samples)
	sum.Count = len(samples)
	sum.Mean = seconds(stat.Mean(samples, nil))
	if len(samples) > 1 {
		sum.StdDev = seconds(stat.StdDev(samples, nil))
	}
	sum.P50 = seconds(stat.Quantile(0.5, stat.Empirical, samples, nil))
	sum.P90 = seconds(stat.Quantile(0.9, stat.Empirical, samples, nil))
	sum.P99 = seconds(stat.Quantile(0.99, stat.Empirical, samples, nil))
	return sum, true
}

// Operations lists the operations with at least one sample.
func (s *Stats) Operations() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ops := make([]string, 0, len(s.samples))
	for op := range s.samples {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
