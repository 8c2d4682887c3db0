// Package timing measures how long operations take and routes the samples to
// logs, Prometheus, InfluxDB or an in-memory summary.
package timing

import "time"

// Observer consumes operation durations.
type Observer interface {
	Observe(operation string, d time.Duration) error
}

// NopObserver drops every observation.
type NopObserver struct{}

func (NopObserver) Observe(string, time.Duration) error { return nil }

// MultiObserver fans observations out to several observers.
type MultiObserver struct {
	Observers []Observer
}

// NewMultiObserver creates a MultiObserver with the provided observers.
func NewMultiObserver(obs ...Observer) *MultiObserver {
	return &MultiObserver{Observers: obs}
}

// Observe forwards the sample to all observers, returning the first error
// encountered.
func (m *MultiObserver) Observe(operation string, d time.Duration) error {
	for _, o := range m.Observers {
		if err := o.Observe(operation, d); err != nil {
			return err
		}
	}
	return nil
}
