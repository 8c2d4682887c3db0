package timing

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PromObserver records durations in a Prometheus histogram labeled by
// operation. The metrics server is the caller's concern.
type PromObserver struct {
	durations *prometheus.HistogramVec
}

// NewPromObserver registers the duration histogram on the default Prometheus
// registerer.
func NewPromObserver() (*PromObserver, error) {
	return NewPromObserverWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromObserverWithRegistry registers the histogram on the provided
// registerer. A nil registerer defaults to the global Prometheus registerer.
func NewPromObserverWithRegistry(reg prometheus.Registerer) (*PromObserver, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "operation_duration_seconds",
		Help:    "Observed operation durations",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	if err := reg.Register(durations); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			durations = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	return &PromObserver{durations: durations}, nil
}

// Observe adds the sample to the operation's histogram series.
func (o *PromObserver) Observe(operation string, d time.Duration) error {
	o.durations.WithLabelValues(operation).Observe(d.Seconds())
	return nil
}
