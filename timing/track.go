package timing

import (
	"time"

	"github.com/confectlab/confect/logs"
)

// Track logs the elapsed time of a code region. Use with defer:
//
//	defer timing.Track(log, "load config")()
func Track(log logs.Logger, operation string) func() {
	start := time.Now()
	return func() {
		log.Infof("%s took %s", operation, time.Since(start))
	}
}

// TrackTo logs the elapsed time and records it with an observer.
func TrackTo(obs Observer, log logs.Logger, operation string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		log.Infof("%s took %s", operation, d)
		if err := obs.Observe(operation, d); err != nil {
			log.Errorf("record timing for %s: %v", operation, err)
		}
	}
}
