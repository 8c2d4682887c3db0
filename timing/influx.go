package timing

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/confectlab/confect/logs"
)

// InfluxObserver writes one point per observation to an InfluxDB bucket using
// the official client.
type InfluxObserver struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logs.Logger
}

// NewInfluxObserver creates an observer for the given InfluxDB endpoint.
func NewInfluxObserver(url, token, org, bucket string) *InfluxObserver {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxObserver{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logs.New("influx-timing"),
	}
}

// NewInfluxObserverWithFallback pings the InfluxDB instance and returns a
// NopObserver when the health check fails.
func NewInfluxObserverWithFallback(url, token, org, bucket string) Observer {
	obs := NewInfluxObserver(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := obs.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			obs.log.Errorf("influx health check error: %v", err)
		} else {
			obs.log.Errorf("influx health status: %s", health.Status)
		}
		obs.client.Close()
		return NopObserver{}
	}
	return obs
}

// Observe writes the sample as a point tagged with the operation name.
func (o *InfluxObserver) Observe(operation string, d time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("operation_duration").
		AddTag("operation", operation).
		AddField("duration_ms", round3(float64(d)/float64(time.Millisecond))).
		SetTime(time.Now())
	return o.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (o *InfluxObserver) Close() { o.client.Close() }

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
