package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docsync"

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder owns the collectors of one process.
type Recorder struct {
	registry    *prom.Registry
	runs        *prom.CounterVec
	duration    prom.Histogram
	files       prom.Gauge
	lastSuccess prom.Gauge
	lastRun     prom.Gauge
}

// NewRecorder registers the docsync collectors on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prom.NewRegistry(),
		runs: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Docs sync runs by outcome",
		}, []string{"outcome"}),
		duration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of docs sync runs",
			Buckets:   []float64{.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
		files: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "files",
			Help:      "Files present in the target directory after the last successful run",
		}),
		lastSuccess: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run",
		}),
		lastRun: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last run, successful or not",
		}),
	}
	r.registry.MustRegister(r.runs, r.duration, r.files, r.lastSuccess, r.lastRun)
	return r
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prom.Registry {
	return r.registry
}

// ObserveRun records one finished run. files is ignored for failed runs.
func (r *Recorder) ObserveRun(finished time.Time, d time.Duration, files int, err error) {
	r.duration.Observe(d.Seconds())
	r.lastRun.Set(float64(finished.Unix()))

	if err != nil {
		r.runs.WithLabelValues(OutcomeFailure).Inc()
		return
	}
	r.runs.WithLabelValues(OutcomeSuccess).Inc()
	r.files.Set(float64(files))
	r.lastSuccess.Set(float64(finished.Unix()))
}

// WriteTextfile writes the registry to path in the Prometheus text format.
// The file is replaced atomically so node-exporter never reads a partial
// file.
func (r *Recorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prom.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
