// Package metrics exports the engine counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"tracker/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tracker"

// Recorder implements ports.MetricsRecorder.
type Recorder struct {
	registry      *prometheus.Registry
	sweeps        *prometheus.CounterVec
	sweepDuration prometheus.Histogram
	changes       prometheus.Counter
	deliveries    *prometheus.CounterVec
}

// NewRecorder registers the tracker collectors plus the Go and process
// collectors on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		sweeps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweeps_total",
			Help:      "Change-detection sweeps by result.",
		}, []string{"result"}),
		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Duration of change-detection sweeps.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		changes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_changes_total",
			Help:      "Status changes detected by sweeps.",
		}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Outgoing notifications and reminders by kind and result.",
		}, []string{"kind", "result"}),
	}

	r.registry.MustRegister(
		r.sweeps,
		r.sweepDuration,
		r.changes,
		r.deliveries,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) SweepCompleted(d time.Duration, changes int, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.sweeps.WithLabelValues(result).Inc()
	r.sweepDuration.Observe(d.Seconds())
	r.changes.Add(float64(changes))
}

// DeliveryRecorded counts one send; result is "sent" or the failure code.
func (r *Recorder) DeliveryRecorded(kind string, failure ports.DeliveryFailure) {
	result := "sent"
	if failure != "" {
		result = string(failure)
	}
	r.deliveries.WithLabelValues(kind, result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry exposes the underlying registry, mostly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
