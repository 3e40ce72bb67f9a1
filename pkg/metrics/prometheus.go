package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	barsServed    *prometheus.CounterVec
	providerCalls *prometheus.CounterVec
	segmentsRead  prometheus.Counter
	errorsTotal   *prometheus.CounterVec
	latency       *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		barsServed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chartreview_bars_served_total",
				Help: "Total number of bars served to the UI",
			},
			[]string{"symbol", "timeframe"},
		),
		providerCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chartreview_provider_calls_total",
				Help: "Live provider calls by tier",
			},
			[]string{"tier"},
		),
		segmentsRead: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "chartreview_cache_segments_read_total",
				Help: "Cache segment files read",
			},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chartreview_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chartreview_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordBarsServed records bars returned for one request.
func (r *Recorder) RecordBarsServed(symbol, timeframe string, n int) {
	r.barsServed.WithLabelValues(symbol, timeframe).Add(float64(n))
}

// RecordProviderCall records one live provider call by tier.
func (r *Recorder) RecordProviderCall(tier string) {
	r.providerCalls.WithLabelValues(tier).Inc()
}

// RecordSegmentsRead records cache segment files read.
func (r *Recorder) RecordSegmentsRead(n int) {
	r.segmentsRead.Add(float64(n))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
