// Package metrics exposes Prometheus instrumentation for the ingestion
// pipeline and HTTP surface.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns the pipeline's Prometheus collectors. All collectors are
// registered on a private registry so tests can create Recorders freely
// without duplicate-registration panics.
type Recorder struct {
	registry *prometheus.Registry

	uploadsTotal    prometheus.Counter
	cacheHitsTotal  prometheus.Counter
	datasetOutcomes *prometheus.CounterVec
	invalidDates    prometheus.Counter
	parseDuration   prometheus.Histogram
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		uploadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "leadlens",
			Name:      "uploads_total",
			Help:      "Number of upload requests accepted for parsing.",
		}),
		cacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "leadlens",
			Name:      "upload_cache_hits_total",
			Help:      "Number of uploads served from the content-hash cache.",
		}),
		datasetOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadlens",
			Name:      "dataset_outcomes_total",
			Help:      "Per-dataset parse outcomes.",
		}, []string{"dataset", "outcome"}),
		invalidDates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "leadlens",
			Name:      "invalid_dates_total",
			Help:      "Rows dropped from aggregation because their date could not be resolved.",
		}),
		parseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "leadlens",
			Name:      "parse_duration_seconds",
			Help:      "Wall time to parse one upload end to end.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	r.registry.MustRegister(
		r.uploadsTotal,
		r.cacheHitsTotal,
		r.datasetOutcomes,
		r.invalidDates,
		r.parseDuration,
	)
	return r
}

func (r *Recorder) UploadReceived() {
	r.uploadsTotal.Inc()
}

func (r *Recorder) CacheHit() {
	r.cacheHitsTotal.Inc()
}

// DatasetOutcome records one dataset's result; outcome is one of
// "ok", "absent" or "failed".
func (r *Recorder) DatasetOutcome(dataset, outcome string) {
	r.datasetOutcomes.WithLabelValues(dataset, outcome).Inc()
}

func (r *Recorder) InvalidDates(n int) {
	r.invalidDates.Add(float64(n))
}

func (r *Recorder) ObserveParseDuration(seconds float64) {
	r.parseDuration.Observe(seconds)
}

// Handler returns the /metrics HTTP handler for this Recorder's registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
