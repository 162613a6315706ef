package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// extraction pipeline.
type Metrics struct {
	FixesProcessed prometheus.Counter
	SamplesTaken   prometheus.Counter
	SamplesMissing prometheus.Counter
	FilesWritten   prometheus.Counter
	FilesFailed    prometheus.Counter
	FixesPublished prometheus.Counter
	ExtractRunning prometheus.Gauge

	// Raster source metrics.
	RasterQueryDuration prometheus.Histogram
	RasterCache         *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FixesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tc_sst",
			Name:      "fixes_processed_total",
			Help:      "Total track fixes sampled.",
		}),
		SamplesTaken: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tc_sst",
			Name:      "samples_total",
			Help:      "Total window samples attempted.",
		}),
		SamplesMissing: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tc_sst",
			Name:      "samples_missing_total",
			Help:      "Window samples recorded as NaN.",
		}),
		FilesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tc_sst",
			Name:      "files_written_total",
			Help:      "Augmented track files written.",
		}),
		FilesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tc_sst",
			Name:      "files_failed_total",
			Help:      "Track files aborted by a fatal parse or IO error.",
		}),
		FixesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tc_sst",
			Name:      "fixes_published_total",
			Help:      "Enriched fixes published to the sink topic.",
		}),
		ExtractRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tc_sst",
			Name:      "extract_running",
			Help:      "1 while an extraction run is active, 0 otherwise.",
		}),
		RasterQueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tc_sst",
			Name:      "raster_query_duration_seconds",
			Help:      "Raster point query duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		RasterCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tc_sst",
			Name:      "raster_cache_total",
			Help:      "Raster sample cache lookups by result.",
		}, []string{"result"}),
	}

	prometheus.MustRegister(
		m.FixesProcessed,
		m.SamplesTaken,
		m.SamplesMissing,
		m.FilesWritten,
		m.FilesFailed,
		m.FixesPublished,
		m.ExtractRunning,
		m.RasterQueryDuration,
		m.RasterCache,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FixesProcessed:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tc_sst", Name: "fixes_processed_total"}),
		SamplesTaken:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tc_sst", Name: "samples_total"}),
		SamplesMissing:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tc_sst", Name: "samples_missing_total"}),
		FilesWritten:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tc_sst", Name: "files_written_total"}),
		FilesFailed:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tc_sst", Name: "files_failed_total"}),
		FixesPublished:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tc_sst", Name: "fixes_published_total"}),
		ExtractRunning:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "tc_sst", Name: "extract_running"}),
		RasterQueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "tc_sst", Name: "raster_query_duration_seconds"}),
		RasterCache:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "tc_sst", Name: "raster_cache_total"}, []string{"result"}),
	}
}
