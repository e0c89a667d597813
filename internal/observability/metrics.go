package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// scrape-and-forecast pipeline.
type Metrics struct {
	RunsTotal       *prometheus.CounterVec // label: outcome={success,error}
	RunDuration     prometheus.Histogram
	PipelineRunning prometheus.Gauge
	LastSuccess     prometheus.Gauge

	// Extraction metrics.
	RecordsParsed       prometheus.Counter
	RecordsUnclassified prometheus.Counter
	CountDefaults       prometheus.Counter
	FetchDuration       prometheus.Histogram

	// Forecast metrics.
	PredictionRows prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RunsTotal,
		m.RunDuration,
		m.PipelineRunning,
		m.LastSuccess,
		m.RecordsParsed,
		m.RecordsUnclassified,
		m.CountDefaults,
		m.FetchDuration,
		m.PredictionRows,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "case_forecast",
			Name:      "runs_total",
			Help:      "Forecast pipeline runs by outcome.",
		}, []string{"outcome"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "case_forecast",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete fetch-parse-forecast-persist run.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "case_forecast",
			Name:      "pipeline_running",
			Help:      "1 while a pipeline run is in progress.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "case_forecast",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful pipeline run.",
		}),
		RecordsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "case_forecast",
			Name:      "records_parsed_total",
			Help:      "Announcement items successfully classified.",
		}),
		RecordsUnclassified: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "case_forecast",
			Name:      "records_unclassified_total",
			Help:      "Announcement items dropped as unclassifiable.",
		}),
		CountDefaults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "case_forecast",
			Name:      "count_defaults_total",
			Help:      "Records whose quantity word failed conversion and defaulted to 1.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "case_forecast",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of the source page fetch.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		PredictionRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "case_forecast",
			Name:      "prediction_rows",
			Help:      "Rows in the most recently persisted prediction table.",
		}),
	}
}
