// Package metric exposes the Prometheus instrumentation of the conversion
// service on a private registry.
package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Conversion outcome labels.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics holds the collectors of the conversion service. All metrics live
// in a private registry so tests can create instances freely without
// colliding on the global default registry.
type Metrics struct {
	registry *prometheus.Registry

	ConversionsTotal  *prometheus.CounterVec
	ConversionSeconds prometheus.Histogram
	SourceBytes       prometheus.Histogram
	RecordsDecomposed prometheus.Counter
	RowsWritten       prometheus.Counter
	WarningsTotal     *prometheus.CounterVec
}

// New creates the metrics set with Go runtime and process collectors
// attached.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		ConversionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "meterconv",
				Subsystem: "conversion",
				Name:      "runs_total",
				Help:      "Total number of conversion runs by outcome",
			},
			[]string{"status"},
		),

		ConversionSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "meterconv",
				Subsystem: "conversion",
				Name:      "duration_seconds",
				Help:      "Conversion run duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),

		SourceBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "meterconv",
				Subsystem: "source",
				Name:      "bytes",
				Help:      "Size of uploaded source files in bytes",
				Buckets:   prometheus.ExponentialBuckets(1024, 4, 10),
			},
		),

		RecordsDecomposed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "meterconv",
				Subsystem: "conversion",
				Name:      "records_decomposed_total",
				Help:      "Total number of flat records produced by decomposition",
			},
		),

		RowsWritten: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "meterconv",
				Subsystem: "conversion",
				Name:      "rows_written_total",
				Help:      "Total number of aggregated output rows",
			},
		),

		WarningsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "meterconv",
				Subsystem: "conversion",
				Name:      "warnings_total",
				Help:      "Total number of conversion warnings by diagnostic code",
			},
			[]string{"code"},
		),
	}

	m.registry.MustRegister(
		m.ConversionsTotal,
		m.ConversionSeconds,
		m.SourceBytes,
		m.RecordsDecomposed,
		m.RowsWritten,
		m.WarningsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// RecordConversion records one finished run.
func (m *Metrics) RecordConversion(status string, duration time.Duration) {
	m.ConversionsTotal.WithLabelValues(status).Inc()
	m.ConversionSeconds.Observe(duration.Seconds())
}

// RecordSourceSize records the size of an accepted source file.
func (m *Metrics) RecordSourceSize(bytes int64) {
	m.SourceBytes.Observe(float64(bytes))
}

// RecordVolume records the record and row counts of a successful run.
func (m *Metrics) RecordVolume(flatRecords, outputRows int) {
	m.RecordsDecomposed.Add(float64(flatRecords))
	m.RowsWritten.Add(float64(outputRows))
}

// RecordWarning increments the warning counter for a diagnostic code.
func (m *Metrics) RecordWarning(code string) {
	m.WarningsTotal.WithLabelValues(code).Inc()
}
