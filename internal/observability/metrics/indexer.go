package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type IndexerMetrics struct {
	registry *prometheus.Registry

	buildTotal       *prometheus.CounterVec
	buildDuration    *prometheus.HistogramVec
	buildInFlight    prometheus.Gauge
	indexedDocuments prometheus.Gauge
}

func NewIndexerMetrics(service string) *IndexerMetrics {
	registry := prometheus.NewRegistry()

	buildTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "course",
			Subsystem: "indexer",
			Name:      "build_total",
			Help:      "Total index builds by status.",
		},
		[]string{"service", "status"},
	)
	buildDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "course",
			Subsystem: "indexer",
			Name:      "build_duration_seconds",
			Help:      "Index build duration in seconds by status.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		},
		[]string{"service", "status"},
	)
	buildInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "course",
			Subsystem: "indexer",
			Name:      "build_in_flight",
			Help:      "Number of in-flight index builds.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	indexedDocuments := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "course",
			Subsystem: "indexer",
			Name:      "indexed_documents",
			Help:      "Documents in the most recently published index.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(buildTotal, buildDuration, buildInFlight, indexedDocuments)

	return &IndexerMetrics{
		registry:         registry,
		buildTotal:       buildTotal,
		buildDuration:    buildDuration,
		buildInFlight:    buildInFlight,
		indexedDocuments: indexedDocuments,
	}
}

func (m *IndexerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *IndexerMetrics) StartBuild() {
	m.buildInFlight.Inc()
}

func (m *IndexerMetrics) FinishBuild(service string, duration time.Duration, documents int, err error) {
	m.buildInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.buildTotal.WithLabelValues(service, status).Inc()
	m.buildDuration.WithLabelValues(service, status).Observe(duration.Seconds())
	if err == nil {
		m.indexedDocuments.Set(float64(documents))
	}
}
