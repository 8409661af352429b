package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	retrievalTotal           *prometheus.CounterVec
	retrievalDuration        *prometheus.HistogramVec
	retrievedCourses         *prometheus.HistogramVec
	noMatchTotal             *prometheus.CounterVec
	detectedLanguageTotal    *prometheus.CounterVec
	translationFallbackTotal *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "course",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "course",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "course",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	retrievalTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "course",
			Subsystem: "retrieval",
			Name:      "requests_total",
			Help:      "Total successful retrieval calls.",
		},
		[]string{"service", "endpoint"},
	)
	retrievalDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "course",
			Subsystem: "retrieval",
			Name:      "duration_seconds",
			Help:      "Retrieval pipeline duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	retrievedCourses := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "course",
			Subsystem: "retrieval",
			Name:      "matched_courses",
			Help:      "Distribution of matched courses per retrieval call.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13},
		},
		[]string{"service", "endpoint"},
	)
	noMatchTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "course",
			Subsystem: "retrieval",
			Name:      "no_match_total",
			Help:      "Total retrieval calls where no course met the similarity bar.",
		},
		[]string{"service", "endpoint"},
	)
	detectedLanguageTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "course",
			Subsystem: "retrieval",
			Name:      "detected_language_total",
			Help:      "Total queries by detected language.",
		},
		[]string{"service", "language"},
	)
	translationFallbackTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "course",
			Subsystem: "retrieval",
			Name:      "translation_fallback_total",
			Help:      "Total queries retrieved with the untranslated text after a translation failure.",
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		retrievalTotal,
		retrievalDuration,
		retrievedCourses,
		noMatchTotal,
		detectedLanguageTotal,
		translationFallbackTotal,
	)

	return &HTTPServerMetrics{
		registry:                 registry,
		requestTotal:             requestTotal,
		requestDuration:          requestDuration,
		requestInFlight:          requestInFlight,
		retrievalTotal:           retrievalTotal,
		retrievalDuration:        retrievalDuration,
		retrievedCourses:         retrievedCourses,
		noMatchTotal:             noMatchTotal,
		detectedLanguageTotal:    detectedLanguageTotal,
		translationFallbackTotal: translationFallbackTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "/v1/courses/") {
		return "/v1/courses/{course_id}"
	}
	return path
}

func (m *HTTPServerMetrics) RecordRetrieval(service, endpoint string, matches int, duration time.Duration) {
	m.retrievalTotal.WithLabelValues(service, endpoint).Inc()
	m.retrievedCourses.WithLabelValues(service, endpoint).Observe(float64(matches))
	m.retrievalDuration.WithLabelValues(service, endpoint).Observe(duration.Seconds())

	if matches == 0 {
		m.noMatchTotal.WithLabelValues(service, endpoint).Inc()
	}
}

func (m *HTTPServerMetrics) RecordDetectedLanguage(service, language string) {
	if language == "" {
		language = "unknown"
	}
	m.detectedLanguageTotal.WithLabelValues(service, language).Inc()
}

func (m *HTTPServerMetrics) RecordTranslationFallback(service string) {
	m.translationFallbackTotal.WithLabelValues(service).Inc()
}
