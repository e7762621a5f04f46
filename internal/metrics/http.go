package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	reviewDecisionsTotal *prometheus.CounterVec
	uploadsTotal         *prometheus.CounterVec
	notifyFailuresTotal  prometheus.Counter
}

func NewServerMetrics() *ServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ticketless",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ticketless",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ticketless",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
		},
	)
	reviewDecisionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ticketless",
			Subsystem: "moderation",
			Name:      "review_decisions_total",
			Help:      "Permit document review decisions by action.",
		},
		[]string{"action"},
	)
	uploadsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ticketless",
			Subsystem: "moderation",
			Name:      "tax_bill_uploads_total",
			Help:      "Property tax bill uploads by result.",
		},
		[]string{"result"},
	)
	notifyFailuresTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ticketless",
			Subsystem: "moderation",
			Name:      "notification_failures_total",
			Help:      "Outcome emails that could not be delivered.",
		},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		reviewDecisionsTotal,
		uploadsTotal,
		notifyFailuresTotal,
	)

	return &ServerMetrics{
		registry:             registry,
		requestTotal:         requestTotal,
		requestDuration:      requestDuration,
		requestInFlight:      requestInFlight,
		reviewDecisionsTotal: reviewDecisionsTotal,
		uploadsTotal:         uploadsTotal,
		notifyFailuresTotal:  notifyFailuresTotal,
	}
}

func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *ServerMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(recorder.statusCode)).Inc()
		m.requestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

func (m *ServerMetrics) RecordReviewDecision(action string) {
	m.reviewDecisionsTotal.WithLabelValues(action).Inc()
}

func (m *ServerMetrics) RecordUpload(result string) {
	m.uploadsTotal.WithLabelValues(result).Inc()
}

func (m *ServerMetrics) RecordNotifyFailure() {
	m.notifyFailuresTotal.Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
