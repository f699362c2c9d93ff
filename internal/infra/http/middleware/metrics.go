package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_transitions_total",
			Help: "Total number of lead status transitions",
		},
		[]string{"from", "to"},
	)

	staleCriticalLeads = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stale_critical_leads",
			Help: "Leads currently classified as critical by the staleness sweep",
		},
	)

	installmentsPaid = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "installments_paid_total",
			Help: "Total number of rental installments settled",
		},
	)

	leadEventErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_event_errors_total",
			Help: "Total number of lead event delivery errors",
		},
		[]string{"service"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordLeadTransition(from, to string) {
	leadTransitions.WithLabelValues(from, to).Inc()
}

func SetStaleCriticalLeads(count int) {
	staleCriticalLeads.Set(float64(count))
}

func RecordInstallmentPaid() {
	installmentsPaid.Inc()
}

func RecordLeadEventError(service string) {
	leadEventErrors.WithLabelValues(service).Inc()
}
