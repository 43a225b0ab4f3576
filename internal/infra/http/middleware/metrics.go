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

	sessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "prospect_sessions_started_total",
			Help: "Total number of prospecting sessions started",
		},
	)

	outcomesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prospect_outcomes_total",
			Help: "Total number of lead outcomes recorded",
		},
		[]string{"status"},
	)

	touchesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prospect_touches_total",
			Help: "Total number of passive lead touches recorded",
		},
		[]string{"channel"},
	)

	leadsImported = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_imported_total",
			Help: "Total number of leads imported from pasted text",
		},
	)

	followUpBacklog = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "follow_up_backlog",
			Help: "Leads in negotiation without contact for 48h or more",
		},
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

func RecordSessionStart() {
	sessionsStarted.Inc()
}

func RecordOutcome(status string) {
	outcomesRecorded.WithLabelValues(status).Inc()
}

func RecordTouch(channel string) {
	touchesRecorded.WithLabelValues(channel).Inc()
}

func RecordLeadsImported(count int) {
	leadsImported.Add(float64(count))
}

func SetFollowUpBacklog(count int) {
	followUpBacklog.Set(float64(count))
}
