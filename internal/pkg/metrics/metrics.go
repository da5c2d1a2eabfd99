package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hr_portal_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hr_portal_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	absenceTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hr_portal_absence_request_transitions_total",
		Help: "Absence requests entering each status",
	}, []string{"status"})

	feedbackCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hr_portal_feedback_created_total",
		Help: "Feedback entries created, by anonymity",
	}, []string{"anonymous"})

	authAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hr_portal_auth_attempts_total",
		Help: "Register and login attempts by result",
	}, []string{"operation", "result"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveAbsenceTransition counts an absence request reaching status.
func ObserveAbsenceTransition(status string) {
	absenceTransitions.WithLabelValues(status).Inc()
}

func ObserveFeedbackCreated(anonymous bool) {
	label := "false"
	if anonymous {
		label = "true"
	}
	feedbackCreated.WithLabelValues(label).Inc()
}

// ObserveAuthAttempt records a register or login outcome ("success" or "failure").
func ObserveAuthAttempt(operation, result string) {
	authAttempts.WithLabelValues(operation, result).Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
