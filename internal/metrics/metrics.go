package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AuthTotal counts register and login attempts by outcome.
	AuthTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Register and login attempts by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	// PredictionsTotal counts predictions by outcome (eligible, ineligible, error).
	PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Loan predictions by outcome",
		},
		[]string{"outcome"},
	)

	// ModelReloadsTotal counts model artifact reloads by result (ok, error).
	ModelReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_reloads_total",
			Help: "Model artifact reloads by result",
		},
		[]string{"result"},
	)
)

// knownPaths bounds the path label; anything else is reported as "other".
var knownPaths = map[string]bool{
	"/": true, "/register": true, "/login": true, "/predict": true,
	"/logout": true, "/health": true, "/ready": true,
}

var initOnce sync.Once

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, AuthTotal, PredictionsTotal, ModelReloadsTotal)
	})
}

// NormalizePath maps unknown paths to "other" so scanners cannot blow up label cardinality.
func NormalizePath(path string) string {
	if knownPaths[path] {
		return path
	}
	return "other"
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncAuth records a register or login attempt.
func IncAuth(action, outcome string) {
	AuthTotal.WithLabelValues(action, outcome).Inc()
}

// IncPrediction records a prediction outcome.
func IncPrediction(outcome string) {
	PredictionsTotal.WithLabelValues(outcome).Inc()
}

// IncModelReload records a reload attempt.
func IncModelReload(result string) {
	ModelReloadsTotal.WithLabelValues(result).Inc()
}
