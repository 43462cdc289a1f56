package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sovereign",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sovereign",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	gateDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sovereign",
			Subsystem: "gate",
			Name:      "decisions_total",
			Help:      "Route gate outcomes by section and reason.",
		},
		[]string{"section", "outcome", "reason"},
	)
	authAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sovereign",
			Subsystem: "auth",
			Name:      "verify_total",
			Help:      "Credential verification attempts.",
		},
		[]string{"kind", "success"},
	)
	calcErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sovereign",
			Subsystem: "calc",
			Name:      "invalid_input_total",
			Help:      "Calculator requests rejected for invalid input.",
		},
		[]string{"calculator", "field"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, gateDecisions, authAttempts, calcErrors)
	})
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

// RecordGateDecision counts one gate outcome. reason is empty on success.
func RecordGateDecision(section, outcome, reason string) {
	RegisterMetrics()
	gateDecisions.WithLabelValues(section, outcome, reason).Inc()
}

// RecordVerify counts a credential check. kind is "site" or "client".
func RecordVerify(kind string, success bool) {
	RegisterMetrics()
	authAttempts.WithLabelValues(kind, strconv.FormatBool(success)).Inc()
}

func RecordCalcError(calculator, field string) {
	RegisterMetrics()
	calcErrors.WithLabelValues(calculator, field).Inc()
}
