package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const Service = "pack"

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requests_total",
			Help: "Total number of requests",
		},
		[]string{"service", "method", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method"},
	)

	// flow: login, signup, password_change
	SessionsIssued = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sessions_issued_total",
			Help: "Sessions created",
		},
		[]string{"flow"},
	)

	// outcome: ok, no_cookie, unknown, expired, store_error
	SessionResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_resolutions_total",
			Help: "Session cookie resolutions by outcome",
		},
		[]string{"outcome"},
	)

	// decision: pass, allow, redirect
	GateDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gate_decisions_total",
			Help: "Edge gate decisions",
		},
		[]string{"decision"},
	)

	// outcome: ok, failed
	SignupRollbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signup_rollbacks_total",
			Help: "Compensating deletes after a failed signup",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		SessionsIssued,
		SessionResolutions,
		GateDecisions,
		SignupRollbacks,
	)
}

func RecordRequest(method, status string, duration time.Duration) {
	RequestsTotal.WithLabelValues(Service, method, status).Inc()
	RequestDuration.WithLabelValues(Service, method).Observe(duration.Seconds())
}
