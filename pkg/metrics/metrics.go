// Package metrics defines the Prometheus collectors exported on /metrics.
//
// Collectors are grouped in Metrics so tests can register them on a private
// registry instead of the global default.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tvet_connect"

type Metrics struct {
	// HTTPRequestsTotal counts requests by method, route and status code.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration observes handler latency by method and route.
	HTTPRequestDuration *prometheus.HistogramVec

	// ConnectionTransitions counts connection state changes.
	// Labels: transition (requested, accepted, rejected, removed)
	ConnectionTransitions *prometheus.CounterVec

	// NotificationsDispatched counts notifications by recipient type and outcome.
	// Labels: recipient_type (user, general), outcome (stored, failed)
	NotificationsDispatched *prometheus.CounterVec

	// LoginAttempts counts login attempts by outcome.
	// Labels: outcome (success, invalid_credentials, pending_approval, blocked)
	LoginAttempts *prometheus.CounterVec
}

// New registers every collector on reg. Passing nil uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		ConnectionTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "connections",
			Name:      "transitions_total",
			Help:      "Connection state transitions.",
		}, []string{"transition"}),

		NotificationsDispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "dispatched_total",
			Help:      "Notification dispatch attempts by recipient type and outcome.",
		}, []string{"recipient_type", "outcome"}),

		LoginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
	}
}

// NewNop returns collectors bound to a throwaway registry, for tests and tools.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) ConnectionTransition(transition string) {
	if m == nil {
		return
	}
	m.ConnectionTransitions.WithLabelValues(transition).Inc()
}

func (m *Metrics) NotificationDispatched(recipientType, outcome string) {
	if m == nil {
		return
	}
	m.NotificationsDispatched.WithLabelValues(recipientType, outcome).Inc()
}

func (m *Metrics) LoginAttempt(outcome string) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(outcome).Inc()
}
