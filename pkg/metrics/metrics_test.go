package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ConnectionTransition("requested")
	m.ConnectionTransition("requested")
	m.NotificationDispatched("user", "failed")
	m.LoginAttempt("blocked")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ConnectionTransitions.WithLabelValues("requested")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsDispatched.WithLabelValues("user", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues("blocked")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ConnectionTransition("accepted")
		m.NotificationDispatched("general", "stored")
		m.LoginAttempt("success")
	})
}
