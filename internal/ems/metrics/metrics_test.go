package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncMutation("updated")
	m.IncMutation("updated")
	m.IncAuditEntry("manager")
	m.IncLogQuery("self")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Mutations.WithLabelValues("updated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuditEntries.WithLabelValues("manager")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LogQueries.WithLabelValues("self")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncMutation("x")
		m.IncAuditEntry("x")
		m.IncLogQuery("x")
	})
}
