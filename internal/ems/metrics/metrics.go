package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the service
type Metrics struct {
	Mutations    *prometheus.CounterVec
	AuditEntries *prometheus.CounterVec
	LogQueries   *prometheus.CounterVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ems_employee_mutations_total",
			Help: "Employee update attempts by outcome",
		}, []string{"outcome"}),
		AuditEntries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ems_audit_entries_total",
			Help: "Audit entries written by sink",
		}, []string{"kind"}),
		LogQueries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ems_log_queries_total",
			Help: "Audit log queries by sink",
		}, []string{"kind"}),
	}
}

// NewNop returns collectors registered with a private registry, for tests.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) IncMutation(outcome string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncAuditEntry(kind string) {
	if m == nil {
		return
	}
	m.AuditEntries.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncLogQuery(kind string) {
	if m == nil {
		return
	}
	m.LogQueries.WithLabelValues(kind).Inc()
}
