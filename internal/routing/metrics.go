package routing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Decisions *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		Decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "whitelabel_routing_decisions_total",
			Help: "Hostname routing decisions by target (platform, tenant, unrecognized, lookup_error)",
		}, []string{"target"}),
	}
}

func (m *Metrics) IncrementDecision(target string) {
	m.Decisions.WithLabelValues(target).Inc()
}
