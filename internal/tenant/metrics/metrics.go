package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	TenantCreated         prometheus.Counter
	TenantStatusChanged   *prometheus.CounterVec
	ResolveTenantDuration *prometheus.HistogramVec
}

func New() *Metrics {
	return &Metrics{
		TenantCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "whitelabel_tenants_created_total",
			Help: "Total number of tenants created",
		}),
		TenantStatusChanged: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "whitelabel_tenant_status_changes_total",
			Help: "Tenant status transitions, labeled by new status",
		}, []string{"status"}),
		ResolveTenantDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "whitelabel_resolve_tenant_duration_seconds",
			Help:    "Duration of tenant lookups on the request routing path",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"by", "result"}),
	}
}

func (m *Metrics) IncrementTenantCreated() {
	m.TenantCreated.Inc()
}

func (m *Metrics) IncrementStatusChanged(status string) {
	m.TenantStatusChanged.WithLabelValues(status).Inc()
}

// ObserveResolve records a routing lookup. by is "slug" or "custom_domain";
// result is "found", "not_found" or "error".
func (m *Metrics) ObserveResolve(by, result string, start time.Time) {
	m.ResolveTenantDuration.WithLabelValues(by, result).Observe(time.Since(start).Seconds())
}
