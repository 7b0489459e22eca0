package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	DomainOperations     *prometheus.CounterVec
	ProviderCalls        *prometheus.CounterVec
	ProviderCallDuration *prometheus.HistogramVec
	DNSLookups           *prometheus.CounterVec
	VerificationResults  *prometheus.CounterVec
	DNSTargetSource      *prometheus.CounterVec
	ProviderBreakerOpen  prometheus.Gauge
	SweepRuns            *prometheus.CounterVec
	SweepDomains         *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		DomainOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "whitelabel_domain_operations_total",
			Help: "Custom domain operations by operation and result",
		}, []string{"operation", "result"}),
		ProviderCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "whitelabel_provider_calls_total",
			Help: "Domain provider calls by operation and outcome",
		}, []string{"operation", "outcome"}),
		ProviderCallDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "whitelabel_provider_call_duration_seconds",
			Help:    "Duration of domain provider calls including retries",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
		DNSLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "whitelabel_dns_lookups_total",
			Help: "DNS-over-HTTPS lookups by record type and result",
		}, []string{"type", "result"}),
		VerificationResults: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "whitelabel_domain_verification_results_total",
			Help: "Domain verification attempts by resulting state",
		}, []string{"state"}),
		DNSTargetSource: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "whitelabel_dns_targets_total",
			Help: "DNS target computations by source (provider or fallback)",
		}, []string{"source"}),
		ProviderBreakerOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "whitelabel_provider_verify_breaker_open",
			Help: "1 while the provider verification circuit breaker is open",
		}),
		SweepRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "whitelabel_verification_sweep_runs_total",
			Help: "Re-verification sweep runs by result",
		}, []string{"result"}),
		SweepDomains: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "whitelabel_verification_sweep_domains_total",
			Help: "Domains re-verified by the sweep, by resulting state",
		}, []string{"state"}),
	}
}

func (m *Metrics) IncrementOperation(operation, result string) {
	m.DomainOperations.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) ObserveProviderCall(operation, outcome string, start time.Time) {
	m.ProviderCalls.WithLabelValues(operation, outcome).Inc()
	m.ProviderCallDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementDNSLookup(recordType, result string) {
	m.DNSLookups.WithLabelValues(recordType, result).Inc()
}

func (m *Metrics) IncrementVerification(state string) {
	m.VerificationResults.WithLabelValues(state).Inc()
}

func (m *Metrics) IncrementDNSTargetSource(source string) {
	m.DNSTargetSource.WithLabelValues(source).Inc()
}

func (m *Metrics) SetBreakerOpen(open bool) {
	if open {
		m.ProviderBreakerOpen.Set(1)
		return
	}
	m.ProviderBreakerOpen.Set(0)
}

func (m *Metrics) IncrementSweepRun(result string) {
	m.SweepRuns.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrementSweepDomain(state string) {
	m.SweepDomains.WithLabelValues(state).Inc()
}
