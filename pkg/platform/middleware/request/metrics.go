package request

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	EndpointLatency *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		EndpointLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "whitelabel_http_request_duration_seconds",
			Help:    "Latency of API endpoints in seconds, by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

func (m *Metrics) ObserveEndpointLatency(route, method string, durationSeconds float64) {
	m.EndpointLatency.WithLabelValues(route, method).Observe(durationSeconds)
}

// routePattern keeps label cardinality bounded: tenant IDs and rewritten site
// paths collapse into their chi pattern, anything unmatched into "other".
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "other"
}
