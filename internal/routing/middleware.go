package routing

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"whitelabel/internal/tenant/models"
	request "whitelabel/pkg/platform/middleware/request"
)

const (
	HeaderTenantID   = "X-Tenant-ID"
	HeaderTenantSlug = "X-Tenant-Slug"
	HeaderTenantName = "X-Tenant-Name"

	tenantHeaderPrefix = "X-Tenant-"

	TenantCookieName = "tenant_slug"
	DefaultCookieTTL = time.Hour
)

type tenantKey struct{}

// TenantFromContext returns the tenant the router attached, if any.
func TenantFromContext(ctx context.Context) (*models.Tenant, bool) {
	t, ok := ctx.Value(tenantKey{}).(*models.Tenant)
	return t, ok && t != nil
}

func WithTenant(ctx context.Context, t *models.Tenant) context.Context {
	return context.WithValue(ctx, tenantKey{}, t)
}

// Router is the edge middleware in front of the application surface. It never
// writes an error response: every outcome is forwarded to next.
type Router struct {
	classifier *Classifier
	logger     *slog.Logger
	metrics    *Metrics
	cookieTTL  time.Duration
}

type Option func(*Router)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(r *Router) {
		r.metrics = m
	}
}

func WithCookieTTL(ttl time.Duration) Option {
	return func(r *Router) {
		if ttl > 0 {
			r.cookieTTL = ttl
		}
	}
}

func NewRouter(classifier *Classifier, opts ...Option) *Router {
	r := &Router{
		classifier: classifier,
		logger:     slog.Default(),
		cookieTTL:  DefaultCookieTTL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (rt *Router) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		stripTenantHeaders(r.Header)

		decision, err := rt.classifier.Classify(ctx, r.Host, r.URL.Path)
		switch {
		case err != nil:
			rt.observe("lookup_error")
			rt.logger.WarnContext(ctx, "tenant lookup failed, serving platform",
				"host", decision.Host,
				"error", err,
				"request_id", request.GetRequestID(ctx),
			)
			next.ServeHTTP(w, r)
			return
		case decision.Target == TargetUnrecognized:
			rt.observe(string(TargetUnrecognized))
			rt.logger.InfoContext(ctx, "unrecognized hostname",
				"host", decision.Host,
				"request_id", request.GetRequestID(ctx),
			)
			next.ServeHTTP(w, r)
			return
		case decision.Target == TargetPlatform:
			rt.observe(string(TargetPlatform))
			next.ServeHTTP(w, r)
			return
		}

		rt.observe(string(TargetTenant))
		tenant := decision.Tenant
		r.Header.Set(HeaderTenantID, tenant.ID.String())
		r.Header.Set(HeaderTenantSlug, tenant.Slug)
		r.Header.Set(HeaderTenantName, tenant.Name)

		http.SetCookie(w, &http.Cookie{
			Name:     TenantCookieName,
			Value:    tenant.Slug,
			Path:     "/",
			MaxAge:   int(rt.cookieTTL.Seconds()),
			Secure:   isTLS(r),
			SameSite: http.SameSiteLaxMode,
		})

		r = r.WithContext(WithTenant(ctx, tenant))
		if decision.Path != r.URL.Path {
			u := *r.URL
			u.Path = decision.Path
			u.RawPath = ""
			r.URL = &u
		}
		next.ServeHTTP(w, r)
	})
}

func (rt *Router) observe(target string) {
	if rt.metrics != nil {
		rt.metrics.IncrementDecision(target)
	}
}

// stripTenantHeaders drops client-supplied tenant identity on every request.
func stripTenantHeaders(h http.Header) {
	for name := range h {
		if strings.HasPrefix(http.CanonicalHeaderKey(name), tenantHeaderPrefix) {
			h.Del(name)
		}
	}
}

func isTLS(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
