package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"whitelabel/internal/platform/health"
	"whitelabel/pkg/platform/middleware/admin"
	request "whitelabel/pkg/platform/middleware/request"
)

// DefaultAPITimeout bounds the service's own JSON endpoints. The proxied
// application surface is not wrapped so streaming responses keep working.
const DefaultAPITimeout = 30 * time.Second

// Registrar is implemented by handlers that mount their own routes.
type Registrar interface {
	Register(r chi.Router)
}

// Config collects everything the HTTP surface is assembled from.
type Config struct {
	Logger             *slog.Logger
	Metrics            *request.Metrics
	Health             *health.Handler
	Domains            Registrar
	Tenants            Registrar
	AdminToken         string
	CORSAllowedOrigins []string

	// TenantRouting classifies the Host header and rewrites the path
	// before App sees the request.
	TenantRouting func(http.Handler) http.Handler
	App           http.Handler

	// ServiceHost limits health, metrics and the JSON API to the hosts it
	// accepts. Every other host goes straight to the tenant-routed App.
	// Nil serves them on every host.
	ServiceHost func(host string) bool
}

// NewRouter wires health, metrics and the JSON API ahead of the tenant-routed
// application catch-all.
func NewRouter(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(request.Logger(logger))
	r.Use(request.LatencyMiddleware(cfg.Metrics))

	app := cfg.App
	if app == nil {
		app = http.NotFoundHandler()
	}
	if cfg.TenantRouting != nil {
		app = cfg.TenantRouting(app)
	}

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	if cfg.ServiceHost != nil {
		r.Use(serviceHostsOnly(cfg.ServiceHost, app))
	}

	if cfg.Health != nil {
		cfg.Health.Register(r)
	}
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(api chi.Router) {
		api.Use(request.Timeout(DefaultAPITimeout))
		api.Use(request.BodyLimit(request.DefaultMaxBodyBytes))
		api.Use(request.ContentTypeJSON)

		if cfg.Domains != nil {
			cfg.Domains.Register(api)
		}

		if cfg.Tenants != nil {
			api.Group(func(ops chi.Router) {
				if cfg.AdminToken != "" {
					ops.Use(admin.RequireAdminToken(cfg.AdminToken, logger))
				} else {
					logger.Warn("ADMIN_API_TOKEN not set; tenant admin API is unauthenticated")
				}
				cfg.Tenants.Register(ops)
			})
		}
	})

	r.Handle("/*", app)

	return r
}

// serviceHostsOnly hands requests for non-service hosts to app before chi
// matches any service route.
func serviceHostsOnly(isServiceHost func(string) bool, app http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isServiceHost(r.Host) {
				app.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
