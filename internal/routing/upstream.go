package routing

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	platformhttp "whitelabel/pkg/platform/httputil"
	request "whitelabel/pkg/platform/middleware/request"
)

// NewUpstream proxies routed requests to the application at target,
// preserving the original Host so the application sees the tenant hostname.
func NewUpstream(target *url.URL, logger *slog.Logger) http.Handler {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			pr.Out.Host = pr.In.Host
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.ErrorContext(r.Context(), "application upstream failed",
				"host", r.Host,
				"error", err,
				"request_id", request.GetRequestID(r.Context()),
			)
			platformhttp.WriteJSON(w, http.StatusBadGateway, platformhttp.ErrorResponse{
				Error:       "bad_gateway",
				Description: "application unavailable",
			})
		},
	}
}

// PlaceholderResponse describes what the application would have received.
type PlaceholderResponse struct {
	Surface    string `json:"surface"`
	Path       string `json:"path"`
	TenantID   string `json:"tenant_id,omitempty"`
	TenantSlug string `json:"tenant_slug,omitempty"`
}

// Placeholder stands in for the application when no upstream is configured.
func Placeholder() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := PlaceholderResponse{Surface: string(TargetPlatform), Path: r.URL.Path}
		if tenant, ok := TenantFromContext(r.Context()); ok {
			resp.Surface = string(TargetTenant)
			resp.TenantID = tenant.ID.String()
			resp.TenantSlug = tenant.Slug
		}
		platformhttp.WriteJSON(w, http.StatusOK, resp)
	})
}
