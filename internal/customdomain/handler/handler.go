package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"whitelabel/internal/customdomain/models"
	"whitelabel/internal/platform/privacy"
	id "whitelabel/pkg/domain"
	dErrors "whitelabel/pkg/domain-errors"
	"whitelabel/pkg/platform/httputil"
	request "whitelabel/pkg/platform/middleware/request"
)

// Service is the custom domain lifecycle used by the settings UI.
type Service interface {
	AddDomain(ctx context.Context, tenantID id.TenantID, rawDomain string) (*models.AddDomainResult, error)
	RemoveDomain(ctx context.Context, tenantID id.TenantID) (*models.RemoveDomainResult, error)
	VerifyDomain(ctx context.Context, tenantID id.TenantID) (*models.VerifyResult, error)
	GetDNSTargets(ctx context.Context, domain string) models.DNSConfig
}

// DefaultVerifyRateLimit is the per-minute budget for verification polls.
const DefaultVerifyRateLimit = 30

type Handler struct {
	service         Service
	logger          *slog.Logger
	verifyRateLimit int
}

type Option func(*Handler)

// WithVerifyRateLimit sets the number of verify calls allowed per tenant and
// client IP each minute. Non-positive values disable the limit.
func WithVerifyRateLimit(perMinute int) Option {
	return func(h *Handler) {
		h.verifyRateLimit = perMinute
	}
}

func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{service: service, logger: logger, verifyRateLimit: DefaultVerifyRateLimit}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/tenants/{id}/domain", h.HandleAddDomain)
	r.Delete("/tenants/{id}/domain", h.HandleRemoveDomain)
	if h.verifyRateLimit > 0 {
		r.With(httprate.Limit(h.verifyRateLimit, time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP, keyByTenant),
			httprate.WithLimitHandler(h.rateLimited),
		)).Post("/tenants/{id}/domain/verify", h.HandleVerifyDomain)
	} else {
		r.Post("/tenants/{id}/domain/verify", h.HandleVerifyDomain)
	}
	r.Get("/domain/dns-config", h.HandleDNSConfig)
}

func (h *Handler) HandleAddDomain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	tenantID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddDomainRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.AddDomain(ctx, tenantID, req.Domain)
	if err != nil {
		h.logger.ErrorContext(ctx, "add domain failed", "error", err, "request_id", requestID, "tenant_id", tenantID.String())
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) HandleRemoveDomain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	tenantID, ok := h.tenantID(w, r)
	if !ok {
		return
	}

	result, err := h.service.RemoveDomain(ctx, tenantID)
	if err != nil {
		h.logger.ErrorContext(ctx, "remove domain failed", "error", err, "request_id", requestID, "tenant_id", tenantID.String())
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleVerifyDomain is polled by the settings UI until it reports verified.
// Inconclusive attempts are 200 responses, not errors.
func (h *Handler) HandleVerifyDomain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	tenantID, ok := h.tenantID(w, r)
	if !ok {
		return
	}

	result, err := h.service.VerifyDomain(ctx, tenantID)
	if err != nil {
		h.logger.ErrorContext(ctx, "verify domain failed", "error", err, "request_id", requestID, "tenant_id", tenantID.String())
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleDNSConfig never fails. An empty or invalid domain yields the defaults.
func (h *Handler) HandleDNSConfig(w http.ResponseWriter, r *http.Request) {
	domain := models.NormalizeDomain(r.URL.Query().Get("domain"))
	if models.ValidateDomain(domain, nil) != nil {
		domain = ""
	}
	httputil.WriteJSON(w, http.StatusOK, h.service.GetDNSTargets(r.Context(), domain))
}

func (h *Handler) tenantID(w http.ResponseWriter, r *http.Request) (id.TenantID, bool) {
	tenantID, err := id.ParseTenantID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid tenant id"))
		return id.TenantID{}, false
	}
	return tenantID, true
}

func (h *Handler) rateLimited(w http.ResponseWriter, r *http.Request) {
	h.logger.WarnContext(r.Context(), "verify rate limit exceeded",
		"tenant_id", chi.URLParam(r, "id"),
		"client_network", privacy.ClientNetwork(r),
		"request_id", request.GetRequestID(r.Context()),
	)
	httputil.WriteJSON(w, http.StatusTooManyRequests, httputil.ErrorResponse{
		Error:       "rate_limited",
		Description: "too many verification attempts, retry shortly",
	})
}

func keyByTenant(r *http.Request) (string, error) {
	return chi.URLParam(r, "id"), nil
}
