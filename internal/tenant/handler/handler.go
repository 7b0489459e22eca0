package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"whitelabel/internal/tenant/models"
	id "whitelabel/pkg/domain"
	dErrors "whitelabel/pkg/domain-errors"
	"whitelabel/pkg/platform/httputil"
	"whitelabel/pkg/platform/middleware/admin"
	request "whitelabel/pkg/platform/middleware/request"
)

// Service defines the admin operations on tenants.
// Returns domain objects, not HTTP response DTOs.
type Service interface {
	CreateTenant(ctx context.Context, slug, name string) (*models.Tenant, error)
	GetTenant(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error)
	SuspendTenant(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error)
	ReactivateTenant(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the admin routes. Callers wrap r with admin.RequireAdminToken.
func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/tenants", h.HandleCreateTenant)
	r.Get("/admin/tenants/{id}", h.HandleGetTenant)
	r.Post("/admin/tenants/{id}/suspend", h.HandleSuspendTenant)
	r.Post("/admin/tenants/{id}/reactivate", h.HandleReactivateTenant)
}

func (h *Handler) HandleCreateTenant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateTenantRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	tenant, err := h.service.CreateTenant(ctx, req.Slug, req.Name)
	if err != nil {
		h.logger.ErrorContext(ctx, "create tenant failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "tenant created by admin",
		"tenant_id", tenant.ID.String(),
		"actor_id", admin.GetActorID(ctx),
		"request_id", requestID,
	)
	httputil.WriteJSON(w, http.StatusCreated, toTenantResponse(tenant))
}

func (h *Handler) HandleGetTenant(w http.ResponseWriter, r *http.Request) {
	h.withTenantID(w, r, "get tenant failed", h.service.GetTenant)
}

// HandleSuspendTenant suspends a tenant. Suspended tenants are not routed on
// any hostname and cannot add custom domains.
func (h *Handler) HandleSuspendTenant(w http.ResponseWriter, r *http.Request) {
	h.withTenantID(w, r, "suspend tenant failed", h.service.SuspendTenant)
}

func (h *Handler) HandleReactivateTenant(w http.ResponseWriter, r *http.Request) {
	h.withTenantID(w, r, "reactivate tenant failed", h.service.ReactivateTenant)
}

func (h *Handler) withTenantID(w http.ResponseWriter, r *http.Request, failure string, op func(context.Context, id.TenantID) (*models.Tenant, error)) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	tenantID, err := id.ParseTenantID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid tenant id"))
		return
	}

	tenant, err := op(ctx, tenantID)
	if err != nil {
		h.logger.ErrorContext(ctx, failure, "error", err, "request_id", requestID, "tenant_id", tenantID.String())
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toTenantResponse(tenant))
}
