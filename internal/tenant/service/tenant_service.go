package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"whitelabel/internal/sentinel"
	tenantmetrics "whitelabel/internal/tenant/metrics"
	"whitelabel/internal/tenant/models"
	id "whitelabel/pkg/domain"
	dErrors "whitelabel/pkg/domain-errors"
	request "whitelabel/pkg/platform/middleware/request"
)

// TenantService is the tenant directory: admin lifecycle operations plus the
// read-only lookups the request router performs on every inbound request.
// Lookups always hit the store; nothing is cached in process.
type TenantService struct {
	tenants TenantStore
	logger  *slog.Logger
	metrics *tenantmetrics.Metrics
	now     func() time.Time
}

func NewTenantService(tenants TenantStore, opts ...Option) *TenantService {
	cfg := &serviceConfig{now: time.Now}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &TenantService{
		tenants: tenants,
		logger:  logger,
		metrics: cfg.metrics,
		now:     cfg.now,
	}
}

func (s *TenantService) CreateTenant(ctx context.Context, slug, name string) (*models.Tenant, error) {
	tenant, err := models.NewTenant(id.NewTenantID(), slug, name, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.tenants.Create(ctx, tenant); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "tenant slug must be unique")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create tenant")
	}

	s.logger.InfoContext(ctx, "tenant created",
		"tenant_id", tenant.ID.String(),
		"slug", tenant.Slug,
		"request_id", request.GetRequestID(ctx),
	)
	if s.metrics != nil {
		s.metrics.IncrementTenantCreated()
	}
	return tenant, nil
}

func (s *TenantService) GetTenant(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	if err := requireTenantID(tenantID); err != nil {
		return nil, err
	}
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, wrapTenantErr(err, "failed to load tenant")
	}
	return tenant, nil
}

// SuspendTenant stops the router from serving the tenant on any hostname.
func (s *TenantService) SuspendTenant(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	return s.transition(ctx, tenantID, func(t *models.Tenant, now time.Time) error {
		return t.Suspend(now)
	})
}

func (s *TenantService) ReactivateTenant(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	return s.transition(ctx, tenantID, func(t *models.Tenant, now time.Time) error {
		return t.Reactivate(now)
	})
}

func (s *TenantService) transition(ctx context.Context, tenantID id.TenantID, apply func(*models.Tenant, time.Time) error) (*models.Tenant, error) {
	tenant, err := s.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := apply(tenant, s.now()); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeConflict, err.Error())
		}
		return nil, err
	}
	if err := s.tenants.UpdateStatus(ctx, tenant.ID, tenant.Status, tenant.UpdatedAt); err != nil {
		return nil, wrapTenantErr(err, "failed to update tenant")
	}

	s.logger.InfoContext(ctx, "tenant status changed",
		"tenant_id", tenant.ID.String(),
		"status", string(tenant.Status),
		"request_id", request.GetRequestID(ctx),
	)
	if s.metrics != nil {
		s.metrics.IncrementStatusChanged(string(tenant.Status))
	}
	return tenant, nil
}

// ResolveBySlug returns the active tenant owning slug, or a CodeNotFound error.
func (s *TenantService) ResolveBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	start := time.Now()
	tenant, err := s.tenants.FindBySlug(ctx, models.NormalizeSlug(slug))
	return s.resolved(ctx, "slug", start, tenant, err, func(t *models.Tenant) bool {
		return t.IsActive()
	})
}

// ResolveByCustomDomain returns the active tenant whose verified custom domain
// is host, or a CodeNotFound error. Unverified domains never resolve.
func (s *TenantService) ResolveByCustomDomain(ctx context.Context, host string) (*models.Tenant, error) {
	start := time.Now()
	host = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(host)), "www.")
	tenant, err := s.tenants.FindByCustomDomain(ctx, host)
	return s.resolved(ctx, "custom_domain", start, tenant, err, func(t *models.Tenant) bool {
		return t.Routable()
	})
}

func (s *TenantService) resolved(ctx context.Context, by string, start time.Time, tenant *models.Tenant, err error, routable func(*models.Tenant) bool) (*models.Tenant, error) {
	result := "found"
	defer func() {
		if s.metrics != nil {
			s.metrics.ObserveResolve(by, result, start)
		}
	}()

	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			result = "not_found"
			return nil, dErrors.New(dErrors.CodeNotFound, "tenant not found")
		}
		result = "error"
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "tenant directory unavailable")
	}
	if !routable(tenant) {
		result = "not_found"
		return nil, dErrors.New(dErrors.CodeNotFound, "tenant not found")
	}
	return tenant, nil
}
