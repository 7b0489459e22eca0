package service

import (
	"context"
	"errors"
	"time"

	"whitelabel/internal/sentinel"
	"whitelabel/internal/tenant/models"
	id "whitelabel/pkg/domain"
	dErrors "whitelabel/pkg/domain-errors"
)

// TenantStore is the persistence contract for tenants. Both the in-memory and
// PostgreSQL stores satisfy it.
type TenantStore interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	FindByID(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error)
	FindBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	FindByCustomDomain(ctx context.Context, domain string) (*models.Tenant, error)
	UpdateStatus(ctx context.Context, tenantID id.TenantID, status models.TenantStatus, now time.Time) error
}

func requireTenantID(tenantID id.TenantID) error {
	if tenantID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "tenant ID required")
	}
	return nil
}

// wrapTenantErr translates store sentinels into domain errors.
func wrapTenantErr(err error, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "tenant not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}
