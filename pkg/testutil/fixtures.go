package testutil

import (
	"time"

	"github.com/google/uuid"

	tenantmodels "whitelabel/internal/tenant/models"
	id "whitelabel/pkg/domain"
)

// TestIDs provides pre-generated IDs for deterministic test data.
var TestIDs = struct {
	TenantID1 id.TenantID
	TenantID2 id.TenantID
}{
	TenantID1: id.TenantID(uuid.MustParse("aaaa0000-0000-0000-0000-000000000001")),
	TenantID2: id.TenantID(uuid.MustParse("aaaa0000-0000-0000-0000-000000000002")),
}

// TenantBuilder provides a fluent interface for building test tenants.
type TenantBuilder struct {
	tenant *tenantmodels.Tenant
}

// NewTenantBuilder creates an active tenant with slug "acme" and no custom domain.
func NewTenantBuilder() *TenantBuilder {
	now := time.Now()
	return &TenantBuilder{
		tenant: &tenantmodels.Tenant{
			ID:        id.TenantID(uuid.New()),
			Slug:      "acme",
			Name:      "Acme Agency",
			Status:    tenantmodels.TenantStatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func (b *TenantBuilder) WithID(tenantID id.TenantID) *TenantBuilder {
	b.tenant.ID = tenantID
	return b
}

func (b *TenantBuilder) WithSlug(slug string) *TenantBuilder {
	b.tenant.Slug = slug
	return b
}

func (b *TenantBuilder) WithName(name string) *TenantBuilder {
	b.tenant.Name = name
	return b
}

func (b *TenantBuilder) WithStatus(status tenantmodels.TenantStatus) *TenantBuilder {
	b.tenant.Status = status
	return b
}

// WithDomain attaches an unverified custom domain.
func (b *TenantBuilder) WithDomain(domain string) *TenantBuilder {
	b.tenant.AssignDomain(domain, b.tenant.UpdatedAt)
	return b
}

// Verified marks the attached custom domain verified.
func (b *TenantBuilder) Verified() *TenantBuilder {
	at := b.tenant.UpdatedAt
	b.tenant.DomainVerified = true
	b.tenant.DomainVerifiedAt = &at
	return b
}

func (b *TenantBuilder) UpdatedAt(t time.Time) *TenantBuilder {
	b.tenant.UpdatedAt = t
	return b
}

func (b *TenantBuilder) Build() *tenantmodels.Tenant {
	return b.tenant
}
