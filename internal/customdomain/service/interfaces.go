package service

import (
	"context"
	"time"

	"whitelabel/internal/customdomain/models"
	"whitelabel/internal/provider"
	tenantmodels "whitelabel/internal/tenant/models"
	id "whitelabel/pkg/domain"
)

// TenantDirectory is the subset of the tenant store the domain services use.
// Implementations return sentinel.ErrNotFound and sentinel.ErrAlreadyUsed.
type TenantDirectory interface {
	FindByID(ctx context.Context, tenantID id.TenantID) (*tenantmodels.Tenant, error)
	FindByCustomDomain(ctx context.Context, domain string) (*tenantmodels.Tenant, error)
	ClaimDomain(ctx context.Context, tenantID id.TenantID, domain string, now time.Time) error
	ClearDomain(ctx context.Context, tenantID id.TenantID, now time.Time) error
	MarkDomainVerified(ctx context.Context, tenantID id.TenantID, domain string, now time.Time) error
}

// DomainProvider is the edge-hosting provider's domain API.
type DomainProvider interface {
	Configured() bool
	AddDomain(ctx context.Context, host string) (provider.Registration, error)
	RemoveDomain(ctx context.Context, host string) error
	GetProjectDomain(ctx context.Context, host string) (*provider.ProjectDomain, error)
	GetDomainConfig(ctx context.Context, host string) (*provider.DomainConfig, error)
}

type DNSResolver interface {
	LookupA(ctx context.Context, name string) ([]string, error)
	LookupCNAME(ctx context.Context, name string) ([]string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event models.DomainEvent) error
}
