package tenant

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"whitelabel/internal/sentinel"
	"whitelabel/internal/tenant/models"
	id "whitelabel/pkg/domain"
)

// ErrNotFound is returned when a tenant is not found.
var ErrNotFound = sentinel.ErrNotFound

// InMemory stores tenants in memory for local runs and tests.
// Slug and custom domain indexes enforce the same uniqueness as the
// PostgreSQL indexes.
type InMemory struct {
	mu        sync.RWMutex
	tenants   map[id.TenantID]*models.Tenant
	slugIdx   map[string]id.TenantID
	domainIdx map[string]id.TenantID
}

// NewInMemory creates an in-memory tenant store.
func NewInMemory() *InMemory {
	return &InMemory{
		tenants:   make(map[id.TenantID]*models.Tenant),
		slugIdx:   make(map[string]id.TenantID),
		domainIdx: make(map[string]id.TenantID),
	}
}

// Create inserts the tenant if its slug, and custom domain when set, are free.
func (s *InMemory) Create(_ context.Context, t *models.Tenant) error {
	if t == nil {
		return fmt.Errorf("tenant is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tenants[t.ID]; exists {
		return fmt.Errorf("tenant id must be unique: %w", sentinel.ErrAlreadyUsed)
	}
	if _, exists := s.slugIdx[t.Slug]; exists {
		return fmt.Errorf("tenant slug must be unique: %w", sentinel.ErrAlreadyUsed)
	}
	if t.CustomDomain != "" {
		if _, exists := s.domainIdx[t.CustomDomain]; exists {
			return fmt.Errorf("custom domain must be unique: %w", sentinel.ErrAlreadyUsed)
		}
		s.domainIdx[t.CustomDomain] = t.ID
	}
	s.tenants[t.ID] = t.Clone()
	s.slugIdx[t.Slug] = t.ID
	return nil
}

// FindByID retrieves a tenant by its UUID.
func (s *InMemory) FindByID(_ context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.tenants[tenantID]; ok {
		return t.Clone(), nil
	}
	return nil, ErrNotFound
}

// FindBySlug retrieves a tenant by its slug.
func (s *InMemory) FindBySlug(_ context.Context, slug string) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if tenantID, ok := s.slugIdx[slug]; ok {
		return s.tenants[tenantID].Clone(), nil
	}
	return nil, ErrNotFound
}

// FindByCustomDomain retrieves the tenant holding a custom domain, verified or not.
func (s *InMemory) FindByCustomDomain(_ context.Context, domain string) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if tenantID, ok := s.domainIdx[domain]; ok {
		return s.tenants[tenantID].Clone(), nil
	}
	return nil, ErrNotFound
}

// UpdateStatus sets the tenant status.
func (s *InMemory) UpdateStatus(_ context.Context, tenantID id.TenantID, status models.TenantStatus, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tenants[tenantID]
	if !ok {
		return ErrNotFound
	}
	t.Status = status
	t.UpdatedAt = now
	return nil
}

// ClaimDomain assigns domain to the tenant and resets verification.
// A domain held by another tenant yields sentinel.ErrAlreadyUsed.
func (s *InMemory) ClaimDomain(_ context.Context, tenantID id.TenantID, domain string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tenants[tenantID]
	if !ok {
		return ErrNotFound
	}
	if holder, taken := s.domainIdx[domain]; taken && holder != tenantID {
		return fmt.Errorf("custom domain must be unique: %w", sentinel.ErrAlreadyUsed)
	}
	if t.CustomDomain != "" {
		delete(s.domainIdx, t.CustomDomain)
	}
	t.AssignDomain(domain, now)
	s.domainIdx[domain] = tenantID
	return nil
}

// ClearDomain removes the tenant's custom domain and verification state.
func (s *InMemory) ClearDomain(_ context.Context, tenantID id.TenantID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tenants[tenantID]
	if !ok {
		return ErrNotFound
	}
	if t.CustomDomain != "" {
		delete(s.domainIdx, t.CustomDomain)
	}
	t.ClearDomain(now)
	return nil
}

// MarkDomainVerified sets domainVerified only while domain is still the tenant's
// custom domain. A changed domain yields sentinel.ErrInvalidState.
func (s *InMemory) MarkDomainVerified(_ context.Context, tenantID id.TenantID, domain string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tenants[tenantID]
	if !ok {
		return ErrNotFound
	}
	if err := t.MarkVerified(domain, now); err != nil {
		return fmt.Errorf("mark domain verified: %w", sentinel.ErrInvalidState)
	}
	return nil
}

// MarkDomainChecked records a background check of the tenant's custom domain.
func (s *InMemory) MarkDomainChecked(_ context.Context, tenantID id.TenantID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tenants[tenantID]
	if !ok {
		return ErrNotFound
	}
	t.MarkChecked(now)
	return nil
}

// ListPendingDomains returns active tenants with an unverified custom domain,
// never checked first, then least recently checked.
func (s *InMemory) ListPendingDomains(_ context.Context, limit int) ([]*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var pending []*models.Tenant
	for _, t := range s.tenants {
		if t.IsActive() && t.HasCustomDomain() && !t.DomainVerified {
			pending = append(pending, t.Clone())
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CheckedBefore(pending[j])
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}
