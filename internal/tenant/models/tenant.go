package models

import (
	"regexp"
	"strings"
	"time"

	id "whitelabel/pkg/domain"
	dErrors "whitelabel/pkg/domain-errors"
)

// ReservedSlugs can never name a tenant because they collide with platform
// hostnames under the platform domain.
var ReservedSlugs = map[string]struct{}{
	"www":   {},
	"app":   {},
	"api":   {},
	"admin": {},
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

type Tenant struct {
	ID               id.TenantID  `json:"id"`
	Slug             string       `json:"slug"`
	Name             string       `json:"name"`
	Status           TenantStatus `json:"status"`
	CustomDomain     string       `json:"custom_domain,omitempty"`
	DomainVerified   bool         `json:"domain_verified"`
	DomainVerifiedAt *time.Time   `json:"domain_verified_at,omitempty"`
	DomainCheckedAt  *time.Time   `json:"domain_checked_at,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

func (t *Tenant) HasCustomDomain() bool {
	return t.CustomDomain != ""
}

// Routable reports whether requests for the custom domain may be served as this tenant.
func (t *Tenant) Routable() bool {
	return t.IsActive() && t.HasCustomDomain() && t.DomainVerified
}

// Suspend transitions the tenant to suspended status.
// Returns an error if the tenant is already suspended.
func (t *Tenant) Suspend(now time.Time) error {
	if !t.IsActive() {
		return dErrors.New(dErrors.CodeInvariantViolation, "tenant is already suspended")
	}
	t.Status = TenantStatusSuspended
	t.UpdatedAt = now
	return nil
}

// Reactivate transitions the tenant to active status.
// Returns an error if the tenant is already active.
func (t *Tenant) Reactivate(now time.Time) error {
	if t.IsActive() {
		return dErrors.New(dErrors.CodeInvariantViolation, "tenant is already active")
	}
	t.Status = TenantStatusActive
	t.UpdatedAt = now
	return nil
}

// AssignDomain sets a new custom domain. The verified flag always resets.
func (t *Tenant) AssignDomain(domain string, now time.Time) {
	t.CustomDomain = domain
	t.DomainVerified = false
	t.DomainVerifiedAt = nil
	t.DomainCheckedAt = nil
	t.UpdatedAt = now
}

// MarkChecked records a background verification attempt. It leaves UpdatedAt alone.
func (t *Tenant) MarkChecked(now time.Time) {
	t.DomainCheckedAt = &now
}

// CheckedBefore orders tenants for re-verification: never checked first,
// then oldest check, then least recently updated.
func (t *Tenant) CheckedBefore(other *Tenant) bool {
	switch {
	case t.DomainCheckedAt == nil && other.DomainCheckedAt != nil:
		return true
	case t.DomainCheckedAt != nil && other.DomainCheckedAt == nil:
		return false
	case t.DomainCheckedAt != nil && !t.DomainCheckedAt.Equal(*other.DomainCheckedAt):
		return t.DomainCheckedAt.Before(*other.DomainCheckedAt)
	}
	return t.UpdatedAt.Before(other.UpdatedAt)
}

// ClearDomain removes the custom domain and its verification state.
func (t *Tenant) ClearDomain(now time.Time) {
	t.AssignDomain("", now)
}

// MarkVerified flips domainVerified for the domain currently assigned.
// It refuses when the tenant has since moved to a different domain.
func (t *Tenant) MarkVerified(domain string, now time.Time) error {
	if !t.HasCustomDomain() || t.CustomDomain != domain {
		return dErrors.New(dErrors.CodeInvariantViolation, "custom domain changed before verification completed")
	}
	if t.DomainVerified {
		return nil
	}
	t.DomainVerified = true
	t.DomainVerifiedAt = &now
	t.UpdatedAt = now
	return nil
}

// Clone returns a copy safe to hand out of a store.
func (t *Tenant) Clone() *Tenant {
	if t == nil {
		return nil
	}
	c := *t
	if t.DomainVerifiedAt != nil {
		at := *t.DomainVerifiedAt
		c.DomainVerifiedAt = &at
	}
	if t.DomainCheckedAt != nil {
		at := *t.DomainCheckedAt
		c.DomainCheckedAt = &at
	}
	return &c
}

// NormalizeSlug lowercases and trims a slug.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// ValidateSlug enforces the DNS-label grammar slugs must satisfy to form <slug>.<platform-domain>.
func ValidateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return dErrors.New(dErrors.CodeValidation, "slug must be 1-63 lowercase letters, digits or hyphens")
	}
	if _, reserved := ReservedSlugs[slug]; reserved {
		return dErrors.New(dErrors.CodeValidation, "slug is reserved")
	}
	return nil
}

func NewTenant(tenantID id.TenantID, slug, name string, now time.Time) (*Tenant, error) {
	slug = NormalizeSlug(slug)
	name = strings.TrimSpace(name)
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "tenant name cannot be empty")
	}
	if len(name) > 128 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "tenant name must be 128 characters or less")
	}
	return &Tenant{
		ID:        tenantID,
		Slug:      slug,
		Name:      name,
		Status:    TenantStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
