package handler

import (
	"time"

	"whitelabel/internal/tenant/models"
)

type TenantResponse struct {
	ID               string              `json:"id"`
	Slug             string              `json:"slug"`
	Name             string              `json:"name"`
	Status           models.TenantStatus `json:"status"`
	CustomDomain     *string             `json:"custom_domain"`
	DomainVerified   bool                `json:"domain_verified"`
	DomainVerifiedAt *time.Time          `json:"domain_verified_at,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

func toTenantResponse(t *models.Tenant) *TenantResponse {
	resp := &TenantResponse{
		ID:               t.ID.String(),
		Slug:             t.Slug,
		Name:             t.Name,
		Status:           t.Status,
		DomainVerified:   t.DomainVerified,
		DomainVerifiedAt: t.DomainVerifiedAt,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
	if t.HasCustomDomain() {
		domain := t.CustomDomain
		resp.CustomDomain = &domain
	}
	return resp
}
