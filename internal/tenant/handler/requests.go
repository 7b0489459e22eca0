package handler

import (
	"strings"

	dErrors "whitelabel/pkg/domain-errors"
)

type CreateTenantRequest struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

func (r *CreateTenantRequest) Normalize() {
	if r == nil {
		return
	}
	r.Slug = strings.ToLower(strings.TrimSpace(r.Slug))
	r.Name = strings.TrimSpace(r.Name)
}

// Validate checks presence only; slug grammar is enforced by the model.
func (r *CreateTenantRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Slug == "" {
		return dErrors.New(dErrors.CodeValidation, "slug is required")
	}
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	return nil
}
