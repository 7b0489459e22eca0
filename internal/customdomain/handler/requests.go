package handler

import (
	"strings"

	dErrors "whitelabel/pkg/domain-errors"
)

type AddDomainRequest struct {
	Domain string `json:"domain"`
}

func (r *AddDomainRequest) Normalize() {
	if r == nil {
		return
	}
	r.Domain = strings.TrimSpace(r.Domain)
}

// Validate checks presence only; the service normalizes and validates format.
func (r *AddDomainRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Domain == "" {
		return dErrors.New(dErrors.CodeInvalidDomainFormat, "domain is required")
	}
	return nil
}
