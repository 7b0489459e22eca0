// Package domain provides type-safe identifiers shared across modules.
package domain

import (
	"github.com/google/uuid"

	dErrors "whitelabel/pkg/domain-errors"
)

// TenantID identifies a tenant. Distinct from uuid.UUID so it cannot be
// confused with other identifiers at compile time.
type TenantID uuid.UUID

// NewTenantID returns a fresh random tenant identifier.
func NewTenantID() TenantID {
	return TenantID(uuid.New())
}

// ParseTenantID parses a tenant ID at a trust boundary (path params, CLI args).
func ParseTenantID(s string) (TenantID, error) {
	if s == "" {
		return TenantID{}, dErrors.New(dErrors.CodeInvalidInput, "tenant ID cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return TenantID{}, dErrors.New(dErrors.CodeInvalidInput, "invalid tenant ID format")
	}
	return TenantID(parsed), nil
}

func (id TenantID) String() string { return uuid.UUID(id).String() }

// IsNil reports whether the identifier is the zero UUID.
func (id TenantID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
