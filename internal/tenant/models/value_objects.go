package models

type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
)

func (s TenantStatus) IsValid() bool {
	return s == TenantStatusActive || s == TenantStatusSuspended
}
