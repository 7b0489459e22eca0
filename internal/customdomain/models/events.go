package models

import "time"

type EventType string

const (
	EventDomainAttached EventType = "domain.attached"
	EventDomainDetached EventType = "domain.detached"
	EventDomainVerified EventType = "domain.verified"
)

// DomainEvent is published after a custom-domain state change is persisted.
type DomainEvent struct {
	Type       EventType `json:"type"`
	TenantID   string    `json:"tenant_id"`
	Domain     string    `json:"domain"`
	OccurredAt time.Time `json:"occurred_at"`
	RequestID  string    `json:"request_id,omitempty"`
}
