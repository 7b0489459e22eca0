package models

// ProviderOutcome is the per-host result of a provider registration attempt.
// Only OutcomeRegistered and OutcomeAlreadyRegistered mean the provider will
// serve the host.
type ProviderOutcome string

const (
	OutcomeRegistered        ProviderOutcome = "registered"
	OutcomeAlreadyRegistered ProviderOutcome = "already_registered"
	OutcomeInUseElsewhere    ProviderOutcome = "in_use_elsewhere"
	OutcomeFailed            ProviderOutcome = "failed"
	OutcomeSkipped           ProviderOutcome = "skipped"
	OutcomeRemoved           ProviderOutcome = "removed"
)

func (o ProviderOutcome) OK() bool {
	return o == OutcomeRegistered || o == OutcomeAlreadyRegistered || o == OutcomeRemoved
}

type AddDomainResult struct {
	Domain         string                     `json:"domain"`
	DNSConfig      DNSConfig                  `json:"dnsConfig"`
	ProviderStatus map[string]ProviderOutcome `json:"providerStatus"`
}

type RemoveDomainResult struct {
	RemovedDomain  string                     `json:"removedDomain"`
	ProviderStatus map[string]ProviderOutcome `json:"providerStatus,omitempty"`
}
