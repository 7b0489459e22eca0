package models

type VerificationState string

const (
	StateUnconfigured VerificationState = "unconfigured"
	StatePendingDNS   VerificationState = "pending_dns"
	StateDNSObserved  VerificationState = "dns_observed"
	StateVerified     VerificationState = "verified"
)

const (
	MessageVerified    = "Domain verified. Requests to the domain are now routed to your site."
	MessageDNSObserved = "DNS records detected. SSL certificate is being provisioned; check again shortly."
	MessagePendingDNS  = "DNS records not yet detected. Add the records below; propagation can take up to 48 hours."
)

// VerifyResult is the outcome of one verification attempt. Inconclusive
// attempts are results, not errors.
type VerifyResult struct {
	Domain          string            `json:"domain"`
	State           VerificationState `json:"state"`
	Verified        bool              `json:"verified"`
	DNSConfigured   *bool             `json:"dnsConfigured,omitempty"`
	ExpectedARecord string            `json:"expectedARecord,omitempty"`
	ExpectedCNAME   string            `json:"expectedCname,omitempty"`
	Message         string            `json:"message"`
}

func VerifiedResult(domain string) *VerifyResult {
	configured := true
	return &VerifyResult{
		Domain:        domain,
		State:         StateVerified,
		Verified:      true,
		DNSConfigured: &configured,
		Message:       MessageVerified,
	}
}

func DNSObservedResult(domain string, cfg DNSConfig) *VerifyResult {
	configured := true
	return &VerifyResult{
		Domain:          domain,
		State:           StateDNSObserved,
		DNSConfigured:   &configured,
		ExpectedARecord: cfg.ARecord,
		ExpectedCNAME:   cfg.CNAMERecord,
		Message:         MessageDNSObserved,
	}
}

func PendingDNSResult(domain string, cfg DNSConfig) *VerifyResult {
	configured := false
	return &VerifyResult{
		Domain:          domain,
		State:           StatePendingDNS,
		DNSConfigured:   &configured,
		ExpectedARecord: cfg.ARecord,
		ExpectedCNAME:   cfg.CNAMERecord,
		Message:         MessagePendingDNS,
	}
}
