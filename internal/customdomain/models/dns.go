package models

// Provider defaults used whenever recommended values cannot be fetched.
const (
	DefaultARecord      = "76.76.21.21"
	DefaultCNAMERecord  = "cname.vercel-dns.com"
	ProviderCNAMESuffix = "vercel-dns.com"
)

type DNSSource string

const (
	DNSSourceProvider DNSSource = "provider"
	DNSSourceFallback DNSSource = "fallback"
)

// DNSConfig is the pair of records a tenant must publish for its domain.
type DNSConfig struct {
	ARecord     string    `json:"aRecord"`
	CNAMERecord string    `json:"cnameRecord"`
	Source      DNSSource `json:"source"`
}

func DefaultDNSConfig() DNSConfig {
	return DNSConfig{
		ARecord:     DefaultARecord,
		CNAMERecord: DefaultCNAMERecord,
		Source:      DNSSourceFallback,
	}
}
