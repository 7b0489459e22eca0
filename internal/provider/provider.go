// Package provider holds the provider-neutral types shared by edge-hosting
// provider clients and their callers.
package provider

// Registration is the successful outcome of adding a host to the project.
type Registration string

const (
	RegistrationCreated  Registration = "created"
	RegistrationExisting Registration = "existing"
)

// Ranked is one entry of a provider-ranked recommendation list. Rank 1 is
// the preferred value.
type Ranked[T any] struct {
	Rank  int `json:"rank"`
	Value T   `json:"value"`
}

// SelectRanked returns the rank-1 entry, else the first entry. ok is false
// for an empty list.
func SelectRanked[T any](entries []Ranked[T]) (value T, ok bool) {
	if len(entries) == 0 {
		return value, false
	}
	for _, e := range entries {
		if e.Rank == 1 {
			return e.Value, true
		}
	}
	return entries[0].Value, true
}

// DomainConfig is the provider's recommended DNS configuration for a domain.
type DomainConfig struct {
	RecommendedIPv4  []Ranked[[]string] `json:"recommendedIPv4"`
	RecommendedCNAME []Ranked[string]   `json:"recommendedCNAME"`
	Misconfigured    bool               `json:"misconfigured"`
}

// PreferredIPv4 returns the first address of the selected IPv4 entry.
func (c *DomainConfig) PreferredIPv4() (string, bool) {
	ips, ok := SelectRanked(c.RecommendedIPv4)
	if !ok || len(ips) == 0 {
		return "", false
	}
	return ips[0], true
}

func (c *DomainConfig) PreferredCNAME() (string, bool) {
	cname, ok := SelectRanked(c.RecommendedCNAME)
	if !ok || cname == "" {
		return "", false
	}
	return cname, true
}

// AllIPv4 flattens every recommended address, in list order.
func (c *DomainConfig) AllIPv4() []string {
	var out []string
	for _, e := range c.RecommendedIPv4 {
		out = append(out, e.Value...)
	}
	return out
}

// ProjectDomain is a host attached to our provider project.
type ProjectDomain struct {
	Name     string `json:"name"`
	Verified bool   `json:"verified"`
}
