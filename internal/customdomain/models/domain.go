package models

import (
	"regexp"
	"strings"

	dErrors "whitelabel/pkg/domain-errors"
)

// MaxDomainLength is the DNS limit on a presentation-format name.
const MaxDomainLength = 253

var domainPattern = regexp.MustCompile(`^([a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?\.)+([a-z]{2,63}|xn--[a-z0-9]([a-z0-9-]{0,57}[a-z0-9])?)$`)

// NormalizeDomain reduces user input such as "https://WWW.Acme.Biz/path" to
// the canonical apex form "acme.biz". Passes repeat until nothing changes,
// so whitespace exposed by stripping a scheme or www is removed too.
func NormalizeDomain(raw string) string {
	d := raw
	for {
		next := normalizeOnce(d)
		if next == d {
			return d
		}
		d = next
	}
}

func normalizeOnce(d string) string {
	d = strings.ToLower(strings.TrimSpace(d))
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	d = strings.TrimRight(d, "/.")
	for strings.HasPrefix(d, "www.") {
		d = strings.TrimPrefix(d, "www.")
	}
	return strings.TrimSpace(d)
}

// ValidateDomain checks an already-normalized domain. Names under one of the
// platform domains are rejected since those hosts route by slug.
func ValidateDomain(domain string, platformDomains []string) error {
	if domain == "" || len(domain) > MaxDomainLength || !domainPattern.MatchString(domain) {
		return dErrors.New(dErrors.CodeInvalidDomainFormat, "invalid domain format")
	}
	for _, platform := range platformDomains {
		platform = strings.ToLower(platform)
		if domain == platform || strings.HasSuffix(domain, "."+platform) {
			return dErrors.New(dErrors.CodeInvalidDomainFormat, "platform domains cannot be attached as custom domains")
		}
	}
	return nil
}

// WWWVariant returns the www-prefixed host registered alongside the apex.
func WWWVariant(domain string) string {
	return "www." + domain
}
