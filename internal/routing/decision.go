// Package routing classifies every inbound request by hostname and attaches
// the tenant it belongs to before the application sees it.
package routing

import (
	"context"
	"net"
	"strings"

	"whitelabel/internal/tenant/models"
	dErrors "whitelabel/pkg/domain-errors"
	strs "whitelabel/pkg/platform/strings"
)

type Target string

const (
	TargetPlatform     Target = "platform"
	TargetTenant       Target = "tenant"
	TargetUnrecognized Target = "unrecognized"
)

// SitesPrefix is where tenant-facing pages live in the application.
const SitesPrefix = "/_sites"

// DefaultPassThroughPrefixes are application paths served as-is on tenant hosts.
var DefaultPassThroughPrefixes = []string{"/dashboard", "/api", "/settings", "/_next", "/static", "/favicon.ico"}

// TenantResolver returns only routable tenants. Any error other than
// CodeNotFound is treated as a directory outage.
type TenantResolver interface {
	ResolveBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	ResolveByCustomDomain(ctx context.Context, host string) (*models.Tenant, error)
}

type Decision struct {
	Target Target
	Tenant *models.Tenant
	Host   string
	Path   string
}

// Classifier maps a hostname to a Decision. It keeps no cache: every request
// consults the directory.
type Classifier struct {
	resolver        TenantResolver
	platformDomains []string
	passThrough     []string
}

func NewClassifier(resolver TenantResolver, platformDomains, passThrough []string) *Classifier {
	if passThrough == nil {
		passThrough = DefaultPassThroughPrefixes
	}
	return &Classifier{resolver: resolver, platformDomains: strs.NormalizeHosts(platformDomains), passThrough: passThrough}
}

// Classify decides where a request for host and path goes. A directory
// failure returns a Platform decision together with the error, so callers
// can fail open and still report it.
func (c *Classifier) Classify(ctx context.Context, host, path string) (Decision, error) {
	host = NormalizeHost(host)
	platform := Decision{Target: TargetPlatform, Host: host, Path: path}

	for _, pd := range c.platformDomains {
		if host == pd {
			return platform, nil
		}
	}

	if label, ok := c.platformLabel(host); ok {
		if label == "www" {
			return platform, nil
		}
		tenant, err := c.resolver.ResolveBySlug(ctx, label)
		return c.tenantDecision(host, path, tenant, err)
	}

	tenant, err := c.resolver.ResolveByCustomDomain(ctx, host)
	return c.tenantDecision(host, path, tenant, err)
}

func (c *Classifier) tenantDecision(host, path string, tenant *models.Tenant, err error) (Decision, error) {
	switch {
	case err == nil:
		return Decision{Target: TargetTenant, Tenant: tenant, Host: host, Path: c.rewrite(tenant.Slug, path)}, nil
	case dErrors.HasCode(err, dErrors.CodeNotFound):
		return Decision{Target: TargetUnrecognized, Host: host, Path: path}, nil
	default:
		return Decision{Target: TargetPlatform, Host: host, Path: path}, err
	}
}

// IsServiceHost reports whether host may reach the service's own endpoints
// (health, metrics, JSON API): IP literals, localhost, a platform domain or a
// reserved label in front of one. Tenant subdomains and custom domains only
// ever reach the application. No directory lookup is made.
func (c *Classifier) IsServiceHost(host string) bool {
	host = NormalizeHost(host)
	if host == "localhost" || net.ParseIP(strings.Trim(host, "[]")) != nil {
		return true
	}
	for _, pd := range c.platformDomains {
		if host == pd {
			return true
		}
	}
	label, ok := c.platformLabel(host)
	if !ok {
		return false
	}
	_, reserved := models.ReservedSlugs[label]
	return reserved
}

// platformLabel reports the single label in front of a platform domain.
func (c *Classifier) platformLabel(host string) (string, bool) {
	for _, pd := range c.platformDomains {
		label, ok := strings.CutSuffix(host, "."+pd)
		if ok && label != "" && !strings.Contains(label, ".") {
			return label, true
		}
	}
	return "", false
}

func (c *Classifier) rewrite(slug, path string) string {
	if path == "" {
		path = "/"
	}
	for _, prefix := range c.passThrough {
		if path == prefix || strings.HasPrefix(path, strings.TrimSuffix(prefix, "/")+"/") {
			return path
		}
	}
	return SitesPrefix + "/" + slug + path
}

// NormalizeHost lowercases host and drops any port and trailing dot.
func NormalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.TrimSuffix(host, ".")
}
