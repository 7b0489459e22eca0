package commands

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"whitelabel/internal/customdomain/models"
)

type DomainCmd struct {
	Add    DomainAddCmd    `cmd:"" help:"Attach a custom domain to a tenant"`
	Remove DomainRemoveCmd `cmd:"" help:"Detach the tenant's custom domain"`
	Verify DomainVerifyCmd `cmd:"" help:"Check whether the tenant's custom domain is live"`
}

type DomainAddCmd struct {
	TenantID string `arg:"" help:"Tenant ID"`
	Domain   string `arg:"" help:"Domain to attach, e.g. acme.biz"`
}

func (c *DomainAddCmd) Run(ctx context.Context, globals *Globals) error {
	var result models.AddDomainResult
	err := globals.call(ctx, http.MethodPost, tenantDomainPath(c.TenantID), map[string]string{"domain": c.Domain}, &result)
	if err != nil {
		return fmt.Errorf("failed to add domain: %w", err)
	}
	return globals.print(result)
}

type DomainRemoveCmd struct {
	TenantID string `arg:"" help:"Tenant ID"`
}

func (c *DomainRemoveCmd) Run(ctx context.Context, globals *Globals) error {
	var result models.RemoveDomainResult
	if err := globals.call(ctx, http.MethodDelete, tenantDomainPath(c.TenantID), nil, &result); err != nil {
		return fmt.Errorf("failed to remove domain: %w", err)
	}
	return globals.print(result)
}

type DomainVerifyCmd struct {
	TenantID string        `arg:"" help:"Tenant ID"`
	Wait     bool          `help:"Poll until the domain is verified or the timeout elapses"`
	Interval time.Duration `help:"Polling interval" default:"10s"`
	Timeout  time.Duration `help:"Give up waiting after this long" default:"10m"`
}

func (c *DomainVerifyCmd) Run(ctx context.Context, globals *Globals) error {
	if !c.Wait {
		result, err := c.verify(ctx, globals)
		if err != nil {
			return err
		}
		return globals.print(result)
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()
	ticker := time.NewTicker(c.Interval)
	defer ticker.Stop()

	var last *models.VerifyResult
	for {
		result, err := c.verify(ctx, globals)
		if err != nil {
			if last != nil && ctx.Err() != nil {
				return c.timedOut(last)
			}
			return err
		}
		if result.Verified {
			return globals.print(result)
		}
		last = result
		fmt.Fprintf(globals.out(), "%s: %s\n", result.State, result.Message)

		select {
		case <-ctx.Done():
			return c.timedOut(last)
		case <-ticker.C:
		}
	}
}

func (c *DomainVerifyCmd) timedOut(last *models.VerifyResult) error {
	return fmt.Errorf("domain %s not verified after %s (last state %s)", last.Domain, c.Timeout, last.State)
}

func (c *DomainVerifyCmd) verify(ctx context.Context, globals *Globals) (*models.VerifyResult, error) {
	var result models.VerifyResult
	if err := globals.call(ctx, http.MethodPost, tenantDomainPath(c.TenantID)+"/verify", nil, &result); err != nil {
		return nil, fmt.Errorf("failed to verify domain: %w", err)
	}
	return &result, nil
}

type DNSConfigCmd struct {
	Domain string `arg:"" help:"Domain to look up"`
}

func (c *DNSConfigCmd) Run(ctx context.Context, globals *Globals) error {
	var result models.DNSConfig
	path := "/domain/dns-config?domain=" + url.QueryEscape(c.Domain)
	if err := globals.call(ctx, http.MethodGet, path, nil, &result); err != nil {
		return fmt.Errorf("failed to get dns config: %w", err)
	}
	return globals.print(result)
}

func tenantDomainPath(tenantID string) string {
	return "/tenants/" + url.PathEscape(tenantID) + "/domain"
}
