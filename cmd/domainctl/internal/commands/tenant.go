package commands

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	tenanthandler "whitelabel/internal/tenant/handler"
)

type TenantCmd struct {
	Create     TenantCreateCmd     `cmd:"" help:"Create a tenant"`
	Get        TenantGetCmd        `cmd:"" help:"Show a tenant and its domain state"`
	Suspend    TenantSuspendCmd    `cmd:"" help:"Suspend a tenant; it stops being routed"`
	Reactivate TenantReactivateCmd `cmd:"" help:"Reactivate a suspended tenant"`
}

type TenantCreateCmd struct {
	Slug string `arg:"" help:"URL-safe tenant slug"`
	Name string `arg:"" help:"Display name"`
}

func (c *TenantCreateCmd) Run(ctx context.Context, globals *Globals) error {
	var tenant tenanthandler.TenantResponse
	body := tenanthandler.CreateTenantRequest{Slug: c.Slug, Name: c.Name}
	if err := globals.call(ctx, http.MethodPost, "/admin/tenants", body, &tenant); err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}
	return globals.print(tenant)
}

type TenantGetCmd struct {
	TenantID string `arg:"" help:"Tenant ID"`
}

func (c *TenantGetCmd) Run(ctx context.Context, globals *Globals) error {
	var tenant tenanthandler.TenantResponse
	if err := globals.call(ctx, http.MethodGet, "/admin/tenants/"+url.PathEscape(c.TenantID), nil, &tenant); err != nil {
		return fmt.Errorf("failed to get tenant: %w", err)
	}
	return globals.print(tenant)
}

type TenantSuspendCmd struct {
	TenantID string `arg:"" help:"Tenant ID"`
}

func (c *TenantSuspendCmd) Run(ctx context.Context, globals *Globals) error {
	return transitionTenant(ctx, globals, c.TenantID, "suspend")
}

type TenantReactivateCmd struct {
	TenantID string `arg:"" help:"Tenant ID"`
}

func (c *TenantReactivateCmd) Run(ctx context.Context, globals *Globals) error {
	return transitionTenant(ctx, globals, c.TenantID, "reactivate")
}

func transitionTenant(ctx context.Context, globals *Globals, tenantID, action string) error {
	var tenant tenanthandler.TenantResponse
	path := "/admin/tenants/" + url.PathEscape(tenantID) + "/" + action
	if err := globals.call(ctx, http.MethodPost, path, nil, &tenant); err != nil {
		return fmt.Errorf("failed to %s tenant: %w", action, err)
	}
	return globals.print(tenant)
}
