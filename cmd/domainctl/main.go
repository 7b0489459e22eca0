package main

import (
	"context"
	"os"

	"github.com/alecthomas/kong"

	"whitelabel/cmd/domainctl/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Domain    commands.DomainCmd    `cmd:"" help:"Manage a tenant's custom domain"`
		DNSConfig commands.DNSConfigCmd `cmd:"" name:"dns-config" help:"Show the DNS records a domain should point at"`
		Tenant    commands.TenantCmd    `cmd:"" help:"Administer tenants"`

		Server     string `help:"Whitelabel API base URL" default:"http://localhost:8080" env:"WHITELABEL_URL"`
		AdminToken string `help:"Operator token for tenant administration" env:"ADMIN_API_TOKEN"`
		Debug      bool   `help:"Enable debug mode."`
		Version    kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Description("Operate white-label tenants and their custom domains."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{
		Server:     cli.Server,
		AdminToken: cli.AdminToken,
		Debug:      cli.Debug,
		Version:    version,
		Out:        os.Stdout,
	})
	cmd.FatalIfErrorf(err)
}
