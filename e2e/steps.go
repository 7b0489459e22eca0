//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/cucumber/godog"
)

// RegisterSteps registers all step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Background steps
	ctx.Step(`^the whitelabel service is running$`, tc.serviceIsRunning)
	ctx.Step(`^a tenant "([^"]*)" named "([^"]*)" exists$`, tc.tenantExists)

	// Domain lifecycle steps
	ctx.Step(`^tenant "([^"]*)" adds the custom domain "([^"]*)"$`, tc.addDomain)
	ctx.Step(`^tenant "([^"]*)" adds the custom domain "([^"]*)" written as "([^"]*)"$`, tc.addDomainWrittenAs)
	ctx.Step(`^tenant "([^"]*)" adds the raw domain "([^"]*)"$`, tc.addRawDomain)
	ctx.Step(`^tenant "([^"]*)" removes its custom domain$`, tc.removeDomain)
	ctx.Step(`^tenant "([^"]*)" verifies its custom domain$`, tc.verifyDomain)
	ctx.Step(`^the provider confirms the domain "([^"]*)"$`, tc.providerConfirms)
	ctx.Step(`^tenant "([^"]*)" is suspended$`, tc.suspendTenant)
	ctx.Step(`^I request the DNS config for "([^"]*)"$`, tc.requestDNSConfig)

	// Routing steps
	ctx.Step(`^I request "([^"]*)" on host "([^"]*)"$`, tc.requestOnHost)
	ctx.Step(`^I request "([^"]*)" on the subdomain of tenant "([^"]*)"$`, tc.requestOnSubdomain)

	// Assertion steps
	ctx.Step(`^the response status should be (\d+)$`, tc.responseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, tc.responseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should equal "([^"]*)"$`, tc.responseFieldShouldEqual)
	ctx.Step(`^the response field "([^"]*)" should be (true|false)$`, tc.responseFieldShouldBeBool)
}

func (tc *TestContext) serviceIsRunning(ctx context.Context) error {
	if err := tc.GET("/health/live", nil); err != nil {
		return err
	}
	return tc.responseStatusShouldBe(ctx, http.StatusOK)
}

func (tc *TestContext) tenantExists(ctx context.Context, name, displayName string) error {
	if err := tc.POST("/admin/tenants", map[string]string{"slug": tc.Slug(name), "name": displayName}); err != nil {
		return err
	}
	if err := tc.responseStatusShouldBe(ctx, http.StatusCreated); err != nil {
		return err
	}
	id, err := tc.GetResponseField("id")
	if err != nil {
		return err
	}
	tc.tenants[name] = fmt.Sprint(id)
	return nil
}

func (tc *TestContext) tenantPath(name, suffix string) (string, error) {
	id, ok := tc.tenants[name]
	if !ok {
		return "", fmt.Errorf("unknown tenant %q", name)
	}
	return "/tenants/" + id + "/domain" + suffix, nil
}

func (tc *TestContext) addDomain(ctx context.Context, tenant, domain string) error {
	return tc.addRawDomain(ctx, tenant, tc.Domain(domain))
}

func (tc *TestContext) addDomainWrittenAs(ctx context.Context, tenant, domain, format string) error {
	return tc.addRawDomain(ctx, tenant, fmt.Sprintf(format, tc.Domain(domain)))
}

func (tc *TestContext) addRawDomain(_ context.Context, tenant, raw string) error {
	path, err := tc.tenantPath(tenant, "")
	if err != nil {
		return err
	}
	return tc.POST(path, map[string]string{"domain": raw})
}

func (tc *TestContext) removeDomain(_ context.Context, tenant string) error {
	path, err := tc.tenantPath(tenant, "")
	if err != nil {
		return err
	}
	return tc.DELETE(path)
}

func (tc *TestContext) verifyDomain(_ context.Context, tenant string) error {
	path, err := tc.tenantPath(tenant, "/verify")
	if err != nil {
		return err
	}
	return tc.POST(path, nil)
}

func (tc *TestContext) providerConfirms(ctx context.Context, domain string) error {
	u := tc.ProviderURL + "/_mock/domains/" + url.PathEscape(tc.Domain(domain)) + "/verify"
	if err := tc.Do(http.MethodPost, u, "", nil, nil); err != nil {
		return err
	}
	return tc.responseStatusShouldBe(ctx, http.StatusOK)
}

func (tc *TestContext) suspendTenant(ctx context.Context, tenant string) error {
	id, ok := tc.tenants[tenant]
	if !ok {
		return fmt.Errorf("unknown tenant %q", tenant)
	}
	if err := tc.POST("/admin/tenants/"+id+"/suspend", nil); err != nil {
		return err
	}
	return tc.responseStatusShouldBe(ctx, http.StatusOK)
}

func (tc *TestContext) requestDNSConfig(_ context.Context, domain string) error {
	return tc.GET("/domain/dns-config?domain="+url.QueryEscape(tc.Domain(domain)), nil)
}

func (tc *TestContext) requestOnHost(_ context.Context, path, host string) error {
	return tc.GETWithHost(tc.Domain(host), path)
}

func (tc *TestContext) requestOnSubdomain(_ context.Context, path, tenant string) error {
	return tc.GETWithHost(tc.Slug(tenant)+"."+tc.PlatformDomain, path)
}

func (tc *TestContext) responseStatusShouldBe(_ context.Context, expected int) error {
	if actual := tc.GetLastResponseStatus(); actual != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, actual, string(tc.LastResponseBody))
	}
	return nil
}

func (tc *TestContext) responseShouldContain(_ context.Context, text string) error {
	if !tc.ResponseContains(tc.expand(text)) {
		return fmt.Errorf("response does not contain %q: %s", text, string(tc.LastResponseBody))
	}
	return nil
}

func (tc *TestContext) responseFieldShouldEqual(_ context.Context, field, expected string) error {
	value, err := tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if actual, want := fmt.Sprint(value), tc.expand(expected); actual != want {
		return fmt.Errorf("expected %s to be %q, got %q", field, want, actual)
	}
	return nil
}

func (tc *TestContext) responseFieldShouldBeBool(ctx context.Context, field, expected string) error {
	return tc.responseFieldShouldEqual(ctx, field, expected)
}

var placeholder = regexp.MustCompile(`<(slug|domain):([^>]+)>`)

// expand substitutes <slug:name> and <domain:name> with scenario-unique values.
func (tc *TestContext) expand(s string) string {
	return placeholder.ReplaceAllStringFunc(s, func(m string) string {
		kind, name, _ := strings.Cut(strings.Trim(m, "<>"), ":")
		if kind == "slug" {
			return tc.Slug(name)
		}
		return tc.Domain(name)
	})
}
