package routing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whitelabel/internal/tenant/models"
	"whitelabel/internal/tenant/service"
	tenantstore "whitelabel/internal/tenant/store/tenant"
	id "whitelabel/pkg/domain"
	"whitelabel/pkg/testutil"
)

type fixture struct {
	acme       *models.Tenant
	globex     *models.Tenant
	suspended  *models.Tenant
	classifier *Classifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := tenantstore.NewInMemory()
	f := &fixture{
		acme:      testutil.NewTenantBuilder().WithSlug("acme").WithName("Acme Agency").WithDomain("acme.biz").Verified().Build(),
		globex:    testutil.NewTenantBuilder().WithSlug("globex").WithName("Globex").WithDomain("globex.io").Build(),
		suspended: testutil.NewTenantBuilder().WithSlug("initech").WithDomain("initech.com").Verified().WithStatus(models.TenantStatusSuspended).Build(),
	}
	for _, tenant := range []*models.Tenant{f.acme, f.globex, f.suspended} {
		require.NoError(t, store.Create(ctx, tenant))
	}
	f.classifier = NewClassifier(service.NewTenantService(store), []string{"platform.test", "Platform.Dev."}, nil)
	return f
}

func TestClassify(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		host   string
		path   string
		target Target
		slug   string
		want   string
	}{
		{"platform apex", "platform.test", "/pricing", TargetPlatform, "", "/pricing"},
		{"platform apex with port and case", "Platform.Test:8443", "/", TargetPlatform, "", "/"},
		{"second platform domain", "platform.dev", "/", TargetPlatform, "", "/"},
		{"www under platform", "www.platform.test", "/about", TargetPlatform, "", "/about"},
		{"tenant subdomain", "acme.platform.test", "/pricing", TargetTenant, "acme", "/_sites/acme/pricing"},
		{"unverified tenant still routes by slug", "globex.platform.test", "/", TargetTenant, "globex", "/_sites/globex/"},
		{"unknown slug", "nobody.platform.test", "/", TargetUnrecognized, "", "/"},
		{"suspended slug", "initech.platform.test", "/", TargetUnrecognized, "", "/"},
		{"nested label is not a slug", "a.acme.platform.test", "/", TargetUnrecognized, "", "/"},
		{"verified custom domain", "acme.biz", "/pricing", TargetTenant, "acme", "/_sites/acme/pricing"},
		{"verified custom domain www", "www.acme.biz", "/", TargetTenant, "acme", "/_sites/acme/"},
		{"custom domain trailing dot", "acme.biz.", "/", TargetTenant, "acme", "/_sites/acme/"},
		{"unverified custom domain", "globex.io", "/", TargetUnrecognized, "", "/"},
		{"suspended custom domain", "initech.com", "/", TargetUnrecognized, "", "/"},
		{"unknown host", "example.org", "/", TargetUnrecognized, "", "/"},
		{"pass-through dashboard", "acme.biz", "/dashboard/settings", TargetTenant, "acme", "/dashboard/settings"},
		{"pass-through api", "acme.platform.test", "/api", TargetTenant, "acme", "/api"},
		{"pass-through favicon", "acme.biz", "/favicon.ico", TargetTenant, "acme", "/favicon.ico"},
		{"prefix must match a segment", "acme.biz", "/apiary", TargetTenant, "acme", "/_sites/acme/apiary"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := f.classifier.Classify(context.Background(), tt.host, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.target, d.Target)
			assert.Equal(t, tt.want, d.Path)
			if tt.slug != "" {
				require.NotNil(t, d.Tenant)
				assert.Equal(t, tt.slug, d.Tenant.Slug)
			} else {
				assert.Nil(t, d.Tenant)
			}
		})
	}
}

var errDirectoryDown = errors.New("connection refused")

type unavailableStore struct{}

func (unavailableStore) Create(context.Context, *models.Tenant) error { return errDirectoryDown }
func (unavailableStore) FindByID(context.Context, id.TenantID) (*models.Tenant, error) {
	return nil, errDirectoryDown
}
func (unavailableStore) FindBySlug(context.Context, string) (*models.Tenant, error) {
	return nil, errDirectoryDown
}
func (unavailableStore) FindByCustomDomain(context.Context, string) (*models.Tenant, error) {
	return nil, errDirectoryDown
}
func (unavailableStore) UpdateStatus(context.Context, id.TenantID, models.TenantStatus, time.Time) error {
	return errDirectoryDown
}

func TestClassifyFailsOpen(t *testing.T) {
	c := NewClassifier(service.NewTenantService(unavailableStore{}), []string{"platform.test"}, nil)

	d, err := c.Classify(context.Background(), "acme.biz", "/pricing")
	require.Error(t, err)
	assert.Equal(t, TargetPlatform, d.Target)
	assert.Equal(t, "/pricing", d.Path)

	d, err = c.Classify(context.Background(), "acme.platform.test", "/")
	require.Error(t, err)
	assert.Equal(t, TargetPlatform, d.Target)
}

func TestIsServiceHost(t *testing.T) {
	c := NewClassifier(service.NewTenantService(unavailableStore{}), []string{"platform.test"}, nil)

	for _, host := range []string{"platform.test", "PLATFORM.test:8080", "app.platform.test", "www.platform.test", "localhost:8080", "10.0.0.7:8080", "[::1]:8080"} {
		assert.True(t, c.IsServiceHost(host), host)
	}
	for _, host := range []string{"acme.platform.test", "acme.biz", "www.acme.biz", "deep.acme.platform.test", ""} {
		assert.False(t, c.IsServiceHost(host), host)
	}
}

func TestNormalizeHost(t *testing.T) {
	assert.Equal(t, "acme.biz", NormalizeHost(" ACME.biz:443 "))
	assert.Equal(t, "acme.biz", NormalizeHost("acme.biz."))
	assert.Equal(t, "::1", NormalizeHost("[::1]:8080"))
}
