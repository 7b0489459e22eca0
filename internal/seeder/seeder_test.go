package seeder

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whitelabel/internal/tenant/models"
	tenantstore "whitelabel/internal/tenant/store/tenant"
)

const seedYAML = `
tenants:
  - id: 5f0c7b1e-8f43-4c57-9d36-1d2b6a0f9a11
    slug: acme
    name: Acme Agency
    custom_domain: WWW.Acme.Biz/
    domain_verified: true
  - slug: globex
    name: Globex
    custom_domain: globex.io
  - slug: initech
    name: Initech
    status: suspended
`

func newSeeder(store TenantStore) *Seeder {
	return New(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := tenantstore.NewInMemory()

	n, err := newSeeder(store).Seed(ctx, strings.NewReader(seedYAML))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	acme, err := store.FindBySlug(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "5f0c7b1e-8f43-4c57-9d36-1d2b6a0f9a11", acme.ID.String())
	assert.Equal(t, "acme.biz", acme.CustomDomain)
	assert.True(t, acme.DomainVerified)
	assert.NotNil(t, acme.DomainVerifiedAt)

	globex, err := store.FindByCustomDomain(ctx, "globex.io")
	require.NoError(t, err)
	assert.False(t, globex.DomainVerified)

	initech, err := store.FindBySlug(ctx, "initech")
	require.NoError(t, err)
	assert.Equal(t, models.TenantStatusSuspended, initech.Status)
}

func TestSeedRejectsInvalidEntries(t *testing.T) {
	cases := map[string]string{
		"bad status":          "tenants:\n  - slug: a1\n    name: A\n    status: paused\n",
		"verified no domain":  "tenants:\n  - slug: a2\n    name: A\n    domain_verified: true\n",
		"bad domain":          "tenants:\n  - slug: a3\n    name: A\n    custom_domain: not_a_domain\n",
		"reserved slug":       "tenants:\n  - slug: www\n    name: A\n",
		"duplicate slug":      "tenants:\n  - slug: dup\n    name: A\n  - slug: dup\n    name: B\n",
		"malformed yaml":      "tenants: [",
		"invalid tenant uuid": "tenants:\n  - id: nope\n    slug: a4\n    name: A\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := newSeeder(tenantstore.NewInMemory()).Seed(context.Background(), strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestSeedEmptyDocument(t *testing.T) {
	n, err := newSeeder(tenantstore.NewInMemory()).Seed(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tenants.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	n, err := newSeeder(tenantstore.NewInMemory()).SeedFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = newSeeder(tenantstore.NewInMemory()).SeedFile(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
