package seeder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	cdmodels "whitelabel/internal/customdomain/models"
	"whitelabel/internal/tenant/models"
	id "whitelabel/pkg/domain"
)

// TenantStore defines the writes needed to seed the tenant directory.
type TenantStore interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	ClaimDomain(ctx context.Context, tenantID id.TenantID, domain string, now time.Time) error
	MarkDomainVerified(ctx context.Context, tenantID id.TenantID, domain string, now time.Time) error
}

// File is the on-disk seed layout.
type File struct {
	Tenants []TenantSeed `yaml:"tenants"`
}

type TenantSeed struct {
	ID             string `yaml:"id"`
	Slug           string `yaml:"slug"`
	Name           string `yaml:"name"`
	Status         string `yaml:"status"`
	CustomDomain   string `yaml:"custom_domain"`
	DomainVerified bool   `yaml:"domain_verified"`
}

// Seeder populates the in-memory tenant directory for local runs.
type Seeder struct {
	tenants TenantStore
	logger  *slog.Logger
	now     func() time.Time
}

func New(tenants TenantStore, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{tenants: tenants, logger: logger, now: time.Now}
}

// SeedFile loads tenants from a YAML file at path.
func (s *Seeder) SeedFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return s.Seed(ctx, f)
}

// Seed parses a YAML seed document and inserts every tenant it names.
// It stops at the first invalid entry.
func (s *Seeder) Seed(ctx context.Context, r io.Reader) (int, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, fmt.Errorf("decode seed file: %w", err)
	}

	for i, entry := range file.Tenants {
		if err := s.seedTenant(ctx, entry); err != nil {
			return i, fmt.Errorf("seed tenant %d (%s): %w", i, entry.Slug, err)
		}
	}

	s.logger.InfoContext(ctx, "tenant directory seeded", "tenants", len(file.Tenants))
	return len(file.Tenants), nil
}

func (s *Seeder) seedTenant(ctx context.Context, entry TenantSeed) error {
	now := s.now()

	tenantID := id.NewTenantID()
	if entry.ID != "" {
		parsed, err := id.ParseTenantID(entry.ID)
		if err != nil {
			return err
		}
		tenantID = parsed
	}

	tenant, err := models.NewTenant(tenantID, entry.Slug, entry.Name, now)
	if err != nil {
		return err
	}
	if entry.Status != "" {
		status := models.TenantStatus(entry.Status)
		if !status.IsValid() {
			return fmt.Errorf("unknown status %q", entry.Status)
		}
		tenant.Status = status
	}

	if err := s.tenants.Create(ctx, tenant); err != nil {
		return err
	}
	domain := cdmodels.NormalizeDomain(entry.CustomDomain)
	if domain == "" {
		if entry.DomainVerified {
			return fmt.Errorf("domain_verified requires custom_domain")
		}
		return nil
	}

	if err := cdmodels.ValidateDomain(domain, nil); err != nil {
		return err
	}
	if err := s.tenants.ClaimDomain(ctx, tenant.ID, domain, now); err != nil {
		return err
	}
	if entry.DomainVerified {
		return s.tenants.MarkDomainVerified(ctx, tenant.ID, domain, now)
	}
	return nil
}
