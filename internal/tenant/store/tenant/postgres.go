package tenant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"whitelabel/internal/sentinel"
	"whitelabel/internal/tenant/models"
	id "whitelabel/pkg/domain"
)

const tenantColumns = `id, slug, name, status, custom_domain, domain_verified, domain_verified_at, domain_checked_at, created_at, updated_at`

// PostgresStore persists tenants in PostgreSQL. The partial unique index on
// custom_domain is the final backstop for the one-tenant-per-domain rule.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed tenant store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts a tenant. Slug or domain conflicts yield sentinel.ErrAlreadyUsed.
func (s *PostgresStore) Create(ctx context.Context, tenant *models.Tenant) error {
	if tenant == nil {
		return fmt.Errorf("tenant is required")
	}
	query := `
		INSERT INTO tenants (` + tenantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(tenant.ID),
		tenant.Slug,
		tenant.Name,
		string(tenant.Status),
		nullableDomain(tenant.CustomDomain),
		tenant.DomainVerified,
		tenant.DomainVerifiedAt,
		tenant.DomainCheckedAt,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tenant %s: %w", constraintName(err), sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create tenant: %w", err)
	}
	return nil
}

// FindByID retrieves a tenant by its UUID.
func (s *PostgresStore) FindByID(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	return s.findOne(ctx, "id = $1", uuid.UUID(tenantID), "find tenant by id")
}

// FindBySlug retrieves a tenant by slug.
func (s *PostgresStore) FindBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	return s.findOne(ctx, "slug = $1", slug, "find tenant by slug")
}

// FindByCustomDomain retrieves the tenant holding a custom domain, verified or not.
func (s *PostgresStore) FindByCustomDomain(ctx context.Context, domain string) (*models.Tenant, error) {
	return s.findOne(ctx, "custom_domain = $1", domain, "find tenant by custom domain")
}

func (s *PostgresStore) findOne(ctx context.Context, where string, arg any, action string) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE ` + where
	tenant, err := scanTenant(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	return tenant, nil
}

// UpdateStatus sets the tenant status.
func (s *PostgresStore) UpdateStatus(ctx context.Context, tenantID id.TenantID, status models.TenantStatus, now time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tenants SET status = $2, updated_at = $3 WHERE id = $1`,
		uuid.UUID(tenantID), string(status), now,
	)
	if err != nil {
		return fmt.Errorf("update tenant status: %w", err)
	}
	return requireRow(res, "update tenant status")
}

// ClaimDomain assigns a custom domain and resets verification in a single
// statement. A unique violation means another tenant won the race.
func (s *PostgresStore) ClaimDomain(ctx context.Context, tenantID id.TenantID, domain string, now time.Time) error {
	query := `
		UPDATE tenants
		SET custom_domain = $2, domain_verified = FALSE, domain_verified_at = NULL,
		    domain_checked_at = NULL, updated_at = $3
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query, uuid.UUID(tenantID), domain, now)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("custom domain must be unique: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("claim domain: %w", err)
	}
	return requireRow(res, "claim domain")
}

// ClearDomain removes the custom domain and its verification state.
func (s *PostgresStore) ClearDomain(ctx context.Context, tenantID id.TenantID, now time.Time) error {
	query := `
		UPDATE tenants
		SET custom_domain = NULL, domain_verified = FALSE, domain_verified_at = NULL,
		    domain_checked_at = NULL, updated_at = $2
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query, uuid.UUID(tenantID), now)
	if err != nil {
		return fmt.Errorf("clear domain: %w", err)
	}
	return requireRow(res, "clear domain")
}

// MarkDomainVerified flips domain_verified only while custom_domain still
// equals domain. Already-verified rows are left untouched and succeed.
func (s *PostgresStore) MarkDomainVerified(ctx context.Context, tenantID id.TenantID, domain string, now time.Time) error {
	query := `
		UPDATE tenants
		SET domain_verified = TRUE, domain_verified_at = $3, updated_at = $3
		WHERE id = $1 AND custom_domain = $2 AND domain_verified = FALSE
	`
	res, err := s.db.ExecContext(ctx, query, uuid.UUID(tenantID), domain, now)
	if err != nil {
		return fmt.Errorf("mark domain verified: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark domain verified rows: %w", err)
	}
	if rows == 1 {
		return nil
	}

	current, err := s.FindByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if current.CustomDomain == domain && current.DomainVerified {
		return nil
	}
	return fmt.Errorf("mark domain verified: %w", sentinel.ErrInvalidState)
}

// MarkDomainChecked stamps domain_checked_at so the next sweep moves on to
// other tenants. updated_at is not touched.
func (s *PostgresStore) MarkDomainChecked(ctx context.Context, tenantID id.TenantID, now time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tenants SET domain_checked_at = $2 WHERE id = $1`,
		uuid.UUID(tenantID), now,
	)
	if err != nil {
		return fmt.Errorf("mark domain checked: %w", err)
	}
	return requireRow(res, "mark domain checked")
}

// ListPendingDomains returns active tenants with an unverified custom domain,
// never checked first, then least recently checked.
func (s *PostgresStore) ListPendingDomains(ctx context.Context, limit int) ([]*models.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenants
		WHERE custom_domain IS NOT NULL AND domain_verified = FALSE AND status = 'active'
		ORDER BY domain_checked_at ASC NULLS FIRST, updated_at ASC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending domains: %w", err)
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pending domain: %w", err)
		}
		tenants = append(tenants, tenant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pending domains: %w", err)
	}
	return tenants, nil
}

type tenantRow interface {
	Scan(dest ...any) error
}

func scanTenant(row tenantRow) (*models.Tenant, error) {
	var (
		tenant     models.Tenant
		tenantID   uuid.UUID
		status     string
		domain     sql.NullString
		verifiedAt sql.NullTime
		checkedAt  sql.NullTime
	)
	if err := row.Scan(&tenantID, &tenant.Slug, &tenant.Name, &status, &domain,
		&tenant.DomainVerified, &verifiedAt, &checkedAt, &tenant.CreatedAt, &tenant.UpdatedAt); err != nil {
		return nil, err
	}
	tenant.ID = id.TenantID(tenantID)
	tenant.Status = models.TenantStatus(status)
	tenant.CustomDomain = domain.String
	if verifiedAt.Valid {
		at := verifiedAt.Time
		tenant.DomainVerifiedAt = &at
	}
	if checkedAt.Valid {
		at := checkedAt.Time
		tenant.DomainCheckedAt = &at
	}
	return &tenant, nil
}

func requireRow(res sql.Result, action string) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows: %w", action, err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func nullableDomain(domain string) sql.NullString {
	return sql.NullString{String: domain, Valid: domain != ""}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	return false
}

func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	return "unique constraint"
}
