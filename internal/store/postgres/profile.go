package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leadai/readiness/internal/domain"
)

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO profiles (id, email, full_name, company_name, plan, audit_credits, audits_used_this_month, api_key_prefix, api_key_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.Email, p.FullName, p.CompanyName, p.Plan,
		p.AuditCredits, p.AuditsUsedThisMonth, p.APIKeyPrefix, p.APIKeyHash,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("profileRepo.Create: %w", err)
	}

	return nil
}

func (r *ProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	row := r.pool.QueryRow(ctx,
		profileSelect+` WHERE id = $1`,
		id,
	)

	p, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("profileRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("profileRepo.GetByID: %w", err)
	}

	return p, nil
}

func (r *ProfileRepo) GetByAPIKeyPrefix(ctx context.Context, prefix string) (*domain.Profile, error) {
	row := r.pool.QueryRow(ctx,
		profileSelect+` WHERE api_key_prefix = $1`,
		prefix,
	)

	p, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("profileRepo.GetByAPIKeyPrefix: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("profileRepo.GetByAPIKeyPrefix: %w", err)
	}

	return p, nil
}

const profileSelect = `SELECT id, email, full_name, company_name, plan, audit_credits, audits_used_this_month, api_key_prefix, api_key_hash, created_at, updated_at
 FROM profiles`

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile

	err := row.Scan(
		&p.ID, &p.Email, &p.FullName, &p.CompanyName, &p.Plan,
		&p.AuditCredits, &p.AuditsUsedThisMonth, &p.APIKeyPrefix, &p.APIKeyHash,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// DeductCredit spends one credit and bumps the monthly counter in a single
// statement. GREATEST keeps the balance at zero under concurrent spends.
func (r *ProfileRepo) DeductCredit(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE profiles
		 SET audit_credits = GREATEST(audit_credits - 1, 0),
		     audits_used_this_month = audits_used_this_month + 1,
		     updated_at = now()
		 WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("profileRepo.DeductCredit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profileRepo.DeductCredit: %w", domain.ErrNotFound)
	}

	return nil
}
