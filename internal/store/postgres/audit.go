package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leadai/readiness/internal/domain"
)

type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) Create(ctx context.Context, a *domain.Audit) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audits (id, user_id, business_email, domain, categories, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.UserID, a.BusinessEmail, a.Domain, categoryStrings(a.Categories),
		a.Status, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("auditRepo.Create: %w", err)
	}

	return nil
}

func (r *AuditRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Audit, error) {
	row := r.pool.QueryRow(ctx,
		auditSelect+` WHERE user_id = $1 AND id = $2`,
		userID, id,
	)

	a, err := scanAudit(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("auditRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("auditRepo.GetByID: %w", err)
	}

	return a, nil
}

func (r *AuditRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Audit, error) {
	rows, err := r.pool.Query(ctx,
		auditSelect+` WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1000`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("auditRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	var audits []*domain.Audit
	for rows.Next() {
		a, err := scanAudit(rows)
		if err != nil {
			return nil, fmt.Errorf("auditRepo.ListByUser: scan: %w", err)
		}
		audits = append(audits, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("auditRepo.ListByUser: rows: %w", err)
	}

	return audits, nil
}

func (r *AuditRepo) LatestCompleted(ctx context.Context, userID uuid.UUID, dom string) (*domain.Audit, error) {
	row := r.pool.QueryRow(ctx,
		auditSelect+` WHERE user_id = $1 AND domain = $2 AND status = $3
		 ORDER BY created_at DESC LIMIT 1`,
		userID, dom, domain.AuditStatusCompleted,
	)

	a, err := scanAudit(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("auditRepo.LatestCompleted: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("auditRepo.LatestCompleted: %w", err)
	}

	return a, nil
}

func (r *AuditRepo) Complete(ctx context.Context, id uuid.UUID, result *domain.AuditResult, reportHTML string) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("auditRepo.Complete: marshal result: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE audits
		 SET status = $1, result = $2, report_html = $3, overall_score = $4,
		     updated_at = now(), completed_at = now()
		 WHERE id = $5 AND status = $6`,
		domain.AuditStatusCompleted, resultJSON, reportHTML, result.OverallScore,
		id, domain.AuditStatusProcessing,
	)
	if err != nil {
		return fmt.Errorf("auditRepo.Complete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("auditRepo.Complete: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *AuditRepo) Fail(ctx context.Context, id uuid.UUID, message string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE audits
		 SET status = $1, error_message = $2, updated_at = now()
		 WHERE id = $3 AND status = $4`,
		domain.AuditStatusFailed, message, id, domain.AuditStatusProcessing,
	)
	if err != nil {
		return fmt.Errorf("auditRepo.Fail: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("auditRepo.Fail: %w", domain.ErrNotFound)
	}

	return nil
}

const auditSelect = `SELECT id, user_id, business_email, domain, categories, status,
       result, report_html, overall_score, error_message,
       created_at, updated_at, completed_at
 FROM audits`

func scanAudit(row pgx.Row) (*domain.Audit, error) {
	var (
		a          domain.Audit
		categories []string
		resultJSON []byte
		reportHTML *string
		errMsg     *string
	)

	err := row.Scan(
		&a.ID, &a.UserID, &a.BusinessEmail, &a.Domain, &categories, &a.Status,
		&resultJSON, &reportHTML, &a.OverallScore, &errMsg,
		&a.CreatedAt, &a.UpdatedAt, &a.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Categories = make([]domain.Category, len(categories))
	for i, c := range categories {
		a.Categories[i] = domain.Category(c)
	}
	if len(resultJSON) > 0 {
		var result domain.AuditResult
		if err := json.Unmarshal(resultJSON, &result); err != nil {
			return nil, fmt.Errorf("unmarshal result: %w", err)
		}
		a.Result = &result
	}
	if reportHTML != nil {
		a.ReportHTML = *reportHTML
	}
	if errMsg != nil {
		a.ErrorMessage = *errMsg
	}

	return &a, nil
}

func categoryStrings(categories []domain.Category) []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = string(c)
	}
	return out
}
