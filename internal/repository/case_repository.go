package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/conveyancing-service/internal/domain"
)

// CaseRepository defines persistence access for conveyancing cases.
type CaseRepository interface {
	Create(ctx context.Context, c *domain.Case) error
	ListAll(ctx context.Context) ([]domain.CaseWithOwner, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Case, error)
	GetByID(ctx context.Context, id string) (*domain.Case, error)
	Update(ctx context.Context, c *domain.Case) error
	Delete(ctx context.Context, id string) error
}

type caseRepository struct {
	pool *pgxpool.Pool
}

// NewCaseRepository returns a Postgres-backed implementation. The detail
// fields and the color map are stored as JSONB documents.
func NewCaseRepository(pool *pgxpool.Pool) CaseRepository {
	return &caseRepository{pool: pool}
}

func (r *caseRepository) Create(ctx context.Context, c *domain.Case) error {
	const query = `
        INSERT INTO cases (id, created_by, case_date, active, details, colors)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		c.ID,
		c.CreatedBy,
		c.Date,
		c.Active,
		c.Details,
		c.Colors,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *caseRepository) ListAll(ctx context.Context) ([]domain.CaseWithOwner, error) {
	const query = `
        SELECT c.id, c.created_by, u.username, c.case_date, c.active, c.details, c.colors,
               c.created_at, c.updated_at
        FROM cases c
        LEFT JOIN users u ON u.id = c.created_by
        ORDER BY c.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CaseWithOwner
	for rows.Next() {
		var item domain.CaseWithOwner
		var username *string
		if err := rows.Scan(
			&item.ID,
			&item.CreatedBy,
			&username,
			&item.Date,
			&item.Active,
			&item.Details,
			&item.Colors,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if username != nil {
			item.OwnerUsername = *username
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *caseRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Case, error) {
	const query = `
        SELECT id, created_by, case_date, active, details, colors, created_at, updated_at
        FROM cases WHERE created_by=$1
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Case
	for rows.Next() {
		var c domain.Case
		if err := rows.Scan(
			&c.ID,
			&c.CreatedBy,
			&c.Date,
			&c.Active,
			&c.Details,
			&c.Colors,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *caseRepository) GetByID(ctx context.Context, id string) (*domain.Case, error) {
	const query = `
        SELECT id, created_by, case_date, active, details, colors, created_at, updated_at
        FROM cases WHERE id=$1`

	var c domain.Case
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.CreatedBy,
		&c.Date,
		&c.Active,
		&c.Details,
		&c.Colors,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caseRepository) Update(ctx context.Context, c *domain.Case) error {
	const query = `
        UPDATE cases SET case_date=$1, active=$2, details=$3, colors=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		c.Date,
		c.Active,
		c.Details,
		c.Colors,
		c.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *caseRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cases WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
