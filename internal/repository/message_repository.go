package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/conveyancing-service/internal/domain"
)

// MessageRepository manages case discussion messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	ListByCase(ctx context.Context, caseID string) ([]domain.Message, error)
	GetByID(ctx context.Context, caseID, messageID string) (*domain.Message, error)
	Delete(ctx context.Context, id string) error
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository returns a Postgres-backed implementation.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	const query = `
        INSERT INTO messages (id, case_id, user_id, username, content)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		msg.ID,
		msg.CaseID,
		msg.UserID,
		msg.Username,
		msg.Content,
	).Scan(&msg.CreatedAt)
}

func (r *messageRepository) ListByCase(ctx context.Context, caseID string) ([]domain.Message, error) {
	const query = `
        SELECT id, case_id, user_id, username, content, created_at
        FROM messages WHERE case_id=$1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.CaseID,
			&msg.UserID,
			&msg.Username,
			&msg.Content,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

func (r *messageRepository) GetByID(ctx context.Context, caseID, messageID string) (*domain.Message, error) {
	const query = `
        SELECT id, case_id, user_id, username, content, created_at
        FROM messages WHERE id=$1 AND case_id=$2`

	var msg domain.Message
	if err := r.pool.QueryRow(ctx, query, messageID, caseID).Scan(
		&msg.ID,
		&msg.CaseID,
		&msg.UserID,
		&msg.Username,
		&msg.Content,
		&msg.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
