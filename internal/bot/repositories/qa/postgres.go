package qa

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/teambot/internal/bot/models"
	"github.com/dmitrijs2005/teambot/internal/common"
	"github.com/dmitrijs2005/teambot/internal/dbx"
)

// PostgresRepository implements Repository over PostgreSQL.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository returns a new PostgresRepository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, e *models.QAEntry) error {
	query := `INSERT INTO qa_entries (id, question, answer, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT(question) DO UPDATE SET answer = excluded.answer
	`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.Question, e.Answer, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByQuestion(ctx context.Context, question string) (*models.QAEntry, error) {
	query := `SELECT id, question, answer, created_at FROM qa_entries WHERE question = $1`

	e := &models.QAEntry{}
	err := r.db.QueryRowContext(ctx, query, question).Scan(&e.ID, &e.Question, &e.Answer, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}
