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

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, e *models.QAEntry) error {
	query := `INSERT INTO qa_entries (id, question, answer, created_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(question) DO UPDATE SET answer = excluded.answer
	`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.Question, e.Answer, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert qa entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByQuestion(ctx context.Context, question string) (*models.QAEntry, error) {
	query := `SELECT id, question, answer, created_at FROM qa_entries WHERE question = ?`

	e := &models.QAEntry{}
	err := r.db.QueryRowContext(ctx, query, question).Scan(&e.ID, &e.Question, &e.Answer, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select qa entry: %w", err)
	}
	return e, nil
}
