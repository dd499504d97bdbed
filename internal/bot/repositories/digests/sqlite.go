package digests

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/teambot/internal/bot/models"
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

func (r *SQLiteRepository) Create(ctx context.Context, d *models.Digest) error {
	query := `INSERT INTO digests (id, content, created_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, d.ID, d.Content, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert digest: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]models.Digest, error) {
	query := `SELECT id, content, created_at FROM digests ORDER BY created_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select digests: %w", err)
	}
	defer rows.Close()

	var result []models.Digest
	for rows.Next() {
		var item models.Digest
		if err := rows.Scan(&item.ID, &item.Content, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
