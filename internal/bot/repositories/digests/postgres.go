package digests

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/teambot/internal/bot/models"
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

func (r *PostgresRepository) Create(ctx context.Context, d *models.Digest) error {
	query := `INSERT INTO digests (id, content, created_at) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, d.ID, d.Content, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]models.Digest, error) {
	query := `SELECT id, content, created_at FROM digests ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
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
