package contacts

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

func (r *PostgresRepository) Create(ctx context.Context, c *models.Contact) error {
	query := `INSERT INTO contacts (id, name, info, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Info, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]models.Contact, error) {
	query := `SELECT id, name, info, created_at FROM contacts ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Contact
	for rows.Next() {
		var item models.Contact
		if err := rows.Scan(&item.ID, &item.Name, &item.Info, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) FindFirst(ctx context.Context, substr string) (*models.Contact, error) {
	query := `SELECT id, name, info, created_at FROM contacts
			WHERE position($1 in name) > 0
			ORDER BY created_at
			LIMIT 1`

	c := &models.Contact{}
	err := r.db.QueryRowContext(ctx, query, substr).Scan(&c.ID, &c.Name, &c.Info, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}
