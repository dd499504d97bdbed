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

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, c *models.Contact) error {
	query := `INSERT INTO contacts (id, name, info, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Info, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Contact, error) {
	query := `SELECT id, name, info, created_at FROM contacts ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select contacts: %w", err)
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

// FindFirst uses instr() rather than LIKE: SQLite LIKE is case-insensitive
// for ASCII, while the contact search contract is case-sensitive.
func (r *SQLiteRepository) FindFirst(ctx context.Context, substr string) (*models.Contact, error) {
	query := `SELECT id, name, info, created_at FROM contacts
			WHERE instr(name, ?) > 0
			ORDER BY created_at
			LIMIT 1`

	c := &models.Contact{}
	err := r.db.QueryRowContext(ctx, query, substr).Scan(&c.ID, &c.Name, &c.Info, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select contact: %w", err)
	}
	return c, nil
}
