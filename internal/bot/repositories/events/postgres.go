package events

import (
	"context"
	"fmt"
	"time"

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

func (r *PostgresRepository) Create(ctx context.Context, e *models.Event) error {
	query := `INSERT INTO events (id, name, event_date, description, notified, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.Name, e.Date, e.Description, e.Notified, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Due(ctx context.Context, now time.Time, windowEnd *time.Time) ([]models.Event, error) {
	query := `SELECT id, name, event_date, description, notified, created_at FROM events
			WHERE event_date >= $1 AND notified = FALSE`
	args := []any{now}
	if windowEnd != nil {
		query += ` AND event_date <= $2`
		args = append(args, *windowEnd)
	}
	query += ` ORDER BY event_date`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Event
	for rows.Next() {
		var item models.Event
		if err := rows.Scan(&item.ID, &item.Name, &item.Date, &item.Description, &item.Notified, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) MarkNotified(ctx context.Context, id string) error {
	query := `UPDATE events SET notified = TRUE WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) MarkNotifiedByNameDate(ctx context.Context, name string, date time.Time) error {
	query := `UPDATE events SET notified = TRUE WHERE name = $1 AND event_date = $2`
	if _, err := r.db.ExecContext(ctx, query, name, date); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
