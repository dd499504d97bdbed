package events

import (
	"context"
	"fmt"
	"time"

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

func (r *SQLiteRepository) Create(ctx context.Context, e *models.Event) error {
	query := `INSERT INTO events (id, name, event_date, description, notified, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.Name, e.Date, e.Description, e.Notified, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Due(ctx context.Context, now time.Time, windowEnd *time.Time) ([]models.Event, error) {
	query := `SELECT id, name, event_date, description, notified, created_at FROM events
			WHERE event_date >= ? AND notified = FALSE`
	args := []any{now}
	if windowEnd != nil {
		query += ` AND event_date <= ?`
		args = append(args, *windowEnd)
	}
	query += ` ORDER BY event_date`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select events: %w", err)
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

func (r *SQLiteRepository) MarkNotified(ctx context.Context, id string) error {
	query := `UPDATE events SET notified = TRUE WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkNotifiedByNameDate(ctx context.Context, name string, date time.Time) error {
	query := `UPDATE events SET notified = TRUE WHERE name = ? AND event_date = ?`
	if _, err := r.db.ExecContext(ctx, query, name, date); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}
