package contacts

import (
	"context"

	"github.com/dmitrijs2005/teambot/internal/bot/models"
)

// Repository stores colleague contacts. Names are not deduplicated.
type Repository interface {
	// Create appends a contact.
	Create(ctx context.Context, c *models.Contact) error

	// GetAll lists all contacts sorted by name ascending.
	GetAll(ctx context.Context) ([]models.Contact, error)

	// FindFirst returns the first contact (by creation order) whose name
	// contains substr, or common.ErrorNotFound. The match is case-sensitive
	// and deliberately returns a single row even when several names match.
	FindFirst(ctx context.Context, substr string) (*models.Contact, error)
}
