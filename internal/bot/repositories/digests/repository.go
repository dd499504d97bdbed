package digests

import (
	"context"

	"github.com/dmitrijs2005/teambot/internal/bot/models"
)

// Repository stores broadcast digests. The log is append-only: there is no
// update or delete path.
type Repository interface {
	// Create appends a digest.
	Create(ctx context.Context, d *models.Digest) error

	// Recent returns up to limit digests, most recent first.
	Recent(ctx context.Context, limit int) ([]models.Digest, error)
}
