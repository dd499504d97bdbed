package qa

import (
	"context"

	"github.com/dmitrijs2005/teambot/internal/bot/models"
)

// Repository stores question/answer pairs. Questions are expected to arrive
// already normalized (case-folded) from the store layer.
type Repository interface {
	// Upsert inserts the entry or, when the question already exists,
	// replaces its answer.
	Upsert(ctx context.Context, e *models.QAEntry) error

	// GetByQuestion returns the entry for the normalized question, or
	// common.ErrorNotFound when no answer is stored.
	GetByQuestion(ctx context.Context, question string) (*models.QAEntry, error)
}
