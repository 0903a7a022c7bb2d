package repository

import (
	"context"

	"feedback-portal/internal/models"
)

// FeedbackStore persists feedback records. Implementations are safe for concurrent
// use and atomic per record; none of them retries a failed operation.
type FeedbackStore interface {
	Insert(ctx context.Context, feedback *models.Feedback) error
	// FindAll returns up to limit records in store order.
	FindAll(ctx context.Context, limit int) ([]models.Feedback, error)
	FindByCategory(ctx context.Context, category models.Category, limit int) ([]models.Feedback, error)
	// DeleteByID returns the number of removed records, 0 or 1.
	DeleteByID(ctx context.Context, id string) (int64, error)
}
