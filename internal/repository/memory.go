package repository

import (
	"context"
	"fmt"
	"sync"

	"feedback-portal/internal/models"
)

// MemoryFeedbackRepo keeps records in insertion order. Used by tests and
// STORE_BACKEND=memory development runs; contents are lost on exit.
type MemoryFeedbackRepo struct {
	mu      sync.RWMutex
	records []models.Feedback
}

func NewMemoryFeedbackRepo() *MemoryFeedbackRepo {
	return &MemoryFeedbackRepo{}
}

func (r *MemoryFeedbackRepo) Insert(ctx context.Context, feedback *models.Feedback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == feedback.ID {
			return fmt.Errorf("inserting feedback %s: duplicate id", feedback.ID)
		}
	}
	r.records = append(r.records, *feedback)
	return nil
}

func (r *MemoryFeedbackRepo) FindAll(ctx context.Context, limit int) ([]models.Feedback, error) {
	return r.filter(ctx, limit, func(*models.Feedback) bool { return true })
}

func (r *MemoryFeedbackRepo) FindByCategory(ctx context.Context, category models.Category, limit int) ([]models.Feedback, error) {
	return r.filter(ctx, limit, func(f *models.Feedback) bool { return f.Category == category })
}

func (r *MemoryFeedbackRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *MemoryFeedbackRepo) filter(ctx context.Context, limit int, keep func(*models.Feedback) bool) ([]models.Feedback, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Feedback, 0)
	for i := range r.records {
		if len(out) >= limit {
			break
		}
		if keep(&r.records[i]) {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}
