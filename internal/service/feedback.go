// Package service implements the feedback lifecycle on top of a FeedbackStore.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	apperrors "feedback-portal/internal/errors"
	"feedback-portal/internal/logging"
	"feedback-portal/internal/metrics"
	"feedback-portal/internal/models"
	"feedback-portal/internal/notify"
	"feedback-portal/internal/repository"
	"feedback-portal/internal/sentiment"
	"feedback-portal/internal/stats"
)

// DefaultQueryLimit caps how many records a single read returns.
const DefaultQueryLimit = 1000

type FeedbackService struct {
	store    repository.FeedbackStore
	notifier notify.Notifier
	metrics  *metrics.FeedbackMetrics
	clock    clockwork.Clock
	limit    int
}

type Option func(*FeedbackService)

// WithClock overrides the clock used to stamp new records.
func WithClock(c clockwork.Clock) Option {
	return func(s *FeedbackService) { s.clock = c }
}

func WithQueryLimit(limit int) Option {
	return func(s *FeedbackService) { s.limit = limit }
}

func WithNotifier(n notify.Notifier) Option {
	return func(s *FeedbackService) { s.notifier = n }
}

func NewFeedbackService(store repository.FeedbackStore, m *metrics.FeedbackMetrics, opts ...Option) *FeedbackService {
	s := &FeedbackService{
		store:   store,
		metrics: m,
		clock:   clockwork.NewRealClock(),
		limit:   DefaultQueryLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the draft, scores its comment and persists it. Invalid drafts
// never reach the store.
func (s *FeedbackService) Create(ctx context.Context, draft *models.Draft) (*models.Feedback, error) {
	feedback, err := draft.Validate()
	if err != nil {
		return nil, err
	}

	score := sentiment.Score(feedback.Comment)
	feedback.ID = uuid.NewString()
	// Mongo keeps millisecond precision; truncate so the created record matches later reads.
	feedback.Timestamp = s.clock.Now().UTC().Truncate(time.Millisecond)
	feedback.SentimentScore = &score

	if err := s.store.Insert(ctx, feedback); err != nil {
		s.metrics.StoreErrors.WithLabelValues("insert").Inc()
		return nil, apperrors.Storage("failed to create feedback", err)
	}

	s.metrics.CreatedTotal.WithLabelValues(string(feedback.Category)).Inc()
	s.metrics.Sentiment.Observe(score)

	if s.notifier != nil {
		if err := s.notifier.Publish(ctx, feedback); err != nil {
			logging.WithFeedback(feedback.ID).WarnContext(ctx, "Failed to publish feedback notification", "error", err)
		}
	}
	return feedback, nil
}

func (s *FeedbackService) List(ctx context.Context) ([]models.Feedback, error) {
	all, err := s.store.FindAll(ctx, s.limit)
	if err != nil {
		s.metrics.StoreErrors.WithLabelValues("find_all").Inc()
		return nil, apperrors.Storage("failed to list feedback", err)
	}
	return all, nil
}

// ListByCategory decodes the raw category before touching the store.
func (s *FeedbackService) ListByCategory(ctx context.Context, rawCategory string) ([]models.Feedback, error) {
	category, err := models.ParseCategory(rawCategory)
	if err != nil {
		return nil, apperrors.InvalidEnum("category", rawCategory, models.CategoryNames())
	}

	records, err := s.store.FindByCategory(ctx, category, s.limit)
	if err != nil {
		s.metrics.StoreErrors.WithLabelValues("find_by_category").Inc()
		return nil, apperrors.Storage("failed to list feedback", err)
	}
	return records, nil
}

func (s *FeedbackService) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		s.metrics.StoreErrors.WithLabelValues("delete").Inc()
		return apperrors.Storage("failed to delete feedback", err)
	}
	if deleted == 0 {
		return apperrors.NotFound("Feedback not found")
	}

	s.metrics.DeletedTotal.Inc()
	slog.InfoContext(ctx, "Feedback deleted", "feedback_id", id)
	return nil
}

// Stats recomputes the aggregate from every stored record, up to the query limit.
func (s *FeedbackService) Stats(ctx context.Context) (*models.Stats, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	s.metrics.StatsRecords.Set(float64(len(all)))

	result := stats.Aggregate(all)
	return &result, nil
}
