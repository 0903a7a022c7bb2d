package notify

import (
	"context"
	"log/slog"

	"feedback-portal/internal/models"
)

// LogNotifier implements Notifier by writing a structured log line.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Publish(ctx context.Context, f *models.Feedback) error {
	n.logger.InfoContext(ctx, "New feedback received",
		"feedback_id", f.ID,
		"category", f.Category,
		"rating", f.Rating,
		"sentiment_score", f.Sentiment(),
	)
	return nil
}
