package notify

import (
	"context"
	"fmt"
	"strings"

	"feedback-portal/internal/models"
)

// Notifier announces newly created feedback. Publish is best-effort: callers log
// a failure and carry on.
type Notifier interface {
	Publish(ctx context.Context, feedback *models.Feedback) error
}

// FormatMessage renders a one-paragraph plain-text summary of a feedback record.
func FormatMessage(f *models.Feedback) string {
	return fmt.Sprintf("New %s feedback from %s <%s>\nRating: %s (%d/5)\nSentiment: %+.2f\nComment: %s",
		f.Category, f.CustomerName, f.CustomerEmail, stars(f.Rating), f.Rating, f.Sentiment(), f.Comment)
}

func stars(rating int) string {
	filled := max(0, min(rating, models.MaxRating))
	return strings.Repeat("★", filled) + strings.Repeat("☆", models.MaxRating-filled)
}
