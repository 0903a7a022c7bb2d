package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedback-portal/internal/models"
)

func sampleFeedback() *models.Feedback {
	score := -0.5
	return &models.Feedback{
		ID:             "fb-1",
		CustomerName:   "Bob <Smith>",
		CustomerEmail:  "bob@example.com",
		Category:       models.CategoryService,
		Rating:         2,
		Comment:        "Slow & unhelpful",
		Timestamp:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		SentimentScore: &score,
	}
}

func TestFormatMessage(t *testing.T) {
	msg := FormatMessage(sampleFeedback())
	assert.Contains(t, msg, "New service feedback from Bob <Smith> <bob@example.com>")
	assert.Contains(t, msg, "★★☆☆☆ (2/5)")
	assert.Contains(t, msg, "Sentiment: -0.50")
	assert.Contains(t, msg, "Comment: Slow & unhelpful")
}

func TestLogNotifier_Publish(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, n.Publish(context.Background(), sampleFeedback()))
	assert.Contains(t, buf.String(), "feedback_id=fb-1")
	assert.Contains(t, buf.String(), "category=service")
}

type fakeSender struct {
	got *resend.SendEmailRequest
	err error
}

func (f *fakeSender) SendWithContext(_ context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.got = params
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

func TestEmailNotifier_Publish(t *testing.T) {
	sender := &fakeSender{}
	n := &EmailNotifier{sender: sender, from: "feedback@example.com", to: []string{"ops@example.com"}}

	require.NoError(t, n.Publish(context.Background(), sampleFeedback()))
	require.NotNil(t, sender.got)
	assert.Equal(t, "feedback@example.com", sender.got.From)
	assert.Equal(t, []string{"ops@example.com"}, sender.got.To)
	assert.Equal(t, "New service feedback (2/5) from Bob <Smith>", sender.got.Subject)
	assert.Contains(t, sender.got.Html, "Bob &lt;Smith&gt;")
	assert.Contains(t, sender.got.Html, "Slow &amp; unhelpful")
}

func TestEmailNotifier_SendError(t *testing.T) {
	n := &EmailNotifier{sender: &fakeSender{err: errors.New("rate limited")}, from: "a@example.com", to: []string{"b@example.com"}}

	err := n.Publish(context.Background(), sampleFeedback())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}
