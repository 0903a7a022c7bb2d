package notify

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/resend/resend-go/v2"

	"feedback-portal/internal/models"
)

type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// EmailNotifier mails a summary of each new feedback record through Resend.
type EmailNotifier struct {
	sender emailSender
	from   string
	to     []string
}

func NewEmailNotifier(apiKey, from string, to ...string) *EmailNotifier {
	return &EmailNotifier{
		sender: resend.NewClient(apiKey).Emails,
		from:   from,
		to:     to,
	}
}

func (n *EmailNotifier) Publish(ctx context.Context, f *models.Feedback) error {
	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      n.to,
		Subject: fmt.Sprintf("New %s feedback (%d/5) from %s", f.Category, f.Rating, f.CustomerName),
		Text:    FormatMessage(f),
		Html:    renderHTML(f),
	}

	sent, err := n.sender.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	slog.InfoContext(ctx, "Feedback notification e-mailed", "feedback_id", f.ID, "email_id", sent.Id)
	return nil
}

func renderHTML(f *models.Feedback) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">`)
	fmt.Fprintf(&b, `<h2 style="color: #333;">New %s feedback</h2>`, html.EscapeString(string(f.Category)))
	fmt.Fprintf(&b, `<p><strong>%s</strong> &lt;%s&gt;</p>`, html.EscapeString(f.CustomerName), html.EscapeString(f.CustomerEmail))
	fmt.Fprintf(&b, `<p>Rating: %d/5 &middot; Sentiment: %+.2f</p>`, f.Rating, f.Sentiment())
	fmt.Fprintf(&b, `<blockquote style="color: #555;">%s</blockquote>`, html.EscapeString(f.Comment))
	b.WriteString(`</div>`)
	return b.String()
}
