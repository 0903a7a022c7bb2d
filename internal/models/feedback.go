package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

type Feedback struct {
	ID             string         `bson:"id" json:"id"`
	CustomerName   string         `bson:"customer_name" json:"customer_name"`
	CustomerEmail  string         `bson:"customer_email" json:"customer_email"`
	Category       Category       `bson:"category" json:"category"`
	Rating         int            `bson:"rating" json:"rating"`
	Comment        string         `bson:"comment" json:"comment"`
	AdditionalData AdditionalData `bson:"-" json:"additional_data"`
	Timestamp      time.Time      `bson:"timestamp" json:"timestamp"`
	SentimentScore *float64       `bson:"sentiment_score" json:"sentiment_score"`
}

// Sentiment returns the stored score, or 0 for records written without one.
func (f *Feedback) Sentiment() float64 {
	if f.SentimentScore == nil {
		return 0
	}
	return *f.SentimentScore
}

// AdditionalData is an opaque JSON object kept byte-for-byte, so key order survives
// a round trip through the service.
type AdditionalData json.RawMessage

var errNotObject = errors.New("additional_data must be a JSON object")

var emptyObject = []byte("{}")

func (d AdditionalData) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return emptyObject, nil
	}
	return d, nil
}

func (d *AdditionalData) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*d = nil
		return nil
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errNotObject
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return err
	}
	*d = AdditionalData(buf.Bytes())
	return nil
}

// Bytes returns the raw object, "{}" when empty.
func (d AdditionalData) Bytes() []byte {
	if len(d) == 0 {
		return emptyObject
	}
	return d
}

// Stats is the dashboard aggregate over all stored feedback.
type Stats struct {
	TotalFeedback      int                      `json:"total_feedback"`
	AvgRating          float64                  `json:"avg_rating"`
	CategoryBreakdown  map[string]CategoryStats `json:"category_breakdown"`
	RatingDistribution map[string]int           `json:"rating_distribution"`
	RecentFeedback     []Feedback               `json:"recent_feedback"`
}

type CategoryStats struct {
	Count        int     `json:"count"`
	AvgRating    float64 `json:"avg_rating"`
	AvgSentiment float64 `json:"avg_sentiment"`
}
