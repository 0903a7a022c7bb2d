package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"feedback-portal/internal/models"
)

func TestFeedbackDocument_AdditionalDataRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"extended json keys", `{"meta":{"$numberInt":"5"}}`, `{"meta":{"$numberInt":"5"}}`},
		{"big integer", `{"big":123456789012345678901234567890}`, `{"big":123456789012345678901234567890}`},
		{"key order", `{"zeta":1,"alpha":2}`, `{"zeta":1,"alpha":2}`},
		{"empty", ``, `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFeedback("doc-1", models.CategorySupport, 2)
			f.AdditionalData = models.AdditionalData(tt.data)

			raw, err := bson.Marshal(toDocument(f))
			require.NoError(t, err)

			var doc feedbackDocument
			require.NoError(t, bson.Unmarshal(raw, &doc))
			got := fromDocument(&doc)

			assert.Equal(t, tt.want, string(got.AdditionalData.Bytes()))
			assert.Equal(t, "doc-1", got.ID)
			assert.Equal(t, 2, got.Rating)
		})
	}
}
