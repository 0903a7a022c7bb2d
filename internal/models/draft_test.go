package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "feedback-portal/internal/errors"
)

func decodeDraft(t *testing.T, body string) *Draft {
	t.Helper()
	var d Draft
	require.NoError(t, json.Unmarshal([]byte(body), &d))
	return &d
}

func validationError(t *testing.T, err error) *apperrors.Error {
	t.Helper()
	require.Error(t, err)
	se := apperrors.AsStructuredError(err)
	require.Equal(t, apperrors.TypeValidation, se.Type)
	return se
}

func TestDraftValidate_Valid(t *testing.T) {
	d := decodeDraft(t, `{
		"customer_name": "Alice Johnson",
		"customer_email": "alice@example.com",
		"category": "product",
		"rating": 5,
		"comment": "",
		"additional_data": {"z": 1, "a": [true]}
	}`)

	f, err := d.Validate()
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", f.CustomerName)
	assert.Equal(t, CategoryProduct, f.Category)
	assert.Equal(t, 5, f.Rating)
	assert.Equal(t, "", f.Comment)
	assert.JSONEq(t, `{"z":1,"a":[true]}`, string(f.AdditionalData.Bytes()))
	assert.Empty(t, f.ID)
	assert.Nil(t, f.SentimentScore)
}

func TestDraftValidate_AllCategories(t *testing.T) {
	for _, c := range Categories {
		t.Run(string(c), func(t *testing.T) {
			d := decodeDraft(t, `{"customer_name":"n","customer_email":"e","category":"`+string(c)+`","rating":3,"comment":"ok"}`)
			f, err := d.Validate()
			require.NoError(t, err)
			assert.Equal(t, c, f.Category)
		})
	}
}

func TestDraftValidate_RatingOutOfRange(t *testing.T) {
	for _, rating := range []string{"0", "6", "-1", "100"} {
		t.Run(rating, func(t *testing.T) {
			d := decodeDraft(t, `{"customer_name":"n","customer_email":"e","category":"service","rating":`+rating+`,"comment":"c"}`)
			_, err := d.Validate()
			se := validationError(t, err)
			assert.Equal(t, apperrors.KindOutOfRange, se.Kind)
			assert.Equal(t, []string{"rating"}, se.Fields)
		})
	}
}

func TestDraftValidate_IntegralFloatRating(t *testing.T) {
	d := decodeDraft(t, `{"customer_name":"n","customer_email":"e","category":"product","rating":3.0,"comment":"c"}`)
	f, err := d.Validate()
	require.NoError(t, err)
	assert.Equal(t, 3, f.Rating)
}

func TestDraftValidate_RatingWrongType(t *testing.T) {
	for _, rating := range []string{"3.5", `"5"`, "true", "{}", "[3]"} {
		t.Run(rating, func(t *testing.T) {
			d := decodeDraft(t, `{"customer_name":"n","customer_email":"e","category":"product","rating":`+rating+`,"comment":"c"}`)
			_, err := d.Validate()
			se := validationError(t, err)
			assert.Equal(t, apperrors.KindOutOfRange, se.Kind)
			assert.Equal(t, []string{"rating"}, se.Fields)
		})
	}
}

func TestDraftValidate_NullFieldsAreMissing(t *testing.T) {
	d := decodeDraft(t, `{"customer_name":"n","customer_email":"e","category":null,"rating":null,"comment":"c"}`)
	_, err := d.Validate()
	se := validationError(t, err)
	assert.Equal(t, apperrors.KindMissingField, se.Kind)
	assert.Equal(t, []string{"category", "rating"}, se.Fields)
}

func TestDraftValidate_InvalidCategory(t *testing.T) {
	d := decodeDraft(t, `{"customer_name":"n","customer_email":"e","category":"billing","rating":3,"comment":"c"}`)
	_, err := d.Validate()
	se := validationError(t, err)
	assert.Equal(t, apperrors.KindInvalidEnum, se.Kind)
	assert.Contains(t, se.Message, "billing")
}

func TestDraftValidate_CategoryIsCaseSensitive(t *testing.T) {
	d := decodeDraft(t, `{"customer_name":"n","customer_email":"e","category":"Product","rating":3,"comment":"c"}`)
	_, err := d.Validate()
	assert.Equal(t, apperrors.KindInvalidEnum, validationError(t, err).Kind)
}

func TestDraftValidate_MissingFields(t *testing.T) {
	d := decodeDraft(t, `{"customer_name":"n","category":"support","rating":2}`)
	_, err := d.Validate()
	se := validationError(t, err)
	assert.Equal(t, apperrors.KindMissingField, se.Kind)
	assert.Equal(t, []string{"customer_email", "comment"}, se.Fields)
}

func TestDraftValidate_EmptyNameIsMissing(t *testing.T) {
	d := decodeDraft(t, `{"customer_name":"","customer_email":"e","category":"support","rating":2,"comment":"c"}`)
	_, err := d.Validate()
	se := validationError(t, err)
	assert.Equal(t, apperrors.KindMissingField, se.Kind)
	assert.Equal(t, []string{"customer_name"}, se.Fields)
}

func TestDraftValidate_Priority(t *testing.T) {
	tests := []struct {
		name string
		body string
		want apperrors.Kind
	}{
		{"enum before range", `{"category":"nope","rating":9}`, apperrors.KindInvalidEnum},
		{"enum before missing", `{"category":"nope"}`, apperrors.KindInvalidEnum},
		{"range before missing", `{"category":"overall","rating":0}`, apperrors.KindOutOfRange},
		{"enum before fractional rating", `{"category":"bogus","rating":3.5}`, apperrors.KindInvalidEnum},
		{"fractional rating out of range", `{"category":"product","rating":7.5}`, apperrors.KindOutOfRange},
		{"non-string category", `{"category":7,"rating":3}`, apperrors.KindInvalidEnum},
		{"only missing", `{}`, apperrors.KindMissingField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeDraft(t, tt.body).Validate()
			se := validationError(t, err)
			assert.Equal(t, tt.want, se.Kind)
		})
	}
}

func TestDraftValidate_EmailNotChecked(t *testing.T) {
	d := decodeDraft(t, `{"customer_name":"n","customer_email":"not-an-email","category":"overall","rating":1,"comment":"c"}`)
	f, err := d.Validate()
	require.NoError(t, err)
	assert.Equal(t, "not-an-email", f.CustomerEmail)
}

func TestAdditionalData_PreservesKeyOrder(t *testing.T) {
	d := decodeDraft(t, `{"additional_data": {"zeta": 1, "alpha": {"b": 2, "a": 1}}}`)
	out, err := json.Marshal(d.AdditionalData)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":{"b":2,"a":1}}`, string(out))
}

func TestAdditionalData_DefaultsToEmptyObject(t *testing.T) {
	out, err := json.Marshal(Feedback{}.AdditionalData)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))
}

func TestAdditionalData_RejectsNonObject(t *testing.T) {
	var d Draft
	err := json.Unmarshal([]byte(`{"additional_data": [1, 2]}`), &d)
	assert.Error(t, err)
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("support")
	require.NoError(t, err)
	assert.Equal(t, CategorySupport, c)

	_, err = ParseCategory("")
	assert.Error(t, err)
}
