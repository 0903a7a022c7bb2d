package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "feedback-portal/internal/errors"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Draft is unvalidated creation input. Pointer fields distinguish an absent
// value from an empty one. Category and Rating stay raw until Validate so a
// value of the wrong JSON type is reported against its field.
type Draft struct {
	CustomerName   *string         `json:"customer_name" validate:"required,min=1"`
	CustomerEmail  *string         `json:"customer_email" validate:"required,min=1"`
	Category       json.RawMessage `json:"category" validate:"required"`
	Rating         json.RawMessage `json:"rating" validate:"required"`
	Comment        *string         `json:"comment" validate:"required"`
	AdditionalData AdditionalData  `json:"additional_data"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var jsonNull = []byte("null")

// Validate checks the draft and returns an unsaved Feedback. Only the first
// failing rule is reported: unknown category, then rating range, then missing fields.
func (d *Draft) Validate() (*Feedback, error) {
	input := *d
	if bytes.Equal(bytes.TrimSpace(input.Category), jsonNull) {
		input.Category = nil
	}
	if bytes.Equal(bytes.TrimSpace(input.Rating), jsonNull) {
		input.Rating = nil
	}

	var missing []string
	if err := validate.Struct(&input); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, apperrors.MalformedBody(err)
		}
		for _, fe := range fieldErrs {
			missing = append(missing, fe.Field())
		}
	}

	var category Category
	if input.Category != nil {
		c, err := decodeCategory(input.Category)
		if err != nil {
			return nil, err
		}
		category = c
	}

	var rating int
	if input.Rating != nil {
		r, err := decodeRating(input.Rating)
		if err != nil {
			return nil, err
		}
		rating = r
	}

	if len(missing) > 0 {
		return nil, apperrors.MissingField(missing...)
	}

	return &Feedback{
		CustomerName:   *input.CustomerName,
		CustomerEmail:  *input.CustomerEmail,
		Category:       category,
		Rating:         rating,
		Comment:        *input.Comment,
		AdditionalData: input.AdditionalData,
	}, nil
}

// decodeCategory accepts only a JSON string naming a known category.
func decodeCategory(raw json.RawMessage) (Category, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", apperrors.InvalidEnum("category", string(raw), CategoryNames())
	}
	c, err := ParseCategory(s)
	if err != nil {
		return "", apperrors.InvalidEnum("category", s, CategoryNames())
	}
	return c, nil
}

// decodeRating accepts a JSON number with an integral value in range, so 3.0
// counts as 3 while 3.5, strings and booleans are rejected.
func decodeRating(raw json.RawMessage) (int, error) {
	outOfRange := apperrors.OutOfRange("rating", string(raw), MinRating, MaxRating)

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] == '"' {
		return 0, outOfRange
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return 0, outOfRange
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f < MinRating || f > MaxRating {
		return 0, outOfRange
	}
	return int(f), nil
}
