package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	apperrors "feedback-portal/internal/errors"
	"feedback-portal/internal/metrics"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// ErrorWriter turns service errors into JSON error responses.
type ErrorWriter struct {
	metrics *metrics.FeedbackMetrics
}

func NewErrorWriter(m *metrics.FeedbackMetrics) *ErrorWriter {
	return &ErrorWriter{metrics: m}
}

func (e *ErrorWriter) Write(w http.ResponseWriter, r *http.Request, err error) {
	structuredErr := apperrors.AsStructuredError(err)
	e.metrics.ErrorsTotal.WithLabelValues(string(structuredErr.Type)).Inc()
	logError(r, structuredErr)
	writeJSON(w, structuredErr.HTTPStatus(), structuredErr.ToResponse())
}

func logError(r *http.Request, err *apperrors.Error) {
	attrs := []any{
		"error_type", err.Type,
		"message", err.Message,
		"path", r.URL.Path,
		"method", r.Method,
		"status", err.HTTPStatus(),
	}
	if err.Kind != "" {
		attrs = append(attrs, "kind", err.Kind)
	}

	switch err.Type {
	case apperrors.TypeValidation:
		slog.InfoContext(r.Context(), "Validation error", attrs...)
	case apperrors.TypeNotFound:
		slog.InfoContext(r.Context(), "Not found", attrs...)
	default:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.ErrorContext(r.Context(), "Storage error", attrs...)
	}
}
