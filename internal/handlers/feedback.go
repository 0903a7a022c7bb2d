package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "feedback-portal/internal/errors"
	"feedback-portal/internal/models"
)

// FeedbackService is the feedback lifecycle as seen by the transport.
type FeedbackService interface {
	Create(ctx context.Context, draft *models.Draft) (*models.Feedback, error)
	List(ctx context.Context) ([]models.Feedback, error)
	ListByCategory(ctx context.Context, rawCategory string) ([]models.Feedback, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*models.Stats, error)
}

type FeedbackHandler struct {
	service FeedbackService
	errs    *ErrorWriter
}

func NewFeedbackHandler(service FeedbackService, errs *ErrorWriter) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		errs:    errs,
	}
}

// --- GET /api/ ---

func (h *FeedbackHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Customer Feedback Portal API"})
}

// --- POST /api/feedback ---

func (h *FeedbackHandler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	var draft models.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		h.errs.Write(w, r, apperrors.MalformedBody(err))
		return
	}

	feedback, err := h.service.Create(r.Context(), &draft)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, feedback)
}

// --- GET /api/feedback ---

func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// --- GET /api/feedback/stats ---

func (h *FeedbackHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// --- GET /api/feedback/category/{category} ---

func (h *FeedbackHandler) ListFeedbackByCategory(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// --- DELETE /api/feedback/{id} ---

func (h *FeedbackHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Feedback deleted successfully"})
}
