package handlers

import (
	"encoding/json"
	"net/http"

	"communitychat-backend/internal/models"
	"communitychat-backend/internal/services"
)

// FeedbackHandlers handles HTTP requests for rating messages.
type FeedbackHandlers struct {
	feedbackService *services.FeedbackService
}

// NewFeedbackHandlers creates a new FeedbackHandlers instance.
func NewFeedbackHandlers(feedbackService *services.FeedbackService) *FeedbackHandlers {
	return &FeedbackHandlers{feedbackService: feedbackService}
}

// HandleSubmitFeedback records a 1-5 rating against a message.
func (h *FeedbackHandlers) HandleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req models.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fb, err := h.feedbackService.SubmitFeedback(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusCreated, fb)
}
