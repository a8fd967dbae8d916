package services

import (
	"context"
	"fmt"

	"communitychat-backend/internal/models"
	"communitychat-backend/internal/store"

	"github.com/google/uuid"
)

// FeedbackService handles message rating business logic.
type FeedbackService struct {
	store store.Store
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(store store.Store) *FeedbackService {
	return &FeedbackService{store: store}
}

// SubmitFeedback validates and records a rating against a message. The
// store denormalizes the rating onto the message row. Returns
// *ValidationError for out-of-range input and store.ErrNotFound when the
// message does not exist.
func (s *FeedbackService) SubmitFeedback(ctx context.Context, req models.FeedbackRequest) (*models.FeedbackResponse, error) {
	if req.MessageID == uuid.Nil {
		return nil, &ValidationError{Field: "message_id", Message: "message_id is required"}
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, &ValidationError{Field: "rating", Message: "rating must be between 1 and 5"}
	}

	fb, err := s.store.RecordFeedback(ctx, store.RecordFeedbackParams{
		MessageID: req.MessageID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		UserID:    req.UserID,
	})
	if err != nil {
		if err == store.ErrNotFound {
			return nil, err // Propagate not found error
		}
		return nil, fmt.Errorf("failed to record feedback: %w", err)
	}

	return &models.FeedbackResponse{
		ID:        fb.ID,
		MessageID: fb.MessageID,
		Rating:    fb.Rating,
		CreatedAt: fb.CreatedAt,
	}, nil
}
