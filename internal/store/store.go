package store

import (
	"context"
	"errors"
	"time"

	"communitychat-backend/internal/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// AppendMessageParams contains parameters for appending a message to a
// conversation. Metadata is marshaled to JSONB by the implementation.
type AppendMessageParams struct {
	ConversationID uuid.UUID
	Role           string // models.RoleUser or models.RoleAssistant
	Content        string
	Metadata       map[string]any // nil for user messages
}

// RecordFeedbackParams contains parameters for recording feedback against
// a message. Rating range validation happens in the service layer.
type RecordFeedbackParams struct {
	MessageID uuid.UUID
	Rating    int
	Comment   *string
	UserID    *string
}

// SearchResourcesParams narrows a community resource search. Both filters
// are optional; nil means no filtering on that axis.
type SearchResourcesParams struct {
	Query    *string // case-insensitive substring over title/content/organization
	Category *string // exact match
}

// Store defines the interface for database operations.
// This allows for mocking in tests and potential DB backend switching.
type Store interface {
	// Conversation operations
	CreateConversation(ctx context.Context, userID *string) (*models.Conversation, error)

	// Message operations. AppendMessage returns ErrNotFound when the
	// conversation does not exist (enforced by the FK constraint), and
	// bumps the parent conversation's last_message_at after the insert.
	AppendMessage(ctx context.Context, arg AppendMessageParams) (*models.Message, error)
	GetMessages(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error)

	// Feedback operations. RecordFeedback inserts the feedback row and
	// denormalizes the rating onto the referenced message.
	RecordFeedback(ctx context.Context, arg RecordFeedbackParams) (*models.Feedback, error)

	// Community content operations
	SearchResources(ctx context.Context, arg SearchResourcesParams) ([]models.CommunityResource, error)
	UpcomingEvents(ctx context.Context, limit int) ([]models.Event, error)

	// Statistics operations
	BumpDailyStats(ctx context.Context, fallbackServed bool) error
	GetDailyStats(ctx context.Context, day time.Time) (*models.DailyStats, error)

	// HealthCheck reports whether a trivial read against the statistics
	// table succeeds.
	HealthCheck(ctx context.Context) bool
}
