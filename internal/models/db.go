package models

import (
	"time"

	"github.com/google/uuid"
)

// Message roles accepted by the store. The messages table enforces the same
// set with a CHECK constraint.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation represents one chat session in the database.
// Conversations are never deleted by the core; they are soft-deactivated
// by setting IsActive to false.
type Conversation struct {
	ID            uuid.UUID      `db:"id"`
	UserID        *string        `db:"user_id"` // Optional opaque external user reference
	StartedAt     time.Time      `db:"started_at"`
	LastMessageAt time.Time      `db:"last_message_at"`
	Context       map[string]any `db:"context"` // Stored as JSONB
	IsActive      bool           `db:"is_active"`
}

// Message represents a single message within a conversation. Messages are
// immutable once written, except for Rating which feedback may set once.
type Message struct {
	ID             uuid.UUID      `db:"id"`
	ConversationID uuid.UUID      `db:"conversation_id"`
	Role           string         `db:"role"` // "user" or "assistant"
	Content        string         `db:"content"`
	CreatedAt      time.Time      `db:"created_at"`
	Rating         *int           `db:"rating"`   // 1-5, set via feedback
	Metadata       map[string]any `db:"metadata"` // model, source, confidence, fallback_reason
}

// Feedback is an append-only record of a rating left against a message.
// Writing feedback also denormalizes the rating onto the message row for
// fast reads.
type Feedback struct {
	ID        uuid.UUID `db:"id"`
	MessageID uuid.UUID `db:"message_id"`
	Rating    int       `db:"rating"`
	Comment   *string   `db:"comment"`
	UserID    *string   `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

// CommunityResource is a signpostable local service (advice line, drop-in,
// clinic). Maintained externally; this core only reads active rows.
type CommunityResource struct {
	ID           uuid.UUID `db:"id"`
	Title        string    `db:"title"`
	Content      string    `db:"content"`
	Organization string    `db:"organization"`
	Category     string    `db:"category"`
	URL          *string   `db:"url"`
	Phone        *string   `db:"phone"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
}

// Event is an upcoming community event.
type Event struct {
	ID          uuid.UUID `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Location    string    `db:"location"`
	EventDate   time.Time `db:"event_date"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
}

// DailyStats is one row of the statistics table, keyed by calendar date.
type DailyStats struct {
	StatDate       time.Time `db:"stat_date"`
	ChatsHandled   int       `db:"chats_handled"`
	FallbackServed int       `db:"fallback_served"`
}
