package models

import (
	"time"

	"github.com/google/uuid"
)

// --- Request Structs ---

// ChatRequest defines the expected body for the chat endpoint.
type ChatRequest struct {
	Message        string     `json:"message"`
	ConversationID *uuid.UUID `json:"conversation_id,omitempty"`
	UserID         *string    `json:"user_id,omitempty"`
}

// FeedbackRequest defines the body for rating an assistant message.
type FeedbackRequest struct {
	MessageID uuid.UUID `json:"message_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	UserID    *string   `json:"user_id,omitempty"`
}

// --- Response Structs ---

// Chat result modes. Every chat response carries exactly one of these so
// downstream consumers can tell AI-grade replies from degraded ones.
const (
	ModeProvider  = "provider"
	ModeFallback  = "fallback"
	ModeEmergency = "emergency"
)

// ChatResult is the caller-visible outcome of one chat turn. A result is
// always returned, even when the AI provider is completely unavailable.
type ChatResult struct {
	Response       string    `json:"response"`
	Model          string    `json:"model"`
	Source         string    `json:"source"`
	Confidence     float64   `json:"confidence"`
	Timestamp      time.Time `json:"timestamp"`
	Mode           string    `json:"mode"` // "provider", "fallback" or "emergency"
	ConversationID uuid.UUID `json:"conversation_id"`
}

// MessageResponse defines the message data returned by the API.
type MessageResponse struct {
	ID             uuid.UUID      `json:"id"`
	ConversationID uuid.UUID      `json:"conversation_id"`
	Role           string         `json:"role"`
	Content        string         `json:"content"`
	CreatedAt      time.Time      `json:"created_at"`
	Rating         *int           `json:"rating,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// ListMessagesResponse wraps an ordered message history.
type ListMessagesResponse struct {
	ConversationID uuid.UUID         `json:"conversation_id"`
	Messages       []MessageResponse `json:"messages"`
}

// FeedbackResponse defines the data returned after recording feedback.
type FeedbackResponse struct {
	ID        uuid.UUID `json:"id"`
	MessageID uuid.UUID `json:"message_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// ResourceResponse defines the community resource data returned by the API.
type ResourceResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Organization string    `json:"organization"`
	Category     string    `json:"category"`
	URL          *string   `json:"url,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
}

// ListResourcesResponse wraps a resource search result.
type ListResourcesResponse struct {
	Resources []ResourceResponse `json:"resources"`
}

// EventResponse defines the event data returned by the API.
type EventResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	EventDate   time.Time `json:"event_date"`
}

// ListEventsResponse wraps upcoming events.
type ListEventsResponse struct {
	Events []EventResponse `json:"events"`
}

// StatsResponse defines the daily usage counters returned by the API.
type StatsResponse struct {
	StatDate       string `json:"stat_date"`
	ChatsHandled   int    `json:"chats_handled"`
	FallbackServed int    `json:"fallback_served"`
}

// HealthResponse reports component-level health. The endpoint itself
// returns 200 whenever the process is up; degraded components are
// disclosed in the body.
type HealthResponse struct {
	Status     string `json:"status"` // "ok" or "degraded"
	Database   bool   `json:"database"`
	AIProvider bool   `json:"ai_provider"`
	AIModel    string `json:"ai_model"`
}

// ErrorResponse defines the standard structure for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
