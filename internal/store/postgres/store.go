package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"communitychat-backend/internal/models"
	"communitychat-backend/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Compile-time check to ensure PostgresStore implements store.Store
var _ store.Store = (*PostgresStore)(nil)

// PostgreSQL error code for foreign_key_violation.
const pgFKViolation = "23503"

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const createConversation = `
INSERT INTO conversations (id, user_id, started_at, last_message_at, context, is_active)
VALUES ($1, $2, $3, $3, '{}'::jsonb, TRUE)
RETURNING id, user_id, started_at, last_message_at, context, is_active;
`

// CreateConversation inserts a new conversation and returns the row as read
// back from the database, so callers always see the stored representation.
func (s *PostgresStore) CreateConversation(ctx context.Context, userID *string) (*models.Conversation, error) {
	id := uuid.New()
	now := time.Now().UTC()

	conv := &models.Conversation{}
	err := s.db.QueryRow(ctx, createConversation, id, userID, now).Scan(
		&conv.ID,
		&conv.UserID,
		&conv.StartedAt,
		&conv.LastMessageAt,
		&conv.Context,
		&conv.IsActive,
	)
	if err != nil {
		log.Printf("ERROR [PostgresStore] CreateConversation: insert failed: %v", err)
		return nil, fmt.Errorf("database error creating conversation: %w", err)
	}

	log.Printf("[PostgresStore] CreateConversation: created conversation %s", conv.ID)
	return conv, nil
}

const appendMessage = `
INSERT INTO messages (id, conversation_id, role, content, created_at, metadata)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, conversation_id, role, content, created_at, rating, metadata;
`

const touchConversation = `
UPDATE conversations SET last_message_at = $2 WHERE id = $1;
`

// AppendMessage persists a message, then bumps the parent conversation's
// last_message_at. The two writes are deliberately sequenced insert-first so
// a reader never observes a message newer than its conversation's
// last_message_at within the same session.
// Returns store.ErrNotFound when the conversation does not exist.
func (s *PostgresStore) AppendMessage(ctx context.Context, arg store.AppendMessageParams) (*models.Message, error) {
	id := uuid.New()
	now := time.Now().UTC()

	metadata := arg.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	msg := &models.Message{}
	err := s.db.QueryRow(ctx, appendMessage, id, arg.ConversationID, arg.Role, arg.Content, now, metadata).Scan(
		&msg.ID,
		&msg.ConversationID,
		&msg.Role,
		&msg.Content,
		&msg.CreatedAt,
		&msg.Rating,
		&msg.Metadata,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgFKViolation {
			log.Printf("[PostgresStore] AppendMessage: conversation %s not found", arg.ConversationID)
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] AppendMessage: insert failed for conversation %s: %v", arg.ConversationID, err)
		return nil, fmt.Errorf("database error appending message: %w", err)
	}

	if _, err := s.db.Exec(ctx, touchConversation, arg.ConversationID, msg.CreatedAt); err != nil {
		log.Printf("ERROR [PostgresStore] AppendMessage: failed to update last_message_at for conversation %s: %v", arg.ConversationID, err)
		return nil, fmt.Errorf("database error updating conversation timestamp: %w", err)
	}

	return msg, nil
}

const getMessages = `
SELECT id, conversation_id, role, content, created_at, rating, metadata
FROM messages
WHERE conversation_id = $1
ORDER BY created_at ASC;
`

// GetMessages returns the full message history of a conversation in
// ascending timestamp order. An unknown conversation id yields an empty
// slice, not an error.
func (s *PostgresStore) GetMessages(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error) {
	rows, err := s.db.Query(ctx, getMessages, conversationID)
	if err != nil {
		log.Printf("ERROR [PostgresStore] GetMessages: query failed for conversation %s: %v", conversationID, err)
		return nil, fmt.Errorf("database error fetching messages: %w", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(
			&m.ID,
			&m.ConversationID,
			&m.Role,
			&m.Content,
			&m.CreatedAt,
			&m.Rating,
			&m.Metadata,
		); err != nil {
			return nil, fmt.Errorf("error scanning message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}
