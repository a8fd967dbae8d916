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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- Feedback Methods ---

const insertFeedback = `
INSERT INTO feedback (id, message_id, rating, comment, user_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, message_id, rating, comment, user_id, created_at;
`

const denormalizeRating = `
UPDATE messages SET rating = $2 WHERE id = $1;
`

// RecordFeedback inserts a feedback row and copies the rating onto the
// referenced message. The copy is a deliberate denormalization so message
// reads never need a join against feedback.
// Returns store.ErrNotFound when the message does not exist.
func (s *PostgresStore) RecordFeedback(ctx context.Context, arg store.RecordFeedbackParams) (*models.Feedback, error) {
	id := uuid.New()
	now := time.Now().UTC()

	fb := &models.Feedback{}
	err := s.db.QueryRow(ctx, insertFeedback, id, arg.MessageID, arg.Rating, arg.Comment, arg.UserID, now).Scan(
		&fb.ID,
		&fb.MessageID,
		&fb.Rating,
		&fb.Comment,
		&fb.UserID,
		&fb.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgFKViolation {
			log.Printf("[PostgresStore] RecordFeedback: message %s not found", arg.MessageID)
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] RecordFeedback: insert failed for message %s: %v", arg.MessageID, err)
		return nil, fmt.Errorf("database error recording feedback: %w", err)
	}

	if _, err := s.db.Exec(ctx, denormalizeRating, arg.MessageID, arg.Rating); err != nil {
		log.Printf("ERROR [PostgresStore] RecordFeedback: failed to update rating on message %s: %v", arg.MessageID, err)
		return nil, fmt.Errorf("database error updating message rating: %w", err)
	}

	log.Printf("[PostgresStore] RecordFeedback: recorded rating %d for message %s", arg.Rating, arg.MessageID)
	return fb, nil
}

// --- Statistics Methods ---

const bumpDailyStats = `
INSERT INTO statistics (stat_date, chats_handled, fallback_served)
VALUES (CURRENT_DATE, 1, $1)
ON CONFLICT (stat_date) DO UPDATE SET
    chats_handled = statistics.chats_handled + 1,
    fallback_served = statistics.fallback_served + EXCLUDED.fallback_served;
`

// BumpDailyStats upserts today's usage counters. Callers treat this as
// best-effort; a failed bump must never fail a chat turn.
func (s *PostgresStore) BumpDailyStats(ctx context.Context, fallbackServed bool) error {
	served := 0
	if fallbackServed {
		served = 1
	}
	if _, err := s.db.Exec(ctx, bumpDailyStats, served); err != nil {
		return fmt.Errorf("database error bumping daily stats: %w", err)
	}
	return nil
}

const getDailyStats = `
SELECT stat_date, chats_handled, fallback_served
FROM statistics
WHERE stat_date = $1;
`

// GetDailyStats returns the counters for the given calendar date. A day
// with no traffic yields a zeroed row rather than an error.
func (s *PostgresStore) GetDailyStats(ctx context.Context, day time.Time) (*models.DailyStats, error) {
	stats := &models.DailyStats{}
	err := s.db.QueryRow(ctx, getDailyStats, day.Format("2006-01-02")).Scan(
		&stats.StatDate,
		&stats.ChatsHandled,
		&stats.FallbackServed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &models.DailyStats{StatDate: day}, nil
		}
		log.Printf("ERROR [PostgresStore] GetDailyStats: query failed for %s: %v", day.Format("2006-01-02"), err)
		return nil, fmt.Errorf("database error fetching daily stats: %w", err)
	}
	return stats, nil
}

const statsHealthProbe = `SELECT COUNT(*) FROM statistics;`

// HealthCheck reports whether a trivial read against the statistics table
// succeeds.
func (s *PostgresStore) HealthCheck(ctx context.Context) bool {
	var count int64
	if err := s.db.QueryRow(ctx, statsHealthProbe).Scan(&count); err != nil {
		log.Printf("[PostgresStore] HealthCheck failed: %v", err)
		return false
	}
	return true
}
