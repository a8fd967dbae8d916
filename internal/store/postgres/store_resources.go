package postgres

import (
	"context"
	"fmt"
	"log"

	"communitychat-backend/internal/models"
	"communitychat-backend/internal/store"
)

// --- Community Resource Methods ---

const searchResourcesBase = `
SELECT id, title, content, organization, category, url, phone, is_active, created_at
FROM community_resources
WHERE is_active = TRUE
`

// SearchResources returns active community resources, optionally narrowed
// by exact category and/or a case-insensitive substring match across
// title, content and organization. Results are ordered by title.
func (s *PostgresStore) SearchResources(ctx context.Context, arg store.SearchResourcesParams) ([]models.CommunityResource, error) {
	query := searchResourcesBase
	args := []any{}

	if arg.Category != nil && *arg.Category != "" {
		args = append(args, *arg.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if arg.Query != nil && *arg.Query != "" {
		args = append(args, "%"+*arg.Query+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (title ILIKE $%d OR content ILIKE $%d OR organization ILIKE $%d)", n, n, n)
	}
	query += " ORDER BY title ASC;"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("ERROR [PostgresStore] SearchResources: query failed: %v", err)
		return nil, fmt.Errorf("database error searching resources: %w", err)
	}
	defer rows.Close()

	resources := []models.CommunityResource{}
	for rows.Next() {
		var r models.CommunityResource
		if err := rows.Scan(
			&r.ID,
			&r.Title,
			&r.Content,
			&r.Organization,
			&r.Category,
			&r.URL,
			&r.Phone,
			&r.IsActive,
			&r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning community resource: %w", err)
		}
		resources = append(resources, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating community resources: %w", err)
	}

	return resources, nil
}

// --- Event Methods ---

const upcomingEvents = `
SELECT id, title, description, location, event_date, is_active, created_at
FROM events
WHERE is_active = TRUE AND event_date >= NOW()
ORDER BY event_date ASC
LIMIT $1;
`

const defaultEventLimit = 10

// UpcomingEvents returns active future events ascending by date, bounded to
// limit rows (default 10 when limit is not positive).
func (s *PostgresStore) UpcomingEvents(ctx context.Context, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = defaultEventLimit
	}

	rows, err := s.db.Query(ctx, upcomingEvents, limit)
	if err != nil {
		log.Printf("ERROR [PostgresStore] UpcomingEvents: query failed: %v", err)
		return nil, fmt.Errorf("database error fetching events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(
			&e.ID,
			&e.Title,
			&e.Description,
			&e.Location,
			&e.EventDate,
			&e.IsActive,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}
