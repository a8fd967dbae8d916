package services

import (
	"context"
	"fmt"
	"time"

	"communitychat-backend/internal/models"
	"communitychat-backend/internal/store"
)

// ResourceService handles community resource, event and statistics reads.
type ResourceService struct {
	store store.Store
}

// NewResourceService creates a new ResourceService.
func NewResourceService(store store.Store) *ResourceService {
	return &ResourceService{store: store}
}

// SearchResources returns active resources, optionally filtered by a free
// text query and/or exact category.
func (s *ResourceService) SearchResources(ctx context.Context, query, category *string) (*models.ListResourcesResponse, error) {
	resources, err := s.store.SearchResources(ctx, store.SearchResourcesParams{
		Query:    query,
		Category: category,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search resources: %w", err)
	}

	responseResources := make([]models.ResourceResponse, 0, len(resources))
	for _, r := range resources {
		responseResources = append(responseResources, models.ResourceResponse{
			ID:           r.ID,
			Title:        r.Title,
			Content:      r.Content,
			Organization: r.Organization,
			Category:     r.Category,
			URL:          r.URL,
			Phone:        r.Phone,
		})
	}

	return &models.ListResourcesResponse{Resources: responseResources}, nil
}

// UpcomingEvents returns active future events. Limit defaults to 10 and is
// capped at 50.
func (s *ResourceService) UpcomingEvents(ctx context.Context, limit int) (*models.ListEventsResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	events, err := s.store.UpcomingEvents(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	responseEvents := make([]models.EventResponse, 0, len(events))
	for _, e := range events {
		responseEvents = append(responseEvents, models.EventResponse{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			Location:    e.Location,
			EventDate:   e.EventDate,
		})
	}

	return &models.ListEventsResponse{Events: responseEvents}, nil
}

// TodayStats returns today's usage counters.
func (s *ResourceService) TodayStats(ctx context.Context) (*models.StatsResponse, error) {
	stats, err := s.store.GetDailyStats(ctx, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch daily stats: %w", err)
	}

	return &models.StatsResponse{
		StatDate:       stats.StatDate.Format("2006-01-02"),
		ChatsHandled:   stats.ChatsHandled,
		FallbackServed: stats.FallbackServed,
	}, nil
}
