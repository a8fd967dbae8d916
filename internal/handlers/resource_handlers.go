package handlers

import (
	"net/http"
	"strconv"

	"communitychat-backend/internal/services"
)

// ResourceHandlers handles HTTP requests for community resources, events
// and usage statistics.
type ResourceHandlers struct {
	resourceService *services.ResourceService
}

// NewResourceHandlers creates a new ResourceHandlers instance.
func NewResourceHandlers(resourceService *services.ResourceService) *ResourceHandlers {
	return &ResourceHandlers{resourceService: resourceService}
}

// HandleSearchResources searches active community resources. Both the q
// and category query parameters are optional.
func (h *ResourceHandlers) HandleSearchResources(w http.ResponseWriter, r *http.Request) {
	var query, category *string
	if q := r.URL.Query().Get("q"); q != "" {
		query = &q
	}
	if c := r.URL.Query().Get("category"); c != "" {
		category = &c
	}

	resources, err := h.resourceService.SearchResources(r.Context(), query, category)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, resources)
}

// HandleListEvents returns upcoming active events, optionally bounded by a
// limit query parameter.
func (h *ResourceHandlers) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil {
			RespondWithError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	events, err := h.resourceService.UpcomingEvents(r.Context(), limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, events)
}

// HandleGetStats returns today's usage counters.
func (h *ResourceHandlers) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.resourceService.TodayStats(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, stats)
}
