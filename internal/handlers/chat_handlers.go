package handlers

import (
	"encoding/json"
	"net/http"

	"communitychat-backend/internal/models"
	"communitychat-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ChatHandlers handles HTTP requests related to chat turns and history.
type ChatHandlers struct {
	chatService *services.ChatService
}

// NewChatHandlers creates a new ChatHandlers instance.
func NewChatHandlers(chatService *services.ChatService) *ChatHandlers {
	return &ChatHandlers{chatService: chatService}
}

// HandleChat handles one chat turn. The response always carries a mode
// field (provider, fallback or emergency) disclosing which tier produced
// the reply; only input validation fails with a 400.
func (h *ChatHandlers) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.chatService.ProcessChat(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, result)
}

// HandleListMessages returns a conversation's message history in timestamp
// order. An unknown conversation yields an empty list, not a 404.
func (h *ChatHandlers) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	conversationIDStr := chi.URLParam(r, "conversationID")
	conversationID, err := uuid.Parse(conversationIDStr)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid conversation ID")
		return
	}

	history, err := h.chatService.ListMessages(r.Context(), conversationID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, history)
}
