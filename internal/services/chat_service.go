package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"communitychat-backend/internal/ai"
	"communitychat-backend/internal/models"
	"communitychat-backend/internal/persona"
	"communitychat-backend/internal/store"

	"github.com/google/uuid"
)

// CompletionProvider is the slice of the AI client the orchestrator needs.
type CompletionProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}

const (
	maxMessageLength = 2000

	sourceProviderAPI    = "provider_api"
	sourceLocalKnowledge = "local_knowledge"
	sourceStatic         = "static_response"

	localKnowledgeModel = "local_knowledge"
	staticModel         = "static"

	fallbackReasonProviderUnavailable = "provider_unavailable"

	providerConfidence  = 0.95
	fallbackConfidence  = 0.85
	emergencyConfidence = 0.7
)

// emergencyMessage is the final degradation tier: returned verbatim when
// anything in the turn pipeline fails in a way the fallback tier cannot
// absorb, without any persistence guarantee.
const emergencyMessage = "I'm really sorry, something went wrong on my end just now. Please try again in a " +
	"moment. If you need urgent support, you can call Samaritans free on 116 123, any time."

// ChatService orchestrates one chat turn: resolve the conversation, store
// the user message, call the AI provider, degrade to the local knowledge
// base or the static emergency reply as needed, and store the assistant
// reply with provenance metadata. A caller always gets a usable result.
type ChatService struct {
	store    store.Store
	provider CompletionProvider
	persona  *persona.Engine
}

// NewChatService creates a new ChatService.
func NewChatService(store store.Store, provider CompletionProvider, persona *persona.Engine) *ChatService {
	return &ChatService{
		store:    store,
		provider: provider,
		persona:  persona,
	}
}

// turnOutcome tags which degradation tier produced the reply. Keeping the
// tier explicit here, rather than buried in error handling, is what makes
// the provider -> local knowledge -> emergency chain testable.
type turnOutcome struct {
	mode       string
	reply      string
	model      string
	source     string
	confidence float64
	metadata   map[string]any
}

// ProcessChat runs one full chat turn. The only error it returns is
// *ValidationError for malformed input; every other failure is converted
// into an emergency-mode result so the caller never sees a bare failure.
func (s *ChatService) ProcessChat(ctx context.Context, req models.ChatRequest) (*models.ChatResult, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, &ValidationError{Field: "message", Message: "message is required"}
	}
	if utf8.RuneCountInString(message) > maxMessageLength {
		return nil, &ValidationError{Field: "message", Message: "message must be at most 2000 characters"}
	}

	return s.runTurn(ctx, message, req), nil
}

func (s *ChatService) runTurn(ctx context.Context, message string, req models.ChatRequest) *models.ChatResult {
	conversationID, err := s.resolveConversation(ctx, req)
	if err != nil {
		log.Printf("ERROR [ChatService] failed to resolve conversation: %v", err)
		return s.emergencyResult(uuid.Nil)
	}

	_, err = s.store.AppendMessage(ctx, store.AppendMessageParams{
		ConversationID: conversationID,
		Role:           models.RoleUser,
		Content:        message,
	})
	if err != nil {
		log.Printf("ERROR [ChatService] failed to store user message in conversation %s: %v", conversationID, err)
		return s.emergencyResult(conversationID)
	}

	prompt := s.persona.Enhance(message)

	out, ok := s.completeTurn(ctx, prompt, message)
	if !ok {
		return s.emergencyResult(conversationID)
	}

	reply, err := s.store.AppendMessage(ctx, store.AppendMessageParams{
		ConversationID: conversationID,
		Role:           models.RoleAssistant,
		Content:        out.reply,
		Metadata:       out.metadata,
	})
	if err != nil {
		log.Printf("ERROR [ChatService] failed to store assistant message in conversation %s: %v", conversationID, err)
		return s.emergencyResult(conversationID)
	}

	// Best-effort: a failed stats bump never changes the turn outcome.
	if err := s.store.BumpDailyStats(ctx, out.mode == models.ModeFallback); err != nil {
		log.Printf("WARN [ChatService] failed to bump daily stats: %v", err)
	}

	return &models.ChatResult{
		Response:       out.reply,
		Model:          out.model,
		Source:         out.source,
		Confidence:     out.confidence,
		Timestamp:      reply.CreatedAt,
		Mode:           out.mode,
		ConversationID: conversationID,
	}
}

// resolveConversation uses the caller-supplied conversation id as-is when
// present (existence is validated implicitly by the next store write) and
// creates a fresh conversation otherwise.
func (s *ChatService) resolveConversation(ctx context.Context, req models.ChatRequest) (uuid.UUID, error) {
	if req.ConversationID != nil {
		return *req.ConversationID, nil
	}
	conv, err := s.store.CreateConversation(ctx, req.UserID)
	if err != nil {
		return uuid.Nil, err
	}
	return conv.ID, nil
}

// completeTurn attempts the provider call and selects the provider or
// fallback tier. ProviderError is always recovered locally; any other
// completion error escalates to the emergency tier (ok == false).
func (s *ChatService) completeTurn(ctx context.Context, prompt, message string) (turnOutcome, bool) {
	rawReply, err := s.provider.Complete(ctx, prompt)
	if err == nil {
		return turnOutcome{
			mode:       models.ModeProvider,
			reply:      s.persona.PostProcess(rawReply, message),
			model:      s.provider.Model(),
			source:     sourceProviderAPI,
			confidence: providerConfidence,
			metadata: map[string]any{
				"model":      s.provider.Model(),
				"source":     sourceProviderAPI,
				"confidence": providerConfidence,
			},
		}, true
	}

	var provErr *ai.ProviderError
	if !errors.As(err, &provErr) {
		log.Printf("ERROR [ChatService] unexpected completion error: %v", err)
		return turnOutcome{}, false
	}

	log.Printf("[ChatService] provider unavailable (%v), serving local knowledge fallback", provErr)
	return turnOutcome{
		mode:       models.ModeFallback,
		reply:      s.persona.PostProcess(s.persona.Fallback(message), message),
		model:      localKnowledgeModel,
		source:     sourceLocalKnowledge,
		confidence: fallbackConfidence,
		metadata: map[string]any{
			"model":           localKnowledgeModel,
			"source":          sourceLocalKnowledge,
			"confidence":      fallbackConfidence,
			"fallback_reason": fallbackReasonProviderUnavailable,
		},
	}, true
}

func (s *ChatService) emergencyResult(conversationID uuid.UUID) *models.ChatResult {
	return &models.ChatResult{
		Response:       emergencyMessage,
		Model:          staticModel,
		Source:         sourceStatic,
		Confidence:     emergencyConfidence,
		Timestamp:      time.Now().UTC(),
		Mode:           models.ModeEmergency,
		ConversationID: conversationID,
	}
}

// ListMessages returns a conversation's history in timestamp order. An
// unknown conversation yields an empty list, not an error.
func (s *ChatService) ListMessages(ctx context.Context, conversationID uuid.UUID) (*models.ListMessagesResponse, error) {
	messages, err := s.store.GetMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	responseMessages := make([]models.MessageResponse, 0, len(messages))
	for _, m := range messages {
		responseMessages = append(responseMessages, models.MessageResponse{
			ID:             m.ID,
			ConversationID: m.ConversationID,
			Role:           m.Role,
			Content:        m.Content,
			CreatedAt:      m.CreatedAt,
			Rating:         m.Rating,
			Metadata:       m.Metadata,
		})
	}

	return &models.ListMessagesResponse{
		ConversationID: conversationID,
		Messages:       responseMessages,
	}, nil
}
