package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/basudev-labs/folio-assistant/internal/api"
	"github.com/basudev-labs/folio-assistant/internal/domain"
)

// IntentService classifies the visitor's intent for one chat turn.
type IntentService interface {
	DetectIntent(ctx context.Context, userMessage, currentPage string) *domain.IntentResult
}

// ResponderService generates a grounded reply for one chat turn.
type ResponderService interface {
	GenerateResponse(ctx context.Context, messages []domain.ChatMessage, currentPage string) (string, error)
}

// ChatHandler exposes intent detection and response generation as two
// independent operations; the UI fans out to both and joins their results.
type ChatHandler struct {
	intents   IntentService
	responder ResponderService
}

func NewChatHandler(intents IntentService, responder ResponderService) *ChatHandler {
	return &ChatHandler{intents: intents, responder: responder}
}

type ChatMessagePayload struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages    []ChatMessagePayload `json:"messages"`
	CurrentPath string               `json:"current_path"`
}

type SuggestedActionResponse struct {
	Type   string            `json:"type"`
	Target string            `json:"target,omitempty"`
	Data   map[string]string `json:"data,omitempty"`
}

type IntentResponse struct {
	Intent          string                   `json:"intent"`
	Confidence      float64                  `json:"confidence"`
	SuggestedAction *SuggestedActionResponse `json:"suggestedAction,omitempty"`
}

type DetectIntentResponse struct {
	Intent IntentResponse `json:"intent"`
}

type GenerateResponseResponse struct {
	Response string `json:"response"`
}

// DetectIntent handles POST /chat/intent
func (h *ChatHandler) DetectIntent(w http.ResponseWriter, r *http.Request) {
	messages, currentPath, err := decodeChatRequest(r)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	userMessage := domain.LastUserMessage(messages)

	var result *domain.IntentResult
	if userMessage == "" {
		// Nothing to classify; skip the model call.
		result = domain.DefaultIntentResult()
	} else {
		result = h.intents.DetectIntent(r.Context(), userMessage, currentPath)
	}

	api.Success(w, http.StatusOK, DetectIntentResponse{Intent: toIntentResponse(result)})
}

// GenerateResponse handles POST /chat/response
func (h *ChatHandler) GenerateResponse(w http.ResponseWriter, r *http.Request) {
	messages, currentPath, err := decodeChatRequest(r)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	reply, err := h.responder.GenerateResponse(r.Context(), messages, currentPath)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, GenerateResponseResponse{Response: reply})
}

func decodeChatRequest(r *http.Request) ([]domain.ChatMessage, string, error) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, "", domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid request body", err)
	}

	if len(req.Messages) == 0 {
		return nil, "", domain.ErrEmptyConversation
	}

	messages := make([]domain.ChatMessage, len(req.Messages))
	for i, m := range req.Messages {
		msg := domain.ChatMessage{Role: domain.ChatRole(m.Role), Content: m.Content}
		if err := domain.ValidateChatMessage(msg); err != nil {
			return nil, "", domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid chat message", err)
		}
		messages[i] = msg
	}

	currentPath := req.CurrentPath
	if currentPath == "" {
		currentPath = "/"
	}

	return messages, currentPath, nil
}

func toIntentResponse(result *domain.IntentResult) IntentResponse {
	resp := IntentResponse{
		Intent:     string(result.Intent),
		Confidence: result.Confidence,
	}
	if result.SuggestedAction != nil {
		resp.SuggestedAction = &SuggestedActionResponse{
			Type:   string(result.SuggestedAction.Type),
			Target: result.SuggestedAction.Target,
			Data:   result.SuggestedAction.Data,
		}
	}
	return resp
}
