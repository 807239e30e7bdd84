package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/basudev-labs/folio-assistant/internal/domain"
	"github.com/basudev-labs/folio-assistant/internal/openai"
	"github.com/basudev-labs/folio-assistant/internal/telemetry"
)

// CompletionClient defines the interface for chat completion calls
type CompletionClient interface {
	ChatCompletion(ctx context.Context, req openai.ChatRequest) (string, error)
}

const intentPrompt = `Analyze user intent. Current page: %s

User: "%s"

Detect intent and suggest action. Response format (JSON only):
{
  "intent": "contact|projects|about|services|skills|general",
  "confidence": 0.0-1.0,
  "suggestedAction": {
    "type": "navigate|form|none",
    "target": "/contact",
    "data": {"subject": "extracted subject", "message": "extracted context"}
  }
}

Intent keywords:
- contact: "hire", "email", "get in touch", "contact", "reach out"
- projects: "work", "portfolio", "examples", "built", "projects"
- about: "who", "background", "experience", "about"
- services: "services", "offer", "help with", "do"
- skills: "skills", "know", "expertise", "technologies"`

// IntentService classifies what the visitor is trying to do. The model is the
// classifier; this service owns the prompt contract and the typed decode of
// its output.
type IntentService struct {
	llm CompletionClient
}

// NewIntentService creates a new IntentService instance
func NewIntentService(llm CompletionClient) *IntentService {
	return &IntentService{llm: llm}
}

// DetectIntent classifies the user message against the fixed intent
// vocabulary. Classification is an optional enhancement: every failure mode
// (provider error, malformed JSON, unknown fields) degrades to the safe
// default rather than surfacing an error, so a failed classification never
// blocks the conversation.
func (s *IntentService) DetectIntent(ctx context.Context, userMessage, currentPage string) *domain.IntentResult {
	ctx, span := telemetry.StartSpan(ctx, "IntentService.DetectIntent", telemetry.SpanAttributes{
		Operation: "intent",
	})
	defer span.End()

	prompt := fmt.Sprintf(intentPrompt, currentPage, userMessage)

	raw, err := s.llm.ChatCompletion(ctx, openai.ChatRequest{
		Messages:    []openai.Message{{Role: string(domain.ChatRoleUser), Content: prompt}},
		Temperature: 0.2,
		MaxTokens:   200,
		JSONOnly:    true,
	})
	if err != nil {
		log.Printf("intent detection failed: %v", err)
		return domain.DefaultIntentResult()
	}

	return decodeIntent(raw)
}

type intentPayload struct {
	Intent          string         `json:"intent"`
	Confidence      float64        `json:"confidence"`
	SuggestedAction *actionPayload `json:"suggestedAction"`
}

type actionPayload struct {
	Type   string            `json:"type"`
	Target string            `json:"target"`
	Data   map[string]string `json:"data"`
}

// decodeIntent validates the model's JSON against the intent contract.
// Anything outside the documented vocabulary maps to the safe default.
func decodeIntent(raw string) *domain.IntentResult {
	var payload intentPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		log.Printf("intent response is not valid JSON: %v", err)
		return domain.DefaultIntentResult()
	}

	intent := domain.Intent(payload.Intent)
	if !domain.IsValidIntent(intent) {
		return domain.DefaultIntentResult()
	}

	confidence := payload.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	action := &domain.SuggestedAction{Type: domain.ActionNone}
	if payload.SuggestedAction != nil && domain.IsValidActionType(domain.ActionType(payload.SuggestedAction.Type)) {
		action = &domain.SuggestedAction{
			Type:   domain.ActionType(payload.SuggestedAction.Type),
			Target: payload.SuggestedAction.Target,
			Data:   payload.SuggestedAction.Data,
		}
	}

	return &domain.IntentResult{
		Intent:          intent,
		Confidence:      confidence,
		SuggestedAction: action,
	}
}
