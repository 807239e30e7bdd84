package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/basudev-labs/folio-assistant/internal/domain"
	"github.com/basudev-labs/folio-assistant/internal/openai"
	"github.com/basudev-labs/folio-assistant/internal/telemetry"
)

const (
	// HistoryWindow is the number of trailing conversation messages sent to
	// the model alongside the system instruction.
	HistoryWindow = 6

	// FallbackReply is used when the model returns empty content.
	FallbackReply = "I'm not sure how to respond."
)

const systemPromptTemplate = `You are Basudev's AI assistant on his portfolio website.

Current page: %s

Relevant Knowledge:
%s

Instructions:
1. Answer based ONLY on the provided knowledge
2. Be friendly, concise, and professional
3. If unsure, say "I don't have that information"
4. Suggest relevant pages when appropriate
5. Keep responses under 80 words unless detailed info needed
6. Use "I" when referring to Basudev's work/skills
7. End with a helpful question or suggestion

Example responses:
- "I specialize in Python and FastAPI for backend development. Would you like to see my projects?"
- "I'm available for freelance work! Would you like me to take you to the contact page?"`

// ContextRetriever is the retrieval surface the responder depends on.
type ContextRetriever interface {
	RetrieveContext(ctx context.Context, query string, topK int) (string, error)
}

// ResponderService generates grounded replies: it retrieves knowledge
// relevant to the latest user message, binds the model to that context with a
// system instruction, and sends a bounded window of the conversation.
type ResponderService struct {
	retrieval ContextRetriever
	llm       CompletionClient
}

// NewResponderService creates a new ResponderService instance
func NewResponderService(retrieval ContextRetriever, llm CompletionClient) *ResponderService {
	return &ResponderService{
		retrieval: retrieval,
		llm:       llm,
	}
}

// GenerateResponse produces the assistant's reply for one chat turn. Unlike
// intent detection, failures here are the primary path and propagate: the
// calling layer decides how to present an unanswered turn.
func (s *ResponderService) GenerateResponse(ctx context.Context, messages []domain.ChatMessage, currentPage string) (string, error) {
	ctx, span := telemetry.StartSpan(ctx, "ResponderService.GenerateResponse", telemetry.SpanAttributes{
		Operation: "respond",
	})
	defer span.End()

	if len(messages) == 0 {
		return "", domain.ErrEmptyConversation
	}

	lastUserMessage := domain.LastUserMessage(messages)
	if lastUserMessage == "" {
		return "", domain.ErrEmptyQuery
	}

	knowledgeContext, err := s.retrieval.RetrieveContext(ctx, lastUserMessage, DefaultTopK)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve context: %w", err)
	}

	systemPrompt := fmt.Sprintf(systemPromptTemplate, currentPage, knowledgeContext)

	window := domain.TailMessages(messages, HistoryWindow)
	chatMessages := make([]openai.Message, 0, len(window)+1)
	chatMessages = append(chatMessages, openai.Message{
		Role:    string(domain.ChatRoleSystem),
		Content: systemPrompt,
	})
	for _, m := range window {
		chatMessages = append(chatMessages, openai.Message{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	reply, err := s.llm.ChatCompletion(ctx, openai.ChatRequest{
		Messages:    chatMessages,
		Temperature: 0.7,
		MaxTokens:   250,
	})
	if err != nil {
		err = domain.NewDomainErrorWithCause(domain.ErrCodeGeneration, "failed to generate response", err)
		span.SetError(err)
		return "", err
	}

	if strings.TrimSpace(reply) == "" {
		return FallbackReply, nil
	}
	return reply, nil
}
