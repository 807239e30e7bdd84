package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/basudev-labs/folio-assistant/internal/domain"
	"github.com/basudev-labs/folio-assistant/internal/openai"
)

// MockContextRetriever is a mock implementation of ContextRetriever
type MockContextRetriever struct {
	mock.Mock
}

func (m *MockContextRetriever) RetrieveContext(ctx context.Context, query string, topK int) (string, error) {
	args := m.Called(ctx, query, topK)
	return args.String(0), args.Error(1)
}

func conversation() []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: domain.ChatRoleUser, Content: "Hi there"},
		{Role: domain.ChatRoleAssistant, Content: "Hello! How can I help?"},
		{Role: domain.ChatRoleUser, Content: "What backend languages do you know?"},
	}
}

func TestResponderService_GenerateResponse(t *testing.T) {
	retriever := new(MockContextRetriever)
	llm := new(MockCompletionClient)
	svc := NewResponderService(retriever, llm)

	retriever.On("RetrieveContext", mock.Anything, "What backend languages do you know?", DefaultTopK).
		Return("## Skills\nPython, FastAPI", nil)
	llm.On("ChatCompletion", mock.Anything, mock.MatchedBy(func(req openai.ChatRequest) bool {
		if len(req.Messages) != 4 || req.Messages[0].Role != "system" {
			return false
		}
		system := req.Messages[0].Content
		return strings.Contains(system, "## Skills\nPython, FastAPI") &&
			strings.Contains(system, "Current page: /about") &&
			!req.JSONOnly
	})).Return("I specialize in Python and FastAPI. Want to see my projects?", nil)

	reply, err := svc.GenerateResponse(context.Background(), conversation(), "/about")

	require.NoError(t, err)
	assert.Equal(t, "I specialize in Python and FastAPI. Want to see my projects?", reply)
	retriever.AssertExpectations(t)
	llm.AssertExpectations(t)
}

func TestResponderService_GenerateResponse_BoundedHistoryWindow(t *testing.T) {
	retriever := new(MockContextRetriever)
	llm := new(MockCompletionClient)
	svc := NewResponderService(retriever, llm)

	var messages []domain.ChatMessage
	for i := 0; i < 10; i++ {
		role := domain.ChatRoleUser
		if i%2 == 1 {
			role = domain.ChatRoleAssistant
		}
		messages = append(messages, domain.ChatMessage{Role: role, Content: strings.Repeat("x", i+1)})
	}

	retriever.On("RetrieveContext", mock.Anything, mock.Anything, DefaultTopK).Return("context", nil)
	llm.On("ChatCompletion", mock.Anything, mock.MatchedBy(func(req openai.ChatRequest) bool {
		// System instruction plus the last 6 conversation messages.
		return len(req.Messages) == HistoryWindow+1
	})).Return("ok", nil)

	_, err := svc.GenerateResponse(context.Background(), messages, "/")

	require.NoError(t, err)
	llm.AssertExpectations(t)
}

func TestResponderService_GenerateResponse_EmptyConversation(t *testing.T) {
	svc := NewResponderService(new(MockContextRetriever), new(MockCompletionClient))

	_, err := svc.GenerateResponse(context.Background(), nil, "/")

	assert.ErrorIs(t, err, domain.ErrEmptyConversation)
}

func TestResponderService_GenerateResponse_NoUserMessage(t *testing.T) {
	svc := NewResponderService(new(MockContextRetriever), new(MockCompletionClient))

	messages := []domain.ChatMessage{{Role: domain.ChatRoleAssistant, Content: "Hello!"}}
	_, err := svc.GenerateResponse(context.Background(), messages, "/")

	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
}

func TestResponderService_GenerateResponse_RetrievalFailurePropagates(t *testing.T) {
	retriever := new(MockContextRetriever)
	svc := NewResponderService(retriever, new(MockCompletionClient))

	retriever.On("RetrieveContext", mock.Anything, mock.Anything, DefaultTopK).
		Return("", errors.New("embedding provider down"))

	_, err := svc.GenerateResponse(context.Background(), conversation(), "/")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to retrieve context")
}

func TestResponderService_GenerateResponse_GenerationFailurePropagates(t *testing.T) {
	retriever := new(MockContextRetriever)
	llm := new(MockCompletionClient)
	svc := NewResponderService(retriever, llm)

	retriever.On("RetrieveContext", mock.Anything, mock.Anything, DefaultTopK).Return("context", nil)
	llm.On("ChatCompletion", mock.Anything, mock.Anything).Return("", errors.New("model unavailable"))

	_, err := svc.GenerateResponse(context.Background(), conversation(), "/")

	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrCodeGeneration, domainErr.Code)
}

func TestResponderService_GenerateResponse_EmptyModelReply(t *testing.T) {
	retriever := new(MockContextRetriever)
	llm := new(MockCompletionClient)
	svc := NewResponderService(retriever, llm)

	retriever.On("RetrieveContext", mock.Anything, mock.Anything, DefaultTopK).Return("context", nil)
	llm.On("ChatCompletion", mock.Anything, mock.Anything).Return("   ", nil)

	reply, err := svc.GenerateResponse(context.Background(), conversation(), "/")

	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply)
}
