package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeIngestion     = "INGESTION_ERROR"
	ErrCodeEmbedding     = "EMBEDDING_ERROR"
	ErrCodeGeneration    = "GENERATION_ERROR"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrEmptyConversation = NewDomainError(ErrCodeValidation, "conversation must contain at least one message")
	ErrInvalidChatRole   = NewDomainError(ErrCodeValidation, "chat message role is invalid")
	ErrEmptyQuery        = NewDomainError(ErrCodeValidation, "query cannot be empty")
)

// Ingestion errors
var (
	ErrKnowledgeDirUnreadable = NewDomainError(ErrCodeIngestion, "knowledge directory is missing or unreadable")
)

// Provider errors
var (
	ErrEmbeddingFailed  = NewDomainError(ErrCodeEmbedding, "embedding provider call failed")
	ErrGenerationFailed = NewDomainError(ErrCodeGeneration, "response generation failed")
)
