package domain

import "fmt"

// ChatRole identifies the author of a conversation message.
type ChatRole string

const (
	ChatRoleSystem    ChatRole = "system"
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is a single turn of the conversation as supplied by the caller.
// Messages are ephemeral; this core never persists them.
type ChatMessage struct {
	Role    ChatRole
	Content string
}

// ValidateChatMessage validates a ChatMessage instance.
func ValidateChatMessage(m ChatMessage) error {
	if !isValidChatRole(m.Role) {
		return fmt.Errorf("%w: %q", ErrInvalidChatRole, m.Role)
	}

	if m.Content == "" {
		return fmt.Errorf("chat message content cannot be empty")
	}

	return nil
}

// LastUserMessage returns the content of the most recent user message, or the
// empty string when the conversation contains none.
func LastUserMessage(messages []ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == ChatRoleUser {
			return messages[i].Content
		}
	}
	return ""
}

// TailMessages returns at most the last n messages of the conversation.
func TailMessages(messages []ChatMessage, n int) []ChatMessage {
	if n <= 0 || len(messages) <= n {
		return messages
	}
	return messages[len(messages)-n:]
}

func isValidChatRole(r ChatRole) bool {
	switch r {
	case ChatRoleSystem, ChatRoleUser, ChatRoleAssistant:
		return true
	}
	return false
}
