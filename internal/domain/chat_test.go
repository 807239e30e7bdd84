package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateChatMessage(t *testing.T) {
	assert.NoError(t, ValidateChatMessage(ChatMessage{Role: ChatRoleUser, Content: "hi"}))
	assert.NoError(t, ValidateChatMessage(ChatMessage{Role: ChatRoleAssistant, Content: "hello"}))
	assert.NoError(t, ValidateChatMessage(ChatMessage{Role: ChatRoleSystem, Content: "be brief"}))

	err := ValidateChatMessage(ChatMessage{Role: "bot", Content: "hi"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "role is invalid")

	err = ValidateChatMessage(ChatMessage{Role: ChatRoleUser})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "content cannot be empty")
}

func TestLastUserMessage(t *testing.T) {
	messages := []ChatMessage{
		{Role: ChatRoleUser, Content: "first"},
		{Role: ChatRoleAssistant, Content: "reply"},
		{Role: ChatRoleUser, Content: "second"},
		{Role: ChatRoleAssistant, Content: "another reply"},
	}

	assert.Equal(t, "second", LastUserMessage(messages))
	assert.Equal(t, "", LastUserMessage(nil))
	assert.Equal(t, "", LastUserMessage([]ChatMessage{{Role: ChatRoleAssistant, Content: "hi"}}))
}

func TestTailMessages(t *testing.T) {
	messages := []ChatMessage{
		{Role: ChatRoleUser, Content: "1"},
		{Role: ChatRoleAssistant, Content: "2"},
		{Role: ChatRoleUser, Content: "3"},
	}

	assert.Len(t, TailMessages(messages, 2), 2)
	assert.Equal(t, "2", TailMessages(messages, 2)[0].Content)
	assert.Len(t, TailMessages(messages, 6), 3)
	assert.Len(t, TailMessages(messages, 0), 3)
}

func TestDefaultIntentResult(t *testing.T) {
	result := DefaultIntentResult()

	assert.Equal(t, IntentGeneral, result.Intent)
	assert.Zero(t, result.Confidence)
	assert.NotNil(t, result.SuggestedAction)
	assert.Equal(t, ActionNone, result.SuggestedAction.Type)
}

func TestIsValidIntent(t *testing.T) {
	for _, intent := range []Intent{IntentContact, IntentProjects, IntentAbout, IntentServices, IntentSkills, IntentGeneral} {
		assert.True(t, IsValidIntent(intent))
	}
	assert.False(t, IsValidIntent("sales"))
	assert.False(t, IsValidIntent(""))
}

func TestIsValidActionType(t *testing.T) {
	for _, actionType := range []ActionType{ActionNavigate, ActionForm, ActionNone} {
		assert.True(t, IsValidActionType(actionType))
	}
	assert.False(t, IsValidActionType("redirect"))
}
