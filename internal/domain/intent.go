package domain

// Intent is a coarse classification of what the visitor is trying to do.
type Intent string

const (
	IntentContact  Intent = "contact"
	IntentProjects Intent = "projects"
	IntentAbout    Intent = "about"
	IntentServices Intent = "services"
	IntentSkills   Intent = "skills"
	IntentGeneral  Intent = "general"
)

// ActionType describes the UI action suggested for a detected intent.
type ActionType string

const (
	ActionNavigate ActionType = "navigate"
	ActionForm     ActionType = "form"
	ActionNone     ActionType = "none"
)

// SuggestedAction is an optional UI hint attached to an intent result, e.g.
// navigating to a page or pre-filling the contact form.
type SuggestedAction struct {
	Type   ActionType
	Target string
	Data   map[string]string
}

// IntentResult is the typed outcome of one classification turn.
type IntentResult struct {
	Intent          Intent
	Confidence      float64
	SuggestedAction *SuggestedAction
}

// DefaultIntentResult is the safe fallback used whenever classification fails
// or the model response cannot be decoded. It suppresses the suggested-action
// UI without blocking the conversation.
func DefaultIntentResult() *IntentResult {
	return &IntentResult{
		Intent:          IntentGeneral,
		Confidence:      0,
		SuggestedAction: &SuggestedAction{Type: ActionNone},
	}
}

// IsValidIntent checks whether the value belongs to the fixed intent vocabulary.
func IsValidIntent(i Intent) bool {
	switch i {
	case IntentContact, IntentProjects, IntentAbout, IntentServices, IntentSkills, IntentGeneral:
		return true
	}
	return false
}

// IsValidActionType checks whether the value is a known suggested-action type.
func IsValidActionType(t ActionType) bool {
	switch t {
	case ActionNavigate, ActionForm, ActionNone:
		return true
	}
	return false
}
