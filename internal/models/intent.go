package models

import "strings"

// Intent is a closed-set classification of a question's purpose. It biases
// retrieval filters and post-answer suggestions.
type Intent string

const (
	IntentPricing      Intent = "pricing_inquiry"
	IntentAvailability Intent = "availability_check"
	IntentComparison   Intent = "comparison"
	IntentProcess      Intent = "process_question"
	IntentObjection    Intent = "objection"
	IntentGeneral      Intent = "general_info"
)

// AllIntents lists every known intent in classification priority order.
func AllIntents() []Intent {
	return []Intent{
		IntentPricing,
		IntentAvailability,
		IntentComparison,
		IntentProcess,
		IntentObjection,
		IntentGeneral,
	}
}

// IsValid reports whether the intent is a member of the known set.
func (i Intent) IsValid() bool {
	switch i {
	case IntentPricing, IntentAvailability, IntentComparison,
		IntentProcess, IntentObjection, IntentGeneral:
		return true
	}
	return false
}

// ParseIntent normalizes a label and returns the matching intent.
// Unknown labels return IntentGeneral and false.
func ParseIntent(label string) (Intent, bool) {
	intent := Intent(strings.ToLower(strings.TrimSpace(label)))
	if intent.IsValid() {
		return intent, true
	}
	return IntentGeneral, false
}
