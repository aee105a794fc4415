package query

import "github.com/draphael123/notebooklm-marketing/internal/models"

// relatedQuestions maps each intent to follow-up suggestions. The lookup is
// pure: the same intent always yields the same list.
var relatedQuestions = map[models.Intent][]string{
	models.IntentPricing: {
		"What is included in each plan?",
		"Are there longer-term plans that save money?",
		"Can I pay with HSA or FSA funds?",
	},
	models.IntentAvailability: {
		"Which lab providers do you partner with?",
		"How do provider visits work?",
		"What do I need to get started in my state?",
	},
	models.IntentComparison: {
		"What is included in the programs?",
		"How do the plan prices compare?",
		"What makes each program different?",
	},
	models.IntentProcess: {
		"How long until my first provider visit?",
		"What does the online assessment involve?",
		"When will I receive my treatment plan?",
	},
	models.IntentObjection: {
		"What is the cancellation policy?",
		"Does insurance cover the programs?",
		"What support is included?",
	},
	models.IntentGeneral: {
		"What programs do you offer?",
		"How much do the programs cost?",
		"How do I get started?",
	},
}

// ctaText returns the intent-derived call-to-action suffix. A pure lookup;
// intents without a CTA map to the empty string and nothing is appended.
func ctaText(intent models.Intent) string {
	return ""
}

// relatedFor returns the follow-up questions for an intent.
func relatedFor(intent models.Intent) []string {
	if questions, ok := relatedQuestions[intent]; ok {
		return append([]string(nil), questions...)
	}
	return nil
}

// starterQuestions are suggestions surfaced before the user has asked
// anything.
var starterQuestions = []string{
	"What programs do you offer?",
	"How much does the TRT program cost?",
	"Which states do you operate in?",
	"How do I get started?",
}

// SuggestedQuestions returns starter questions for an empty conversation.
func (s *Service) SuggestedQuestions() []string {
	return append([]string(nil), starterQuestions...)
}
