// Package intent classifies questions into a closed set of intents using an
// ordered keyword table, with a constrained LLM request as fallback.
package intent

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/draphael123/notebooklm-marketing/internal/interfaces"
	"github.com/draphael123/notebooklm-marketing/internal/models"
)

const classifierSystemPrompt = "You are a question classifier. Respond with only the category name."

const classifierMaxTokens = 50

// intentKeywords maps each intent to its trigger keywords, tested in
// AllIntents order. The first intent with a matching keyword wins.
var intentKeywords = map[models.Intent][]string{
	models.IntentPricing: {
		"cost", "price", "pricing", "how much", "expensive",
		"afford", "payment", "plan", "$",
	},
	models.IntentAvailability: {
		"state", "available", "operate", "location", "where",
		"coverage", "service area", "lab",
	},
	models.IntentComparison: {
		"vs", "versus", "compare", "difference", "better",
		"competitor", "alternative",
	},
	models.IntentProcess: {
		"start", "begin", "get started", "how to", "process",
		"timeline", "assessment", "sign up",
	},
	models.IntentObjection: {
		"why", "but", "concern", "worry", "insurance",
		"refund", "cancel", "too expensive",
	},
	models.IntentGeneral: {
		"what", "offer", "include", "program", "service",
		"do you", "tell me",
	},
}

// Classifier assigns an intent to each incoming question. The keyword pass
// handles the common cases; unmatched questions go to the LLM once, and any
// failure there degrades to the general intent. Classify never returns an
// error.
type Classifier struct {
	llm    interfaces.LLMService
	logger arbor.ILogger
}

// NewClassifier creates an intent classifier. llm may be nil, in which case
// unmatched questions default to the general intent without an external call.
func NewClassifier(llm interfaces.LLMService, logger arbor.ILogger) *Classifier {
	return &Classifier{
		llm:    llm,
		logger: logger,
	}
}

// Classify returns the intent for question. Keyword matches resolve locally;
// otherwise a single constrained completion request is made, and its answer
// is accepted only when it names a known intent.
func (c *Classifier) Classify(ctx context.Context, question string) models.Intent {
	lower := strings.ToLower(question)

	for _, in := range models.AllIntents() {
		for _, keyword := range intentKeywords[in] {
			if strings.Contains(lower, keyword) {
				return in
			}
		}
	}

	if c.llm == nil {
		return models.IntentGeneral
	}

	messages := []interfaces.Message{
		{Role: "user", Content: classificationPrompt(question)},
	}

	response, err := c.llm.Complete(ctx, messages, classifierSystemPrompt, classifierMaxTokens)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn().Err(err).Msg("Intent classification request failed, using general intent")
		}
		return models.IntentGeneral
	}

	if classified, ok := models.ParseIntent(response); ok {
		return classified
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("label", strings.TrimSpace(response)).
			Msg("Classifier returned unknown label, using general intent")
	}
	return models.IntentGeneral
}

// classificationPrompt constrains the model to the known intent labels.
func classificationPrompt(question string) string {
	return fmt.Sprintf(`Classify this question into one of these categories:
- pricing_inquiry: Asking about cost, plans, or payment
- availability_check: Asking where the service operates or is available
- comparison: Comparing options, providers, or alternatives
- process_question: Asking how to start or how a process works
- objection: Raising a concern, doubt, or cancellation topic
- general_info: Any other general question

Question: %q

Respond with ONLY the category name:`, question)
}
