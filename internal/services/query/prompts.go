package query

import (
	"fmt"
	"strings"
)

// answerSystemPrompt instructs the model to ground every answer in the
// supplied document context.
const answerSystemPrompt = `You are a helpful AI assistant that answers questions based on the provided document context.

TONE GUIDELINES:
- Professional, clear, and informative
- Focus on accuracy and helpfulness
- Provide comprehensive answers based on the document
- Cite specific information from the document when relevant
- If information isn't in the document, say so clearly

RESPONSE STYLE:
- Clear and well-structured answers
- Use bullet points or numbered lists when appropriate
- Break down complex topics into digestible sections
- Provide context and explanations
- Be concise but thorough

DO NOT:
- Make up information not in the document
- Speculate beyond what's provided
- Use sales or marketing language
- Make assumptions about the user

Always base your answers on the document content provided.`

// buildPromptWithContext assembles the user prompt: each retrieved chunk as
// a numbered document section, followed by the question.
func buildPromptWithContext(question string, contexts []string) string {
	sections := make([]string, len(contexts))
	for i, chunk := range contexts {
		sections[i] = fmt.Sprintf("[Document Section %d]\n%s", i+1, chunk)
	}

	return fmt.Sprintf(`Document Content:

%s

Question: %s

Provide a clear, accurate answer based on the document content above:`, strings.Join(sections, "\n\n"), question)
}
