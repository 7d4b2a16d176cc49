package service

import (
	"strings"

	"github.com/telvia/assistant/internal/domain"
)

// historyLimit bounds how many prior turns are rendered into a prompt.
const historyLimit = 10

// FallbackResponse is returned when a query cannot be routed to any handler.
const FallbackResponse = "I'm sorry, I couldn't understand your request. Please ask about billing, network issues, service plans, or technical support."

// FormatEffectiveQuery prepends bounded conversation context to the query.
// With no history the query passes through unchanged.
func FormatEffectiveQuery(query string, history []domain.Turn) string {
	if len(history) == 0 {
		return query
	}
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	var b strings.Builder
	b.WriteString("Context from previous chat:\n")
	for i, t := range history {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(string(t.Role))
		b.WriteString(": ")
		b.WriteString(t.Content)
	}
	b.WriteString("\n\nCurrent Query: ")
	b.WriteString(query)
	return b.String()
}
