package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/telvia/assistant/internal/domain"
)

func TestFormatEffectiveQueryNoHistory(t *testing.T) {
	assert.Equal(t, "What is my bill?", FormatEffectiveQuery("What is my bill?", nil))
	assert.Equal(t, "What is my bill?", FormatEffectiveQuery("What is my bill?", []domain.Turn{}))
}

func TestFormatEffectiveQueryRendersTurns(t *testing.T) {
	history := []domain.Turn{
		{Role: domain.RoleUser, Content: "My internet is slow"},
		{Role: domain.RoleAssistant, Content: "There is an outage in your area"},
	}

	got := FormatEffectiveQuery("When will it be fixed?", history)

	want := "Context from previous chat:\n" +
		"user: My internet is slow\n" +
		"assistant: There is an outage in your area" +
		"\n\nCurrent Query: When will it be fixed?"
	assert.Equal(t, want, got)
}

func TestFormatEffectiveQueryBoundsHistory(t *testing.T) {
	var history []domain.Turn
	for i := 0; i < 24; i++ {
		history = append(history, domain.Turn{Role: domain.RoleUser, Content: fmt.Sprintf("turn %d", i)})
	}

	got := FormatEffectiveQuery("latest", history)

	assert.NotContains(t, got, "turn 13")
	assert.Contains(t, got, "turn 14")
	assert.Contains(t, got, "turn 23")
	assert.True(t, strings.HasSuffix(got, "Current Query: latest"))
}
