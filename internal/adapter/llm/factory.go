package llm

import (
	"log/slog"
	"os"
)

const (
	// EnvAssistantMode is the environment variable name for mode selection.
	EnvAssistantMode = "ASSISTANT_MODE"
	// ModeMock indicates the mock client should be used.
	ModeMock = "MOCK"
)

// NewClient creates an LLM client based on the ASSISTANT_MODE environment
// variable. ASSISTANT_MODE=MOCK returns a MockClient, as does a missing API
// key; otherwise a real OpenAI-compatible client is returned.
func NewClient(apiKey, baseURL, model string) Client {
	if os.Getenv(EnvAssistantMode) == ModeMock {
		slog.Info("ASSISTANT_MODE=MOCK detected, using mock LLM client")
		return NewMockClient()
	}
	if apiKey == "" {
		slog.Warn("OPENAI_API_KEY not set, falling back to mock LLM client")
		return NewMockClient()
	}
	return NewOpenAIClient(apiKey, baseURL, model)
}
