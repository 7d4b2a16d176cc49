package llm

import (
	"context"
	"strings"
)

// MockClient is a deterministic Client for local development and tests.
// If Respond is set it scripts every answer; otherwise a canned response is
// derived from the request.
type MockClient struct {
	Respond func(ctx context.Context, req *Request) (string, error)
}

var _ Client = (*MockClient)(nil)

// NewMockClient creates a mock client with default canned behavior.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Complete returns a scripted or canned response.
func (m *MockClient) Complete(ctx context.Context, req *Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Respond != nil {
		return m.Respond(ctx, req)
	}

	// Canned classification keeps the mock useful end to end: pick out the
	// strongest keyword from the last user message.
	var last string
	if len(req.Messages) > 0 {
		last = strings.ToLower(req.Messages[len(req.Messages)-1].Content)
	}
	switch {
	case strings.Contains(req.System, "query classifier"):
		switch {
		case strings.Contains(last, "bill"), strings.Contains(last, "charge"), strings.Contains(last, "payment"):
			return "BILLING", nil
		case strings.Contains(last, "signal"), strings.Contains(last, "outage"), strings.Contains(last, "internet"), strings.Contains(last, "slow"):
			return "NETWORK", nil
		case strings.Contains(last, "plan"), strings.Contains(last, "upgrade"), strings.Contains(last, "recommend"):
			return "SERVICE", nil
		case strings.Contains(last, "how"), strings.Contains(last, "compatible"), strings.Contains(last, "what"):
			return "KNOWLEDGE", nil
		case strings.Contains(last, "address"), strings.Contains(last, "email"), strings.Contains(last, "phone"), strings.Contains(last, "register"):
			return "CUSTOMER_MANAGEMENT", nil
		default:
			return "OTHER", nil
		}
	case req.Schema != nil:
		return `{}`, nil
	default:
		return "This is a mock response. Configure OPENAI_API_KEY for real answers.", nil
	}
}
