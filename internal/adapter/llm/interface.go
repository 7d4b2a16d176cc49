// Package llm provides an abstraction over OpenAI-compatible chat APIs.
package llm

import (
	"context"
	"encoding/json"
)

// Message is one chat message in a completion request.
type Message struct {
	Role    string
	Content string
}

// Request describes a single chat completion call.
type Request struct {
	System      string
	Messages    []Message
	Temperature float32
	MaxTokens   int

	// SchemaName and Schema enable strict JSON-schema output when set.
	SchemaName string
	Schema     json.Marshaler
}

// Client is the interface handlers and the classifier depend on.
type Client interface {
	// Complete sends a chat completion request and returns the assistant text.
	Complete(ctx context.Context, req *Request) (string, error)
}

// Schema implements json.Marshaler for the OpenAI JSON Schema format. Enum
// constraints keep structured extraction from hallucinating field values.
type Schema struct {
	Type                 string             `json:"type"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	Required             []string           `json:"required,omitempty"`
	Enum                 []string           `json:"enum,omitempty"`
	Description          string             `json:"description,omitempty"`
	AdditionalProperties bool               `json:"additionalProperties"`
}

func (s *Schema) MarshalJSON() ([]byte, error) {
	type alias Schema
	return json.Marshal((*alias)(s))
}
