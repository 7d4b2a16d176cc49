package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/telvia/assistant/internal/adapter/llm"
	store "github.com/telvia/assistant/internal/repository"
)

const knowledgeSystemPrompt = `You are a telecom technical support specialist.
Answer from the document snippets and reference rows provided. If nothing in
the material answers the question, say what is missing rather than invent
details.`

// Retriever is the narrow seam over the document retrieval subsystem.
type Retriever interface {
	Retrieve(ctx context.Context, query string, limit int) ([]string, error)
}

// KnowledgeHandler answers how-to and factual questions from retrieved
// documents plus the coverage and device tables.
type KnowledgeHandler struct {
	llm       llm.Client
	retriever Retriever
	refs      store.ReferenceStore
}

var _ Handler = (*KnowledgeHandler)(nil)

// NewKnowledgeHandler creates the knowledge handler.
func NewKnowledgeHandler(client llm.Client, retriever Retriever, refs store.ReferenceStore) *KnowledgeHandler {
	return &KnowledgeHandler{llm: client, retriever: retriever, refs: refs}
}

func (h *KnowledgeHandler) Name() string { return "Knowledge" }

func (h *KnowledgeHandler) Process(ctx context.Context, effectiveQuery, customerID string) (string, error) {
	snippets, err := h.retriever.Retrieve(ctx, effectiveQuery, 3)
	if err != nil {
		return "", fmt.Errorf("retrieve documents: %w", err)
	}

	compat, err := h.refs.SearchDeviceCompatibility(ctx, effectiveQuery)
	if err != nil {
		return "", fmt.Errorf("device compatibility lookup: %w", err)
	}

	var b strings.Builder
	if len(snippets) > 0 {
		b.WriteString("Documents:\n")
		for _, s := range snippets {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	if len(compat) > 0 {
		b.WriteString("Device compatibility:\n")
		for _, c := range compat {
			fmt.Fprintf(&b, "- %s\n", c)
		}
	}
	if b.Len() == 0 {
		b.WriteString("No matching reference material found.\n")
	}

	answer, err := h.llm.Complete(ctx, &llm.Request{
		System: knowledgeSystemPrompt,
		Messages: []llm.Message{{
			Role:    "user",
			Content: fmt.Sprintf("%s\n%s", b.String(), effectiveQuery),
		}},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("knowledge completion: %w", err)
	}
	return answer, nil
}
