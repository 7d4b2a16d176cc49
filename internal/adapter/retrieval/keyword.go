// Package retrieval provides document snippet retrieval for the knowledge
// handler. The keyword retriever is the in-repo default; a vector index can
// replace it behind the same interface.
package retrieval

import (
	"context"
	"fmt"
)

// DocumentSearcher is what the retriever needs from the store.
type DocumentSearcher interface {
	SearchDocuments(ctx context.Context, query string, limit int) ([]string, error)
}

// KeywordRetriever answers retrieval requests with keyword matches from the
// documents table.
type KeywordRetriever struct {
	docs DocumentSearcher
}

// NewKeywordRetriever creates a retriever backed by the given searcher.
func NewKeywordRetriever(docs DocumentSearcher) *KeywordRetriever {
	return &KeywordRetriever{docs: docs}
}

// Retrieve returns up to limit snippets matching the query.
func (r *KeywordRetriever) Retrieve(ctx context.Context, query string, limit int) ([]string, error) {
	snippets, err := r.docs.SearchDocuments(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("document search: %w", err)
	}
	return snippets, nil
}
