// Package agents implements the per-category query handlers and their registry.
package agents

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/telvia/assistant/internal/domain"
)

// Handler answers queries for one category. Implementations may run whole
// pipelines internally but are invoked as atomic black boxes: text in,
// text out, error on internal failure.
type Handler interface {
	// Name is the human-readable agent name used in error markers.
	Name() string
	// Process answers the effective query (raw query plus bounded history)
	// for the given customer.
	Process(ctx context.Context, effectiveQuery, customerID string) (string, error)
}

// Registry is a static mapping from category to handler.
type Registry struct {
	handlers map[domain.Category]Handler
}

// NewRegistry builds the category routing table. OTHER has no handler; the
// router answers it with the fixed fallback response.
func NewRegistry(billing, network, service, knowledge, customer Handler) *Registry {
	return &Registry{
		handlers: map[domain.Category]Handler{
			domain.CategoryBilling:            billing,
			domain.CategoryNetwork:            network,
			domain.CategoryService:            service,
			domain.CategoryKnowledge:          knowledge,
			domain.CategoryCustomerManagement: customer,
		},
	}
}

// Handler returns the handler for a category, if one is registered.
func (r *Registry) Handler(category domain.Category) (Handler, bool) {
	h, ok := r.handlers[category]
	return h, ok
}

// Dispatch invokes the handler for the category and converts any failure
// into a category-prefixed error string. Callers always receive text, never
// an error, from a dispatched handler.
func (r *Registry) Dispatch(ctx context.Context, category domain.Category, effectiveQuery, customerID string) (string, bool) {
	h, ok := r.handlers[category]
	if !ok {
		return "", false
	}

	response, err := h.Process(ctx, effectiveQuery, customerID)
	if err != nil {
		herr := &domain.HandlerError{Category: category, Err: err}
		slog.Warn("handler failed", "category", category, "error", herr)
		return fmt.Sprintf("Error in %s Agent: %v", h.Name(), err), true
	}
	return response, true
}
