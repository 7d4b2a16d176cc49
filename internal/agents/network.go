package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/telvia/assistant/internal/adapter/llm"
	store "github.com/telvia/assistant/internal/repository"
)

const networkSystemPrompt = `You are a telecom network troubleshooting
specialist. Use the incident and coverage data provided to diagnose the
customer's connectivity problem and suggest concrete next steps (restart,
APN check, coverage expectations). If an active incident explains the
problem, lead with it.`

var locationSchema = &llm.Schema{
	Type: "object",
	Properties: map[string]*llm.Schema{
		"location": {
			Type:        "string",
			Description: "City, neighborhood, or area mentioned in the query; empty if none",
		},
	},
	Required:             []string{"location"},
	AdditionalProperties: false,
}

// NetworkHandler answers connectivity questions using the network status and
// coverage tables.
type NetworkHandler struct {
	llm  llm.Client
	refs store.ReferenceStore
}

var _ Handler = (*NetworkHandler)(nil)

// NewNetworkHandler creates the network handler.
func NewNetworkHandler(client llm.Client, refs store.ReferenceStore) *NetworkHandler {
	return &NetworkHandler{llm: client, refs: refs}
}

func (h *NetworkHandler) Name() string { return "Network" }

func (h *NetworkHandler) Process(ctx context.Context, effectiveQuery, customerID string) (string, error) {
	location := h.extractLocation(ctx, effectiveQuery)

	var b strings.Builder
	if location != "" {
		incidents, err := h.refs.FindNetworkIncidents(ctx, location)
		if err != nil {
			return "", fmt.Errorf("load incidents: %w", err)
		}
		if len(incidents) == 0 {
			fmt.Fprintf(&b, "No reported network incidents found in %s.\n", location)
		}
		for _, in := range incidents {
			fmt.Fprintf(&b, "Incident in %s (%s): %s, reported %s.\n",
				in.Location, in.Status, in.Description, in.ReportedAt.Format("2006-01-02 15:04"))
		}

		coverage, err := h.refs.FindCoverage(ctx, location)
		if err != nil {
			return "", fmt.Errorf("load coverage: %w", err)
		}
		for _, c := range coverage {
			fmt.Fprintf(&b, "Coverage in %s: %s rated %s.\n", c.Location, c.NetworkType, c.SignalRating)
		}
	} else {
		b.WriteString("No location mentioned; no incident data available.\n")
	}

	answer, err := h.llm.Complete(ctx, &llm.Request{
		System: networkSystemPrompt,
		Messages: []llm.Message{{
			Role:    "user",
			Content: fmt.Sprintf("Network data:\n%s\n%s", b.String(), effectiveQuery),
		}},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("network completion: %w", err)
	}
	return answer, nil
}

// extractLocation asks the model for the location mentioned in the query.
// Extraction is best-effort: any failure just means no location lookup.
func (h *NetworkHandler) extractLocation(ctx context.Context, query string) string {
	raw, err := h.llm.Complete(ctx, &llm.Request{
		System:      "Extract the location the user is asking about.",
		Messages:    []llm.Message{{Role: "user", Content: query}},
		Temperature: 0,
		MaxTokens:   50,
		SchemaName:  "location_extraction",
		Schema:      locationSchema,
	})
	if err != nil {
		slog.Warn("location extraction failed", "error", err)
		return ""
	}

	var out struct {
		Location string `json:"location"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		slog.Warn("location extraction returned invalid JSON", "error", err)
		return ""
	}
	return strings.TrimSpace(out.Location)
}
