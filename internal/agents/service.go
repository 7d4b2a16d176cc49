package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/telvia/assistant/internal/adapter/llm"
	store "github.com/telvia/assistant/internal/repository"
)

const serviceSystemPrompt = `You are a telecom service advisor who helps
customers find the best plan for their needs. Consider usage patterns (data,
voice, SMS), number of people or devices, special requirements such as
international calling or streaming, and budget. Always explain WHY a plan is
a good fit.`

// ServiceHandler recommends plans from the catalog plus a usage estimate.
type ServiceHandler struct {
	llm  llm.Client
	refs store.ReferenceStore
}

var _ Handler = (*ServiceHandler)(nil)

// NewServiceHandler creates the service recommendation handler.
func NewServiceHandler(client llm.Client, refs store.ReferenceStore) *ServiceHandler {
	return &ServiceHandler{llm: client, refs: refs}
}

func (h *ServiceHandler) Name() string { return "Service" }

func (h *ServiceHandler) Process(ctx context.Context, effectiveQuery, customerID string) (string, error) {
	plans, err := h.refs.ListPlans(ctx)
	if err != nil {
		return "", fmt.Errorf("load plans: %w", err)
	}

	var b strings.Builder
	b.WriteString("Available plans:\n")
	for _, p := range plans {
		fmt.Fprintf(&b, "- %s (%s): $%.2f/month, %.0f GB, %d minutes, %d SMS. %s\n",
			p.Name, p.PlanID, p.MonthlyCost, p.DataLimitGB, p.VoiceMinutes, p.SMSCount, p.Description)
	}

	if est := EstimateDataUsageGB(effectiveQuery); est > 0 {
		fmt.Fprintf(&b, "Estimated monthly data need from described activities: %.0f GB.\n", est)
	}

	answer, err := h.llm.Complete(ctx, &llm.Request{
		System: serviceSystemPrompt,
		Messages: []llm.Message{{
			Role:    "user",
			Content: fmt.Sprintf("%s\n%s", b.String(), effectiveQuery),
		}},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("service completion: %w", err)
	}
	return answer, nil
}

// EstimateDataUsageGB estimates monthly data usage from described activities.
// Heuristics: HD streaming ~3 GB/h at 2 h/day, browsing ~0.1 GB/h at 3 h/day,
// video calls ~1 GB/h at roughly 1 h/week.
func EstimateDataUsageGB(activities string) float64 {
	lower := strings.ToLower(activities)

	var total float64
	if strings.Contains(lower, "streaming") || strings.Contains(lower, "stream") {
		total += 3.0 * 30 * 2
	}
	if strings.Contains(lower, "browsing") || strings.Contains(lower, "browse") {
		total += 0.1 * 30 * 3
	}
	if strings.Contains(lower, "video call") {
		total += 1.0 * 4
	}
	return total
}
