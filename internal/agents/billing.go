package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/telvia/assistant/internal/adapter/llm"
	store "github.com/telvia/assistant/internal/repository"
)

const billingSystemPrompt = `You are a senior telecom billing analyst. Using the
customer data provided, explain bill components in simple language, point out
unusual or one-time charges, and verify charges against the customer's plan.
If the data does not cover the question, say so instead of guessing.`

// BillingHandler answers billing questions from the customer's plan and
// recent usage records.
type BillingHandler struct {
	llm  llm.Client
	refs store.ReferenceStore
}

var _ Handler = (*BillingHandler)(nil)

// NewBillingHandler creates the billing handler.
func NewBillingHandler(client llm.Client, refs store.ReferenceStore) *BillingHandler {
	return &BillingHandler{llm: client, refs: refs}
}

func (h *BillingHandler) Name() string { return "Billing" }

func (h *BillingHandler) Process(ctx context.Context, effectiveQuery, customerID string) (string, error) {
	var b strings.Builder

	customer, err := h.refs.GetCustomer(ctx, customerID)
	if err != nil {
		return "", fmt.Errorf("load customer: %w", err)
	}
	if customer == nil {
		fmt.Fprintf(&b, "No customer record found for %s.\n", customerID)
	} else {
		fmt.Fprintf(&b, "Customer %s (%s), account status %s.\n", customer.CustomerID, customer.Name, customer.AccountStatus)
		if plan, err := h.refs.GetPlan(ctx, customer.ServicePlanID); err != nil {
			return "", fmt.Errorf("load plan: %w", err)
		} else if plan != nil {
			fmt.Fprintf(&b, "Plan %s (%s): $%.2f/month, %.0f GB data, %d minutes, %d SMS.\n",
				plan.PlanID, plan.Name, plan.MonthlyCost, plan.DataLimitGB, plan.VoiceMinutes, plan.SMSCount)
		}
	}

	usage, err := h.refs.GetRecentUsage(ctx, customerID, 2)
	if err != nil {
		return "", fmt.Errorf("load usage: %w", err)
	}
	for _, u := range usage {
		fmt.Fprintf(&b, "Period %s to %s: %.1f GB data, %d minutes, %d SMS, additional charges $%.2f, total $%.2f.\n",
			u.BillingPeriodStart.Format("2006-01-02"), u.BillingPeriodEnd.Format("2006-01-02"),
			u.DataUsedGB, u.VoiceMinutesUsed, u.SMSCountUsed, u.AdditionalCharges, u.TotalBillAmount)
	}

	answer, err := h.llm.Complete(ctx, &llm.Request{
		System: billingSystemPrompt,
		Messages: []llm.Message{{
			Role:    "user",
			Content: fmt.Sprintf("Customer data:\n%s\n%s", b.String(), effectiveQuery),
		}},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("billing completion: %w", err)
	}
	return answer, nil
}
