package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/telvia/assistant/internal/adapter/llm"
	"github.com/telvia/assistant/internal/domain"
	store "github.com/telvia/assistant/internal/repository"
	"github.com/telvia/assistant/policy"
)

const customerSystemPrompt = `You manage telecom customer records. Read the
request and fill the action schema. Use action "get_details" for read-only
requests, "update_address"/"update_email"/"update_phone" for changes,
"register" for new customers, and "none" when the request does not map to any
of these. Set "confirmed" to true only when the user explicitly confirms the
change in this message (for example "yes, update it" or "please go ahead").`

var actionSchema = &llm.Schema{
	Type: "object",
	Properties: map[string]*llm.Schema{
		"action": {
			Type: "string",
			Enum: []string{"get_details", "update_address", "update_email", "update_phone", "register", "none"},
		},
		"customer_id": {Type: "string", Description: "Customer ID mentioned in the request; empty if none"},
		"value":       {Type: "string", Description: "New address, email, or phone value for update actions"},
		"name":        {Type: "string", Description: "Full name for register"},
		"email":       {Type: "string", Description: "Email for register"},
		"phone":       {Type: "string", Description: "Phone for register"},
		"address":     {Type: "string", Description: "Address for register"},
		"confirmed":   {Type: "boolean", Description: "True only when the user explicitly confirms the change"},
	},
	Required:             []string{"action", "confirmed"},
	AdditionalProperties: false,
}

type accountAction struct {
	Action     string `json:"action"`
	CustomerID string `json:"customer_id"`
	Value      string `json:"value"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Confirmed  bool   `json:"confirmed"`
}

// CustomerHandler executes account reads and policy-gated mutations. All data
// access is parameterized; the model only ever chooses from a fixed action
// set and supplies field values.
type CustomerHandler struct {
	llm    llm.Client
	refs   store.ReferenceStore
	policy *policy.Engine
}

var _ Handler = (*CustomerHandler)(nil)

// NewCustomerHandler creates the customer management handler.
func NewCustomerHandler(client llm.Client, refs store.ReferenceStore, engine *policy.Engine) *CustomerHandler {
	return &CustomerHandler{llm: client, refs: refs, policy: engine}
}

func (h *CustomerHandler) Name() string { return "Customer Management" }

func (h *CustomerHandler) Process(ctx context.Context, effectiveQuery, customerID string) (string, error) {
	raw, err := h.llm.Complete(ctx, &llm.Request{
		System:      customerSystemPrompt,
		Messages:    []llm.Message{{Role: "user", Content: effectiveQuery}},
		Temperature: 0,
		SchemaName:  "account_action",
		Schema:      actionSchema,
	})
	if err != nil {
		return "", fmt.Errorf("action extraction: %w", err)
	}

	var action accountAction
	if err := json.Unmarshal([]byte(raw), &action); err != nil {
		return "", fmt.Errorf("invalid action payload: %w", err)
	}
	if action.CustomerID == "" {
		action.CustomerID = customerID
	}
	if action.Action == "" || action.Action == "none" {
		return "I can look up your account details or update your address, email, or phone number. What would you like to do?", nil
	}
	if action.CustomerID == "" && action.Action != "register" {
		return "Please tell me your customer ID so I can find your account.", nil
	}

	decision, err := h.policy.Evaluate(ctx, map[string]interface{}{
		"action":      action.Action,
		"customer_id": action.CustomerID,
		"confirmed":   action.Confirmed,
	})
	if err != nil {
		return "", fmt.Errorf("policy evaluation: %w", err)
	}

	switch decision {
	case policy.DecisionBlock:
		return fmt.Sprintf("The requested account action %q is not permitted.", action.Action), nil
	case policy.DecisionRequireConfirmation:
		return h.confirmationPrompt(action), nil
	}

	return h.execute(ctx, action)
}

func (h *CustomerHandler) confirmationPrompt(action accountAction) string {
	switch action.Action {
	case "register":
		return fmt.Sprintf("I can register %s as a new customer. Reply to confirm and I'll create the account.", orUnknown(action.Name))
	default:
		field := strings.TrimPrefix(action.Action, "update_")
		return fmt.Sprintf("I can update the %s for %s to %q. Reply to confirm and I'll apply the change.",
			field, action.CustomerID, action.Value)
	}
}

func (h *CustomerHandler) execute(ctx context.Context, action accountAction) (string, error) {
	switch action.Action {
	case "get_details":
		c, err := h.refs.GetCustomer(ctx, action.CustomerID)
		if err != nil {
			return "", fmt.Errorf("load customer: %w", err)
		}
		if c == nil {
			return fmt.Sprintf("Customer %s was not found.", action.CustomerID), nil
		}
		return fmt.Sprintf("Customer %s: %s, email %s, phone %s, address %s, plan %s, status %s.",
			c.CustomerID, c.Name, orUnknown(c.Email), orUnknown(c.PhoneNumber), orUnknown(c.Address),
			orUnknown(c.ServicePlanID), c.AccountStatus), nil

	case "update_address":
		return h.applyUpdate(ctx, action, "address", h.refs.UpdateCustomerAddress)
	case "update_email":
		return h.applyUpdate(ctx, action, "email", h.refs.UpdateCustomerEmail)
	case "update_phone":
		return h.applyUpdate(ctx, action, "phone number", h.refs.UpdateCustomerPhone)

	case "register":
		if action.Name == "" {
			return "I need at least a name to register a new customer.", nil
		}
		c := &domain.Customer{
			CustomerID:       newCustomerID(),
			Name:             action.Name,
			Email:            action.Email,
			PhoneNumber:      action.Phone,
			Address:          action.Address,
			ServicePlanID:    "STD_500",
			AccountStatus:    "Active",
			RegistrationDate: time.Now(),
		}
		if err := h.refs.RegisterCustomer(ctx, c); err != nil {
			return "", fmt.Errorf("register customer: %w", err)
		}
		return fmt.Sprintf("Registered %s with customer ID %s on the Standard 500 plan.", c.Name, c.CustomerID), nil

	default:
		return fmt.Sprintf("Unsupported account action %q.", action.Action), nil
	}
}

func (h *CustomerHandler) applyUpdate(ctx context.Context, action accountAction, field string, update func(context.Context, string, string) (bool, error)) (string, error) {
	if action.Value == "" {
		return fmt.Sprintf("I need the new %s to make that change.", field), nil
	}
	found, err := update(ctx, action.CustomerID, action.Value)
	if err != nil {
		return "", fmt.Errorf("update %s: %w", field, err)
	}
	if !found {
		return fmt.Sprintf("Customer %s was not found.", action.CustomerID), nil
	}
	return fmt.Sprintf("The %s for %s has been updated to %s.", field, action.CustomerID, action.Value), nil
}

func newCustomerID() string {
	return fmt.Sprintf("CUST%04d", 1000+rand.Intn(9000))
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
