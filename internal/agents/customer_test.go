package agents

import (
	"context"
	"strings"
	"testing"

	"github.com/telvia/assistant/internal/adapter/llm"
	store "github.com/telvia/assistant/internal/repository"
	"github.com/telvia/assistant/policy"
)

func newCustomerHandler(t *testing.T, extracted string) (*CustomerHandler, *store.SQLiteStore) {
	t.Helper()
	db, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	client := &llm.MockClient{Respond: func(ctx context.Context, req *llm.Request) (string, error) {
		return extracted, nil
	}}
	return NewCustomerHandler(client, db, engine), db
}

func TestCustomerGetDetails(t *testing.T) {
	h, _ := newCustomerHandler(t, `{"action":"get_details","customer_id":"CUST001","confirmed":false}`)

	got, err := h.Process(context.Background(), "show my account", "CUST001")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if !strings.Contains(got, "CUST001") || !strings.Contains(got, "Avery Quinn") {
		t.Fatalf("unexpected details: %q", got)
	}
}

func TestCustomerUpdateRequiresConfirmation(t *testing.T) {
	h, db := newCustomerHandler(t, `{"action":"update_email","customer_id":"CUST001","value":"new@example.com","confirmed":false}`)

	got, err := h.Process(context.Background(), "change my email to new@example.com", "CUST001")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if !strings.Contains(got, "confirm") {
		t.Fatalf("expected confirmation prompt, got %q", got)
	}

	c, err := db.GetCustomer(context.Background(), "CUST001")
	if err != nil {
		t.Fatalf("GetCustomer failed: %v", err)
	}
	if c.Email == "new@example.com" {
		t.Fatalf("unconfirmed mutation must not be applied")
	}
}

func TestCustomerConfirmedUpdateApplies(t *testing.T) {
	h, db := newCustomerHandler(t, `{"action":"update_email","customer_id":"CUST001","value":"new@example.com","confirmed":true}`)

	got, err := h.Process(context.Background(), "yes, update my email to new@example.com", "CUST001")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if !strings.Contains(got, "new@example.com") {
		t.Fatalf("unexpected response: %q", got)
	}

	c, err := db.GetCustomer(context.Background(), "CUST001")
	if err != nil {
		t.Fatalf("GetCustomer failed: %v", err)
	}
	if c.Email != "new@example.com" {
		t.Fatalf("confirmed mutation not applied: %+v", c)
	}
}

func TestCustomerMissingIDPrompts(t *testing.T) {
	h, _ := newCustomerHandler(t, `{"action":"get_details","customer_id":"","confirmed":false}`)

	got, err := h.Process(context.Background(), "show my account", "")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if !strings.Contains(got, "customer ID") {
		t.Fatalf("expected a prompt for the customer ID, got %q", got)
	}
}

func TestCustomerRegisterConfirmed(t *testing.T) {
	h, db := newCustomerHandler(t, `{"action":"register","name":"Sam Lee","email":"sam@example.com","phone":"+1-555-0102","address":"4 Elm Rd","confirmed":true}`)

	got, err := h.Process(context.Background(), "yes, register Sam Lee", "")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if !strings.Contains(got, "Sam Lee") || !strings.Contains(got, "CUST") {
		t.Fatalf("unexpected response: %q", got)
	}

	id := got[strings.Index(got, "CUST") : strings.Index(got, "CUST")+8]
	c, err := db.GetCustomer(context.Background(), id)
	if err != nil {
		t.Fatalf("GetCustomer failed: %v", err)
	}
	if c == nil || c.Name != "Sam Lee" {
		t.Fatalf("registered customer not found: %+v", c)
	}
}
