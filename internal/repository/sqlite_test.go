package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/telvia/assistant/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func turn(token string, role domain.Role, content string, at time.Time) domain.Turn {
	return domain.Turn{
		TurnID:    uuid.New().String(),
		SessionID: token,
		Role:      role,
		Content:   content,
		CreatedAt: at,
	}
}

func TestGetOrCreateSession(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.GetOrCreateSession(ctx, "tok1", "CUST001")
	if err != nil {
		t.Fatalf("GetOrCreateSession failed: %v", err)
	}
	if created.Token != "tok1" || created.CustomerID != "CUST001" {
		t.Fatalf("unexpected session: %+v", created)
	}

	again, err := s.GetOrCreateSession(ctx, "tok1", "CUST999")
	if err != nil {
		t.Fatalf("GetOrCreateSession failed: %v", err)
	}
	if again.CustomerID != "CUST001" {
		t.Fatalf("expected existing session to win, got %+v", again)
	}
}

func TestAppendExchangeAtomicity(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.GetOrCreateSession(ctx, "tok1", "CUST001"); err != nil {
		t.Fatalf("GetOrCreateSession failed: %v", err)
	}

	now := time.Now()
	err := s.AppendExchange(ctx, "tok1",
		turn("tok1", domain.RoleUser, "Why is my bill so high?", now),
		turn("tok1", domain.RoleAssistant, "Your bill includes a roaming pack.", now.Add(time.Second)),
		domain.CategoryBilling)
	if err != nil {
		t.Fatalf("AppendExchange failed: %v", err)
	}

	session, err := s.GetSession(ctx, "tok1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if session.LastCategory != domain.CategoryBilling {
		t.Fatalf("expected BILLING, got %s", session.LastCategory)
	}
	if len(session.Turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(session.Turns))
	}
	if session.Turns[0].Role != domain.RoleUser || session.Turns[1].Role != domain.RoleAssistant {
		t.Fatalf("turns out of order: %+v", session.Turns)
	}
}

func TestAppendExchangeUnknownSession(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// Foreign key constraint rejects writes to unknown tokens, so a failed
	// append never leaves a partial exchange behind.
	now := time.Now()
	err := s.AppendExchange(ctx, "ghost",
		turn("ghost", domain.RoleUser, "hello", now),
		turn("ghost", domain.RoleAssistant, "hi", now),
		domain.CategoryOther)
	if err == nil {
		t.Fatalf("expected foreign key failure")
	}
	turns, err := s.GetTurns(ctx, "ghost", 0)
	if err != nil {
		t.Fatalf("GetTurns failed: %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("expected no turns after rollback, got %d", len(turns))
	}
}

func TestGetTurnsLimit(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.GetOrCreateSession(ctx, "tok1", "CUST001"); err != nil {
		t.Fatalf("GetOrCreateSession failed: %v", err)
	}
	base := time.Now()
	for i := 0; i < 6; i += 2 {
		err := s.AppendExchange(ctx, "tok1",
			turn("tok1", domain.RoleUser, fmt.Sprintf("q%d", i), base.Add(time.Duration(i)*time.Second)),
			turn("tok1", domain.RoleAssistant, fmt.Sprintf("a%d", i), base.Add(time.Duration(i+1)*time.Second)),
			domain.CategoryOther)
		if err != nil {
			t.Fatalf("AppendExchange failed: %v", err)
		}
	}

	turns, err := s.GetTurns(ctx, "tok1", 4)
	if err != nil {
		t.Fatalf("GetTurns failed: %v", err)
	}
	if len(turns) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(turns))
	}
	if turns[0].Content != "q2" || turns[3].Content != "a4" {
		t.Fatalf("expected most recent turns oldest-first, got %+v", turns)
	}
}

func TestQueryLogRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		entry := &domain.QueryLogEntry{
			EntryID:    uuid.New().String(),
			CustomerID: "CUST001",
			QueryText:  fmt.Sprintf("query %d", i),
			Category:   domain.CategoryBilling,
			Sentiment:  -0.25,
			CreatedAt:  time.Now().Add(time.Duration(i) * time.Second),
		}
		if err := s.RecordQueryLog(ctx, entry); err != nil {
			t.Fatalf("RecordQueryLog failed: %v", err)
		}
	}

	entries, err := s.ListRecentQueryLogs(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecentQueryLogs failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].QueryText != "query 2" {
		t.Fatalf("expected newest first, got %+v", entries[0])
	}
}

func TestCustomerUpdatesParameterized(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ok, err := s.UpdateCustomerAddress(ctx, "CUST001", "99 New Street'; DROP TABLE customers;--")
	if err != nil {
		t.Fatalf("UpdateCustomerAddress failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected seeded customer to exist")
	}

	c, err := s.GetCustomer(ctx, "CUST001")
	if err != nil {
		t.Fatalf("GetCustomer failed: %v", err)
	}
	if c == nil || c.Address != "99 New Street'; DROP TABLE customers;--" {
		t.Fatalf("address stored verbatim, got %+v", c)
	}

	ok, err = s.UpdateCustomerEmail(ctx, "NOPE", "x@y.z")
	if err != nil {
		t.Fatalf("UpdateCustomerEmail failed: %v", err)
	}
	if ok {
		t.Fatalf("expected missing customer to report not found")
	}
}

func TestReferenceLookups(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	plans, err := s.ListPlans(ctx)
	if err != nil {
		t.Fatalf("ListPlans failed: %v", err)
	}
	if len(plans) != 3 {
		t.Fatalf("expected 3 seeded plans, got %d", len(plans))
	}

	incidents, err := s.FindNetworkIncidents(ctx, "Riverdale")
	if err != nil {
		t.Fatalf("FindNetworkIncidents failed: %v", err)
	}
	if len(incidents) != 1 || incidents[0].Status != "outage" {
		t.Fatalf("unexpected incidents: %+v", incidents)
	}

	usage, err := s.GetRecentUsage(ctx, "CUST001", 5)
	if err != nil {
		t.Fatalf("GetRecentUsage failed: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("expected 2 usage rows, got %d", len(usage))
	}
	if usage[0].TotalBillAmount < usage[1].TotalBillAmount {
		t.Fatalf("expected newest period first")
	}

	snippets, err := s.SearchDocuments(ctx, "roaming", 3)
	if err != nil {
		t.Fatalf("SearchDocuments failed: %v", err)
	}
	if len(snippets) == 0 {
		t.Fatalf("expected roaming snippet")
	}
}
