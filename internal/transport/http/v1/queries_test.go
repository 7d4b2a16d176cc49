package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/telvia/assistant/internal/adapter/llm"
	"github.com/telvia/assistant/internal/adapter/retrieval"
	"github.com/telvia/assistant/internal/agents"
	"github.com/telvia/assistant/internal/classifier"
	"github.com/telvia/assistant/internal/config"
	store "github.com/telvia/assistant/internal/repository"
	"github.com/telvia/assistant/internal/sentiment"
	"github.com/telvia/assistant/internal/service"
	"github.com/telvia/assistant/policy"
	"github.com/telvia/assistant/tests/helpers"
)

func newTestHandler(t *testing.T) (*Handler, store.Store) {
	cfg := &config.Config{
		ClassifyTimeout:   time.Second,
		HandlerTimeout:    time.Second,
		DefaultCustomerID: "CUST001",
	}
	db := helpers.NewTestSQLiteStore(t)
	client := llm.NewMockClient()
	cls := classifier.New(client, db, sentiment.NewLexiconScorer(), cfg.ClassifyTimeout)
	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	retriever := retrieval.NewKeywordRetriever(db)
	reg := agents.NewRegistry(
		agents.NewBillingHandler(client, db),
		agents.NewNetworkHandler(client, db),
		agents.NewServiceHandler(client, db),
		agents.NewKnowledgeHandler(client, retriever, db),
		agents.NewCustomerHandler(client, db, engine),
	)
	svc := service.New(db, cls, reg, nil, cfg)
	return NewHandler(svc), db
}

func TestSubmitQueryValidation(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/queries", bytes.NewBufferString(`{"customer_id":"CUST001"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SubmitQuery(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSubmitQuerySuccess(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	body := `{"query":"Why is my bill so high this month?","customer_id":"CUST001"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/queries", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SubmitQuery(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Response     string `json:"response"`
		SessionToken string `json:"session_token"`
		Category     string `json:"category"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.SessionToken == "" {
		t.Fatal("expected a session token")
	}
	if resp.Category != "BILLING" {
		t.Fatalf("expected BILLING, got %s", resp.Category)
	}
	if resp.Response == "" {
		t.Fatal("expected a non-empty response")
	}
}

func TestGetSessionTurnsAfterQuery(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	body := `{"query":"Why is my bill so high?","customer_id":"CUST001"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/queries", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	if err := h.SubmitQuery(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var submitResp struct {
		SessionToken string `json:"session_token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &submitResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/sessions/"+submitResp.SessionToken+"/turns", nil)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("token")
	c.SetParamValues(submitResp.SessionToken)

	if err := h.GetSessionTurns(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var turnsResp struct {
		Turns []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"turns"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &turnsResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(turnsResp.Turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turnsResp.Turns))
	}
	if turnsResp.Turns[0].Role != "user" || turnsResp.Turns[1].Role != "assistant" {
		t.Fatalf("unexpected turn roles: %+v", turnsResp.Turns)
	}
	if turnsResp.Turns[0].Content != "Why is my bill so high?" {
		t.Fatalf("unexpected user turn: %q", turnsResp.Turns[0].Content)
	}
}

func TestGetQueryLogs(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	body := `{"query":"My bill looks wrong","customer_id":"CUST001"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/queries", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	if err := h.SubmitQuery(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/logs?limit=10", nil)
	rec = httptest.NewRecorder()
	if err := h.GetQueryLogs(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var logsResp struct {
		Logs []struct {
			CustomerID string `json:"customer_id"`
			Category   string `json:"category"`
		} `json:"logs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &logsResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(logsResp.Logs) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(logsResp.Logs))
	}
	if logsResp.Logs[0].Category != "BILLING" {
		t.Fatalf("expected BILLING, got %s", logsResp.Logs[0].Category)
	}
}

func TestGetQueryLogsBadLimit(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/logs?limit=abc", nil)
	rec := httptest.NewRecorder()
	if err := h.GetQueryLogs(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	if err := h.Health(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
