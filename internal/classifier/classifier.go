// Package classifier maps free-text queries onto the fixed category set.
package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/telvia/assistant/internal/adapter/llm"
	"github.com/telvia/assistant/internal/domain"
	"github.com/telvia/assistant/internal/sentiment"
)

// historyBound caps how many turns of context go into the prompt.
const historyBound = 10

// LogSink receives one entry per non-degenerate classification.
type LogSink interface {
	RecordQueryLog(ctx context.Context, entry *domain.QueryLogEntry) error
}

// Classifier resolves a query to exactly one Category.
type Classifier struct {
	llm     llm.Client
	logs    LogSink
	scorer  sentiment.Scorer
	timeout time.Duration
}

// New creates a classifier. The log sink and scorer are best-effort
// collaborators: their failures never surface to callers.
func New(client llm.Client, logs LogSink, scorer sentiment.Scorer, timeout time.Duration) *Classifier {
	return &Classifier{
		llm:     client,
		logs:    logs,
		scorer:  scorer,
		timeout: timeout,
	}
}

const systemPrompt = `You are a query classifier for a telecom assistant.
Classify the query into exactly one of these categories:
- BILLING: Questions about bills, charges, payments, or account balance.
- NETWORK: Questions about signal, internet issues, outages, or device connectivity. This includes coverage, signal strength, and speed questions tied to a location or connection quality.
- SERVICE: Questions about plan recommendations, upgrading, or new services.
- KNOWLEDGE: General technical questions, "how-to" guides, or factual compatibility checks.
- CUSTOMER_MANAGEMENT: Requests to view or change customer account details such as address, email, phone number, or new registrations.
- OTHER: Anything else.

Tie-break rule: location, signal, outage, or connectivity quality questions are NETWORK even when they sound factual; general how-to, conceptual, or compatibility facts are KNOWLEDGE.

Answer with the category name only.`

// Classify resolves the query against the category set. Empty or
// whitespace-only queries short-circuit to OTHER without a model call and
// without a log entry. Model failures surface as *domain.ClassificationError.
func (c *Classifier) Classify(ctx context.Context, query, customerID string, history []domain.Turn) (domain.Category, error) {
	if strings.TrimSpace(query) == "" {
		return domain.CategoryOther, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := &llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: "user", Content: buildPrompt(query, history)}},
		Temperature: 0,
		MaxTokens:   20,
	}

	start := time.Now()
	raw, err := c.llm.Complete(ctx, req)
	if err != nil {
		return domain.CategoryOther, &domain.ClassificationError{Err: err}
	}

	category := domain.NormalizeCategory(raw)
	slog.Debug("query classified",
		"category", category,
		"latency_ms", time.Since(start).Milliseconds())

	c.record(ctx, customerID, query, category)
	return category, nil
}

// buildPrompt renders the bounded history ahead of the raw query so the
// model sees multi-turn context in chronological order.
func buildPrompt(query string, history []domain.Turn) string {
	if len(history) > historyBound {
		history = history[len(history)-historyBound:]
	}
	if len(history) == 0 {
		return fmt.Sprintf("Query: %s", query)
	}

	var b strings.Builder
	b.WriteString("Conversation so far:\n")
	for _, t := range history {
		fmt.Fprintf(&b, "%s: %s\n", t.Role, t.Content)
	}
	fmt.Fprintf(&b, "\nQuery: %s", query)
	return b.String()
}

// record writes the query log entry. Failures are swallowed with a warning:
// the log is a side channel and must never abort the routing pipeline.
func (c *Classifier) record(ctx context.Context, customerID, query string, category domain.Category) {
	entry := &domain.QueryLogEntry{
		EntryID:    uuid.New().String(),
		CustomerID: customerID,
		QueryText:  query,
		Category:   category,
		Sentiment:  c.scorer.Score(query),
		CreatedAt:  time.Now(),
	}
	if err := c.logs.RecordQueryLog(ctx, entry); err != nil {
		slog.Warn("failed to record query log entry", "error", err, "category", category)
	}
}
