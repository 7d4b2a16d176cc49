// Package webhook posts completed query events to an external endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Event describes a completed query run.
type Event struct {
	SessionToken string `json:"session_token"`
	CustomerID   string `json:"customer_id"`
	Category     string `json:"category"`
	Query        string `json:"query"`
	Response     string `json:"response"`
	OccurredAt   int64  `json:"occurred_at"`
}

// Client delivers events to a configured webhook URL.
// A client with an empty URL is valid and drops every event.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a webhook client for the given URL.
func NewClient(url string) *Client {
	return &Client{
		url: strings.TrimSuffix(url, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Enabled reports whether a webhook URL is configured.
func (c *Client) Enabled() bool {
	return c.url != ""
}

// Notify posts the event. Delivery is best effort: failures are logged
// and never returned to the caller.
func (c *Client) Notify(ctx context.Context, ev *Event) {
	if !c.Enabled() {
		return
	}
	if err := c.post(ctx, ev); err != nil {
		slog.Warn("webhook delivery failed", "url", c.url, "error", err)
	}
}

func (c *Client) post(ctx context.Context, ev *Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
