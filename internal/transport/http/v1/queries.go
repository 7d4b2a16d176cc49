package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/telvia/assistant/internal/domain"
)

// QueryRequest is the body of a query submission.
type QueryRequest struct {
	Query        string `json:"query"`
	CustomerID   string `json:"customer_id,omitempty"`
	SessionToken string `json:"session_token,omitempty"`
}

// SubmitQuery runs one query through classification and routing.
// POST /v1/queries
func (h *Handler) SubmitQuery(c echo.Context) error {
	ctx := c.Request().Context()

	var req QueryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Query == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "query is required"})
	}

	resp, err := h.service.Run(ctx, &domain.QueryRequest{
		Query:        req.Query,
		CustomerID:   req.CustomerID,
		SessionToken: req.SessionToken,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"response":      resp.Response,
		"session_token": resp.SessionToken,
		"category":      resp.Category,
	})
}

// GetSessionTurns returns the transcript of a session in chronological order.
// GET /v1/sessions/:token/turns?limit=N
func (h *Handler) GetSessionTurns(c echo.Context) error {
	ctx := c.Request().Context()
	token := c.Param("token")

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "limit must be a non-negative integer"})
		}
		limit = n
	}

	turns, err := h.service.SessionTurns(ctx, token, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	turnList := make([]map[string]interface{}, len(turns))
	for i, t := range turns {
		turnList[i] = map[string]interface{}{
			"turn_id":    t.TurnID,
			"role":       t.Role,
			"content":    t.Content,
			"created_at": t.CreatedAt.Format(time.RFC3339),
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"session_token": token,
		"turns":         turnList,
	})
}

// GetQueryLogs returns the newest query log entries.
// GET /v1/logs?limit=N
func (h *Handler) GetQueryLogs(c echo.Context) error {
	ctx := c.Request().Context()

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "limit must be a non-negative integer"})
		}
		limit = n
	}

	entries, err := h.service.RecentQueryLogs(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	entryList := make([]map[string]interface{}, len(entries))
	for i, e := range entries {
		entryList[i] = map[string]interface{}{
			"entry_id":    e.EntryID,
			"customer_id": e.CustomerID,
			"query_text":  e.QueryText,
			"category":    e.Category,
			"sentiment":   e.Sentiment,
			"created_at":  e.CreatedAt.Format(time.RFC3339),
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"logs": entryList,
	})
}
