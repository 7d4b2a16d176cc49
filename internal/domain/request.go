package domain

// QueryRequest is the request to run one query through the orchestrator.
type QueryRequest struct {
	Query        string `json:"query"`
	CustomerID   string `json:"customer_id,omitempty"`
	SessionToken string `json:"session_token,omitempty"`
}

// QueryResponse is the orchestrator's answer for one query.
type QueryResponse struct {
	Response     string   `json:"response"`
	SessionToken string   `json:"session_token"`
	Category     Category `json:"category"`
}
