package domain

import "time"

// QueryLogEntry is an immutable, append-only record of one classified query.
type QueryLogEntry struct {
	EntryID    string    `json:"entry_id"`
	CustomerID string    `json:"customer_id"`
	QueryText  string    `json:"query_text"`
	Category   Category  `json:"category"`
	Sentiment  float64   `json:"sentiment_score"`
	CreatedAt  time.Time `json:"created_at"`
}

// RoutingState is the per-invocation record threaded through the router's
// state machine. It is owned by exactly one run and never shared.
type RoutingState struct {
	State        RunState
	Query        string
	CustomerID   string
	SessionToken string
	Category     Category
	History      []Turn
	Response     string
}

// Customer is a row in the customers reference table.
type Customer struct {
	CustomerID       string    `json:"customer_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PhoneNumber      string    `json:"phone_number"`
	Address          string    `json:"address"`
	ServicePlanID    string    `json:"service_plan_id"`
	AccountStatus    string    `json:"account_status"`
	RegistrationDate time.Time `json:"registration_date"`
}

// ServicePlan is a row in the service_plans reference table.
type ServicePlan struct {
	PlanID       string  `json:"plan_id"`
	Name         string  `json:"name"`
	MonthlyCost  float64 `json:"monthly_cost"`
	DataLimitGB  float64 `json:"data_limit_gb"`
	VoiceMinutes int     `json:"voice_minutes"`
	SMSCount     int     `json:"sms_count"`
	Description  string  `json:"description"`
}

// UsageRecord is a row in the customer_usage reference table.
type UsageRecord struct {
	UsageID            int64     `json:"usage_id"`
	CustomerID         string    `json:"customer_id"`
	BillingPeriodStart time.Time `json:"billing_period_start"`
	BillingPeriodEnd   time.Time `json:"billing_period_end"`
	DataUsedGB         float64   `json:"data_used_gb"`
	VoiceMinutesUsed   int       `json:"voice_minutes_used"`
	SMSCountUsed       int       `json:"sms_count_used"`
	AdditionalCharges  float64   `json:"additional_charges"`
	TotalBillAmount    float64   `json:"total_bill_amount"`
}

// NetworkIncident is a row in the network_status reference table.
type NetworkIncident struct {
	IncidentID  int64     `json:"incident_id"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	ReportedAt  time.Time `json:"reported_at"`
}

// CoverageArea is a row in the coverage_areas reference table.
type CoverageArea struct {
	Location     string `json:"location"`
	NetworkType  string `json:"network_type"`
	SignalRating string `json:"signal_rating"`
}
