package store

import (
	"context"

	"github.com/telvia/assistant/internal/domain"
)

// SessionStore is the persistence surface the router depends on.
type SessionStore interface {
	GetSession(ctx context.Context, token string) (*domain.Session, error)
	GetOrCreateSession(ctx context.Context, token, customerID string) (*domain.Session, error)
	// AppendExchange persists one completed run: the user turn, the
	// assistant turn, and the resolved category, atomically.
	AppendExchange(ctx context.Context, token string, userTurn, assistantTurn domain.Turn, category domain.Category) error
	GetTurns(ctx context.Context, token string, limit int) ([]domain.Turn, error)
}

// QueryLogStore is the append-only query log sink.
type QueryLogStore interface {
	RecordQueryLog(ctx context.Context, entry *domain.QueryLogEntry) error
	ListRecentQueryLogs(ctx context.Context, limit int) ([]domain.QueryLogEntry, error)
}

// ReferenceStore exposes the telecom reference data consulted by handlers.
// All access is parameterized.
type ReferenceStore interface {
	GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error)
	RegisterCustomer(ctx context.Context, c *domain.Customer) error
	UpdateCustomerAddress(ctx context.Context, customerID, address string) (bool, error)
	UpdateCustomerEmail(ctx context.Context, customerID, email string) (bool, error)
	UpdateCustomerPhone(ctx context.Context, customerID, phone string) (bool, error)

	GetPlan(ctx context.Context, planID string) (*domain.ServicePlan, error)
	ListPlans(ctx context.Context) ([]domain.ServicePlan, error)
	GetRecentUsage(ctx context.Context, customerID string, limit int) ([]domain.UsageRecord, error)

	FindNetworkIncidents(ctx context.Context, location string) ([]domain.NetworkIncident, error)
	FindCoverage(ctx context.Context, location string) ([]domain.CoverageArea, error)
	SearchDeviceCompatibility(ctx context.Context, query string) ([]string, error)
	SearchDocuments(ctx context.Context, query string, limit int) ([]string, error)
}

// Store combines every persistence concern backed by one database.
type Store interface {
	SessionStore
	QueryLogStore
	ReferenceStore
	Close() error
}
