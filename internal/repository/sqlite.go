// Package store implements SQLite-backed persistence for the orchestrator.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/telvia/assistant/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := s.seedReferenceData(); err != nil {
		slog.Warn("failed to seed reference data", "error", err)
		// Don't fail startup for this
	}

	return s, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL,
			last_category TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS turns (
			turn_id TEXT PRIMARY KEY,
			session_token TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (session_token) REFERENCES sessions(token)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_token, created_at)`,
		`CREATE TABLE IF NOT EXISTS query_logs (
			entry_id TEXT PRIMARY KEY,
			customer_id TEXT,
			query_text TEXT NOT NULL,
			category TEXT NOT NULL,
			sentiment_score REAL NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_query_logs_created ON query_logs(created_at)`,
		`CREATE TABLE IF NOT EXISTS customers (
			customer_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT,
			phone_number TEXT,
			address TEXT,
			service_plan_id TEXT,
			account_status TEXT NOT NULL DEFAULT 'Active',
			registration_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS service_plans (
			plan_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			monthly_cost REAL NOT NULL,
			data_limit_gb REAL NOT NULL,
			voice_minutes INTEGER NOT NULL,
			sms_count INTEGER NOT NULL,
			description TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS customer_usage (
			usage_id INTEGER PRIMARY KEY AUTOINCREMENT,
			customer_id TEXT NOT NULL,
			billing_period_start DATETIME NOT NULL,
			billing_period_end DATETIME NOT NULL,
			data_used_gb REAL NOT NULL DEFAULT 0,
			voice_minutes_used INTEGER NOT NULL DEFAULT 0,
			sms_count_used INTEGER NOT NULL DEFAULT 0,
			additional_charges REAL NOT NULL DEFAULT 0,
			total_bill_amount REAL NOT NULL DEFAULT 0,
			FOREIGN KEY (customer_id) REFERENCES customers(customer_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_usage_customer ON customer_usage(customer_id, billing_period_start)`,
		`CREATE TABLE IF NOT EXISTS network_status (
			incident_id INTEGER PRIMARY KEY AUTOINCREMENT,
			location TEXT NOT NULL,
			status TEXT NOT NULL,
			description TEXT,
			reported_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS coverage_areas (
			location TEXT NOT NULL,
			network_type TEXT NOT NULL,
			signal_rating TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS device_compatibility (
			device_model TEXT NOT NULL,
			network_type TEXT NOT NULL,
			notes TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			doc_id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			content TEXT NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetSession retrieves a session with its full turn history. Returns nil if
// the token is unknown.
func (s *SQLiteStore) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	var session domain.Session
	var lastCategory sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT token, customer_id, last_category, created_at FROM sessions WHERE token = ?`,
		token).Scan(&session.Token, &session.CustomerID, &lastCategory, &session.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if lastCategory.Valid {
		session.LastCategory = domain.Category(lastCategory.String)
	}

	turns, err := s.GetTurns(ctx, token, 0)
	if err != nil {
		return nil, err
	}
	session.Turns = turns
	return &session, nil
}

// GetOrCreateSession gets an existing session or creates a fresh one bound to
// the customer.
func (s *SQLiteStore) GetOrCreateSession(ctx context.Context, token, customerID string) (*domain.Session, error) {
	session, err := s.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}

	session = &domain.Session{
		Token:      token,
		CustomerID: customerID,
		CreatedAt:  time.Now(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (token, customer_id, created_at) VALUES (?, ?, ?)`,
		session.Token, session.CustomerID, session.CreatedAt)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// AppendExchange writes the user turn, the assistant turn, and the resolved
// category in one transaction. A concurrent reader never observes a user turn
// without its matching assistant turn.
func (s *SQLiteStore) AppendExchange(ctx context.Context, token string, userTurn, assistantTurn domain.Turn, category domain.Category) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := `INSERT INTO turns (turn_id, session_token, role, content, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insert,
		userTurn.TurnID, token, userTurn.Role, userTurn.Content, userTurn.CreatedAt); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, insert,
		assistantTurn.TurnID, token, assistantTurn.Role, assistantTurn.Content, assistantTurn.CreatedAt); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE sessions SET last_category = ? WHERE token = ?`,
		string(category), token); err != nil {
		return err
	}
	return tx.Commit()
}

// GetTurns retrieves turns for a session in chronological order. A positive
// limit returns only the most recent turns, still oldest-first.
func (s *SQLiteStore) GetTurns(ctx context.Context, token string, limit int) ([]domain.Turn, error) {
	query := `SELECT turn_id, session_token, role, content, created_at FROM turns WHERE session_token = ? ORDER BY created_at ASC, rowid ASC`
	args := []interface{}{token}
	if limit > 0 {
		query = `SELECT turn_id, session_token, role, content, created_at FROM (
			SELECT turn_id, session_token, role, content, created_at, rowid AS rid
			FROM turns WHERE session_token = ?
			ORDER BY created_at DESC, rid DESC LIMIT ?
		) ORDER BY created_at ASC, rid ASC`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []domain.Turn
	for rows.Next() {
		var t domain.Turn
		if err := rows.Scan(&t.TurnID, &t.SessionID, &t.Role, &t.Content, &t.CreatedAt); err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// RecordQueryLog appends one query log entry.
func (s *SQLiteStore) RecordQueryLog(ctx context.Context, entry *domain.QueryLogEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO query_logs (entry_id, customer_id, query_text, category, sentiment_score, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.EntryID, entry.CustomerID, entry.QueryText, string(entry.Category), entry.Sentiment, entry.CreatedAt)
	return err
}

// ListRecentQueryLogs lists the most recent query log entries, newest first.
func (s *SQLiteStore) ListRecentQueryLogs(ctx context.Context, limit int) ([]domain.QueryLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT entry_id, customer_id, query_text, category, sentiment_score, created_at
		 FROM query_logs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.QueryLogEntry
	for rows.Next() {
		var e domain.QueryLogEntry
		var category string
		if err := rows.Scan(&e.EntryID, &e.CustomerID, &e.QueryText, &category, &e.Sentiment, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Category = domain.Category(category)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetCustomer retrieves a customer by ID. Returns nil if not found.
func (s *SQLiteStore) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	var c domain.Customer
	var email, phone, address, planID sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT customer_id, name, email, phone_number, address, service_plan_id, account_status, registration_date
		 FROM customers WHERE customer_id = ?`,
		customerID).Scan(&c.CustomerID, &c.Name, &email, &phone, &address, &planID, &c.AccountStatus, &c.RegistrationDate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.Email = email.String
	c.PhoneNumber = phone.String
	c.Address = address.String
	c.ServicePlanID = planID.String
	return &c, nil
}

// RegisterCustomer inserts a new customer record.
func (s *SQLiteStore) RegisterCustomer(ctx context.Context, c *domain.Customer) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO customers (customer_id, name, email, phone_number, address, service_plan_id, account_status, registration_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.CustomerID, c.Name, c.Email, c.PhoneNumber, c.Address, c.ServicePlanID, c.AccountStatus, c.RegistrationDate)
	return err
}

func (s *SQLiteStore) updateCustomerColumn(ctx context.Context, customerID, column, value string) (bool, error) {
	// column comes from a fixed internal set, never from user input
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE customers SET %s = ? WHERE customer_id = ?`, column),
		value, customerID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// UpdateCustomerAddress updates a customer's address. Returns false when the
// customer does not exist.
func (s *SQLiteStore) UpdateCustomerAddress(ctx context.Context, customerID, address string) (bool, error) {
	return s.updateCustomerColumn(ctx, customerID, "address", address)
}

// UpdateCustomerEmail updates a customer's email.
func (s *SQLiteStore) UpdateCustomerEmail(ctx context.Context, customerID, email string) (bool, error) {
	return s.updateCustomerColumn(ctx, customerID, "email", email)
}

// UpdateCustomerPhone updates a customer's phone number.
func (s *SQLiteStore) UpdateCustomerPhone(ctx context.Context, customerID, phone string) (bool, error) {
	return s.updateCustomerColumn(ctx, customerID, "phone_number", phone)
}

// GetPlan retrieves a service plan by ID. Returns nil if not found.
func (s *SQLiteStore) GetPlan(ctx context.Context, planID string) (*domain.ServicePlan, error) {
	var p domain.ServicePlan
	var description sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT plan_id, name, monthly_cost, data_limit_gb, voice_minutes, sms_count, description
		 FROM service_plans WHERE plan_id = ?`,
		planID).Scan(&p.PlanID, &p.Name, &p.MonthlyCost, &p.DataLimitGB, &p.VoiceMinutes, &p.SMSCount, &description)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	return &p, nil
}

// ListPlans lists every service plan.
func (s *SQLiteStore) ListPlans(ctx context.Context) ([]domain.ServicePlan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT plan_id, name, monthly_cost, data_limit_gb, voice_minutes, sms_count, description FROM service_plans ORDER BY monthly_cost`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []domain.ServicePlan
	for rows.Next() {
		var p domain.ServicePlan
		var description sql.NullString
		if err := rows.Scan(&p.PlanID, &p.Name, &p.MonthlyCost, &p.DataLimitGB, &p.VoiceMinutes, &p.SMSCount, &description); err != nil {
			return nil, err
		}
		p.Description = description.String
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// GetRecentUsage lists the most recent billing periods for a customer,
// newest first.
func (s *SQLiteStore) GetRecentUsage(ctx context.Context, customerID string, limit int) ([]domain.UsageRecord, error) {
	if limit <= 0 {
		limit = 3
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT usage_id, customer_id, billing_period_start, billing_period_end, data_used_gb, voice_minutes_used, sms_count_used, additional_charges, total_bill_amount
		 FROM customer_usage WHERE customer_id = ? ORDER BY billing_period_start DESC LIMIT ?`,
		customerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.UsageRecord
	for rows.Next() {
		var u domain.UsageRecord
		if err := rows.Scan(&u.UsageID, &u.CustomerID, &u.BillingPeriodStart, &u.BillingPeriodEnd, &u.DataUsedGB, &u.VoiceMinutesUsed, &u.SMSCountUsed, &u.AdditionalCharges, &u.TotalBillAmount); err != nil {
			return nil, err
		}
		records = append(records, u)
	}
	return records, rows.Err()
}

// FindNetworkIncidents lists incidents for a location (substring match).
func (s *SQLiteStore) FindNetworkIncidents(ctx context.Context, location string) ([]domain.NetworkIncident, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT incident_id, location, status, description, reported_at FROM network_status WHERE location LIKE ? ORDER BY reported_at DESC`,
		"%"+location+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var incidents []domain.NetworkIncident
	for rows.Next() {
		var n domain.NetworkIncident
		var description sql.NullString
		if err := rows.Scan(&n.IncidentID, &n.Location, &n.Status, &description, &n.ReportedAt); err != nil {
			return nil, err
		}
		n.Description = description.String
		incidents = append(incidents, n)
	}
	return incidents, rows.Err()
}

// FindCoverage lists coverage entries for a location (substring match).
func (s *SQLiteStore) FindCoverage(ctx context.Context, location string) ([]domain.CoverageArea, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT location, network_type, signal_rating FROM coverage_areas WHERE location LIKE ?`,
		"%"+location+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var areas []domain.CoverageArea
	for rows.Next() {
		var a domain.CoverageArea
		if err := rows.Scan(&a.Location, &a.NetworkType, &a.SignalRating); err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

// SearchDeviceCompatibility lists compatibility notes for device models
// mentioned anywhere in the query text.
func (s *SQLiteStore) SearchDeviceCompatibility(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT device_model || ' supports ' || network_type || COALESCE('. ' || notes, '') FROM device_compatibility WHERE ? LIKE '%' || device_model || '%'`,
		query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// SearchDocuments returns document snippets whose title or content matches
// any word of the query.
func (s *SQLiteStore) SearchDocuments(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 3
	}
	var conds []string
	var args []interface{}
	for _, w := range strings.Fields(query) {
		// stop words add nothing to a LIKE match
		if len(w) < 4 {
			continue
		}
		conds = append(conds, `(title LIKE ? OR content LIKE ?)`)
		pattern := "%" + w + "%"
		args = append(args, pattern, pattern)
	}
	if len(conds) == 0 {
		return nil, nil
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx,
		`SELECT title || ': ' || content FROM documents WHERE `+strings.Join(conds, " OR ")+` LIMIT ?`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snippets []string
	for rows.Next() {
		var snippet string
		if err := rows.Scan(&snippet); err != nil {
			return nil, err
		}
		snippets = append(snippets, snippet)
	}
	return snippets, rows.Err()
}
