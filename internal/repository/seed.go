package store

import (
	"context"
	"time"

	"github.com/telvia/assistant/internal/domain"
)

// seedReferenceData loads a small reference dataset so a fresh database can
// answer handler queries out of the box. Existing rows are left alone.
func (s *SQLiteStore) seedReferenceData() error {
	ctx := context.Background()

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM service_plans`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	plans := []domain.ServicePlan{
		{PlanID: "BASIC_100", Name: "Basic 100", MonthlyCost: 19.99, DataLimitGB: 5, VoiceMinutes: 100, SMSCount: 100, Description: "Entry-level plan for light users"},
		{PlanID: "STD_500", Name: "Standard 500", MonthlyCost: 39.99, DataLimitGB: 25, VoiceMinutes: 500, SMSCount: 500, Description: "Standard plan for everyday use"},
		{PlanID: "PREMIUM_UNL", Name: "Premium Unlimited", MonthlyCost: 69.99, DataLimitGB: 999, VoiceMinutes: 10000, SMSCount: 10000, Description: "Unlimited data with international minutes"},
	}
	for _, p := range plans {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO service_plans (plan_id, name, monthly_cost, data_limit_gb, voice_minutes, sms_count, description) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.PlanID, p.Name, p.MonthlyCost, p.DataLimitGB, p.VoiceMinutes, p.SMSCount, p.Description); err != nil {
			return err
		}
	}

	now := time.Now()
	if err := s.RegisterCustomer(ctx, &domain.Customer{
		CustomerID:       "CUST001",
		Name:             "Avery Quinn",
		Email:            "avery.quinn@example.com",
		PhoneNumber:      "+1-555-0101",
		Address:          "12 Harbor Lane, Springfield",
		ServicePlanID:    "STD_500",
		AccountStatus:    "Active",
		RegistrationDate: now.AddDate(-1, 0, 0),
	}); err != nil {
		return err
	}

	usage := [][]interface{}{
		{"CUST001", now.AddDate(0, -2, 0), now.AddDate(0, -1, 0), 18.4, 320, 210, 0.0, 39.99},
		{"CUST001", now.AddDate(0, -1, 0), now, 27.9, 415, 240, 12.50, 52.49},
	}
	for _, u := range usage {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO customer_usage (customer_id, billing_period_start, billing_period_end, data_used_gb, voice_minutes_used, sms_count_used, additional_charges, total_bill_amount)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, u...); err != nil {
			return err
		}
	}

	incidents := [][]interface{}{
		{"Springfield", "degraded", "Tower maintenance, reduced 5G capacity", now.Add(-6 * time.Hour)},
		{"Riverdale", "outage", "Fiber cut affecting mobile backhaul", now.Add(-2 * time.Hour)},
	}
	for _, n := range incidents {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO network_status (location, status, description, reported_at) VALUES (?, ?, ?, ?)`, n...); err != nil {
			return err
		}
	}

	coverage := [][]interface{}{
		{"Springfield", "5G", "excellent"},
		{"Springfield", "4G", "excellent"},
		{"Riverdale", "4G", "good"},
		{"Riverdale", "5G", "fair"},
	}
	for _, c := range coverage {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO coverage_areas (location, network_type, signal_rating) VALUES (?, ?, ?)`, c...); err != nil {
			return err
		}
	}

	devices := [][]interface{}{
		{"Pixel 9", "5G", "Full band support"},
		{"iPhone 15", "5G", "Full band support"},
		{"Galaxy S21", "4G", "5G limited to n78"},
	}
	for _, d := range devices {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO device_compatibility (device_model, network_type, notes) VALUES (?, ?, ?)`, d...); err != nil {
			return err
		}
	}

	docs := [][]interface{}{
		{"APN settings", "To configure mobile data, set APN to internet.telvia.net with default auth. Restart the device after saving."},
		{"Roaming guide", "International roaming must be enabled per line. Data roaming rates depend on the visited zone. Premium Unlimited includes zone 1 roaming."},
		{"Billing FAQ", "Bills are issued on the first day of each period. Additional charges cover out-of-bundle usage and one-time fees such as roaming packs."},
	}
	for _, d := range docs {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO documents (title, content) VALUES (?, ?)`, d...); err != nil {
			return err
		}
	}

	return nil
}
