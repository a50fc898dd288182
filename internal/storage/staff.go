package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/ledger-pulse/internal/model"
)

// SaveStaffCost records the staff bill for a month, replacing any earlier
// record for the same month.
func (s *SQLiteStorage) SaveStaffCost(ctx context.Context, rec *model.StaffCostRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateStaffCost(rec); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO staff_costs (month, staff_count, total_salary)
		VALUES (?, ?, ?)
		ON CONFLICT(month) DO UPDATE SET
			staff_count = excluded.staff_count,
			total_salary = excluded.total_salary,
			updated_at = CURRENT_TIMESTAMP
	`, rec.Month, rec.StaffCount, rec.TotalSalary)
	if err != nil {
		return fmt.Errorf("failed to save staff cost for %s: %w", rec.Month, err)
	}
	return nil
}

// GetStaffCosts returns staff costs between two months ("2006-01",
// inclusive), oldest first. An empty bound is open.
func (s *SQLiteStorage) GetStaffCosts(ctx context.Context, startMonth, endMonth string) ([]model.StaffCostRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	for _, m := range []string{startMonth, endMonth} {
		if m == "" {
			continue
		}
		if err := validateMonth(m); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
		}
	}
	if startMonth != "" && endMonth != "" && endMonth < startMonth {
		return nil, fmt.Errorf("%w: %s is before %s", ErrInvalidDateRange, endMonth, startMonth)
	}

	query := `SELECT month, staff_count, total_salary FROM staff_costs WHERE 1 = 1`
	var args []any
	if startMonth != "" {
		query += ` AND month >= ?`
		args = append(args, startMonth)
	}
	if endMonth != "" {
		query += ` AND month <= ?`
		args = append(args, endMonth)
	}
	query += ` ORDER BY month`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff costs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.StaffCostRecord
	for rows.Next() {
		var rec model.StaffCostRecord
		if err := rows.Scan(&rec.Month, &rec.StaffCount, &rec.TotalSalary); err != nil {
			return nil, fmt.Errorf("failed to scan staff cost: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate staff costs: %w", err)
	}
	return records, nil
}

func validateMonth(month string) error {
	if _, err := time.Parse(model.MonthLayout, month); err != nil {
		return fmt.Errorf("month %q must look like 2006-01", month)
	}
	return nil
}
