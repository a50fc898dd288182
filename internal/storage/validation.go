// Package storage provides the SQLite ledger store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/ledger-pulse/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrEmptySlice       = errors.New("slice cannot be empty")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidEntry     = errors.New("invalid ledger entry")
	ErrInvalidStaffCost = errors.New("invalid staff cost record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateEntries validates a slice of ledger entries.
func validateEntries(entries []model.LedgerEntry) error {
	if entries == nil {
		return fmt.Errorf("%w: entries", ErrNilParameter)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: entries", ErrEmptySlice)
	}

	for i := range entries {
		if err := validateEntry(&entries[i]); err != nil {
			return fmt.Errorf("entry at index %d: %w", i, err)
		}
	}
	return nil
}

// validateEntry checks the schema of a single entry. Missing dates are
// allowed; the engine decides how to treat them.
func validateEntry(e *model.LedgerEntry) error {
	if e == nil {
		return fmt.Errorf("%w: entry", ErrNilParameter)
	}
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidEntry)
	}
	if !e.Direction.IsValid() {
		return fmt.Errorf("%w: direction %q", ErrInvalidEntry, e.Direction)
	}
	if !model.IsValidAmount(e.Amount) {
		return fmt.Errorf("%w: amount %v", ErrInvalidEntry, e.Amount)
	}
	return nil
}

// validateStaffCost validates one month of staff costs.
func validateStaffCost(rec *model.StaffCostRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: staff cost", ErrNilParameter)
	}
	if err := validateMonth(rec.Month); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStaffCost, err)
	}
	if rec.StaffCount < 0 {
		return fmt.Errorf("%w: negative staff count", ErrInvalidStaffCost)
	}
	if !model.IsValidAmount(rec.TotalSalary) {
		return fmt.Errorf("%w: total salary %v", ErrInvalidStaffCost, rec.TotalSalary)
	}
	return nil
}
