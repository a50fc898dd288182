// Package model defines the ledger data shared by importers, storage, and analytics.
package model

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Direction says whether money came into or left the business.
type Direction string

const (
	// DirectionIn is a cash-in entry (sale, payment received).
	DirectionIn Direction = "IN"
	// DirectionOut is a cash-out entry (purchase, bill, salary).
	DirectionOut Direction = "OUT"
)

// IsValid reports whether d is one of the known directions.
func (d Direction) IsValid() bool {
	return d == DirectionIn || d == DirectionOut
}

// ErrUnknownDirection is returned by ParseDirection for unrecognized input.
var ErrUnknownDirection = errors.New("unknown direction")

// ParseDirection reads a direction case-insensitively. Bank statement
// spellings (CREDIT/CR, DEBIT/DR) are accepted as aliases.
func ParseDirection(raw string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "IN", "CREDIT", "CR":
		return DirectionIn, nil
	case "OUT", "DEBIT", "DR":
		return DirectionOut, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownDirection, raw)
	}
}

// IsValidAmount reports whether a is a finite, non-negative amount of money.
func IsValidAmount(a float64) bool {
	return a >= 0 && !math.IsInf(a, 1)
}

// DefaultCategory is used for entries recorded without a category.
const DefaultCategory = "Others"

// LedgerEntry is one recorded cash movement.
// Amount is never negative; the economic sign is carried by Direction.
type LedgerEntry struct {
	Date          time.Time // zero when the source date could not be parsed
	ID            string
	Category      string
	Description   string
	PaymentMethod string
	Hash          string
	Direction     Direction
	Amount        float64
}

// CategoryOrDefault returns the trimmed category, or DefaultCategory when blank.
func (e *LedgerEntry) CategoryOrDefault() string {
	c := strings.TrimSpace(e.Category)
	if c == "" {
		return DefaultCategory
	}
	return c
}

// Day returns the calendar day of the entry as "2006-01-02", or "" for an unknown date.
func (e *LedgerEntry) Day() string {
	if e.Date.IsZero() {
		return ""
	}
	return e.Date.Format("2006-01-02")
}

// GenerateHash creates a unique hash for import deduplication.
func (e *LedgerEntry) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%.2f:%s:%s:%s",
		e.ID,
		e.Day(),
		e.Amount,
		e.Direction,
		e.Description,
		e.PaymentMethod)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// ParseLedgerDate parses a calendar day in one of the layouts merchants
// commonly export. Unparsable input falls back to now and ok is false;
// callers keep the entry rather than drop it.
func ParseLedgerDate(raw string, now time.Time) (t time.Time, ok bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return now, false
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2006/01/02",
}
