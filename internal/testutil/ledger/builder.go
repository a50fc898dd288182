// Package ledger provides a fluent builder for ledger fixtures in tests.
//
// Example usage:
//
//	entries := ledger.NewBuilder().
//		InMonth(2024, time.January).
//		Income(5000, "sales").
//		Expense(1500, "rent", "shop rent").
//		Build()
package ledger

import (
	"fmt"
	"time"

	"github.com/Veraticus/ledger-pulse/internal/model"
)

// Builder accumulates ledger entries. Each entry gets a sequential ID and
// a day inside the current month.
type Builder struct {
	month   time.Time
	entries []model.LedgerEntry
	nextDay int
}

// NewBuilder starts a builder in January 2024.
func NewBuilder() *Builder {
	return &Builder{month: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), nextDay: 1}
}

// InMonth moves subsequent entries to the given month.
func (b *Builder) InMonth(year int, month time.Month) *Builder {
	b.month = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	b.nextDay = 1
	return b
}

// NextMonth moves subsequent entries to the following month.
func (b *Builder) NextMonth() *Builder {
	b.month = b.month.AddDate(0, 1, 0)
	b.nextDay = 1
	return b
}

// Income adds a cash-in entry.
func (b *Builder) Income(amount float64, description string) *Builder {
	return b.add(amount, model.DirectionIn, "", description)
}

// Expense adds a cash-out entry in category.
func (b *Builder) Expense(amount float64, category, description string) *Builder {
	return b.add(amount, model.DirectionOut, category, description)
}

// Repeat appends a copy of the most recent entry with a new ID, same day.
func (b *Builder) Repeat() *Builder {
	if len(b.entries) == 0 {
		return b
	}
	dup := b.entries[len(b.entries)-1]
	dup.ID = fmt.Sprintf("entry-%d", len(b.entries)+1)
	dup.Hash = dup.GenerateHash()
	b.entries = append(b.entries, dup)
	return b
}

// Build returns a copy of the entries built so far.
func (b *Builder) Build() []model.LedgerEntry {
	out := make([]model.LedgerEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

func (b *Builder) add(amount float64, dir model.Direction, category, description string) *Builder {
	e := model.LedgerEntry{
		ID:            fmt.Sprintf("entry-%d", len(b.entries)+1),
		Date:          b.month.AddDate(0, 0, b.nextDay-1),
		Amount:        amount,
		Direction:     dir,
		Category:      category,
		Description:   description,
		PaymentMethod: "cash",
	}
	e.Hash = e.GenerateHash()
	b.entries = append(b.entries, e)
	if b.nextDay < 28 {
		b.nextDay++
	}
	return b
}
