// Package ledgercsv reads and writes ledger entries as CSV.
//
// The expected header is
//
//	id,date,amount,direction,category,description,payment_method
//
// Only amount is required. Columns may appear in any order and header names
// are matched case-insensitively.
package ledgercsv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/ledger-pulse/internal/model"
)

// Column names.
const (
	ColID            = "id"
	ColDate          = "date"
	ColAmount        = "amount"
	ColDirection     = "direction"
	ColCategory      = "category"
	ColDescription   = "description"
	ColPaymentMethod = "payment_method"
)

// Header is the canonical column order used by Write.
var Header = []string{ColID, ColDate, ColAmount, ColDirection, ColCategory, ColDescription, ColPaymentMethod}

var (
	// ErrMissingColumn is returned when a required column is absent from the header.
	ErrMissingColumn = errors.New("missing required column")
	// ErrInvalidRow is returned for a row whose amount or direction cannot be read.
	ErrInvalidRow = errors.New("invalid row")
)

// Reader parses ledger CSV files.
type Reader struct {
	now func() time.Time
}

// Option configures a Reader.
type Option func(*Reader)

// WithClock sets the clock used for rows whose date cannot be parsed.
func WithClock(now func() time.Time) Option {
	return func(r *Reader) {
		r.now = now
	}
}

// NewReader creates a Reader.
func NewReader(opts ...Option) *Reader {
	r := &Reader{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read parses every row of in. Rows with an unreadable date are kept and
// dated at the reader's clock.
func (r *Reader) Read(ctx context.Context, in io.Reader) ([]model.LedgerEntry, error) {
	cr := csv.NewReader(in)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := indexHeader(header)
	if _, ok := cols[ColAmount]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColAmount)
	}

	var entries []model.LedgerEntry
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if isBlank(record) {
			continue
		}

		entry, err := r.parseRow(cols, record, line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	slog.Debug("Parsed ledger CSV", "entries", len(entries))
	return entries, nil
}

func (r *Reader) parseRow(cols map[string]int, record []string, line int) (model.LedgerEntry, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	amount, err := parseAmount(field(ColAmount))
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("line %d: %w: amount %q", line, ErrInvalidRow, field(ColAmount))
	}

	direction, err := parseDirection(field(ColDirection), amount)
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("line %d: %w: %w", line, ErrInvalidRow, err)
	}

	rawDate := field(ColDate)
	date, ok := model.ParseLedgerDate(rawDate, r.now())
	if !ok {
		slog.Warn("Unparsable date, using current date",
			"line", line,
			"date", rawDate)
	}

	entry := model.LedgerEntry{
		ID:            field(ColID),
		Date:          date,
		Amount:        amount.Abs().InexactFloat64(),
		Direction:     direction,
		Category:      field(ColCategory),
		Description:   field(ColDescription),
		PaymentMethod: field(ColPaymentMethod),
	}
	if entry.ID == "" {
		// Line number keeps identical rows distinct so duplicates survive import.
		entry.ID = fmt.Sprintf("row-%d-%s", line, entry.GenerateHash()[:8])
	}
	entry.Hash = entry.GenerateHash()
	return entry, nil
}

// parseAmount accepts plain decimals with optional thousands separators and
// a leading currency symbol.
func parseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.ReplaceAll(raw, " ", "")
	negative := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")
	raw = strings.TrimLeft(raw, "$€£¥")
	if negative {
		raw = "-" + raw
	}
	return decimal.NewFromString(raw)
}

// parseDirection reads an explicit direction, or derives it from the
// amount's sign when the column is empty.
func parseDirection(raw string, amount decimal.Decimal) (model.Direction, error) {
	if raw == "" {
		if amount.IsNegative() {
			return model.DirectionOut, nil
		}
		return model.DirectionIn, nil
	}
	return model.ParseDirection(raw)
}

func indexHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := cols[name]; !seen {
			cols[name] = i
		}
	}
	return cols
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
