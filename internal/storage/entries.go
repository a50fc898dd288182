package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/ledger-pulse/internal/common"
	"github.com/Veraticus/ledger-pulse/internal/model"
)

const dayLayout = "2006-01-02"

const entryColumns = `id, hash, day, amount, direction, category, description, payment_method`

// SaveEntries stores entries and returns how many were new. Entries whose ID
// or hash is already present are skipped.
func (s *SQLiteStorage) SaveEntries(ctx context.Context, entries []model.LedgerEntry) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateEntries(entries); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO ledger_entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, e := range entries {
		if e.Hash == "" {
			e.Hash = e.GenerateHash()
		}

		res, execErr := stmt.ExecContext(ctx,
			e.ID,
			e.Hash,
			nullableDay(e.Date),
			e.Amount,
			string(e.Direction),
			e.Category,
			e.Description,
			e.PaymentMethod,
		)
		if execErr != nil {
			return 0, fmt.Errorf("failed to insert entry %s: %w", e.ID, execErr)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit entries: %w", err)
	}
	return inserted, nil
}

// GetEntriesByDateRange returns entries dated between start and end
// (inclusive, by calendar day), oldest first.
func (s *SQLiteStorage) GetEntriesByDateRange(ctx context.Context, start, end time.Time) ([]model.LedgerEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date %v is before start date %v", ErrInvalidDateRange, end, start)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+`
		FROM ledger_entries
		WHERE day >= ? AND day <= ?
		ORDER BY day, rowid
	`, start.Format(dayLayout), end.Format(dayLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows)
}

// GetAllEntries returns every entry, oldest first. Undated entries come last.
func (s *SQLiteStorage) GetAllEntries(ctx context.Context) ([]model.LedgerEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+`
		FROM ledger_entries
		ORDER BY day IS NULL, day, rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows)
}

// GetEntryByID returns one entry, or common.ErrNotFound.
func (s *SQLiteStorage) GetEntryByID(ctx context.Context, id string) (*model.LedgerEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM ledger_entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("entry %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetEntryCount returns the number of stored entries.
func (s *SQLiteStorage) GetEntryCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ledger_entries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

// DeleteEntry removes one entry, returning common.ErrNotFound if it does not exist.
func (s *SQLiteStorage) DeleteEntry(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM ledger_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("entry %s: %w", id, common.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (model.LedgerEntry, error) {
	var (
		e         model.LedgerEntry
		day       sql.NullString
		direction string
	)
	if err := row.Scan(&e.ID, &e.Hash, &day, &e.Amount, &direction,
		&e.Category, &e.Description, &e.PaymentMethod); err != nil {
		return model.LedgerEntry{}, err
	}
	e.Direction = model.Direction(direction)

	if day.Valid {
		parsed, err := time.Parse(dayLayout, day.String)
		if err != nil {
			return model.LedgerEntry{}, fmt.Errorf("entry %s has corrupt day %q: %w", e.ID, day.String, err)
		}
		e.Date = parsed
	}
	return e, nil
}

func scanEntries(rows *sql.Rows) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}

func nullableDay(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(dayLayout), Valid: true}
}
