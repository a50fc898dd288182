// Package testutil provides shared test helpers for the ledger store.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/ledger-pulse/internal/model"
	"github.com/Veraticus/ledger-pulse/internal/storage"
)

// TestDBOptions configures SetupTestDB.
type TestDBOptions struct {
	Entries        []model.LedgerEntry
	StaffCosts     []model.StaffCostRecord
	SkipMigrations bool
}

// SetupTestDB creates a migrated in-memory ledger store seeded from opts.
// The store is closed when the test ends.
//
// Example:
//
//	db := testutil.SetupTestDB(t, testutil.TestDBOptions{
//		Entries: ledger.NewBuilder().Income(100, "sale").Build(),
//	})
func SetupTestDB(t *testing.T, opts TestDBOptions) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	if len(opts.Entries) > 0 {
		if _, err := store.SaveEntries(ctx, opts.Entries); err != nil {
			t.Fatalf("failed to seed entries: %v", err)
		}
	}
	for i := range opts.StaffCosts {
		if err := store.SaveStaffCost(ctx, &opts.StaffCosts[i]); err != nil {
			t.Fatalf("failed to seed staff cost %s: %v", opts.StaffCosts[i].Month, err)
		}
	}

	return store
}
