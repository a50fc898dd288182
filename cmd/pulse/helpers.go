package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/viper"

	"github.com/Veraticus/ledger-pulse/internal/common"
	"github.com/Veraticus/ledger-pulse/internal/config"
	"github.com/Veraticus/ledger-pulse/internal/model"
	"github.com/Veraticus/ledger-pulse/internal/storage"
)

const dayLayout = "2006-01-02"

// initStorage opens the configured ledger database and migrates it.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.DatabasePath(viper.GetViper())

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Debug("Opened ledger database", "path", store.Path())
	return store, nil
}

// dateRange is an inclusive day range from --from/--to flags.
// A zero bound is open.
type dateRange struct {
	from time.Time
	to   time.Time
}

// parseRange reads --from and --to. A missing --to defaults to now when
// --from is given.
func parseRange(from, to string, now time.Time) (dateRange, error) {
	var r dateRange
	var err error

	if from != "" {
		if r.from, err = time.Parse(dayLayout, from); err != nil {
			return r, common.NewUserError(fmt.Sprintf("invalid --from date %q (want YYYY-MM-DD)", from), err)
		}
	}
	if to != "" {
		if r.to, err = time.Parse(dayLayout, to); err != nil {
			return r, common.NewUserError(fmt.Sprintf("invalid --to date %q (want YYYY-MM-DD)", to), err)
		}
	}
	if !r.from.IsZero() && r.to.IsZero() {
		r.to = now
	}
	if !r.to.IsZero() && r.to.Before(r.from) {
		return r, common.NewUserError("--to must not be before --from", storage.ErrInvalidDateRange)
	}
	return r, nil
}

func (r dateRange) all() bool {
	return r.from.IsZero() && r.to.IsZero()
}

// months returns the staff-cost month bounds covering the range.
func (r dateRange) months() (start, end string) {
	if !r.from.IsZero() {
		start = r.from.Format(model.MonthLayout)
	}
	if !r.to.IsZero() {
		end = r.to.Format(model.MonthLayout)
	}
	return start, end
}

// loadEntries returns the ledger entries in r, or every entry when r is open.
func loadEntries(ctx context.Context, store *storage.SQLiteStorage, r dateRange) ([]model.LedgerEntry, error) {
	if r.all() {
		return store.GetAllEntries(ctx)
	}
	return store.GetEntriesByDateRange(ctx, r.from, r.to)
}

// expandFiles resolves glob patterns to existing files.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, common.NewUserError("no files found to import", common.ErrNotFound)
	}
	return files, nil
}

func newProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]"+description+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
