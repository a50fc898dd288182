package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/ledger-pulse/internal/common"
	"github.com/Veraticus/ledger-pulse/internal/ledgercsv"
	"github.com/Veraticus/ledger-pulse/internal/model"
	"github.com/Veraticus/ledger-pulse/internal/report"
	"github.com/Veraticus/ledger-pulse/internal/storage"
)

func entryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Record and inspect ledger entries",
	}

	cmd.AddCommand(entryAddCmd())
	cmd.AddCommand(entryListCmd())
	cmd.AddCommand(entryDeleteCmd())

	return cmd
}

// manualEntry holds the flags of "entry add".
type manualEntry struct {
	id          string
	direction   string
	date        string
	category    string
	description string
	method      string
	amount      float64
}

func entryAddCmd() *cobra.Command {
	var opts manualEntry

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a single cash movement",
		Example: `  pulse entry add --amount 5000 --direction in --description "daily sales"
  pulse entry add --amount 1200 --direction out --category Rent --date 2024-03-01`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entry, err := opts.build(time.Now())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			return addEntry(ctx, cmd.OutOrStdout(), store, entry)
		},
	}

	cmd.Flags().Float64Var(&opts.amount, "amount", 0, "amount of money moved (required)")
	cmd.Flags().StringVar(&opts.direction, "direction", "", "in or out (required)")
	cmd.Flags().StringVar(&opts.date, "date", "", "day of the movement, YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&opts.category, "category", "", "expense category (default: "+model.DefaultCategory+")")
	cmd.Flags().StringVar(&opts.description, "description", "", "free-text description")
	cmd.Flags().StringVar(&opts.method, "method", "cash", "payment method")
	cmd.Flags().StringVar(&opts.id, "id", "", "entry ID (default: generated)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("direction")

	return cmd
}

// build validates the flags and produces the entry to record.
func (m manualEntry) build(now time.Time) (model.LedgerEntry, error) {
	if m.amount == 0 || !model.IsValidAmount(m.amount) {
		return model.LedgerEntry{}, common.NewUserError("--amount must be a finite number greater than zero", storage.ErrInvalidEntry)
	}

	direction, err := model.ParseDirection(m.direction)
	if err != nil {
		return model.LedgerEntry{}, common.NewUserError("--direction must be in or out", err)
	}

	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if m.date != "" {
		if date, err = time.Parse(dayLayout, m.date); err != nil {
			return model.LedgerEntry{}, common.NewUserError(fmt.Sprintf("invalid --date %q (want YYYY-MM-DD)", m.date), err)
		}
	}

	entry := model.LedgerEntry{
		ID:            m.id,
		Date:          date,
		Amount:        m.amount,
		Direction:     direction,
		Category:      strings.TrimSpace(m.category),
		Description:   strings.TrimSpace(m.description),
		PaymentMethod: m.method,
	}
	if entry.ID == "" {
		entry.ID = fmt.Sprintf("manual-%d", now.UnixNano())
	}
	entry.Hash = entry.GenerateHash()
	return entry, nil
}

func addEntry(ctx context.Context, w io.Writer, store *storage.SQLiteStorage, entry model.LedgerEntry) error {
	inserted, err := store.SaveEntries(ctx, []model.LedgerEntry{entry})
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	if inserted == 0 {
		return common.NewUserError(fmt.Sprintf("entry %s is already recorded", entry.ID), common.ErrDuplicateEntry)
	}

	fmt.Fprintf(w, "✅ Recorded %s %.2f (%s) as %s\n", entry.Direction, entry.Amount, entry.CategoryOrDefault(), entry.ID)
	return nil
}

func entryListCmd() *cobra.Command {
	var from, to, format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ledger entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rng, err := parseRange(from, to, time.Now())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			return listEntries(ctx, cmd.OutOrStdout(), store, rng, format)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first day to include, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day to include, YYYY-MM-DD")
	cmd.Flags().StringVar(&format, "format", "table", "output format (table, csv)")

	return cmd
}

func listEntries(ctx context.Context, w io.Writer, store *storage.SQLiteStorage, rng dateRange, format string) error {
	entries, err := loadEntries(ctx, store, rng)
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}

	switch format {
	case "table":
		_, err = fmt.Fprintln(w, report.NewCLIFormatter().FormatEntries(entries))
		return err
	case "csv":
		return ledgercsv.Write(w, entries)
	default:
		return common.NewUserError(fmt.Sprintf("unknown format %q (want table or csv)", format), common.ErrInvalidConfig)
	}
}

func entryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a ledger entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			return deleteEntry(ctx, cmd.OutOrStdout(), store, args[0])
		},
	}
}

func deleteEntry(ctx context.Context, w io.Writer, store *storage.SQLiteStorage, id string) error {
	if err := store.DeleteEntry(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NewUserError(fmt.Sprintf("no entry with ID %s", id), err)
		}
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	fmt.Fprintf(w, "🗑️  Deleted entry %s\n", id)
	return nil
}
