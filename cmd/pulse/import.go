package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/ledger-pulse/internal/common"
	"github.com/Veraticus/ledger-pulse/internal/config"
	"github.com/Veraticus/ledger-pulse/internal/ledgercsv"
	"github.com/Veraticus/ledger-pulse/internal/model"
	"github.com/Veraticus/ledger-pulse/internal/ofx"
	"github.com/Veraticus/ledger-pulse/internal/pattern"
	"github.com/Veraticus/ledger-pulse/internal/storage"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import ledger entries from OFX/QFX statements",
		Long: `Import cash movements from OFX or QFX files exported from your bank or card
provider. Debits become cash-out entries and credits become cash-in entries.

Examples:
  # Import a single statement
  pulse import-ofx ~/Downloads/shop_account_jan.qfx

  # Import every statement in a directory
  pulse import-ofx ~/Downloads/statements/*.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	return cmd
}

func importCSVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-csv FILE",
		Short: "Import ledger entries from a CSV file",
		Long: `Import ledger entries from a CSV file with the header

  id,date,amount,direction,category,description,payment_method

Only amount is required. Rows without a direction take it from the sign of
the amount. Rows whose date cannot be read are dated today.`,
		Args: cobra.ExactArgs(1),
		RunE: runImportCSV,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	ctx := cmd.Context()

	matcher, err := loadMatcher()
	if err != nil {
		return err
	}

	files, err := expandFiles(args)
	if err != nil {
		return err
	}

	common.LogInfo("📥 Importing OFX files...", common.Fields{
		"file_count": len(files),
		"dry_run":    dryRun,
	})

	parser := ofx.NewParser()
	seen := make(map[string]bool)
	var entries []model.LedgerEntry

	bar := newProgressBar(cmd.ErrOrStderr(), len(files), "Parsing statements...")
	for _, path := range files {
		parsed, err := parseOFXFile(ctx, parser, path)
		if err != nil {
			common.LogError(err, "Failed to parse OFX file", common.Fields{"file": path})
		}

		added := 0
		for _, e := range parsed {
			if !seen[e.Hash] {
				seen[e.Hash] = true
				entries = append(entries, e)
				added++
			}
		}
		common.LogDebug("Processed file", common.Fields{
			"file":          filepath.Base(path),
			"entries_found": len(parsed),
			"added":         added,
		})

		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}

	return finishImport(ctx, cmd.OutOrStdout(), matcher, entries, dryRun)
}

// loadMatcher builds the category rule matcher from configuration.
func loadMatcher() (*pattern.Matcher, error) {
	rules, err := config.LoadCategoryRules(viper.GetViper())
	if err != nil {
		return nil, common.NewUserError("invalid category rules", err)
	}
	return pattern.NewMatcher(rules)
}

func parseOFXFile(ctx context.Context, parser *ofx.Parser, path string) ([]model.LedgerEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return parser.ParseFile(ctx, f)
}

func runImportCSV(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	ctx := cmd.Context()

	matcher, err := loadMatcher()
	if err != nil {
		return err
	}

	entries, err := readCSVFile(ctx, ledgercsv.NewReader(), args[0])
	if err != nil {
		return err
	}

	return finishImport(ctx, cmd.OutOrStdout(), matcher, entries, dryRun)
}

func readCSVFile(ctx context.Context, reader *ledgercsv.Reader, path string) ([]model.LedgerEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("cannot open %s", path), err)
	}
	defer func() { _ = f.Close() }()

	entries, err := reader.Read(ctx, f)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("cannot read %s", filepath.Base(path)), err)
	}
	return entries, nil
}

// finishImport categorizes entries, prints a summary and, unless dryRun,
// saves them.
func finishImport(ctx context.Context, w io.Writer, matcher *pattern.Matcher, entries []model.LedgerEntry, dryRun bool) error {
	if len(entries) == 0 {
		return common.NewUserError("no ledger entries found in input", common.ErrNoEntries)
	}

	if n := matcher.Categorize(entries); n > 0 {
		fmt.Fprintf(w, "🏷️  Categorized %d entries from rules\n", n)
	}
	summarizeEntries(w, entries)

	if dryRun {
		common.LogInfo("🔍 Dry run complete - no data saved", common.Fields{"entries": len(entries)})
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	_, err = saveImported(ctx, w, store, entries)
	return err
}

// saveImported stores entries, skipping those already in the ledger.
func saveImported(ctx context.Context, w io.Writer, store *storage.SQLiteStorage, entries []model.LedgerEntry) (int, error) {
	inserted, err := store.SaveEntries(ctx, entries)
	if err != nil {
		return 0, fmt.Errorf("failed to save entries: %w", err)
	}

	common.LogInfo("Import saved", common.Fields{
		"inserted":   inserted,
		"duplicates": len(entries) - inserted,
	})
	fmt.Fprintf(w, "💾 Saved %d new entries (%d already in ledger)\n", inserted, len(entries)-inserted)
	return inserted, nil
}

// summarizeEntries prints the date span and totals of an import batch.
func summarizeEntries(w io.Writer, entries []model.LedgerEntry) {
	var first, last string
	var in, out float64
	undated := 0

	for i := range entries {
		e := &entries[i]
		if e.Direction == model.DirectionIn {
			in += e.Amount
		} else {
			out += e.Amount
		}

		day := e.Day()
		if day == "" {
			undated++
			continue
		}
		if first == "" || day < first {
			first = day
		}
		if day > last {
			last = day
		}
	}

	fmt.Fprintf(w, "\n📁 %d entries", len(entries))
	if first != "" {
		fmt.Fprintf(w, " from %s to %s", first, last)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "💰 Cash in: %.2f | Cash out: %.2f\n", in, out)
	if undated > 0 {
		fmt.Fprintf(w, "⚠️  %d entries have no date\n", undated)
	}
}
