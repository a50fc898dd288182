package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Veraticus/ledger-pulse/internal/analytics"
	"github.com/Veraticus/ledger-pulse/internal/common"
	"github.com/Veraticus/ledger-pulse/internal/config"
	"github.com/Veraticus/ledger-pulse/internal/report"
	"github.com/Veraticus/ledger-pulse/internal/storage"
)

func analyzeCmd() *cobra.Command {
	var from, to, format string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score business health and forecast cash flow",
		Long: `Analyze the ledger and print a business health report: a 0-100 health
score with risk factors and opportunities, a cash-flow forecast, duplicate
and outlier entries, spending insights against category benchmarks, and
savings challenges.

Thresholds and benchmarks can be overridden under "analytics" in the config
file.`,
		Example: `  pulse analyze
  pulse analyze --from 2024-01-01 --to 2024-06-30 --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			rng, err := parseRange(from, to, now)
			if err != nil {
				return err
			}

			cfg, err := config.LoadAnalytics(viper.GetViper())
			if err != nil {
				return common.NewUserError("invalid analytics configuration", err)
			}
			engine, err := analytics.New(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			return runAnalyze(ctx, cmd.OutOrStdout(), store, engine, rng, format)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first day to analyze, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day to analyze, YYYY-MM-DD")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, json)")

	return cmd
}

func runAnalyze(ctx context.Context, w io.Writer, store *storage.SQLiteStorage, engine *analytics.Engine, rng dateRange, format string) error {
	if format != "console" && format != "json" {
		return common.NewUserError(fmt.Sprintf("unknown format %q (want console or json)", format), common.ErrInvalidConfig)
	}

	entries, err := loadEntries(ctx, store, rng)
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}

	startMonth, endMonth := rng.months()
	staff, err := store.GetStaffCosts(ctx, startMonth, endMonth)
	if err != nil {
		return fmt.Errorf("failed to load staff costs: %w", err)
	}

	slog.Debug("Analyzing ledger",
		"entries", len(entries),
		"staff_months", len(staff))

	result, err := engine.Run(entries, staff)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if format == "json" {
		return report.WriteJSON(w, result)
	}
	formatter := report.NewCLIFormatter().WithWidth(terminalWidth(w))
	_, err = fmt.Fprintln(w, formatter.Format(result))
	return err
}

// terminalWidth returns the column count of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
