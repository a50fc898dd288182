package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/ledger-pulse/internal/common"
	"github.com/Veraticus/ledger-pulse/internal/model"
	"github.com/Veraticus/ledger-pulse/internal/report"
	"github.com/Veraticus/ledger-pulse/internal/storage"
)

func staffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Record monthly staff costs",
	}

	cmd.AddCommand(staffSetCmd())
	cmd.AddCommand(staffListCmd())

	return cmd
}

func staffSetCmd() *cobra.Command {
	var rec model.StaffCostRecord

	cmd := &cobra.Command{
		Use:     "set",
		Short:   "Record the head count and salary bill for a month",
		Example: `  pulse staff set --month 2024-03 --count 4 --salary 12000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rec.Month == "" {
				rec.Month = time.Now().Format(model.MonthLayout)
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			return setStaffCost(ctx, cmd.OutOrStdout(), store, &rec)
		},
	}

	cmd.Flags().StringVar(&rec.Month, "month", "", "month, YYYY-MM (default: current month)")
	cmd.Flags().IntVar(&rec.StaffCount, "count", 0, "number of staff")
	cmd.Flags().Float64Var(&rec.TotalSalary, "salary", 0, "total salary paid that month")
	_ = cmd.MarkFlagRequired("salary")

	return cmd
}

func setStaffCost(ctx context.Context, w io.Writer, store *storage.SQLiteStorage, rec *model.StaffCostRecord) error {
	if err := store.SaveStaffCost(ctx, rec); err != nil {
		return common.NewUserError("cannot record staff cost", err)
	}

	fmt.Fprintf(w, "✅ Staff cost for %s: %d staff, %.2f salary\n", rec.Month, rec.StaffCount, rec.TotalSalary)
	return nil
}

func staffListCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded staff costs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records, err := store.GetStaffCosts(ctx, from, to)
			if err != nil {
				return common.NewUserError("cannot list staff costs", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), report.NewCLIFormatter().FormatStaffCosts(records))
			return err
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first month to include, YYYY-MM")
	cmd.Flags().StringVar(&to, "to", "", "last month to include, YYYY-MM")

	return cmd
}
