package main

import (
	"fmt"

	"github.com/Veraticus/warikan/internal/cli"
	"github.com/Veraticus/warikan/internal/model"
	"github.com/Veraticus/warikan/internal/report"
	"github.com/spf13/cobra"
)

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Settle a date range",
		Long: `Show what each participant advanced and owes between two dates,
inclusive, and the one payment that settles the period.`,
		Example: `  warikan summary --from 2024-01-01 --to 2024-01-31
  warikan summary --from 2024-02-01`,
		Args: cobra.NoArgs,
		RunE: runSummary,
	}
	addRangeFlags(cmd)
	cmd.Flags().Bool("items", false, "also list the items in the range")
	return cmd
}

func runSummary(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	from, to, err := rangeFlags(cmd)
	if err != nil {
		return err
	}
	showItems, _ := cmd.Flags().GetBool("items")

	ledger, err := loadLedger()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	rep, err := report.Build(ctx, store, from, to)
	if err != nil {
		return err
	}

	if rep.LedgerEmpty {
		fmt.Fprintln(out, cli.FormatInfo("No items recorded yet."))
		return nil
	}

	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%s to %s",
		model.FormatDate(rep.Range.Start), model.FormatDate(rep.Range.End))))

	if len(rep.Items) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No items in this period."))
		return nil
	}

	r := cli.NewRenderer(ledger)
	fmt.Fprintln(out, r.ParticipantSummary(rep.Totals))
	fmt.Fprintln(out, cli.SettlementStyle.Render(r.TransferMessage(rep.Transfer, "In this period, ")))

	if showItems {
		fmt.Fprintln(out)
		return r.ItemsTable(out, rep.Items)
	}
	return nil
}
