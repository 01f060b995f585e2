package main

import (
	"fmt"

	"github.com/Veraticus/warikan/internal/cli"
	"github.com/Veraticus/warikan/internal/report"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the overall settlement and every recorded item",
		Args:    cobra.NoArgs,
		RunE:    runList,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	ledger, err := loadLedger()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	rep, err := report.Overall(ctx, store)
	if err != nil {
		return err
	}

	if rep.LedgerEmpty {
		fmt.Fprintln(out, cli.FormatInfo("No items recorded yet. Add one with: warikan add"))
		return nil
	}

	r := cli.NewRenderer(ledger)
	fmt.Fprintln(out, cli.RenderBox("Settlement",
		cli.SettlementStyle.Render(r.TransferMessage(rep.Transfer, ""))+"\n"+r.ParticipantSummary(rep.Totals)))
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("History (%d items)", len(rep.Items))))

	return r.ItemsTable(out, rep.Items)
}
