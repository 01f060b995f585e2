package main

import (
	"fmt"

	"github.com/Veraticus/warikan/internal/cli"
	"github.com/Veraticus/warikan/internal/tui"
	"github.com/spf13/cobra"
)

func reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Toggle share flags interactively",
		Long: `Open a full-screen list of items. Toggle each participant's share with
a and b, watch the settlement update, and press s to save.`,
		Args: cobra.NoArgs,
		RunE: runReview,
	}
	addRangeFlags(cmd)
	return cmd
}

func runReview(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	from, to, err := rangeFlags(cmd)
	if err != nil {
		return err
	}

	ledger, err := loadLedger()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	result, err := tui.Run(ctx,
		tui.WithStorage(store),
		tui.WithLedger(ledger),
		tui.WithRange(from, to),
	)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Saved > 0 {
		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Saved %d item(s)", result.Saved)))
	}
	if result.Unsaved > 0 {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Discarded %d unsaved change(s)", result.Unsaved)))
	}
	return nil
}
