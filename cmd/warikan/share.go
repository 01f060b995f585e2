package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/warikan/internal/cli"
	"github.com/Veraticus/warikan/internal/common"
	"github.com/Veraticus/warikan/internal/storage"
	"github.com/spf13/cobra"
)

func shareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share <id>",
		Short: "Set who shares the cost of an item",
		Long: `Set the share flags of one item. A flag left out keeps its current value.
An item shared by only one participant is charged to that participant in full;
an item shared by neither is left out of the settlement.`,
		Example: `  warikan share 12 --b=false
  warikan share 12 --a=true --b=true`,
		Args: cobra.ExactArgs(1),
		RunE: runShare,
	}

	cmd.Flags().Bool("a", true, "first participant shares this cost")
	cmd.Flags().Bool("b", true, "second participant shares this cost")

	return cmd
}

func runShare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("a") && !cmd.Flags().Changed("b") {
		return common.NewUserError("pass --a and/or --b", common.ErrInvalidInput)
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

	item, err := store.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return common.NewUserError(fmt.Sprintf("no item #%d", id), err)
		}
		return err
	}

	sharedByA, sharedByB := item.SharedByA, item.SharedByB
	if cmd.Flags().Changed("a") {
		sharedByA, _ = cmd.Flags().GetBool("a")
	}
	if cmd.Flags().Changed("b") {
		sharedByB, _ = cmd.Flags().GetBool("b")
	}

	if err := store.UpdatePaymentFlags(ctx, id, sharedByA, sharedByB); err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	item.SharedByA, item.SharedByB = sharedByA, sharedByB
	r := cli.NewRenderer(ledger)
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("#%d %s: %s", id, item.Name, r.ShareMarks(*item))))
	return nil
}
