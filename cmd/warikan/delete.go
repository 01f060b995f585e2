package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/warikan/internal/cli"
	"github.com/Veraticus/warikan/internal/common"
	"github.com/Veraticus/warikan/internal/model"
	"github.com/Veraticus/warikan/internal/storage"
	"github.com/spf13/cobra"
)

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an item",
		Long: `Delete one item permanently. An automatic checkpoint is taken first,
so "warikan checkpoint restore" can bring it back.`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}
	cmd.Flags().BoolP("force", "f", false, "skip the confirmation prompt")
	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")

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

	r := cli.NewRenderer(ledger)
	summary := fmt.Sprintf("#%d %s %s on %s", item.ID, item.Name, r.Money(item.Price), model.FormatDate(item.EntryDate))

	if !force {
		ok, err := confirm(cmd, "Delete "+summary+"?", "Delete")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, cli.FormatInfo("Nothing deleted."))
			return nil
		}
	}

	checkpoint, err := autoCheckpoint(ctx, store, "delete")
	if err != nil {
		return err
	}
	slog.Debug("checkpoint taken", "checkpoint", checkpoint.ID)

	if err := store.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess("Deleted "+summary))
	fmt.Fprintln(out, cli.SubtleStyle.Render("  Undo with: warikan checkpoint restore "+checkpoint.ID))
	return nil
}
