package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/Veraticus/warikan/internal/cli"
	"github.com/Veraticus/warikan/internal/common"
	"github.com/Veraticus/warikan/internal/storage"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func checkpointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "checkpoint",
		Aliases: []string{"cp"},
		Short:   "Manage database checkpoints",
		Long: `Snapshot the ledger database and roll back to earlier snapshots.

Destructive commands (delete, import-ofx) take an automatic checkpoint first.`,
	}

	cmd.AddCommand(createCheckpointCmd())
	cmd.AddCommand(listCheckpointsCmd())
	cmd.AddCommand(restoreCheckpointCmd())
	cmd.AddCommand(deleteCheckpointCmd())

	return cmd
}

func createCheckpointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new checkpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			tag, _ := cmd.Flags().GetString("tag")
			description, _ := cmd.Flags().GetString("description")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			manager, err := store.NewCheckpointManager()
			if err != nil {
				return fmt.Errorf("failed to create checkpoint manager: %w", err)
			}

			info, err := manager.Create(ctx, tag, description)
			if err != nil {
				if errors.Is(err, storage.ErrCheckpointExists) || errors.Is(err, storage.ErrInvalidCheckpointID) {
					return common.NewUserError(err.Error(), err)
				}
				return fmt.Errorf("failed to create checkpoint: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatSuccess("Created checkpoint: "+info.ID))
			fmt.Fprintf(out, "  Items: %d\n", info.ItemCount)
			fmt.Fprintf(out, "  Size:  %s\n", humanize.Bytes(uint64(max(info.FileSize, 0))))
			return nil
		},
	}

	cmd.Flags().StringP("tag", "t", "", "checkpoint name (default: timestamp)")
	cmd.Flags().StringP("description", "d", "", "what this checkpoint is for")
	return cmd
}

func listCheckpointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List checkpoints",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			manager, err := store.NewCheckpointManager()
			if err != nil {
				return fmt.Errorf("failed to create checkpoint manager: %w", err)
			}

			checkpoints, err := manager.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list checkpoints: %w", err)
			}

			if len(checkpoints) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No checkpoints yet. Create one with: warikan checkpoint create"))
				return nil
			}

			header := lipgloss.NewStyle().Bold(true)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, header.Render("NAME")+"\t"+header.Render("CREATED")+"\t"+
				header.Render("SIZE")+"\t"+header.Render("ITEMS")+"\t"+header.Render("TYPE"))

			for _, cp := range checkpoints {
				kind := "manual"
				if cp.IsAuto {
					kind = "auto"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					cp.ID,
					humanize.Time(cp.CreatedAt),
					humanize.Bytes(uint64(max(cp.FileSize, 0))),
					cp.ItemCount,
					kind,
				)
			}
			return w.Flush()
		},
	}
}

func restoreCheckpointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <name>",
		Short: "Restore the database from a checkpoint",
		Long: `Replace the current ledger with a checkpoint. A new automatic checkpoint
of the current state is taken first, so a restore can itself be undone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			id := args[0]
			force, _ := cmd.Flags().GetBool("force")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			// Restore closes the underlying handle; a second Close is harmless.
			defer func() { _ = store.Close() }()

			manager, err := store.NewCheckpointManager()
			if err != nil {
				return fmt.Errorf("failed to create checkpoint manager: %w", err)
			}

			info, err := manager.Get(ctx, id)
			if err != nil {
				if errors.Is(err, storage.ErrCheckpointNotFound) || errors.Is(err, storage.ErrInvalidCheckpointID) {
					return common.NewUserError(fmt.Sprintf("no checkpoint named %q", id), err)
				}
				return err
			}

			if !force {
				ok, err := confirm(cmd, fmt.Sprintf("Restore %s (%d items, %s)? Current data will be replaced.",
					info.ID, info.ItemCount, humanize.Time(info.CreatedAt)), "Restore")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, cli.FormatInfo("Restore cancelled."))
					return nil
				}
			}

			backup, err := manager.AutoCheckpoint(ctx, "restore")
			if err != nil {
				return fmt.Errorf("failed to checkpoint current state: %w", err)
			}

			if err := manager.Restore(ctx, id); err != nil {
				return fmt.Errorf("failed to restore checkpoint: %w", err)
			}

			fmt.Fprintln(out, cli.FormatSuccess("Restored checkpoint: "+info.ID))
			fmt.Fprintln(out, cli.SubtleStyle.Render("  Previous state saved as "+backup.ID))
			return nil
		},
	}

	cmd.Flags().BoolP("force", "f", false, "skip the confirmation prompt")
	return cmd
}

func deleteCheckpointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a checkpoint",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			id := args[0]
			force, _ := cmd.Flags().GetBool("force")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			manager, err := store.NewCheckpointManager()
			if err != nil {
				return fmt.Errorf("failed to create checkpoint manager: %w", err)
			}

			if !force {
				ok, err := confirm(cmd, fmt.Sprintf("Delete checkpoint %s?", id), "Delete")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, cli.FormatInfo("Nothing deleted."))
					return nil
				}
			}

			if err := manager.Delete(ctx, id); err != nil {
				if errors.Is(err, storage.ErrCheckpointNotFound) || errors.Is(err, storage.ErrInvalidCheckpointID) {
					return common.NewUserError(fmt.Sprintf("no checkpoint named %q", id), err)
				}
				return fmt.Errorf("failed to delete checkpoint: %w", err)
			}

			fmt.Fprintln(out, cli.FormatSuccess("Deleted checkpoint: "+id))
			return nil
		},
	}

	cmd.Flags().BoolP("force", "f", false, "skip the confirmation prompt")
	return cmd
}

// confirm asks a yes/no question. An aborted prompt counts as "no".
func confirm(cmd *cobra.Command, title, affirmative string) (bool, error) {
	confirmed := false
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative(affirmative).
			Negative("Cancel").
			Value(&confirmed),
	)).RunWithContext(cmd.Context())
	if err != nil && !errors.Is(err, huh.ErrUserAborted) {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return confirmed, nil
}
