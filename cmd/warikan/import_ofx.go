package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/Veraticus/warikan/internal/cli"
	"github.com/Veraticus/warikan/internal/common"
	"github.com/Veraticus/warikan/internal/model"
	"github.com/Veraticus/warikan/internal/ofx"
	"github.com/spf13/cobra"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx <files...>",
		Short: "Import card or bank debits from OFX/QFX files",
		Long: `Import the debits of OFX or QFX statements as shared items paid by --payer.
Deposits and refunds are skipped. Re-importing a statement is safe: lines
already recorded are recognized by their bank transaction id and left alone.`,
		Example: `  # Import a card statement paid by the first participant
  warikan import-ofx --payer a ~/Downloads/card_2024_01.qfx

  # Preview several files without saving
  warikan import-ofx --payer Mi --dry-run ~/Downloads/*.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().String("payer", "", "who paid these charges: a, b, or a participant name (required)")
	cmd.Flags().BoolP("dry-run", "n", false, "preview the import without saving")
	_ = cmd.MarkFlagRequired("payer")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	payerFlag, _ := cmd.Flags().GetString("payer")

	ledger, err := loadLedger()
	if err != nil {
		return err
	}
	payer, err := ledger.ResolveParticipant(payerFlag)
	if err != nil {
		return common.NewUserError(err.Error(), err)
	}
	if payer == nil {
		return common.NewUserError("--payer must name who paid the statement", common.ErrInvalidInput)
	}

	files, err := expandFiles(args)
	if err != nil {
		return err
	}

	items, err := parseStatements(cmd, files, payer, ledger.MinorUnits)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No debits found; nothing to import."))
		return nil
	}

	r := cli.NewRenderer(ledger)
	printImportPreview(cmd, r, items)

	if dryRun {
		fmt.Fprintln(out, cli.FormatInfo("Dry run: nothing saved."))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	checkpoint, err := autoCheckpoint(ctx, store, "import")
	if err != nil {
		return err
	}
	slog.Debug("checkpoint taken", "checkpoint", checkpoint.ID)

	handler := cli.NewInterruptHandler(out, "The import runs in one transaction; nothing was saved.")
	importCtx, stop := handler.HandleInterrupts(ctx)
	defer stop()

	inserted, err := store.ImportItems(importCtx, items)
	if err != nil {
		if handler.WasInterrupted() {
			return common.NewUserError("import canceled", common.ErrCanceled)
		}
		return fmt.Errorf("failed to import items: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d item(s), paid by %s", inserted, r.Name(*payer))))
	if skipped := len(items) - inserted; skipped > 0 {
		fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("  %d already recorded", skipped)))
	}
	return nil
}

// expandFiles resolves glob patterns, keeping literal paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr != nil {
				slog.Warn("no files found matching pattern", "pattern", pattern)
				continue
			}
			matches = []string{pattern}
		}
		for _, m := range matches {
			if _, dup := seen[m]; !dup {
				seen[m] = struct{}{}
				files = append(files, m)
			}
		}
	}

	if len(files) == 0 {
		return nil, common.NewUserError("no files found to import", common.ErrInvalidInput)
	}
	return files, nil
}

// parseStatements reads every file and merges their debits, dropping lines
// that appear in more than one file.
func parseStatements(cmd *cobra.Command, files []string, payer *model.Participant, minorUnits int32) ([]model.NewLineItem, error) {
	parser := ofx.NewParser(minorUnits, slog.Default())
	bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(files), "Reading statements...")

	var items []model.NewLineItem
	seen := make(map[string]struct{})
	for _, path := range files {
		result, err := parseStatement(cmd, parser, path, payer)
		_ = bar.Add(1)
		if err != nil {
			return nil, err
		}

		added := 0
		for _, item := range result.Items {
			if item.ExternalID != "" {
				if _, dup := seen[item.ExternalID]; dup {
					continue
				}
				seen[item.ExternalID] = struct{}{}
			}
			items = append(items, item)
			added++
		}
		slog.Info("read statement",
			"file", filepath.Base(path),
			"debits", len(result.Items),
			"added", added,
			"skipped_credits", result.SkippedCredits,
			"skipped_amounts", result.SkippedAmounts)
	}
	return items, nil
}

func parseStatement(cmd *cobra.Command, parser *ofx.Parser, path string, payer *model.Participant) (*ofx.Result, error) {
	f, err := os.Open(path) // #nosec G304 -- user-supplied statement path
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	result, err := parser.ParseFile(cmd.Context(), f, payer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return result, nil
}

func printImportPreview(cmd *cobra.Command, r *cli.Renderer, items []model.NewLineItem) {
	out := cmd.OutOrStdout()

	sorted := make([]model.NewLineItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].EntryDate.Before(sorted[j].EntryDate) })

	var total int64
	for _, item := range sorted {
		total += item.Price
	}

	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%d debit(s) from %s to %s, %s in total",
		len(sorted),
		model.FormatDate(sorted[0].EntryDate),
		model.FormatDate(sorted[len(sorted)-1].EntryDate),
		r.Money(total))))

	limit := min(len(sorted), 5)
	for _, item := range sorted[:limit] {
		fmt.Fprintf(out, "  %s  %-30s %s\n", model.FormatDate(item.EntryDate), item.Name, r.Money(item.Price))
	}
	if len(sorted) > limit {
		fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("  ... and %d more", len(sorted)-limit)))
	}
}
