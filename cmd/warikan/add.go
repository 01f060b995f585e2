package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/warikan/internal/cli"
	"github.com/Veraticus/warikan/internal/common"
	"github.com/Veraticus/warikan/internal/config"
	"github.com/Veraticus/warikan/internal/model"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a shared expense",
		Long: `Record an expense. New items are shared by both participants;
use "warikan share" or "warikan review" to change that later.

Any of --name or --price left out is asked for interactively.`,
		Example: `  warikan add --name "Groceries" --price 3200 --payer a
  warikan add --date 2024-01-10 --name "Dinner" --price 5400 --payer Mi
  warikan add`,
		Args: cobra.NoArgs,
		RunE: runAdd,
	}

	cmd.Flags().String("date", "", "entry date (YYYY-MM-DD, default: today)")
	cmd.Flags().String("name", "", "what was bought")
	cmd.Flags().String("price", "", "amount paid, e.g. 1200")
	cmd.Flags().String("payer", "a", "who paid: a, b, a participant name, or none")

	return cmd
}

type addInput struct {
	date  string
	name  string
	price string
	payer string
}

func runAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	ledger, err := loadLedger()
	if err != nil {
		return err
	}

	in := addInput{}
	in.date, _ = cmd.Flags().GetString("date")
	in.name, _ = cmd.Flags().GetString("name")
	in.price, _ = cmd.Flags().GetString("price")
	in.payer, _ = cmd.Flags().GetString("payer")
	if in.date == "" {
		in.date = model.FormatDate(model.Today())
	}

	if strings.TrimSpace(in.name) == "" || strings.TrimSpace(in.price) == "" {
		if err := promptAddInput(cmd, ledger, &in); err != nil {
			return err
		}
	}

	item, err := buildNewItem(ledger, in)
	if err != nil {
		return common.NewUserError(err.Error(), err)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	created, err := store.AddItem(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to add item: %w", err)
	}
	slog.Debug("item added", "item_id", created.ID)

	r := cli.NewRenderer(ledger)
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added #%d %s %s (%s), paid by %s",
		created.ID, created.Name, r.Money(created.Price), model.FormatDate(created.EntryDate), r.PayerLabel(*created))))
	return nil
}

// buildNewItem validates raw input against the entry rules.
func buildNewItem(ledger config.Ledger, in addInput) (model.NewLineItem, error) {
	date, err := model.ParseDate(strings.TrimSpace(in.date))
	if err != nil {
		return model.NewLineItem{}, err
	}
	price, err := parsePrice(in.price, ledger.MinorUnits)
	if err != nil {
		return model.NewLineItem{}, err
	}
	payer, err := ledger.ResolveParticipant(in.payer)
	if err != nil {
		return model.NewLineItem{}, err
	}

	item := model.NewLineItem{
		EntryDate: date,
		Payer:     payer,
		Name:      strings.TrimSpace(in.name),
		Price:     price,
	}
	return item, item.Validate()
}

func promptAddInput(cmd *cobra.Command, ledger config.Ledger, in *addInput) error {
	// The select offers the two participants; preselect whoever the flag named.
	if p, err := ledger.ResolveParticipant(in.payer); err == nil && p != nil {
		in.payer = string(*p)
	} else {
		in.payer = string(model.ParticipantA)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Value(&in.date).
				Validate(func(s string) error {
					_, err := model.ParseDate(strings.TrimSpace(s))
					return err
				}),
			huh.NewInput().
				Title("Item").
				Value(&in.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("enter what was bought")
					}
					return nil
				}),
			huh.NewInput().
				Title("Price").
				Placeholder("1200").
				Value(&in.price).
				Validate(func(s string) error {
					_, err := parsePrice(s, ledger.MinorUnits)
					return err
				}),
			huh.NewSelect[string]().
				Title("Paid by").
				Options(
					huh.NewOption(ledger.ParticipantA, string(model.ParticipantA)),
					huh.NewOption(ledger.ParticipantB, string(model.ParticipantB)),
				).
				Value(&in.payer),
		),
	)

	if err := form.RunWithContext(cmd.Context()); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return common.NewUserError("nothing added", common.ErrCanceled)
		}
		return fmt.Errorf("input form failed: %w", err)
	}
	return nil
}
