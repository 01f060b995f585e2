// Package report assembles settled ledger views for the terminal and exporters.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/warikan/internal/model"
	"github.com/Veraticus/warikan/internal/service"
	"github.com/Veraticus/warikan/internal/settlement"
	"golang.org/x/sync/errgroup"
)

// Build settles the items between from and to, inclusive.
// A nil bound defaults to the earliest or latest entry date in the whole ledger,
// and to today when the ledger is empty.
func Build(ctx context.Context, store service.Storage, from, to *time.Time) (*service.LedgerReport, error) {
	var all, ranged []model.LineItem
	bothBounds := from != nil && to != nil

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := store.GetAllItems(gctx)
		if err != nil {
			return fmt.Errorf("failed to load ledger: %w", err)
		}
		all = items
		return nil
	})
	if bothBounds {
		g.Go(func() error {
			items, err := store.GetItemsByRange(gctx, *from, *to)
			if err != nil {
				return fmt.Errorf("failed to load items in range: %w", err)
			}
			ranged = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dateRange := resolveRange(all, from, to)
	if !bothBounds {
		ranged = settlement.SelectByDateRange(all, dateRange.Start, dateRange.End)
	}

	totals, transfer := settlement.Settle(ranged)
	return &service.LedgerReport{
		Range:       dateRange,
		Items:       ranged,
		Totals:      totals,
		Transfer:    transfer,
		LedgerEmpty: len(all) == 0,
	}, nil
}

// Overall settles the whole ledger.
func Overall(ctx context.Context, store service.Storage) (*service.LedgerReport, error) {
	return Build(ctx, store, nil, nil)
}

func resolveRange(all []model.LineItem, from, to *time.Time) service.DateRange {
	earliest, latest, ok := settlement.DateBounds(all)
	if !ok {
		earliest, latest = model.Today(), model.Today()
	}

	r := service.DateRange{Start: earliest, End: latest}
	if from != nil {
		r.Start = model.TruncateToDate(*from)
	}
	if to != nil {
		r.End = model.TruncateToDate(*to)
	}
	return r
}
