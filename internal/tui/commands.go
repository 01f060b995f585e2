package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Veraticus/warikan/internal/model"
	"github.com/Veraticus/warikan/internal/report"
	"github.com/Veraticus/warikan/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

func loadItems(ctx context.Context, store service.Storage, from, to *time.Time) tea.Cmd {
	return func() tea.Msg {
		rep, err := report.Build(ctx, store, from, to)
		if err != nil {
			return itemsLoadedMsg{err: fmt.Errorf("failed to load items: %w", err)}
		}
		return itemsLoadedMsg{report: rep}
	}
}

// saveChanges writes items one by one and reports the ids that made it,
// so a failure part way keeps the earlier saves marked clean.
func saveChanges(ctx context.Context, store service.Storage, items []model.LineItem) tea.Cmd {
	return func() tea.Msg {
		ids := make([]int64, 0, len(items))
		for _, item := range items {
			if err := store.UpdatePaymentFlags(ctx, item.ID, item.SharedByA, item.SharedByB); err != nil {
				return savedMsg{
					ids:   ids,
					saved: len(ids),
					err:   fmt.Errorf("failed to save item #%d: %w", item.ID, err),
				}
			}
			ids = append(ids, item.ID)
		}
		return savedMsg{ids: ids, saved: len(ids)}
	}
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + plural
}
