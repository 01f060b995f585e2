package settlement

import (
	"time"

	"github.com/Veraticus/warikan/internal/model"
)

// SelectByDateRange keeps the items whose entry date falls between start and end,
// inclusive on both ends. Only calendar dates are compared; input order is kept.
func SelectByDateRange(items []model.LineItem, start, end time.Time) []model.LineItem {
	from := model.TruncateToDate(start)
	to := model.TruncateToDate(end)

	selected := make([]model.LineItem, 0, len(items))
	if to.Before(from) {
		return selected
	}

	for _, item := range items {
		day := model.TruncateToDate(item.EntryDate)
		if day.Before(from) || day.After(to) {
			continue
		}
		selected = append(selected, item)
	}
	return selected
}

// DateBounds returns the earliest and latest entry dates in items.
// ok is false for an empty slice.
func DateBounds(items []model.LineItem) (earliest, latest time.Time, ok bool) {
	for i, item := range items {
		day := model.TruncateToDate(item.EntryDate)
		if i == 0 || day.Before(earliest) {
			earliest = day
		}
		if i == 0 || day.After(latest) {
			latest = day
		}
	}
	return earliest, latest, len(items) > 0
}
