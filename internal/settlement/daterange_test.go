package settlement

import (
	"testing"
	"time"

	"github.com/Veraticus/warikan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dated(id int64, day string) model.LineItem {
	d, err := model.ParseDate(day)
	if err != nil {
		panic(err)
	}
	return model.LineItem{ID: id, EntryDate: d, Name: "item", Price: 100, SharedByA: true, SharedByB: true}
}

func ids(items []model.LineItem) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestSelectByDateRange(t *testing.T) {
	items := []model.LineItem{
		dated(1, "2024-01-09"),
		dated(2, "2024-01-10"),
		dated(3, "2024-01-11"),
		dated(4, "2024-01-10"),
	}
	day := func(s string) time.Time {
		d, err := model.ParseDate(s)
		require.NoError(t, err)
		return d
	}

	tests := []struct {
		start time.Time
		end   time.Time
		name  string
		want  []int64
	}{
		{name: "single day is inclusive", start: day("2024-01-10"), end: day("2024-01-10"), want: []int64{2, 4}},
		{name: "whole span", start: day("2024-01-09"), end: day("2024-01-11"), want: []int64{1, 2, 3, 4}},
		{name: "start bound inclusive", start: day("2024-01-11"), end: day("2024-01-31"), want: []int64{3}},
		{name: "nothing in range", start: day("2024-02-01"), end: day("2024-02-28"), want: []int64{}},
		{name: "reversed range is empty", start: day("2024-01-11"), end: day("2024-01-09"), want: []int64{}},
		{
			name:  "time of day is ignored",
			start: time.Date(2024, 1, 10, 23, 59, 0, 0, time.UTC),
			end:   time.Date(2024, 1, 10, 0, 1, 0, 0, time.UTC),
			want:  []int64{2, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(SelectByDateRange(items, tt.start, tt.end)))
		})
	}
}

func TestSelectByDateRange_DoesNotMutateInput(t *testing.T) {
	items := []model.LineItem{dated(1, "2024-03-01"), dated(2, "2024-03-05")}
	start, _ := model.ParseDate("2024-03-02")
	end, _ := model.ParseDate("2024-03-31")

	got := SelectByDateRange(items, start, end)
	require.Len(t, got, 1)
	got[0].Name = "changed"

	assert.Equal(t, "item", items[1].Name)
	assert.Equal(t, []int64{1, 2}, ids(items))
}

func TestDateBounds(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, _, ok := DateBounds(nil)
		assert.False(t, ok)
	})

	t.Run("unordered input", func(t *testing.T) {
		items := []model.LineItem{
			dated(1, "2024-05-03"),
			dated(2, "2023-12-31"),
			dated(3, "2024-07-14"),
		}
		earliest, latest, ok := DateBounds(items)
		require.True(t, ok)
		assert.Equal(t, "2023-12-31", model.FormatDate(earliest))
		assert.Equal(t, "2024-07-14", model.FormatDate(latest))
	})
}
