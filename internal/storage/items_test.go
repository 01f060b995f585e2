package storage

import (
	"context"
	"testing"

	"github.com/Veraticus/warikan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemIDs(items []model.LineItem) []int64 {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestAddItem(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	item, err := store.AddItem(ctx, newItem(t, "2024-01-10", "Groceries", 1000, model.ParticipantA.Ptr()))
	require.NoError(t, err)

	assert.Positive(t, item.ID)
	assert.Equal(t, "2024-01-10", model.FormatDate(item.EntryDate))
	assert.Equal(t, "Groceries", item.Name)
	assert.Equal(t, int64(1000), item.Price)
	require.NotNil(t, item.Payer)
	assert.Equal(t, model.ParticipantA, *item.Payer)
	assert.True(t, item.SharedByA, "new items are shared by A")
	assert.True(t, item.SharedByB, "new items are shared by B")
	assert.False(t, item.CreatedAt.IsZero())
}

func TestAddItem_WithoutPayer(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	item, err := store.AddItem(ctx, newItem(t, "2024-01-10", "Gift", 300, nil))
	require.NoError(t, err)
	assert.Nil(t, item.Payer)
}

func TestAddItem_Validation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		name string
		item model.NewLineItem
	}{
		{name: "blank name", item: newItem(t, "2024-01-10", " ", 100, nil)},
		{name: "negative price", item: newItem(t, "2024-01-10", "Refund", -5, nil)},
		{name: "missing date", item: model.NewLineItem{Name: "Rice", Price: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.AddItem(ctx, tt.item)
			assert.ErrorIs(t, err, ErrInvalidItem)
			assert.ErrorIs(t, err, model.ErrInvalidLineItem)
		})
	}

	items, err := store.GetAllItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGetAllItems_Ordering(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	first, err := store.AddItem(ctx, newItem(t, "2024-01-05", "first", 100, nil))
	require.NoError(t, err)
	second, err := store.AddItem(ctx, newItem(t, "2024-01-07", "second", 100, nil))
	require.NoError(t, err)
	third, err := store.AddItem(ctx, newItem(t, "2024-01-05", "third", 100, nil))
	require.NoError(t, err)

	items, err := store.GetAllItems(ctx)
	require.NoError(t, err)

	// Date descending, then id descending within a day.
	assert.Equal(t, []int64{second.ID, third.ID, first.ID}, itemIDs(items))
}

func TestGetAllItems_Empty(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	items, err := store.GetAllItems(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestGetItemsByRange(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	ids := map[string]int64{}
	for _, day := range []string{"2024-01-09", "2024-01-10", "2024-01-11"} {
		item, err := store.AddItem(ctx, newItem(t, day, "item "+day, 100, nil))
		require.NoError(t, err)
		ids[day] = item.ID
	}

	tests := []struct {
		name  string
		start string
		end   string
		want  []int64
	}{
		{name: "single day", start: "2024-01-10", end: "2024-01-10", want: []int64{ids["2024-01-10"]}},
		{name: "both ends inclusive", start: "2024-01-09", end: "2024-01-11", want: []int64{ids["2024-01-11"], ids["2024-01-10"], ids["2024-01-09"]}},
		{name: "no data in period", start: "2023-01-01", end: "2023-12-31", want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := store.GetItemsByRange(ctx, mustDate(t, tt.start), mustDate(t, tt.end))
			require.NoError(t, err)
			assert.Equal(t, tt.want, itemIDs(items))
		})
	}

	t.Run("reversed range", func(t *testing.T) {
		_, err := store.GetItemsByRange(ctx, mustDate(t, "2024-01-11"), mustDate(t, "2024-01-09"))
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})
}

func TestUpdatePaymentFlags(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	item, err := store.AddItem(ctx, newItem(t, "2024-02-01", "Dinner", 4000, model.ParticipantB.Ptr()))
	require.NoError(t, err)

	combos := []struct{ a, b bool }{{true, false}, {false, true}, {false, false}, {true, true}}
	for _, combo := range combos {
		require.NoError(t, store.UpdatePaymentFlags(ctx, item.ID, combo.a, combo.b))

		got, err := store.GetItem(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, combo.a, got.SharedByA)
		assert.Equal(t, combo.b, got.SharedByB)

		// Everything else is immutable.
		assert.Equal(t, item.Name, got.Name)
		assert.Equal(t, item.Price, got.Price)
		assert.Equal(t, item.EntryDate, got.EntryDate)
		assert.Equal(t, item.Payer, got.Payer)
	}

	t.Run("unknown id", func(t *testing.T) {
		err := store.UpdatePaymentFlags(ctx, item.ID+100, true, true)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		err := store.UpdatePaymentFlags(ctx, 0, true, true)
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestDeleteItem(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	keep, err := store.AddItem(ctx, newItem(t, "2024-02-01", "keep", 100, nil))
	require.NoError(t, err)
	drop, err := store.AddItem(ctx, newItem(t, "2024-02-02", "drop", 200, nil))
	require.NoError(t, err)

	require.NoError(t, store.DeleteItem(ctx, drop.ID))

	items, err := store.GetAllItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{keep.ID}, itemIDs(items))

	_, err = store.GetItem(ctx, drop.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	assert.ErrorIs(t, store.DeleteItem(ctx, drop.ID), ErrItemNotFound)
}

func TestImportItems(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	batch := []model.NewLineItem{
		{EntryDate: mustDate(t, "2024-03-01"), Name: "Supermarket", Price: 2480, Payer: model.ParticipantA.Ptr(), ExternalID: "fit-1"},
		{EntryDate: mustDate(t, "2024-03-02"), Name: "Pharmacy", Price: 990, Payer: model.ParticipantA.Ptr(), ExternalID: "fit-2"},
	}

	inserted, err := store.ImportItems(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	// Re-importing the same statement plus one new row only adds the new row.
	batch = append(batch, model.NewLineItem{EntryDate: mustDate(t, "2024-03-03"), Name: "Bakery", Price: 450, Payer: model.ParticipantA.Ptr(), ExternalID: "fit-3"})
	inserted, err = store.ImportItems(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	items, err := store.GetAllItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for _, item := range items {
		assert.True(t, item.SharedByA)
		assert.True(t, item.SharedByB)
	}

	t.Run("invalid item aborts the batch", func(t *testing.T) {
		_, err := store.ImportItems(ctx, []model.NewLineItem{
			{EntryDate: mustDate(t, "2024-03-04"), Name: "ok", Price: 1, ExternalID: "fit-4"},
			{EntryDate: mustDate(t, "2024-03-04"), Name: "", Price: 1, ExternalID: "fit-5"},
		})
		assert.ErrorIs(t, err, ErrInvalidItem)

		items, err := store.GetAllItems(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("empty batch", func(t *testing.T) {
		inserted, err := store.ImportItems(ctx, nil)
		require.NoError(t, err)
		assert.Zero(t, inserted)
	})
}

func TestScanItem_UnrecognizedPayer(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	for _, payer := range []string{"", "someone else", "ab"} {
		_, err := store.db.Exec(`INSERT INTO line_items (entry_date, name, price, payer) VALUES ('2024-01-01', 'legacy', 100, ?)`, payer)
		require.NoError(t, err)
	}

	items, err := store.GetAllItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for _, item := range items {
		assert.Nil(t, item.Payer)
	}
}
