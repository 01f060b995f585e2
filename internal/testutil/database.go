// Package testutil provides test databases seeded with ledger items.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/warikan/internal/model"
	"github.com/Veraticus/warikan/internal/storage"
)

// TestDB is a migrated in-memory ledger plus the items seeded into it.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
	Items   []model.LineItem
}

// SetupTestDB creates an in-memory ledger and records items in order.
//
// Example:
//
//	db := testutil.SetupTestDB(t, items.NewBuilder(t).
//		On("2024-01-10").PaidBy(model.ParticipantA, "Groceries", 2000).
//		Build()...)
func SetupTestDB(t *testing.T, seed ...model.NewLineItem) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{Items: seed})
}

// TestDBOptions configures SetupTestDBWithOptions.
type TestDBOptions struct {
	CustomSetup    func(context.Context, *storage.SQLiteStorage) error
	Items          []model.NewLineItem
	SkipMigrations bool
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	db := &TestDB{Storage: store, t: t}
	for _, item := range opts.Items {
		created, err := store.AddItem(ctx, item)
		if err != nil {
			t.Fatalf("failed to seed item %q: %v", item.Name, err)
		}
		db.Items = append(db.Items, *created)
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return db
}

// MustFind returns the seeded item with the given name or fails the test.
func (db *TestDB) MustFind(name string) model.LineItem {
	db.t.Helper()
	for _, item := range db.Items {
		if item.Name == name {
			return item
		}
	}
	db.t.Fatalf("item %q not found in seeded data", name)
	return model.LineItem{}
}

// SetShares updates the share flags of a seeded item or fails the test.
func (db *TestDB) SetShares(name string, sharedByA, sharedByB bool) {
	db.t.Helper()
	item := db.MustFind(name)
	if err := db.Storage.UpdatePaymentFlags(context.Background(), item.ID, sharedByA, sharedByB); err != nil {
		db.t.Fatalf("failed to update shares of %q: %v", name, err)
	}
}
