package main

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/warikan/internal/common"
	"github.com/Veraticus/warikan/internal/config"
	"github.com/Veraticus/warikan/internal/model"
	"github.com/Veraticus/warikan/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initStorage opens the configured database and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.DatabasePath(viper.GetViper())

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func loadLedger() (config.Ledger, error) {
	return config.LoadLedger(viper.GetViper())
}

// autoCheckpoint snapshots the database before a destructive operation.
func autoCheckpoint(ctx context.Context, store *storage.SQLiteStorage, operation string) (*storage.CheckpointInfo, error) {
	manager, err := store.NewCheckpointManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create checkpoint manager: %w", err)
	}
	return manager.AutoCheckpoint(ctx, operation)
}

// dateFlag reads an optional YYYY-MM-DD flag. Unset flags give nil.
func dateFlag(cmd *cobra.Command, name string) (*time.Time, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := model.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("--%s must be a date like 2024-01-31", name), err)
	}
	return &d, nil
}

// rangeFlags reads --from and --to.
func rangeFlags(cmd *cobra.Command) (from, to *time.Time, err error) {
	if from, err = dateFlag(cmd, "from"); err != nil {
		return nil, nil, err
	}
	if to, err = dateFlag(cmd, "to"); err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, common.NewUserError("--to must not be before --from", storage.ErrInvalidDateRange)
	}
	return from, to, nil
}

func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "first date to include (YYYY-MM-DD, default: earliest entry)")
	cmd.Flags().String("to", "", "last date to include (YYYY-MM-DD, default: latest entry)")
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(arg), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewUserError(fmt.Sprintf("%q is not an item id", arg), common.ErrInvalidInput)
	}
	return id, nil
}

var maxStoredPrice = decimal.NewFromInt(math.MaxInt64)

// parsePrice reads a price typed in display units ("1200", "1,200", "12.50")
// and converts it to stored units. Prices entered by hand must be positive.
func parsePrice(raw string, minorUnits int32) (int64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", common.ErrInvalidInput, raw)
	}

	stored := amount.Shift(minorUnits)
	if !stored.IsInteger() {
		return 0, fmt.Errorf("%w: %q has more than %d decimal places", common.ErrInvalidInput, raw, minorUnits)
	}
	if !stored.IsPositive() {
		return 0, fmt.Errorf("%w: price must be greater than zero", common.ErrInvalidInput)
	}
	if stored.GreaterThan(maxStoredPrice) {
		return 0, fmt.Errorf("%w: price %q is too large", common.ErrInvalidInput, raw)
	}
	return stored.IntPart(), nil
}
