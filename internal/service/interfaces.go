// Package service defines the interfaces shared by commands, the TUI, and exporters.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/warikan/internal/model"
	"github.com/Veraticus/warikan/internal/settlement"
)

// Storage defines the contract for the ledger store.
type Storage interface {
	// Line item operations
	AddItem(ctx context.Context, item model.NewLineItem) (*model.LineItem, error)
	ImportItems(ctx context.Context, items []model.NewLineItem) (int, error)
	GetItem(ctx context.Context, id int64) (*model.LineItem, error)
	GetAllItems(ctx context.Context) ([]model.LineItem, error)
	GetItemsByRange(ctx context.Context, start, end time.Time) ([]model.LineItem, error)
	UpdatePaymentFlags(ctx context.Context, id int64, sharedByA, sharedByB bool) error
	DeleteItem(ctx context.Context, id int64) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// ReportWriter publishes a ledger report somewhere outside the terminal.
type ReportWriter interface {
	Write(ctx context.Context, report *LedgerReport) error
}

// DateRange is an inclusive span of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// LedgerReport is a settled view of the ledger over a date range.
type LedgerReport struct {
	Range    DateRange
	Items    []model.LineItem
	Totals   settlement.Totals
	Transfer settlement.Transfer
	// LedgerEmpty distinguishes "nothing recorded at all" from "nothing in this range".
	LedgerEmpty bool
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
