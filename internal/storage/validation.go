// Package storage provides the SQLite-backed ledger store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/warikan/internal/model"
)

// Validation and lookup errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrInvalidDateRange = errors.New("start date must not be after end date")
	ErrInvalidItem      = errors.New("invalid line item")
	ErrInvalidID        = errors.New("invalid item id")
	ErrItemNotFound     = errors.New("line item not found")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	return nil
}

func validateNewItem(item model.NewLineItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidItem, err)
	}
	return nil
}

func validateDateRange(start, end time.Time) error {
	if model.TruncateToDate(end).Before(model.TruncateToDate(start)) {
		return fmt.Errorf("%w: %s is after %s", ErrInvalidDateRange, model.FormatDate(start), model.FormatDate(end))
	}
	return nil
}
