package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/warikan/internal/model"
)

const itemColumns = `id, entry_date, name, price, payer, shared_by_a, shared_by_b, created_at`

// AddItem records a new expense. Both share flags start out true.
func (s *SQLiteStorage) AddItem(ctx context.Context, item model.NewLineItem) (*model.LineItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateNewItem(item); err != nil {
		return nil, err
	}

	id, err := insertItem(ctx, s.db, item, false)
	if err != nil {
		return nil, err
	}

	slog.Debug("added line item", "item_id", id, "name", item.Name, "price", item.Price)
	return s.GetItem(ctx, id)
}

// ImportItems inserts items in one transaction. Items whose ExternalID is already
// present are skipped, so importing the same statement twice is harmless.
// It returns how many rows were actually inserted.
func (s *SQLiteStorage) ImportItems(ctx context.Context, items []model.NewLineItem) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	for i, item := range items {
		if err := validateNewItem(item); err != nil {
			return 0, fmt.Errorf("item at index %d: %w", i, err)
		}
	}
	if len(items) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	inserted := 0
	for _, item := range items {
		id, err := insertItem(ctx, tx, item, true)
		if err != nil {
			return 0, err
		}
		if id != 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}

	slog.Info("imported line items", "received", len(items), "inserted", inserted)
	return inserted, nil
}

// insertItem returns the new row id, or 0 when ignoreDuplicates skipped the row.
func insertItem(ctx context.Context, q queryable, item model.NewLineItem, ignoreDuplicates bool) (int64, error) {
	verb := "INSERT"
	if ignoreDuplicates {
		verb = "INSERT OR IGNORE"
	}

	var externalID sql.NullString
	if item.ExternalID != "" {
		externalID = sql.NullString{String: item.ExternalID, Valid: true}
	}

	result, err := q.ExecContext(ctx, verb+` INTO line_items
		(entry_date, name, price, payer, shared_by_a, shared_by_b, external_id)
		VALUES (?, ?, ?, ?, 1, 1, ?)`,
		model.FormatDate(item.EntryDate), item.Name, item.Price, payerValue(item.Payer), externalID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert line item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return 0, nil
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return id, nil
}

// GetItem retrieves a single line item.
func (s *SQLiteStorage) GetItem(ctx context.Context, id int64) (*model.LineItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM line_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query line item: %w", err)
	}
	return item, nil
}

// GetAllItems returns every item, most recent first.
func (s *SQLiteStorage) GetAllItems(ctx context.Context) ([]model.LineItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryItems(ctx, `SELECT `+itemColumns+` FROM line_items
		ORDER BY entry_date DESC, id DESC`)
}

// GetItemsByRange returns the items dated between start and end inclusive,
// most recent first. No matches is an empty slice, not an error.
func (s *SQLiteStorage) GetItemsByRange(ctx context.Context, start, end time.Time) ([]model.LineItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}

	// ISO dates compare correctly as text.
	return s.queryItems(ctx, `SELECT `+itemColumns+` FROM line_items
		WHERE entry_date >= ? AND entry_date <= ?
		ORDER BY entry_date DESC, id DESC`,
		model.FormatDate(start), model.FormatDate(end))
}

// UpdatePaymentFlags sets who shares in an item's cost. Nothing else about the
// item can change after creation.
func (s *SQLiteStorage) UpdatePaymentFlags(ctx context.Context, id int64, sharedByA, sharedByB bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE line_items SET shared_by_a = ?, shared_by_b = ? WHERE id = ?`,
		sharedByA, sharedByB, id)
	if err != nil {
		return fmt.Errorf("failed to update payment flags: %w", err)
	}
	if err := requireOneRow(result, id); err != nil {
		return err
	}

	slog.Debug("updated payment flags", "item_id", id, "shared_by_a", sharedByA, "shared_by_b", sharedByB)
	return nil
}

// DeleteItem removes an item permanently.
func (s *SQLiteStorage) DeleteItem(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM line_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete line item: %w", err)
	}
	if err := requireOneRow(result, id); err != nil {
		return err
	}

	slog.Info("deleted line item", "item_id", id)
	return nil
}

func requireOneRow(result sql.Result, id int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}
	return nil
}

func (s *SQLiteStorage) queryItems(ctx context.Context, query string, args ...any) ([]model.LineItem, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	items := make([]model.LineItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line items: %w", err)
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.LineItem, error) {
	var (
		item      model.LineItem
		entryDate string
		payer     sql.NullString
		createdAt sql.NullTime
	)

	if err := row.Scan(
		&item.ID, &entryDate, &item.Name, &item.Price, &payer,
		&item.SharedByA, &item.SharedByB, &createdAt,
	); err != nil {
		return nil, err
	}

	date, err := model.ParseDate(entryDate)
	if err != nil {
		return nil, fmt.Errorf("item %d: %w", item.ID, err)
	}
	item.EntryDate = date

	// Missing or unrecognized payers are legacy rows: no advance attributed.
	if payer.Valid {
		if p, ok := model.ParseParticipant(payer.String); ok {
			item.Payer = &p
		}
	}
	if createdAt.Valid {
		item.CreatedAt = createdAt.Time
	}

	return &item, nil
}

func payerValue(p *model.Participant) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*p), Valid: true}
}
