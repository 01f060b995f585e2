package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidLineItem is returned when a line item fails validation.
var ErrInvalidLineItem = errors.New("invalid line item")

// LineItem is one recorded expense.
type LineItem struct {
	EntryDate time.Time
	CreatedAt time.Time
	Payer     *Participant // nil on legacy rows: nobody advanced the money
	Name      string
	ID        int64
	Price     int64 // smallest currency unit
	SharedByA bool
	SharedByB bool
}

// PayerIs reports whether p fronted the money for this item.
func (li LineItem) PayerIs(p Participant) bool {
	return li.Payer != nil && *li.Payer == p
}

// SharedBy reports whether p shares in the cost of this item.
func (li LineItem) SharedBy(p Participant) bool {
	if p == ParticipantA {
		return li.SharedByA
	}
	return li.SharedByB
}

// Validate checks the rules enforced when an item is created.
func (li LineItem) Validate() error {
	if strings.TrimSpace(li.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidLineItem)
	}
	if li.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative (got %d)", ErrInvalidLineItem, li.Price)
	}
	if li.EntryDate.IsZero() {
		return fmt.Errorf("%w: entry date is required", ErrInvalidLineItem)
	}
	return nil
}

// NewLineItem carries the fields supplied when an item is recorded.
// Share flags are not part of it: new items are always shared by both.
type NewLineItem struct {
	EntryDate  time.Time
	Payer      *Participant
	Name       string
	ExternalID string // source identifier for imported rows, empty for manual entries
	Price      int64
}

// Validate applies the LineItem creation rules.
func (n NewLineItem) Validate() error {
	return LineItem{Name: n.Name, Price: n.Price, EntryDate: n.EntryDate}.Validate()
}
