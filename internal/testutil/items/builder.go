// Package items builds ledger seed data for tests with a fluent API.
//
//	seed := items.NewBuilder(t).
//		On("2024-01-10").
//		PaidBy(model.ParticipantA, "Groceries", 2000).
//		PaidBy(model.ParticipantB, "Train", 460).
//		Build()
package items

import (
	"testing"
	"time"

	"github.com/Veraticus/warikan/internal/model"
)

// Builder accumulates NewLineItems. The zero date is 2024-01-01.
type Builder struct {
	t     *testing.T
	date  time.Time
	items []model.NewLineItem
}

// NewBuilder starts an empty builder.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t, date: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)}
}

// On sets the entry date for the items added after it.
func (b *Builder) On(day string) *Builder {
	b.t.Helper()
	d, err := model.ParseDate(day)
	if err != nil {
		b.t.Fatalf("bad seed date: %v", err)
	}
	b.date = d
	return b
}

// PaidBy adds an item advanced by p.
func (b *Builder) PaidBy(p model.Participant, name string, price int64) *Builder {
	return b.add(p.Ptr(), name, price)
}

// Unpaid adds a legacy-style item with no payer.
func (b *Builder) Unpaid(name string, price int64) *Builder {
	return b.add(nil, name, price)
}

// WithFixture appends a predefined item set.
func (b *Builder) WithFixture(f Fixture) *Builder {
	b.items = append(b.items, f.Items...)
	return b
}

// Build returns the accumulated items.
func (b *Builder) Build() []model.NewLineItem {
	out := make([]model.NewLineItem, len(b.items))
	copy(out, b.items)
	return out
}

func (b *Builder) add(payer *model.Participant, name string, price int64) *Builder {
	b.items = append(b.items, model.NewLineItem{
		EntryDate: b.date,
		Payer:     payer,
		Name:      name,
		Price:     price,
	})
	return b
}
