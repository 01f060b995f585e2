// Package settlement computes how two participants square up over a set of line items.
//
// Everything here is pure: callers pass a snapshot of items and get fresh values back.
package settlement

import (
	"github.com/Veraticus/warikan/internal/model"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Totals holds what each participant advanced and what each is responsible for.
// Shares stay exact decimals because an evenly split odd price leaves a half unit.
type Totals struct {
	ShareA    decimal.Decimal
	ShareB    decimal.Decimal
	AdvancedA int64
	AdvancedB int64
}

// NetA is A's share minus A's advances. Positive means A still owes money.
func (t Totals) NetA() decimal.Decimal {
	return t.ShareA.Sub(decimal.NewFromInt(t.AdvancedA))
}

// NetB is B's share minus B's advances. Positive means B still owes money.
func (t Totals) NetB() decimal.Decimal {
	return t.ShareB.Sub(decimal.NewFromInt(t.AdvancedB))
}

// Advanced returns the amount p paid out of pocket.
func (t Totals) Advanced(p model.Participant) int64 {
	if p == model.ParticipantA {
		return t.AdvancedA
	}
	return t.AdvancedB
}

// Share returns the amount p is responsible for.
func (t Totals) Share(p model.Participant) decimal.Decimal {
	if p == model.ParticipantA {
		return t.ShareA
	}
	return t.ShareB
}

// ComputeTotals sums advances and shares over items. Items without a recognized
// payer advance nothing; items shared by nobody add to neither share.
func ComputeTotals(items []model.LineItem) Totals {
	totals := Totals{
		ShareA: decimal.Zero,
		ShareB: decimal.Zero,
	}

	for _, item := range items {
		switch {
		case item.PayerIs(model.ParticipantA):
			totals.AdvancedA += item.Price
		case item.PayerIs(model.ParticipantB):
			totals.AdvancedB += item.Price
		}

		price := decimal.NewFromInt(item.Price)
		switch {
		case item.SharedByA && item.SharedByB:
			half := price.Div(two)
			totals.ShareA = totals.ShareA.Add(half)
			totals.ShareB = totals.ShareB.Add(half)
		case item.SharedByA:
			totals.ShareA = totals.ShareA.Add(price)
		case item.SharedByB:
			totals.ShareB = totals.ShareB.Add(price)
		}
	}

	return totals
}

// Settle runs ComputeTotals and ComputeNetTransfer over items.
func Settle(items []model.LineItem) (Totals, Transfer) {
	totals := ComputeTotals(items)
	return totals, ComputeNetTransfer(totals)
}
