package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/warikan/internal/config"
	"github.com/Veraticus/warikan/internal/model"
	"github.com/Veraticus/warikan/internal/settlement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Money(t *testing.T) {
	yen := NewRenderer(config.DefaultLedger())
	dollars := NewRenderer(config.Ledger{ParticipantA: "Ann", ParticipantB: "Ben", CurrencySymbol: "$", MinorUnits: 2})

	tests := []struct {
		r        *Renderer
		amount   decimal.Decimal
		name     string
		expected string
	}{
		{name: "zero", r: yen, amount: decimal.Zero, expected: "¥0"},
		{name: "thousands", r: yen, amount: decimal.NewFromInt(1234567), expected: "¥1,234,567"},
		{name: "half yen", r: yen, amount: decimal.RequireFromString("499.5"), expected: "¥499.5"},
		{name: "negative half", r: yen, amount: decimal.RequireFromString("-1499.5"), expected: "-¥1,499.5"},
		{name: "cents", r: dollars, amount: decimal.NewFromInt(125000), expected: "$1,250.00"},
		{name: "half cent", r: dollars, amount: decimal.RequireFromString("1249.5"), expected: "$12.495"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.r.MoneyDecimal(tt.amount))
		})
	}

	assert.Equal(t, "¥12,000", yen.Money(12000))
}

func TestRenderer_TransferMessage(t *testing.T) {
	r := NewRenderer(config.DefaultLedger())

	tests := []struct {
		name     string
		prefix   string
		expected string
		transfer settlement.Transfer
	}{
		{
			name:     "b pays a",
			transfer: settlement.Transfer{Direction: settlement.DirectionBPaysA, Amount: 1500},
			expected: "Mi pays Yu ¥1,500.",
		},
		{
			name:     "a pays b",
			transfer: settlement.Transfer{Direction: settlement.DirectionAPaysB, Amount: 500},
			expected: "Yu pays Mi ¥500.",
		},
		{
			name:     "none",
			transfer: settlement.Transfer{Direction: settlement.DirectionNone},
			expected: "No payment is due.",
		},
		{
			name:     "prefixed transfer",
			prefix:   "In this period, ",
			transfer: settlement.Transfer{Direction: settlement.DirectionAPaysB, Amount: 800},
			expected: "In this period, Yu pays Mi ¥800.",
		},
		{
			name:     "prefixed none",
			prefix:   "In this period, ",
			transfer: settlement.Transfer{},
			expected: "In this period, no payment is due.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.TransferMessage(tt.transfer, tt.prefix))
		})
	}
}

func TestRenderer_ParticipantSummary(t *testing.T) {
	r := NewRenderer(config.DefaultLedger())
	totals := settlement.Totals{
		AdvancedA: 0,
		AdvancedB: 999,
		ShareA:    decimal.RequireFromString("499.5"),
		ShareB:    decimal.RequireFromString("499.5"),
	}

	assert.Equal(t,
		"Yu: advanced ¥0, share ¥499.5\nMi: advanced ¥999, share ¥499.5",
		r.ParticipantSummary(totals))
}

func TestRenderer_ItemsTable(t *testing.T) {
	r := NewRenderer(config.DefaultLedger())
	day := func(d int) time.Time { return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC) }

	items := []model.LineItem{
		{ID: 1, EntryDate: day(9), Name: "Groceries", Price: 3000, Payer: model.ParticipantA.Ptr(), SharedByA: true, SharedByB: true},
		{ID: 3, EntryDate: day(10), Name: "Train", Price: 460, Payer: model.ParticipantA.Ptr(), SharedByA: true},
		{ID: 2, EntryDate: day(10), Name: "Dinner", Price: 2999, Payer: nil, SharedByB: true},
	}

	var buf bytes.Buffer
	require.NoError(t, r.ItemsTable(&buf, items))
	out := buf.String()

	newer := strings.Index(out, "2024-01-10")
	older := strings.Index(out, "2024-01-09")
	require.NotEqual(t, -1, newer)
	require.NotEqual(t, -1, older)
	assert.Less(t, newer, older, "newest date group first")
	assert.Less(t, strings.Index(out, "Train"), strings.Index(out, "Dinner"), "higher id first within a day")

	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "¥3,000")
	assert.Contains(t, out, "paid by unknown")
	assert.Contains(t, out, "Yu ✓  Mi ✗")
	assert.Equal(t, 1, strings.Count(out, "2024-01-10"), "one header per date")
}

func TestRenderer_ItemsTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(config.DefaultLedger()).ItemsTable(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestFormatHelpers(t *testing.T) {
	assert.Contains(t, FormatSuccess("saved"), "saved")
	assert.Contains(t, FormatError("failed"), "failed")
	assert.Contains(t, FormatTitle("Ledger"), "Ledger")
	assert.Contains(t, RenderBox("Settlement", "Mi pays Yu ¥1."), "Mi pays Yu ¥1.")
}
