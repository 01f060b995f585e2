package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/warikan/internal/config"
	"github.com/Veraticus/warikan/internal/model"
	"github.com/Veraticus/warikan/internal/settlement"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Renderer turns ledger values into terminal text using the configured
// participant names and currency.
type Renderer struct {
	ledger config.Ledger
}

// NewRenderer creates a renderer for ledger.
func NewRenderer(ledger config.Ledger) *Renderer {
	return &Renderer{ledger: ledger}
}

// Name returns the display name of p.
func (r *Renderer) Name(p model.Participant) string {
	return r.ledger.Name(p)
}

// Money renders an integer price, e.g. ¥12,000.
func (r *Renderer) Money(amount int64) string {
	return r.MoneyDecimal(decimal.NewFromInt(amount))
}

// MoneyDecimal renders an amount in stored units that may carry a half,
// e.g. ¥499.5. Halves get one extra decimal place; nothing is rounded.
func (r *Renderer) MoneyDecimal(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	places := r.ledger.MinorUnits
	if !amount.IsInteger() {
		places++
	}
	value := amount.Shift(-r.ledger.MinorUnits)
	whole := value.Truncate(0)

	text := humanize.Comma(whole.IntPart())
	if places > 0 {
		frac := value.Sub(whole).StringFixed(places) // "0.50"
		text += frac[1:]
	}
	return sign + r.ledger.CurrencySymbol + text
}

// TransferMessage states the settlement as a sentence. prefix, when set,
// introduces it ("In this period, ").
func (r *Renderer) TransferMessage(t settlement.Transfer, prefix string) string {
	from, ok := t.From()
	if !ok {
		if prefix == "" {
			return "No payment is due."
		}
		return prefix + "no payment is due."
	}
	return fmt.Sprintf("%s%s pays %s %s.", prefix, r.Name(from), r.Name(from.Other()), r.Money(t.Amount))
}

// ParticipantSummary lists what each participant advanced and owes.
func (r *Renderer) ParticipantSummary(t settlement.Totals) string {
	lines := make([]string, 0, 2)
	for _, p := range []model.Participant{model.ParticipantA, model.ParticipantB} {
		lines = append(lines, fmt.Sprintf("%s: advanced %s, share %s",
			r.Name(p), r.Money(t.Advanced(p)), r.MoneyDecimal(t.Share(p))))
	}
	return strings.Join(lines, "\n")
}

// PayerLabel names who advanced the item, or "unknown" for legacy rows.
func (r *Renderer) PayerLabel(item model.LineItem) string {
	if item.Payer == nil {
		return "unknown"
	}
	return r.Name(*item.Payer)
}

// ShareMarks renders the two share flags, e.g. "Yu ✓  Mi ✗".
func (r *Renderer) ShareMarks(item model.LineItem) string {
	mark := func(shared bool) string {
		if shared {
			return SuccessIcon
		}
		return ErrorIcon
	}
	return fmt.Sprintf("%s %s  %s %s",
		r.ledger.ParticipantA, mark(item.SharedByA),
		r.ledger.ParticipantB, mark(item.SharedByB))
}

// ItemsTable writes items grouped by entry date, newest first.
func (r *Renderer) ItemsTable(w io.Writer, items []model.LineItem) error {
	sorted := make([]model.LineItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := model.TruncateToDate(sorted[i].EntryDate), model.TruncateToDate(sorted[j].EntryDate)
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return sorted[i].ID > sorted[j].ID
	})

	for i := 0; i < len(sorted); {
		day := model.FormatDate(sorted[i].EntryDate)
		if _, err := fmt.Fprintln(w, SubtitleStyle.Render(day)); err != nil {
			return err
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for ; i < len(sorted) && model.FormatDate(sorted[i].EntryDate) == day; i++ {
			item := sorted[i]
			if _, err := fmt.Fprintf(tw, "  #%d\t%s\t%s\tpaid by %s\t%s\n",
				item.ID, item.Name, r.Money(item.Price), r.PayerLabel(item), r.ShareMarks(item)); err != nil {
				return err
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
