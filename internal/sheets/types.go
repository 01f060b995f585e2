package sheets

import (
	"fmt"

	"github.com/Veraticus/warikan/internal/model"
	"github.com/Veraticus/warikan/internal/service"
	"github.com/Veraticus/warikan/internal/settlement"
	"github.com/shopspring/decimal"
)

// Labels names the participants in exported rows.
type Labels struct {
	ParticipantA string
	ParticipantB string
}

func (l Labels) name(p model.Participant) string {
	if p == model.ParticipantA {
		return l.ParticipantA
	}
	return l.ParticipantB
}

// summaryRows is the number of rows BuildRows emits before the item header.
const summaryRows = 9

// itemColumns is the width of the item section.
const itemColumns = 6

// BuildRows lays out a report as sheet rows: a summary block, a blank row,
// then one row per item in report order.
func BuildRows(report *service.LedgerReport, labels Labels) [][]any {
	values := make([][]any, 0, summaryRows+2+len(report.Items))

	values = append(values,
		[]any{"Warikan Ledger", fmt.Sprintf("%s - %s",
			model.FormatDate(report.Range.Start), model.FormatDate(report.Range.End))},
		[]any{},
		[]any{"Participant", "Advanced", "Share", "Net"},
		participantRow(report.Totals, model.ParticipantA, labels),
		participantRow(report.Totals, model.ParticipantB, labels),
		[]any{},
		[]any{"Settlement", settlementText(report.Transfer, labels)},
		[]any{"Items", len(report.Items)},
		[]any{},
	)

	values = append(values, []any{
		"Date", "Name", "Price", "Paid by",
		"Shared by " + labels.ParticipantA,
		"Shared by " + labels.ParticipantB,
	})

	for _, item := range report.Items {
		paidBy := ""
		if item.Payer != nil {
			paidBy = labels.name(*item.Payer)
		}
		values = append(values, []any{
			model.FormatDate(item.EntryDate),
			item.Name,
			item.Price,
			paidBy,
			item.SharedByA,
			item.SharedByB,
		})
	}

	return values
}

func participantRow(t settlement.Totals, p model.Participant, labels Labels) []any {
	net := t.NetA()
	if p == model.ParticipantB {
		net = t.NetB()
	}
	return []any{labels.name(p), t.Advanced(p), cellNumber(t.Share(p)), cellNumber(net)}
}

func settlementText(tr settlement.Transfer, labels Labels) string {
	from, ok := tr.From()
	if !ok {
		return "No payment due"
	}
	return fmt.Sprintf("%s pays %s %d", labels.name(from), labels.name(from.Other()), tr.Amount)
}

// cellNumber keeps whole amounts integral so sheets does not show a trailing .0.
func cellNumber(d decimal.Decimal) any {
	if d.IsInteger() {
		return d.IntPart()
	}
	return d.InexactFloat64()
}
