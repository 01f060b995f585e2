package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/warikan/internal/model"
	"github.com/Veraticus/warikan/internal/settlement"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.loaded {
		return m.theme.Muted.Render("Loading ledger...")
	}
	if m.report == nil {
		return m.theme.StatusError.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" + m.help.View(m.keymap)
	}

	sections := []string{m.renderHeader(), m.renderList(), m.renderFooter(), m.help.View(m.keymap)}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render("Review shares")
	span := fmt.Sprintf("%s to %s, %s",
		model.FormatDate(m.report.Range.Start),
		model.FormatDate(m.report.Range.End),
		pluralize(len(m.items), "item", "items"))
	return title + "  " + m.theme.Subtitle.Render(span) + "\n"
}

func (m Model) renderList() string {
	if len(m.items) == 0 {
		if m.report.LedgerEmpty {
			return m.theme.Muted.Render("The ledger is empty.")
		}
		return m.theme.Muted.Render("No items in this period.")
	}

	end := m.offset + m.visibleRows()
	if end > len(m.items) {
		end = len(m.items)
	}

	var b strings.Builder
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i))
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) renderRow(i int) string {
	item := m.items[i]
	check := func(on bool) string {
		if on {
			return "[x]"
		}
		return "[ ]"
	}

	marker := " "
	if flagsOf(item) != m.original[item.ID] {
		marker = m.theme.Dirty.Render("*")
	}

	row := fmt.Sprintf("%s %s %s  %s %s  %s  %-24s %10s  paid by %s",
		marker,
		check(item.SharedByA), m.config.Ledger.ParticipantA,
		check(item.SharedByB), m.config.Ledger.ParticipantB,
		model.FormatDate(item.EntryDate),
		truncate(item.Name, 24),
		m.renderer.Money(item.Price),
		m.renderer.PayerLabel(item))

	if i == m.cursor {
		return m.theme.Selected.Render("› " + row)
	}
	return m.theme.Normal.Render("  " + row)
}

// renderFooter shows the settlement for the items as currently edited.
func (m Model) renderFooter() string {
	totals, transfer := settlement.Settle(m.items)

	prefix := ""
	if m.config.From != nil || m.config.To != nil {
		prefix = "In this period, "
	}

	lines := []string{
		m.theme.Settlement.Render(m.renderer.TransferMessage(transfer, prefix)),
		m.theme.Muted.Render(strings.ReplaceAll(m.renderer.ParticipantSummary(totals), "\n", "   ")),
	}

	switch {
	case m.err != nil:
		lines = append(lines, m.theme.StatusError.Render("Error: "+m.err.Error()))
	case m.status != "":
		lines = append(lines, m.theme.StatusInfo.Render(m.status))
	default:
		if n := len(m.Changes()); n > 0 {
			lines = append(lines, m.theme.Dirty.Render(pluralize(n, "unsaved change", "unsaved changes")+" (s to save)"))
		}
	}

	return m.theme.Footer.Render(strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
