// Package tui implements the interactive share-flag review screen.
package tui

import (
	"context"

	"github.com/Veraticus/warikan/internal/cli"
	"github.com/Veraticus/warikan/internal/model"
	"github.com/Veraticus/warikan/internal/service"
	"github.com/Veraticus/warikan/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type shareFlags struct {
	a, b bool
}

func flagsOf(item model.LineItem) shareFlags {
	return shareFlags{a: item.SharedByA, b: item.SharedByB}
}

// Model holds the review screen state. Items are edited in memory and only
// written back on save.
type Model struct {
	ctx        context.Context
	err        error
	report     *service.LedgerReport
	original   map[int64]shareFlags
	renderer   *cli.Renderer
	theme      themes.Theme
	config     Config
	status     string
	help       help.Model
	keymap     KeyMap
	items      []model.LineItem
	cursor     int
	offset     int
	width      int
	height     int
	savedTotal int
	loaded     bool
	saving     bool
	quitting   bool
}

func newModel(ctx context.Context, cfg Config) Model {
	h := help.New()
	h.Width = cfg.Width

	return Model{
		ctx:      ctx,
		config:   cfg,
		theme:    cfg.Theme,
		keymap:   DefaultKeyMap().WithParticipants(cfg.Ledger.ParticipantA, cfg.Ledger.ParticipantB),
		help:     h,
		renderer: cli.NewRenderer(cfg.Ledger),
		original: make(map[int64]shareFlags),
		width:    cfg.Width,
		height:   cfg.Height,
	}
}

// Init loads the items under review.
func (m Model) Init() tea.Cmd {
	return loadItems(m.ctx, m.config.Storage, m.config.From, m.config.To)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampOffset()

	case itemsLoadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.report = msg.report
		m.items = append([]model.LineItem(nil), msg.report.Items...)
		for _, item := range m.items {
			m.original[item.ID] = flagsOf(item)
		}

	case savedMsg:
		m.saving = false
		m.savedTotal += msg.saved
		for _, id := range msg.ids {
			if i := m.indexOf(id); i >= 0 {
				m.original[id] = flagsOf(m.items[i])
			}
		}
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		m.err = nil
		m.status = pluralize(msg.saved, "item saved", "items saved")

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.saving {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.clampOffset()
	case !m.loaded || len(m.items) == 0:
		return m, nil
	case key.Matches(msg, m.keymap.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keymap.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.moveCursor(-m.visibleRows())
	case key.Matches(msg, m.keymap.PageDown):
		m.moveCursor(m.visibleRows())
	case key.Matches(msg, m.keymap.Home):
		m.moveCursor(-len(m.items))
	case key.Matches(msg, m.keymap.End):
		m.moveCursor(len(m.items))
	case key.Matches(msg, m.keymap.ToggleA):
		m.items[m.cursor].SharedByA = !m.items[m.cursor].SharedByA
		m.status = ""
	case key.Matches(msg, m.keymap.ToggleB):
		m.items[m.cursor].SharedByB = !m.items[m.cursor].SharedByB
		m.status = ""
	case key.Matches(msg, m.keymap.Reset):
		orig := m.original[m.items[m.cursor].ID]
		m.items[m.cursor].SharedByA = orig.a
		m.items[m.cursor].SharedByB = orig.b
	case key.Matches(msg, m.keymap.Save):
		changes := m.Changes()
		if len(changes) == 0 {
			m.status = "Nothing to save."
			return m, nil
		}
		m.saving = true
		m.status = "Saving..."
		return m, saveChanges(m.ctx, m.config.Storage, changes)
	}
	return m, nil
}

// Changes returns the items whose share flags differ from the stored ones.
func (m Model) Changes() []model.LineItem {
	var changed []model.LineItem
	for _, item := range m.items {
		if flagsOf(item) != m.original[item.ID] {
			changed = append(changed, item)
		}
	}
	return changed
}

// Items returns the items as currently edited.
func (m Model) Items() []model.LineItem {
	return m.items
}

// Cursor returns the index of the highlighted item.
func (m Model) Cursor() int {
	return m.cursor
}

func (m Model) indexOf(id int64) int {
	for i, item := range m.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if last := len(m.items) - 1; m.cursor > last {
		m.cursor = last
	}
	m.clampOffset()
}

// clampOffset keeps the cursor row inside the scroll window.
func (m *Model) clampOffset() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// visibleRows is the list height left after the header, footer and help.
func (m Model) visibleRows() int {
	reserved := 9
	if m.help.ShowAll {
		reserved += 4
	}
	if rows := m.height - reserved; rows > 3 {
		return rows
	}
	return 3
}
