package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/warikan/internal/model"
	"github.com/Veraticus/warikan/internal/service"
	"github.com/Veraticus/warikan/internal/settlement"
	"github.com/Veraticus/warikan/internal/testutil"
	"github.com/Veraticus/warikan/internal/testutil/items"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

// loadedModel returns a model over the January fixture, ordered newest first:
// Old entry, Train, Dinner, Groceries.
func loadedModel(t *testing.T, store service.Storage) Model {
	t.Helper()
	cfg := defaultConfig()
	cfg.Storage = store
	m := newModel(context.Background(), cfg)

	m, _ = send(t, m, m.Init()())
	require.True(t, m.loaded)
	require.NoError(t, m.err)
	return m
}

func januaryDB(t *testing.T) *testutil.TestDB {
	t.Helper()
	return testutil.SetupTestDB(t, items.NewBuilder(t).WithFixture(items.FixtureJanuary).Build()...)
}

func TestModel_LoadsItems(t *testing.T) {
	m := loadedModel(t, januaryDB(t).Storage)

	require.Len(t, m.Items(), 4)
	assert.Equal(t, "Old entry", m.Items()[0].Name)
	assert.Equal(t, "Groceries", m.Items()[3].Name)
	assert.Empty(t, m.Changes())
	assert.Contains(t, m.View(), "Review shares")
	assert.Contains(t, m.View(), "Mi pays Yu ¥231.")
}

func TestModel_ToggleRecomputesSettlement(t *testing.T) {
	m := loadedModel(t, januaryDB(t).Storage)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.Cursor())
	m, _ = send(t, m, runes("b"))

	train := m.Items()[1]
	assert.Equal(t, "Train", train.Name)
	assert.True(t, train.SharedByA)
	assert.False(t, train.SharedByB)
	require.Len(t, m.Changes(), 1)

	// shares become 3459.5 and 2999.5 against advances of 3460 and 2999
	_, transfer := settlement.Settle(m.Items())
	assert.Equal(t, settlement.Transfer{Direction: settlement.DirectionBPaysA, Amount: 1}, transfer)
	assert.Contains(t, m.View(), "Mi pays Yu ¥1.")
	assert.Contains(t, m.View(), "1 unsaved change")
}

func TestModel_ToggleTwiceIsClean(t *testing.T) {
	m := loadedModel(t, januaryDB(t).Storage)

	m, _ = send(t, m, runes("a"))
	m, _ = send(t, m, runes("a"))
	assert.Empty(t, m.Changes())
}

func TestModel_ResetItem(t *testing.T) {
	m := loadedModel(t, januaryDB(t).Storage)

	m, _ = send(t, m, runes("a"))
	m, _ = send(t, m, runes("b"))
	m, _ = send(t, m, runes("u"))
	assert.Empty(t, m.Changes())
}

func TestModel_CursorBounds(t *testing.T) {
	m := loadedModel(t, januaryDB(t).Storage)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Cursor())

	m, _ = send(t, m, runes("G"))
	assert.Equal(t, 3, m.Cursor())

	m, _ = send(t, m, runes("j"))
	assert.Equal(t, 3, m.Cursor())

	m, _ = send(t, m, runes("g"))
	assert.Equal(t, 0, m.Cursor())
}

func TestModel_SaveWritesChangedItems(t *testing.T) {
	db := januaryDB(t)
	m := loadedModel(t, db.Storage)

	m, _ = send(t, m, runes("G"))
	m, _ = send(t, m, runes("a"))
	m, cmd := send(t, m, runes("s"))
	require.NotNil(t, cmd)
	assert.True(t, m.saving)

	m, _ = send(t, m, cmd())
	assert.False(t, m.saving)
	assert.Empty(t, m.Changes())
	assert.Equal(t, 1, m.savedTotal)
	assert.Equal(t, "1 item saved", m.status)

	stored, err := db.Storage.GetItem(context.Background(), db.MustFind("Groceries").ID)
	require.NoError(t, err)
	assert.False(t, stored.SharedByA)
	assert.True(t, stored.SharedByB)
}

func TestModel_SaveWithoutChanges(t *testing.T) {
	m := loadedModel(t, januaryDB(t).Storage)

	m, cmd := send(t, m, runes("s"))
	assert.Nil(t, cmd)
	assert.Equal(t, "Nothing to save.", m.status)
}

type failingUpdates struct {
	service.Storage
}

func (failingUpdates) UpdatePaymentFlags(context.Context, int64, bool, bool) error {
	return errors.New("database is locked")
}

func TestModel_SaveFailureKeepsChanges(t *testing.T) {
	db := januaryDB(t)
	m := loadedModel(t, db.Storage)
	m.config.Storage = failingUpdates{Storage: db.Storage}

	m, _ = send(t, m, runes("a"))
	m, cmd := send(t, m, runes("s"))
	m, _ = send(t, m, cmd())

	require.Error(t, m.err)
	assert.Contains(t, m.err.Error(), "database is locked")
	assert.Len(t, m.Changes(), 1)
	assert.Contains(t, m.View(), "database is locked")
}

func TestModel_QuitDiscards(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		t.Run(msg.String(), func(t *testing.T) {
			m := loadedModel(t, januaryDB(t).Storage)
			m, _ = send(t, m, runes("a"))

			m, cmd := send(t, m, msg)
			require.NotNil(t, cmd)
			_, isQuit := cmd().(tea.QuitMsg)
			assert.True(t, isQuit)
			assert.True(t, m.quitting)
			assert.Len(t, m.Changes(), 1, "unsaved edits are dropped, not written")
		})
	}
}

func TestModel_EmptyStates(t *testing.T) {
	m := loadedModel(t, testutil.SetupTestDB(t).Storage)
	assert.Contains(t, m.View(), "The ledger is empty.")

	m, cmd := send(t, m, runes("a"))
	assert.Nil(t, cmd)
	assert.Empty(t, m.Changes())
}

func TestModel_ScrollWindowFollowsCursor(t *testing.T) {
	builder := items.NewBuilder(t).On("2024-05-01")
	for i := 0; i < 30; i++ {
		builder.PaidBy(model.ParticipantA, "Snack", 100)
	}
	db := testutil.SetupTestDB(t, builder.Build()...)

	m := loadedModel(t, db.Storage)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 15})
	rows := m.visibleRows()

	m, _ = send(t, m, runes("G"))
	assert.Equal(t, 29, m.Cursor())
	assert.Equal(t, 29-rows+1, m.offset)

	m, _ = send(t, m, runes("g"))
	assert.Equal(t, 0, m.offset)
}

func TestRun_RequiresStorage(t *testing.T) {
	_, err := Run(context.Background())
	assert.ErrorIs(t, err, ErrNoStorage)
}
