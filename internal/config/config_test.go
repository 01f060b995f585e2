package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/warikan/internal/common"
	"github.com/Veraticus/warikan/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T, values map[string]any) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestLoadLedger(t *testing.T) {
	tests := []struct {
		values  map[string]any
		want    Ledger
		name    string
		wantErr bool
	}{
		{
			name: "defaults",
			want: DefaultLedger(),
		},
		{
			name: "custom names and cents",
			values: map[string]any{
				"ledger.participant_a":   " Alice ",
				"ledger.participant_b":   "Bob",
				"ledger.currency_symbol": "$",
				"ledger.minor_units":     2,
			},
			want: Ledger{ParticipantA: "Alice", ParticipantB: "Bob", CurrencySymbol: "$", MinorUnits: 2},
		},
		{
			name:    "empty name",
			values:  map[string]any{"ledger.participant_b": "  "},
			wantErr: true,
		},
		{
			name:    "same name twice",
			values:  map[string]any{"ledger.participant_a": "mi", "ledger.participant_b": "Mi"},
			wantErr: true,
		},
		{
			name:    "minor units out of range",
			values:  map[string]any{"ledger.minor_units": 7},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadLedger(newViper(t, tt.values))
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLedger_ResolveParticipant(t *testing.T) {
	l := DefaultLedger()

	tests := []struct {
		want    *model.Participant
		input   string
		wantErr bool
	}{
		{input: "a", want: model.ParticipantA.Ptr()},
		{input: "B", want: model.ParticipantB.Ptr()},
		{input: "yu", want: model.ParticipantA.Ptr()},
		{input: " Mi ", want: model.ParticipantB.Ptr()},
		{input: "none", want: nil},
		{input: "", want: nil},
		{input: "carol", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := l.ResolveParticipant(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLedger_Name(t *testing.T) {
	l := DefaultLedger()
	assert.Equal(t, "Yu", l.Name(model.ParticipantA))
	assert.Equal(t, "Mi", l.Name(model.ParticipantB))
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("WARIKAN_TEST_DIR", "/srv/data")

	assert.Equal(t, filepath.Join(home, "ledger.db"), ExpandPath("~/ledger.db"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "/srv/data/ledger.db", ExpandPath("$WARIKAN_TEST_DIR/ledger.db"))
	assert.Equal(t, "relative.db", ExpandPath("relative.db"))
}

func TestDatabasePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	v := newViper(t, nil)
	assert.Equal(t, filepath.Join(home, ".local/share/warikan/warikan.db"), DatabasePath(v))

	v.Set("database.path", ":memory:")
	assert.Equal(t, ":memory:", DatabasePath(v))
}

func TestSheetsConfig(t *testing.T) {
	t.Run("viper values win over environment", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "env-client")
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")
		v := newViper(t, map[string]any{
			"sheets.client_id":     "cfg-client",
			"sheets.client_secret": "secret",
			"sheets.refresh_token": "refresh",
			"sheets.retry_delay":   "3s",
		})

		cfg, err := LoadSheetsConfig(v)
		require.NoError(t, err)
		assert.Equal(t, "cfg-client", cfg.ClientID)
		assert.Equal(t, 3*time.Second, cfg.RetryDelay)
		assert.Equal(t, "Ledger", cfg.SheetTitle)
	})

	t.Run("environment fills gaps", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "/etc/warikan/sa.json")
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "sheet-123")
		t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "")
		t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "")

		cfg, err := LoadSheetsConfig(newViper(t, nil))
		require.NoError(t, err)
		assert.Equal(t, "/etc/warikan/sa.json", cfg.ServiceAccountPath)
		assert.Equal(t, "sheet-123", cfg.SpreadsheetID)
	})

	t.Run("no credentials", func(t *testing.T) {
		for _, env := range []string{
			"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH",
			"GOOGLE_SHEETS_CLIENT_ID",
			"GOOGLE_SHEETS_CLIENT_SECRET",
			"GOOGLE_SHEETS_REFRESH_TOKEN",
		} {
			t.Setenv(env, "")
		}

		_, err := LoadSheetsConfig(newViper(t, nil))
		assert.ErrorIs(t, err, common.ErrMissingConfig)
	})

	t.Run("formatting can be disabled", func(t *testing.T) {
		cfg := SheetsConfig(newViper(t, map[string]any{"sheets.formatting": false}))
		assert.False(t, cfg.EnableFormatting)
	})
}

func TestOAuthConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := OAuthConfig(newViper(t, map[string]any{
		"sheets.client_id":     "id",
		"sheets.client_secret": "secret",
	}))

	assert.Equal(t, "id", cfg.ClientID)
	assert.Equal(t, filepath.Join(home, ".config/warikan/sheets-token.json"), cfg.TokenFile)
	assert.Equal(t, "localhost:8089", cfg.ListenAddr)
}
