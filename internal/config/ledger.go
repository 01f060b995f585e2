package config

import (
	"fmt"
	"strings"

	"github.com/Veraticus/warikan/internal/common"
	"github.com/Veraticus/warikan/internal/model"
	"github.com/spf13/viper"
)

// Ledger holds presentation settings for the two participants.
// It is passed explicitly to renderers; the settlement engine never sees it.
type Ledger struct {
	ParticipantA   string
	ParticipantB   string
	CurrencySymbol string
	MinorUnits     int32 // decimal places stored in integer prices; 0 for yen
}

// DefaultLedger returns the built-in participant names and currency.
func DefaultLedger() Ledger {
	return Ledger{
		ParticipantA:   "Yu",
		ParticipantB:   "Mi",
		CurrencySymbol: "¥",
	}
}

// SetDefaults registers ledger and database defaults on v.
func SetDefaults(v *viper.Viper) {
	d := DefaultLedger()
	v.SetDefault("ledger.participant_a", d.ParticipantA)
	v.SetDefault("ledger.participant_b", d.ParticipantB)
	v.SetDefault("ledger.currency_symbol", d.CurrencySymbol)
	v.SetDefault("ledger.minor_units", d.MinorUnits)
	v.SetDefault("sheets.spreadsheet_name", "Warikan Ledger")
	v.SetDefault("sheets.sheet_title", "Ledger")
	v.SetDefault("sheets.timezone", "Asia/Tokyo")
	v.SetDefault("sheets.token_file", DefaultTokenPath)
	v.SetDefault("database.path", DefaultDatabasePath)
}

// LoadLedger reads the ledger section from v.
func LoadLedger(v *viper.Viper) (Ledger, error) {
	l := Ledger{
		ParticipantA:   strings.TrimSpace(v.GetString("ledger.participant_a")),
		ParticipantB:   strings.TrimSpace(v.GetString("ledger.participant_b")),
		CurrencySymbol: v.GetString("ledger.currency_symbol"),
		MinorUnits:     v.GetInt32("ledger.minor_units"),
	}
	if err := l.Validate(); err != nil {
		return Ledger{}, err
	}
	return l, nil
}

// Validate requires two distinct, non-empty participant names.
func (l Ledger) Validate() error {
	if l.ParticipantA == "" || l.ParticipantB == "" {
		return fmt.Errorf("%w: both participant names are required", common.ErrInvalidConfig)
	}
	if strings.EqualFold(l.ParticipantA, l.ParticipantB) {
		return fmt.Errorf("%w: participant names must differ (both are %q)", common.ErrInvalidConfig, l.ParticipantA)
	}
	if l.MinorUnits < 0 || l.MinorUnits > 4 {
		return fmt.Errorf("%w: minor_units must be between 0 and 4 (got %d)", common.ErrInvalidConfig, l.MinorUnits)
	}
	return nil
}

// Name returns the display name of p.
func (l Ledger) Name(p model.Participant) string {
	if p == model.ParticipantA {
		return l.ParticipantA
	}
	return l.ParticipantB
}

// ResolveParticipant accepts "a"/"b" or a configured display name.
// "none" and the empty string mean no payer.
func (l Ledger) ResolveParticipant(s string) (*model.Participant, error) {
	trimmed := strings.TrimSpace(s)
	switch {
	case trimmed == "" || strings.EqualFold(trimmed, "none"):
		return nil, nil
	case strings.EqualFold(trimmed, l.ParticipantA):
		return model.ParticipantA.Ptr(), nil
	case strings.EqualFold(trimmed, l.ParticipantB):
		return model.ParticipantB.Ptr(), nil
	}
	if p, ok := model.ParseParticipant(trimmed); ok {
		return &p, nil
	}
	return nil, fmt.Errorf("%w: unknown participant %q (use a, b, %s, %s or none)",
		common.ErrInvalidInput, s, l.ParticipantA, l.ParticipantB)
}

// DatabasePath returns the expanded database location from v.
func DatabasePath(v *viper.Viper) string {
	path := v.GetString("database.path")
	if path == "" {
		path = DefaultDatabasePath
	}
	return ExpandPath(path)
}
