package tui

import (
	"time"

	"github.com/Veraticus/warikan/internal/config"
	"github.com/Veraticus/warikan/internal/service"
	"github.com/Veraticus/warikan/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme   themes.Theme
	Storage service.Storage
	From    *time.Time
	To      *time.Time
	Ledger  config.Ledger
	Width   int
	Height  int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:  themes.Default,
		Ledger: config.DefaultLedger(),
		Width:  80,
		Height: 24,
	}
}

// WithStorage sets the ledger store.
func WithStorage(storage service.Storage) Option {
	return func(c *Config) {
		c.Storage = storage
	}
}

// WithLedger sets participant names and currency.
func WithLedger(ledger config.Ledger) Option {
	return func(c *Config) {
		c.Ledger = ledger
	}
}

// WithRange limits the review to an inclusive date range. Nil bounds are open.
func WithRange(from, to *time.Time) Option {
	return func(c *Config) {
		c.From = from
		c.To = to
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}
