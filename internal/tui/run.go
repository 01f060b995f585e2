package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoStorage is returned when Run is called without a store.
var ErrNoStorage = errors.New("storage is required")

// Result summarizes a finished review session.
type Result struct {
	Saved   int
	Unsaved int
}

// Run opens the review screen and blocks until the user quits.
func Run(ctx context.Context, opts ...Option) (Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Storage == nil {
		return Result{}, ErrNoStorage
	}

	p := tea.NewProgram(newModel(ctx, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("review screen failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return Result{}, fmt.Errorf("unexpected model type %T", final)
	}
	result := Result{Saved: m.savedTotal, Unsaved: len(m.Changes())}
	if m.report == nil && m.err != nil {
		return result, m.err
	}
	return result, nil
}
