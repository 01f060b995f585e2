package tui

import (
	"github.com/Veraticus/warikan/internal/service"
)

type itemsLoadedMsg struct {
	report *service.LedgerReport
	err    error
}

type savedMsg struct {
	err   error
	ids   []int64
	saved int
}
