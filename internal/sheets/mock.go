package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/warikan/internal/service"
)

// MockWriter records reports instead of sending them anywhere.
type MockWriter struct {
	WriteFunc func(ctx context.Context, report *service.LedgerReport) error
	Reports   []*service.LedgerReport
	mu        sync.Mutex
}

// Write implements service.ReportWriter.
func (m *MockWriter) Write(ctx context.Context, report *service.LedgerReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Reports = append(m.Reports, report)
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, report)
	}
	return nil
}

// Calls returns how many times Write was called.
func (m *MockWriter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Reports)
}

var _ service.ReportWriter = (*MockWriter)(nil)
var _ service.ReportWriter = (*Writer)(nil)
