package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vvka-141/codecleaner/pkg/codecleaner"
)

type mockApprover struct {
	approved bool
	err      error

	mu    sync.Mutex
	calls int
	count int
}

func (m *mockApprover) RequestApproval(_ context.Context, _ string, fileCount int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.count = fileCount
	return m.approved, m.err
}

type mockValidator struct {
	valid bool
	err   error
	delay time.Duration

	inFlight atomic.Int32
	peak     atomic.Int32
	calls    atomic.Int32
}

func (m *mockValidator) Validate(_ context.Context, _ codecleaner.SourceFile, _ string) (bool, error) {
	m.calls.Add(1)
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		p := m.peak.Load()
		if n <= p || m.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	return m.valid, m.err
}

type collectingReporter struct {
	mu       sync.Mutex
	results  []codecleaner.FileResult
	finished int
	summary  *codecleaner.RunSummary
}

func (r *collectingReporter) Report(result codecleaner.FileResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

func (r *collectingReporter) Finish(summary *codecleaner.RunSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished++
	r.summary = summary
}
