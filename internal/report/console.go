package report

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/vvka-141/codecleaner/internal/tui"
	"github.com/vvka-141/codecleaner/pkg/codecleaner"
)

// ConsoleReporter writes outcome lines to a stream.
// Safe for concurrent use by multiple goroutines.
type ConsoleReporter struct {
	out   io.Writer
	color bool
	mu    sync.Mutex
}

// NewConsoleReporter creates a reporter writing to out. When color is true
// the status tag is styled with the tui palette.
func NewConsoleReporter(out io.Writer, color bool) *ConsoleReporter {
	return &ConsoleReporter{out: out, color: color}
}

// Report implements codecleaner.Reporter.
func (r *ConsoleReporter) Report(result codecleaner.FileResult) {
	line := result.Message()
	if r.color {
		tag := result.Status.Tag()
		line = tui.RenderTag(result.Status, true) + strings.TrimPrefix(line, tag)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, line)
}

// Finish implements codecleaner.Reporter.
func (r *ConsoleReporter) Finish(summary *codecleaner.RunSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, summary.SummaryLine())
}

var _ codecleaner.Reporter = (*ConsoleReporter)(nil)
