package codecleaner

// Reporter receives per-file outcomes as they complete and the summary at the end.
// Report is called from multiple worker goroutines; implementations must
// serialize their own output.
type Reporter interface {
	Report(result FileResult)
	Finish(summary *RunSummary)
}
