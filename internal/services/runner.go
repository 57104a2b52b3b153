package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/codecleaner/internal/checksum"
	"github.com/vvka-141/codecleaner/internal/files/filesystem"
	"github.com/vvka-141/codecleaner/internal/files/scanner"
	"github.com/vvka-141/codecleaner/internal/stripper"
	"github.com/vvka-141/codecleaner/pkg/codecleaner"
)

// Runner orchestrates a cleaning run over a directory tree.
// Thread-Safety: Run may be called concurrently; each call owns its own
// scanner, cleaner and result set.
type Runner struct {
	fsProvider filesystem.FileSystemProvider
	validator  codecleaner.SyntaxValidator
	approver   codecleaner.Approver
	reporter   codecleaner.Reporter
	logger     codecleaner.Logger
	languages  *codecleaner.LanguageRegistry
}

// NewRunner creates a Runner with all dependencies injected.
// Panics on nil dependencies; those are wiring mistakes, not runtime conditions.
func NewRunner(
	fsProvider filesystem.FileSystemProvider,
	validator codecleaner.SyntaxValidator,
	approver codecleaner.Approver,
	reporter codecleaner.Reporter,
	logger codecleaner.Logger,
) *Runner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if validator == nil {
		panic("validator cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if reporter == nil {
		panic("reporter cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &Runner{
		fsProvider: fsProvider,
		validator:  validator,
		approver:   approver,
		reporter:   reporter,
		logger:     logger,
	}
}

// WithLanguages sets the extension mapping used when scanning; nil restores the default.
func (r *Runner) WithLanguages(languages *codecleaner.LanguageRegistry) *Runner {
	r.languages = languages
	return r
}

// Run cleans every selected file under cfg.Root.
//
// Only configuration errors, a missing root, an approval denial and
// cancellation are returned as errors. Per-file failures are recorded in
// the summary and reported, and do not stop the run.
func (r *Runner) Run(ctx context.Context, cfg codecleaner.RunConfig) (*codecleaner.RunSummary, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}

	if err := r.checkRoot(cfg.Root); err != nil {
		return nil, err
	}

	sc, err := scanner.NewScannerWithFS(scanner.Options{
		Extensions:      cfg.Extensions,
		ExcludedDirs:    cfg.ExcludedDirs,
		ExcludePatterns: cfg.ExcludePatterns,
		Languages:       r.languages,
	}, r.fsProvider, r.logger)
	if err != nil {
		return nil, err
	}

	files, err := sc.ScanDirectory(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", cfg.Root, err)
	}
	r.logger.Verbose("Selected %d file(s) under %s", len(files), cfg.Root)

	if cfg.NeedsApproval() && len(files) > 0 {
		approved, err := r.approver.RequestApproval(ctx, cfg.Root, len(files))
		if err != nil {
			return nil, fmt.Errorf("approval failed: %w", err)
		}
		if !approved {
			return nil, codecleaner.ErrApprovalDenied
		}
	}

	summary := &codecleaner.RunSummary{
		Root:      cfg.Root,
		StartedAt: time.Now(),
	}

	r.process(ctx, cfg, files, summary)

	summary.FinishedAt = time.Now()
	r.reporter.Finish(summary)

	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("run interrupted after %d of %d file(s): %w", summary.Processed(), len(files), err)
	}
	return summary, nil
}

func (r *Runner) checkRoot(root string) error {
	info, err := r.fsProvider.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", root, codecleaner.ErrPathNotFound)
		}
		return fmt.Errorf("failed to access %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory: %w", root, codecleaner.ErrPathNotFound)
	}
	return nil
}

// process fans files out to cfg.Workers goroutines. Dispatch stops once
// ctx is done; files already dispatched run to completion.
func (r *Runner) process(ctx context.Context, cfg codecleaner.RunConfig, files []codecleaner.SourceFile, summary *codecleaner.RunSummary) {
	var opts []stripper.Option
	if cfg.StrictEscapes {
		opts = append(opts, stripper.WithEscapeParity())
	}
	cleaner := NewFileCleaner(r.fsProvider, stripper.NewCommentStripper(opts...), r.validator, checksum.New(), r.logger)
	cleanOpts := CleanOptions{
		Backup:   cfg.Backup,
		Validate: cfg.Validate,
		DryRun:   cfg.DryRun,
	}

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(cfg.Workers)

	for _, file := range files {
		if ctx.Err() != nil {
			r.logger.Verbose("Run cancelled, not dispatching remaining files")
			break
		}
		file := file
		g.Go(func() error {
			// g.Go may have waited for a free slot while ctx was cancelled.
			if ctx.Err() != nil {
				return nil
			}
			// Started files finish even after cancellation.
			result := cleaner.Clean(context.WithoutCancel(ctx), file, cleanOpts)

			mu.Lock()
			summary.Results = append(summary.Results, result)
			mu.Unlock()

			r.reporter.Report(result)
			return nil
		})
	}

	_ = g.Wait()
}
