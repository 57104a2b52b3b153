package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vvka-141/codecleaner/internal/checksum"
	"github.com/vvka-141/codecleaner/internal/files/filesystem"
	"github.com/vvka-141/codecleaner/internal/stripper"
	"github.com/vvka-141/codecleaner/pkg/codecleaner"
)

// CleanOptions are the per-file switches of a run.
type CleanOptions struct {
	Backup   bool
	Validate bool
	DryRun   bool
}

// FileCleaner processes one file at a time.
// Safe for concurrent use on distinct files.
type FileCleaner struct {
	fsProvider filesystem.FileSystemProvider
	stripper   stripper.CommentStripper
	validator  codecleaner.SyntaxValidator
	calc       checksum.Calculator
	logger     codecleaner.Logger
}

// NewFileCleaner creates a FileCleaner with all dependencies injected.
// Panics if any dependency is nil.
func NewFileCleaner(
	fsProvider filesystem.FileSystemProvider,
	strip stripper.CommentStripper,
	validator codecleaner.SyntaxValidator,
	calc checksum.Calculator,
	logger codecleaner.Logger,
) *FileCleaner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if strip == nil {
		panic("stripper cannot be nil")
	}
	if validator == nil {
		panic("validator cannot be nil")
	}
	if calc == nil {
		panic("calculator cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &FileCleaner{
		fsProvider: fsProvider,
		stripper:   strip,
		validator:  validator,
		calc:       calc,
		logger:     logger,
	}
}

// Clean strips comments from file and returns its outcome.
// Failures never escape as errors; they become StatusError results.
// The original is only replaced after the cleaned content has been
// computed, validated and backed up.
func (c *FileCleaner) Clean(ctx context.Context, file codecleaner.SourceFile, opts CleanOptions) codecleaner.FileResult {
	start := time.Now()
	result := codecleaner.FileResult{File: file}

	finish := func(status codecleaner.Status, err error) codecleaner.FileResult {
		result.Status = status
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	info, err := c.fsProvider.Stat(file.Path)
	if err != nil {
		return finish(codecleaner.StatusError, fmt.Errorf("stat failed: %w", err))
	}

	original, err := c.fsProvider.ReadFile(file.Path)
	if err != nil {
		return finish(codecleaner.StatusError, fmt.Errorf("read failed: %w", err))
	}

	cleaned := c.stripper.Strip(string(original), file.Language)

	result.BytesBefore = len(original)
	result.BytesAfter = len(cleaned)
	result.ChecksumBefore = c.calc.CalculateRaw(original)
	result.ChecksumAfter = c.calc.CalculateRaw([]byte(cleaned))

	if opts.Validate {
		ok, err := c.validator.Validate(ctx, file, cleaned)
		if err != nil {
			return finish(codecleaner.StatusError, fmt.Errorf("validation failed: %w", err))
		}
		if !ok {
			c.logger.Verbose("Cleaned content of %s does not parse, leaving it untouched", file.Path)
			return finish(codecleaner.StatusInvalidSyntax, codecleaner.ErrInvalidSyntax)
		}
	}

	if opts.DryRun {
		return finish(codecleaner.StatusDryRun, nil)
	}

	if opts.Backup {
		backupPath := file.Path + codecleaner.BackupSuffix
		if err := c.fsProvider.WriteFile(backupPath, original, info.Mode().Perm()); err != nil {
			return finish(codecleaner.StatusError, fmt.Errorf("backup failed: %w", err))
		}
		result.BackupPath = backupPath
	}

	if err := c.fsProvider.WriteFile(file.Path, []byte(cleaned), info.Mode().Perm()); err != nil {
		return finish(codecleaner.StatusError, fmt.Errorf("write failed: %w", err))
	}

	return finish(codecleaner.StatusOK, nil)
}
