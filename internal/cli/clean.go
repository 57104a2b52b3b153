package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vvka-141/codecleaner/internal/files/filesystem"
	"github.com/vvka-141/codecleaner/internal/logging"
	"github.com/vvka-141/codecleaner/internal/report"
	"github.com/vvka-141/codecleaner/internal/services"
	"github.com/vvka-141/codecleaner/internal/tui"
	"github.com/vvka-141/codecleaner/internal/ui"
	"github.com/vvka-141/codecleaner/internal/validate"
	"github.com/vvka-141/codecleaner/pkg/codecleaner"
)

type cleanFlagValues struct {
	backup, validate, dryRun bool
	strictEscapes, force     bool
	extensions, excludeDirs  []string
	exclude                  []string
	workers                  int
	configPath, reportPath   string
	validateTimeout          time.Duration
}

func newCleanCmd() *cobra.Command {
	flags := &cleanFlagValues{}

	cmd := &cobra.Command{
		Use:   "clean <path>",
		Short: "Remove comments from every matching file under a directory",
		Long: `Clean walks <path> recursively and strips comments from every file whose
extension is selected, preserving string literals.

Each file is reported as soon as it finishes:
  [OK] <path>                      cleaned content written
  [DRY RUN] <path>                 nothing written (--dry-run)
  [SKIPPED - INVALID SYNTAX] <path> cleaned content failed --validate
  [ERROR] <path> - <detail>        read, validation, backup or write failure

Rewriting files in place without --backup asks for confirmation in an
interactive terminal; pass --force to skip the prompt.

Configuration precedence (highest first):
  1. Explicitly set flags
  2. CODECLEANER_WORKERS / CODECLEANER_EXTENSIONS (also read from ./.env)
  3. .codecleaner.yaml in <path> (or --config)
  4. Built-in defaults

Examples:
  # Preview what would change
  codecleaner clean ./src --dry-run

  # Keep backups and refuse to write files that no longer parse
  codecleaner clean ./src --backup --validate

  # Only Python and Go, eight workers, with a report
  codecleaner clean ./src --extensions .py,.go --workers 8 --report run.yaml`,
		Args:              RequireTargetPath,
		ValidArgsFunction: completeDirectories,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, args, flags)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&flags.backup, "backup", false,
		"Copy each original to <file>.bak before overwriting it")
	f.BoolVar(&flags.validate, "validate", false,
		"Syntax-check cleaned content and skip files that no longer parse\n"+
			"(.go in-process; .py python3, .js/.ts node, .php php, .c/.cpp gcc)")
	f.BoolVar(&flags.dryRun, "dry-run", false,
		"Compute outcomes without writing any file")
	f.StringSliceVar(&flags.extensions, "extensions", nil,
		"Extensions to process, replacing the default list\n"+
			"Example: --extensions .py,.js")
	f.IntVar(&flags.workers, "workers", codecleaner.DefaultWorkers,
		"Number of files processed concurrently")
	f.StringSliceVar(&flags.excludeDirs, "exclude-dir", nil,
		"Additional directory names to skip at any depth")
	f.StringArrayVar(&flags.exclude, "exclude", nil,
		"Glob of root-relative paths to skip (repeatable)\n"+
			"Example: --exclude '**/generated/**'")
	f.StringVar(&flags.configPath, "config", "",
		"Project configuration file (default: <path>/"+codecleaner.ConfigFileName+")")
	f.StringVar(&flags.reportPath, "report", "",
		"Write a run report to this file (.yaml, .yml or .json)")
	f.BoolVar(&flags.strictEscapes, "strict-escapes", false,
		"Close string literals by backslash-run parity, so 'a\\\\' ends at the quote")
	f.DurationVar(&flags.validateTimeout, "validate-timeout", 0,
		"Bound each external syntax check (0 = no bound). Example: 30s")
	f.BoolVar(&flags.force, "force", false,
		"Skip the confirmation prompt for in-place rewrites without backups")

	_ = cmd.RegisterFlagCompletionFunc("extensions", completeExtensions)
	_ = cmd.RegisterFlagCompletionFunc("report", completeReportFiles)

	return cmd
}

func runClean(cmd *cobra.Command, args []string, flags *cleanFlagValues) error {
	root := args[0]
	verbose := getVerboseFlag(cmd)

	if err := checkTargetRoot(root); err != nil {
		return err
	}

	s, err := resolveSettings(cmd, root, flags, verbose)
	if err != nil {
		return err
	}
	if s.report != "" {
		if _, err := report.FormatFor(s.report); err != nil {
			return err
		}
	}

	logger := logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), verbose)
	runID := uuid.New()
	logger.Verbose("Run %s: root=%s workers=%d backup=%t validate=%t dry-run=%t",
		runID, root, s.run.Workers, s.run.Backup, s.run.Validate, s.run.DryRun)

	// Select approver implementation based on whether a human can answer
	var approver codecleaner.Approver
	if tui.IsInteractive() {
		approver = ui.NewInteractiveApprover(verbose)
	} else {
		approver = ui.NewForcedApprover(verbose)
	}

	out := cmd.OutOrStdout()
	reporter := report.NewConsoleReporter(out, colorFor(out))
	validator := validate.New(logger, validate.WithTimeout(s.run.ValidateTimeout))

	runner := services.NewRunner(
		filesystem.NewOSFileSystem(),
		validator,
		approver,
		reporter,
		logger,
	).WithLanguages(s.languages)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Handle interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, finishing in-flight files...")
			cancel()
		case <-ctx.Done():
		}
	}()

	summary, runErr := runner.Run(ctx, s.run)

	if summary != nil && s.report != "" {
		if err := report.WriteFile(s.report, report.NewDocument(runID, s.run, summary)); err != nil {
			logger.Error("%v", err)
			if runErr == nil {
				runErr = err
			}
		} else {
			logger.Verbose("Report written to %s", s.report)
		}
	}

	if runErr != nil {
		return fmt.Errorf("clean failed: %w", runErr)
	}
	return nil
}

// colorFor reports whether styled tags should be written to out.
func colorFor(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && tui.ColorEnabled(f)
}
