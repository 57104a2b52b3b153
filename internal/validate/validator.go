package validate

import (
	"context"
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"os/exec"
	"sort"
	"time"

	"github.com/vvka-141/codecleaner/pkg/codecleaner"
)

// pythonCheckScript parses the file named by argv[1] and exits non-zero on a SyntaxError.
const pythonCheckScript = "import ast, sys; ast.parse(open(sys.argv[1], 'rb').read(), sys.argv[1])"

// Runner executes an external checker.
// A non-nil error exposing ExitCode() means the tool ran and rejected the
// input; any other error means the tool could not be run.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// tool describes an external checker invocation.
type tool struct {
	name string
	args func(path string) []string
}

var tools = map[string]tool{
	".py":  {name: "python3", args: func(p string) []string { return []string{"-c", pythonCheckScript, p} }},
	".js":  {name: "node", args: func(p string) []string { return []string{"--check", p} }},
	".ts":  {name: "node", args: func(p string) []string { return []string{"--check", p} }},
	".php": {name: "php", args: func(p string) []string { return []string{"-l", p} }},
	".c":   {name: "gcc", args: func(p string) []string { return []string{"-fsyntax-only", p} }},
	".cpp": {name: "gcc", args: func(p string) []string { return []string{"-fsyntax-only", p} }},
}

// Validator implements codecleaner.SyntaxValidator.
// Validator is safe for concurrent use by multiple goroutines.
type Validator struct {
	runner  Runner
	timeout time.Duration
	tempDir string
	logger  codecleaner.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithRunner replaces the command runner, mainly for tests.
func WithRunner(r Runner) Option {
	return func(v *Validator) { v.runner = r }
}

// WithTimeout bounds each external invocation. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(v *Validator) { v.timeout = d }
}

// WithTempDir sets where temporary copies are written; empty uses os.TempDir.
func WithTempDir(dir string) Option {
	return func(v *Validator) { v.tempDir = dir }
}

// New creates a Validator using os/exec.
// Panics if logger is nil.
func New(logger codecleaner.Logger, opts ...Option) *Validator {
	if logger == nil {
		panic("logger cannot be nil")
	}
	v := &Validator{
		runner: ExecRunner{},
		logger: logger,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate implements codecleaner.SyntaxValidator.
func (v *Validator) Validate(ctx context.Context, file codecleaner.SourceFile, content string) (bool, error) {
	ext := codecleaner.NormalizeExtension(file.Extension)

	if ext == ".go" {
		_, err := parser.ParseFile(token.NewFileSet(), file.Path, content, parser.AllErrors)
		if err != nil {
			v.logger.Verbose("Go parse failed for %s: %v", file.Path, err)
			return false, nil
		}
		return true, nil
	}

	t, ok := tools[ext]
	if !ok {
		return true, nil
	}

	return v.runTool(ctx, t, ext, file.Path, content)
}

func (v *Validator) runTool(ctx context.Context, t tool, ext, path, content string) (bool, error) {
	tmp, err := os.CreateTemp(v.tempDir, "codecleaner-*"+ext)
	if err != nil {
		return false, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return false, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("failed to close temp file: %w", err)
	}

	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	output, err := v.runner.Run(ctx, t.name, t.args(tmpPath)...)
	if err == nil {
		return true, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, fmt.Errorf("%s did not finish: %w", t.name, ctxErr)
	}

	var exitErr interface{ ExitCode() int }
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		v.logger.Verbose("%s rejected %s: %s", t.name, path, output)
		return false, nil
	}

	return false, fmt.Errorf("%s: %v: %w", t.name, err, codecleaner.ErrValidatorUnavailable)
}

// Describe returns the checker used for ext, or "" when content is accepted unchecked.
func Describe(ext string) string {
	ext = codecleaner.NormalizeExtension(ext)
	if ext == ".go" {
		return "go/parser"
	}
	if t, ok := tools[ext]; ok {
		switch t.name {
		case "python3":
			return "python3 ast.parse"
		default:
			args := t.args("")
			return t.name + " " + args[0]
		}
	}
	return ""
}

// CheckedExtensions returns the extensions that have a syntax checker, sorted.
func CheckedExtensions() []string {
	exts := []string{".go"}
	for ext := range tools {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

var _ codecleaner.SyntaxValidator = (*Validator)(nil)
