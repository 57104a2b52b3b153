package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/codecleaner/internal/config"
	"github.com/vvka-141/codecleaner/pkg/codecleaner"
)

// Environment variables consulted between flags and the project file.
const (
	envWorkers    = "CODECLEANER_WORKERS"
	envExtensions = "CODECLEANER_EXTENSIONS"
)

// loadProjectConfig loads .env and the project configuration.
// Returns nil config if no file exists at the default location (not an error).
// An explicit --config path must exist.
func loadProjectConfig(root, explicitPath string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	if explicitPath != "" {
		projectCfg, err := config.LoadFile(explicitPath)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("config file %s not found: %w", explicitPath, codecleaner.ErrInvalidConfig)
			}
			return nil, fmt.Errorf("failed to load %s: %w", explicitPath, err)
		}
		return projectCfg, nil
	}

	projectCfg, err := config.Load(root)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil // Config file not found is not an error
		}
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	return projectCfg, nil
}

// checkTargetRoot fails with ErrPathNotFound unless root is an existing
// directory. It runs before the project file under root is looked up.
func checkTargetRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", root, codecleaner.ErrPathNotFound)
		}
		return fmt.Errorf("failed to access %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory: %w", root, codecleaner.ErrPathNotFound)
	}
	return nil
}

// settings is the resolved configuration of one clean invocation.
type settings struct {
	run       codecleaner.RunConfig
	languages *codecleaner.LanguageRegistry
	report    string
}

// resolveSettings merges, from lowest to highest priority: defaults, the
// project file, environment variables and explicitly set flags.
func resolveSettings(cmd *cobra.Command, root string, flags *cleanFlagValues, verbose bool) (*settings, error) {
	projectCfg, err := loadProjectConfig(root, flags.configPath)
	if err != nil {
		return nil, err
	}

	run := codecleaner.RunConfig{
		Root:         root,
		Extensions:   codecleaner.DefaultExtensions(),
		ExcludedDirs: codecleaner.DefaultExcludedDirs(),
		Workers:      codecleaner.DefaultWorkers,
		Verbose:      verbose,
	}
	s := &settings{report: flags.reportPath}

	if projectCfg != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "[VERBOSE] Applying project configuration\n")
		}
		if err := projectCfg.Apply(&run); err != nil {
			return nil, err
		}
		s.languages, err = projectCfg.LanguageRegistry()
		if err != nil {
			return nil, err
		}
	}

	if err := applyEnvironment(&run); err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("extensions") {
		run.Extensions = splitList(flags.extensions)
	}
	if changed("workers") {
		run.Workers = flags.workers
	}
	if changed("backup") {
		run.Backup = flags.backup
	}
	if changed("validate") {
		run.Validate = flags.validate
	}
	if changed("strict-escapes") {
		run.StrictEscapes = flags.strictEscapes
	}
	if changed("validate-timeout") {
		run.ValidateTimeout = flags.validateTimeout
	}
	run.ExcludedDirs = append(run.ExcludedDirs, splitList(flags.excludeDirs)...)
	run.ExcludePatterns = append(run.ExcludePatterns, flags.exclude...)
	run.DryRun = flags.dryRun
	run.Force = flags.force

	s.run = run
	return s, nil
}

// applyEnvironment reads CODECLEANER_WORKERS and CODECLEANER_EXTENSIONS.
func applyEnvironment(run *codecleaner.RunConfig) error {
	if v := strings.TrimSpace(os.Getenv(envWorkers)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q is not a number: %w", envWorkers, v, codecleaner.ErrInvalidConfig)
		}
		run.Workers = n
	}
	if v := strings.TrimSpace(os.Getenv(envExtensions)); v != "" {
		run.Extensions = splitList([]string{v})
	}
	return nil
}

// splitList flattens comma-separated values and drops empty entries.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
