package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/codecleaner/pkg/codecleaner"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ProjectConfig is the content of .codecleaner.yaml.
// Pointer fields distinguish "not set" from an explicit false.
type ProjectConfig struct {
	Extensions      []string          `yaml:"extensions,omitempty"`
	ExcludeDirs     []string          `yaml:"exclude_dirs,omitempty"`
	Exclude         []string          `yaml:"exclude,omitempty"`
	Workers         int               `yaml:"workers,omitempty"`
	Backup          *bool             `yaml:"backup,omitempty"`
	Validate        *bool             `yaml:"validate,omitempty"`
	ValidateTimeout string            `yaml:"validate_timeout,omitempty"`
	StrictEscapes   *bool             `yaml:"strict_escapes,omitempty"`
	Languages       map[string]string `yaml:"languages,omitempty"`
}

const ConfigFileName = codecleaner.ConfigFileName

// Load reads ConfigFileName from the target root.
func Load(root string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(root, ConfigFileName))
}

// LoadFile reads and checks a config file at an explicit path.
// Malformed content is reported as codecleaner.ErrInvalidConfig.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", path, err, codecleaner.ErrInvalidConfig)
	}
	if err := cfg.check(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *ProjectConfig) check() error {
	var errs []error
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d: %w", c.Workers, codecleaner.ErrInvalidConfig))
	}
	if _, err := c.Timeout(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.LanguageRegistry(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Timeout parses validate_timeout; an empty value yields zero.
func (c *ProjectConfig) Timeout() (time.Duration, error) {
	if c.ValidateTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.ValidateTimeout)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid validate_timeout %q: %w", c.ValidateTimeout, codecleaner.ErrInvalidConfig)
	}
	return d, nil
}

// LanguageRegistry builds the extension mapping with the languages overrides
// applied, or returns nil when there are none.
func (c *ProjectConfig) LanguageRegistry() (*codecleaner.LanguageRegistry, error) {
	if len(c.Languages) == 0 {
		return nil, nil
	}
	extra := make(map[string]codecleaner.Language, len(c.Languages))
	for ext, name := range c.Languages {
		lang, err := codecleaner.ParseLanguage(name)
		if err != nil {
			return nil, fmt.Errorf("languages[%s]: %w", ext, err)
		}
		extra[ext] = lang
	}
	return codecleaner.NewLanguageRegistry(extra), nil
}

// Apply copies every value set in the file onto cfg.
// extensions replaces the allow-list; exclude_dirs and exclude extend the
// existing exclusions.
func (c *ProjectConfig) Apply(cfg *codecleaner.RunConfig) error {
	if len(c.Extensions) > 0 {
		cfg.Extensions = append([]string(nil), c.Extensions...)
	}
	cfg.ExcludedDirs = appendMissing(cfg.ExcludedDirs, c.ExcludeDirs)
	cfg.ExcludePatterns = appendMissing(cfg.ExcludePatterns, c.Exclude)
	if c.Workers > 0 {
		cfg.Workers = c.Workers
	}
	if c.Backup != nil {
		cfg.Backup = *c.Backup
	}
	if c.Validate != nil {
		cfg.Validate = *c.Validate
	}
	if c.StrictEscapes != nil {
		cfg.StrictEscapes = *c.StrictEscapes
	}
	timeout, err := c.Timeout()
	if err != nil {
		return err
	}
	if timeout > 0 {
		cfg.ValidateTimeout = timeout
	}
	return nil
}

// appendMissing returns base extended with the entries of extra it does not
// already contain, without modifying base's backing array.
func appendMissing(base, extra []string) []string {
	if len(extra) == 0 {
		return base
	}
	seen := make(map[string]struct{}, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, v := range base {
		seen[v] = struct{}{}
		out = append(out, v)
	}
	for _, v := range extra {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
