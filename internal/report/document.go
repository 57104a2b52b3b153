package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/codecleaner/pkg/codecleaner"
)

// Format is the encoding of a report file.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// FormatFor picks the encoding from the report path extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("report %q must end in .yaml, .yml or .json: %w", path, codecleaner.ErrInvalidConfig)
	}
}

// Options records the switches a run was started with.
type Options struct {
	Backup        bool     `yaml:"backup" json:"backup"`
	Validate      bool     `yaml:"validate" json:"validate"`
	DryRun        bool     `yaml:"dry_run" json:"dry_run"`
	StrictEscapes bool     `yaml:"strict_escapes" json:"strict_escapes"`
	Workers       int      `yaml:"workers" json:"workers"`
	Extensions    []string `yaml:"extensions" json:"extensions"`
	ExcludedDirs  []string `yaml:"exclude_dirs" json:"exclude_dirs"`
	Exclude       []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`
}

// Entry is the outcome of one file.
type Entry struct {
	Path           string `yaml:"path" json:"path"`
	Language       string `yaml:"language" json:"language"`
	Status         string `yaml:"status" json:"status"`
	Error          string `yaml:"error,omitempty" json:"error,omitempty"`
	Changed        bool   `yaml:"changed" json:"changed"`
	BytesBefore    int    `yaml:"bytes_before" json:"bytes_before"`
	BytesAfter     int    `yaml:"bytes_after" json:"bytes_after"`
	ChecksumBefore string `yaml:"checksum_before,omitempty" json:"checksum_before,omitempty"`
	ChecksumAfter  string `yaml:"checksum_after,omitempty" json:"checksum_after,omitempty"`
	Backup         string `yaml:"backup,omitempty" json:"backup,omitempty"`
	DurationMS     int64  `yaml:"duration_ms" json:"duration_ms"`
}

// Document is the full run report.
type Document struct {
	RunID      string         `yaml:"run_id" json:"run_id"`
	Root       string         `yaml:"root" json:"root"`
	StartedAt  time.Time      `yaml:"started_at" json:"started_at"`
	FinishedAt time.Time      `yaml:"finished_at" json:"finished_at"`
	Options    Options        `yaml:"options" json:"options"`
	Processed  int            `yaml:"processed" json:"processed"`
	Counts     map[string]int `yaml:"counts" json:"counts"`
	Files      []Entry        `yaml:"files" json:"files"`
}

// NewDocument builds a report from a finished run. Entries are ordered by
// relative path so reports of identical runs compare equal.
func NewDocument(runID uuid.UUID, cfg codecleaner.RunConfig, summary *codecleaner.RunSummary) *Document {
	doc := &Document{
		RunID:      runID.String(),
		Root:       summary.Root,
		StartedAt:  summary.StartedAt.UTC(),
		FinishedAt: summary.FinishedAt.UTC(),
		Options: Options{
			Backup:        cfg.Backup,
			Validate:      cfg.Validate,
			DryRun:        cfg.DryRun,
			StrictEscapes: cfg.StrictEscapes,
			Workers:       cfg.Workers,
			Extensions:    cfg.Extensions,
			ExcludedDirs:  cfg.ExcludedDirs,
			Exclude:       cfg.ExcludePatterns,
		},
		Processed: summary.Processed(),
		Counts:    make(map[string]int),
		Files:     make([]Entry, 0, len(summary.Results)),
	}

	for _, status := range []codecleaner.Status{
		codecleaner.StatusOK,
		codecleaner.StatusDryRun,
		codecleaner.StatusInvalidSyntax,
		codecleaner.StatusError,
	} {
		doc.Counts[status.String()] = summary.Count(status)
	}

	for _, r := range summary.Results {
		entry := Entry{
			Path:           r.File.RelativePath,
			Language:       r.File.Language.String(),
			Status:         r.Status.String(),
			Changed:        r.Changed(),
			BytesBefore:    r.BytesBefore,
			BytesAfter:     r.BytesAfter,
			ChecksumBefore: r.ChecksumBefore,
			ChecksumAfter:  r.ChecksumAfter,
			Backup:         r.BackupPath,
			DurationMS:     r.Duration.Milliseconds(),
		}
		if r.Err != nil {
			entry.Error = r.Err.Error()
		}
		doc.Files = append(doc.Files, entry)
	}
	sort.Slice(doc.Files, func(i, j int) bool {
		return doc.Files[i].Path < doc.Files[j].Path
	})

	return doc
}

// Encode serializes doc in the given format.
func Encode(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return yaml.Marshal(doc)
	}
}

// WriteFile encodes doc according to the extension of path and writes it.
func WriteFile(path string, doc *Document) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Encode(doc, format)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
