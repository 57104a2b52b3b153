package codecleaner

import (
	"fmt"
	"sort"
	"strings"
)

// Language selects which comment syntax rules apply to a file.
type Language int

const (
	LanguageNone   Language = iota // Unrecognized extension, content passes through
	LanguagePython                 // # line comments
	LanguageCLike                  // // line comments and /* */ block comments
	LanguageCSS                    // /* */ block comments only
	LanguageMarkup                 // <!-- --> comments only
)

// String returns a human-readable string representation of the Language.
func (l Language) String() string {
	switch l {
	case LanguageNone:
		return "none"
	case LanguagePython:
		return "python"
	case LanguageCLike:
		return "c-like"
	case LanguageCSS:
		return "css"
	case LanguageMarkup:
		return "markup"
	default:
		return fmt.Sprintf("Unknown(%d)", l)
	}
}

// IsValid returns true if the Language is a valid, defined value.
func (l Language) IsValid() bool {
	return l >= LanguageNone && l <= LanguageMarkup
}

// ParseLanguage converts a name produced by Language.String back into a Language.
func ParseLanguage(name string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none":
		return LanguageNone, nil
	case "python":
		return LanguagePython, nil
	case "c-like", "clike":
		return LanguageCLike, nil
	case "css":
		return LanguageCSS, nil
	case "markup", "html":
		return LanguageMarkup, nil
	default:
		return LanguageNone, fmt.Errorf("unknown language %q: %w", name, ErrInvalidConfig)
	}
}

// defaultLanguages maps lowercase extensions to their comment syntax.
var defaultLanguages = map[string]Language{
	".py":   LanguagePython,
	".js":   LanguageCLike,
	".ts":   LanguageCLike,
	".jsx":  LanguageCLike,
	".tsx":  LanguageCLike,
	".java": LanguageCLike,
	".c":    LanguageCLike,
	".cpp":  LanguageCLike,
	".h":    LanguageCLike,
	".hpp":  LanguageCLike,
	".go":   LanguageCLike,
	".php":  LanguageCLike,
	".css":  LanguageCSS,
	".html": LanguageMarkup,
	".htm":  LanguageMarkup,
}

// LanguageRegistry maps file extensions to languages.
// The zero value is not usable; create one with NewLanguageRegistry.
// A registry is read-only after construction and safe for concurrent use.
type LanguageRegistry struct {
	byExtension map[string]Language
}

// NewLanguageRegistry creates a registry seeded with the default mapping.
// Entries in extra override or extend the defaults. Extension keys are
// normalized with NormalizeExtension.
func NewLanguageRegistry(extra map[string]Language) *LanguageRegistry {
	m := make(map[string]Language, len(defaultLanguages)+len(extra))
	for ext, lang := range defaultLanguages {
		m[ext] = lang
	}
	for ext, lang := range extra {
		m[NormalizeExtension(ext)] = lang
	}
	return &LanguageRegistry{byExtension: m}
}

// ForExtension returns the language for the given extension, matched
// case-insensitively. Unknown extensions map to LanguageNone.
func (r *LanguageRegistry) ForExtension(ext string) Language {
	return r.byExtension[NormalizeExtension(ext)]
}

// Extensions returns the registered extensions in sorted order.
func (r *LanguageRegistry) Extensions() []string {
	exts := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

var defaultRegistry = NewLanguageRegistry(nil)

// LanguageForExtension maps an extension using the default registry.
func LanguageForExtension(ext string) Language {
	return defaultRegistry.ForExtension(ext)
}

// NormalizeExtension lowercases ext and ensures a leading dot.
// An empty string stays empty.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}
