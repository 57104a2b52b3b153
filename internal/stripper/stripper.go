package stripper

import (
	"strings"

	"github.com/vvka-141/codecleaner/pkg/codecleaner"
)

// CommentStripper removes comments while preserving string literals.
// Implementations are stateless and safe for concurrent use.
type CommentStripper interface {
	Strip(text string, lang codecleaner.Language) string
}

// EscapeMode selects how a backslash before a string delimiter is interpreted.
type EscapeMode int

const (
	// EscapeLookBehind treats a delimiter as escaped when the single preceding
	// character is a backslash.
	EscapeLookBehind EscapeMode = iota
	// EscapeParity treats a delimiter as escaped when it follows an odd number
	// of consecutive backslashes.
	EscapeParity
)

// Option configures a CommentStripper.
type Option func(*commentStripper)

// WithEscapeParity enables backslash-run parity for string termination.
func WithEscapeParity() Option {
	return func(c *commentStripper) {
		c.escapeMode = EscapeParity
	}
}

// WithEscapeMode sets the escape mode explicitly.
func WithEscapeMode(mode EscapeMode) Option {
	return func(c *commentStripper) {
		c.escapeMode = mode
	}
}

// commentStripper implements CommentStripper using a state machine.
type commentStripper struct {
	escapeMode EscapeMode
}

// NewCommentStripper creates a new CommentStripper instance.
func NewCommentStripper(opts ...Option) CommentStripper {
	c := &commentStripper{escapeMode: EscapeLookBehind}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultStripper = NewCommentStripper()

// Strip removes comments with the default (look-behind) escape mode.
func Strip(text string, lang codecleaner.Language) string {
	return defaultStripper.Strip(text, lang)
}

// scanState represents the current mode of the scanner.
type scanState int

const (
	stateCode scanState = iota
	stateLineComment
	stateBlockComment
	stateMarkupComment
	stateString
)

const (
	markupOpen  = "<!--"
	markupClose = "-->"
)

// Strip removes comments from text according to the rules for lang.
//
// The scan walks bytes rather than runes. Every character that drives a state
// transition is ASCII, and UTF-8 never uses ASCII bytes inside a multi-byte
// sequence, so the result is the same as a code point scan while invalid
// UTF-8 is copied through unchanged.
func (c *commentStripper) Strip(text string, lang codecleaner.Language) string {
	if len(text) == 0 || lang == codecleaner.LanguageNone {
		return text
	}

	var result strings.Builder
	result.Grow(len(text))

	state := stateCode
	var delimiter byte

	// Position from which no markup close exists; -1 until a search fails.
	unclosedFrom := -1

	n := len(text)
	i := 0
	for i < n {
		ch := text[i]
		var next byte
		if i+1 < n {
			next = text[i+1]
		}

		switch state {
		case stateLineComment:
			if ch == '\n' {
				result.WriteByte(ch)
				state = stateCode
				i++
			} else if ch == '\r' && next == '\n' {
				result.WriteString("\r\n")
				state = stateCode
				i += 2
			} else {
				i++
			}

		case stateBlockComment:
			if ch == '*' && next == '/' {
				state = stateCode
				i += 2
			} else {
				i++
			}

		case stateMarkupComment:
			if strings.HasPrefix(text[i:], markupClose) {
				state = stateCode
				i += len(markupClose)
			} else {
				i++
			}

		case stateString:
			result.WriteByte(ch)
			if ch == delimiter && !c.escaped(text, i) {
				state = stateCode
			}
			i++

		default:
			switch {
			case isQuote(ch):
				state = stateString
				delimiter = ch
				result.WriteByte(ch)
				i++

			case lang == codecleaner.LanguagePython && ch == '#':
				state = stateLineComment
				i++

			case lang == codecleaner.LanguageCLike && ch == '/' && next == '/':
				state = stateLineComment
				i += 2

			case (lang == codecleaner.LanguageCLike || lang == codecleaner.LanguageCSS) && ch == '/' && next == '*':
				state = stateBlockComment
				i += 2

			case lang == codecleaner.LanguageMarkup && ch == '<' && strings.HasPrefix(text[i:], markupOpen) &&
				hasMarkupClose(text, i+len(markupOpen), &unclosedFrom):
				state = stateMarkupComment
				i += len(markupOpen)

			default:
				result.WriteByte(ch)
				i++
			}
		}
	}

	return result.String()
}

// escaped reports whether the delimiter at position i is escaped.
func (c *commentStripper) escaped(text string, i int) bool {
	if c.escapeMode == EscapeParity {
		run := 0
		for j := i - 1; j >= 0 && text[j] == '\\'; j-- {
			run++
		}
		return run%2 == 1
	}
	return i > 0 && text[i-1] == '\\'
}

// hasMarkupClose reports whether --> occurs at or after from.
// A failed search is remembered in unclosedFrom: no later search starting
// beyond that point can succeed.
func hasMarkupClose(text string, from int, unclosedFrom *int) bool {
	if *unclosedFrom >= 0 && from >= *unclosedFrom {
		return false
	}
	if strings.Contains(text[from:], markupClose) {
		return true
	}
	*unclosedFrom = from
	return false
}

func isQuote(ch byte) bool {
	return ch == '\'' || ch == '"' || ch == '`'
}
