// Package stripper removes comments from source text while preserving string
// literals and all other code verbatim.
//
// The stripper is a single-pass state machine with one character of lookahead.
// It knows four comment grammars selected by codecleaner.Language:
//   - python: # line comments
//   - c-like: // line comments and /* */ block comments
//   - css:    /* */ block comments
//   - markup: <!-- --> comments
//
// Single quotes, double quotes and backticks open string literals in every
// language except LanguageNone, which passes text through untouched.
//
// # Limitations
//
//   - Block comments do not nest; the first */ closes.
//   - A block comment that is never closed consumes the rest of the input.
//   - A <!-- with no later --> is kept as literal text.
//   - By default a delimiter preceded by a backslash never closes a string, so
//     "a\\" is treated as still open. WithEscapeParity counts the whole
//     backslash run instead.
//   - Raw strings, template interpolation, regex literals and multi-character
//     delimiters are not modeled.
package stripper
