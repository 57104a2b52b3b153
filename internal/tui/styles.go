package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/codecleaner/pkg/codecleaner"
)

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

// Styles for status tags and headings.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)
)

// Symbols for visual feedback.
const (
	SymbolCheck  = "✓"
	SymbolCross  = "✗"
	SymbolBullet = "•"
)

// StatusStyle returns the style used to render the tag of a file outcome.
func StatusStyle(status codecleaner.Status) lipgloss.Style {
	switch status {
	case codecleaner.StatusOK:
		return SuccessStyle
	case codecleaner.StatusDryRun:
		return InfoStyle
	case codecleaner.StatusInvalidSyntax:
		return WarningStyle
	case codecleaner.StatusError:
		return ErrorStyle
	default:
		return MutedStyle
	}
}

// RenderTag renders the bracketed status tag, colored when color is true.
func RenderTag(status codecleaner.Status, color bool) string {
	if !color {
		return status.Tag()
	}
	return StatusStyle(status).Render(status.Tag())
}
