package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// --- Terminal (ANSI-friendly) palette ---
const (
	terminalGreen     = "2"
	terminalYellow    = "3"
	terminalRed       = "1"
	terminalCyan      = "6"
	terminalBlue      = "4"
	terminalViolet    = "5"
	terminalMutedText = "8"
)

// Colors exposes the raw palette for callers that compose their own styles.
type Colors struct {
	Green  lipgloss.Color
	Yellow lipgloss.Color
	Red    lipgloss.Color
	Cyan   lipgloss.Color
	Blue   lipgloss.Color
	Violet lipgloss.Color
	Muted  lipgloss.Color
}

// Theme bundles the lipgloss styles used across the launcher TUI and the
// log formatter.
type Theme struct {
	Colors Colors

	// Headers and titles
	Header lipgloss.Style
	Title  lipgloss.Style

	// Status indicators
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Text styles - visual hierarchy
	Bold     lipgloss.Style
	Italic   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style

	// Group rows in the tree view
	Group lipgloss.Style

	// Status bar at the bottom of the tree view
	StatusBar lipgloss.Style

	// Special styles
	Accent lipgloss.Style
}

// DefaultTheme is the process-wide theme instance.
var DefaultTheme = NewTheme()

// NewTheme creates a theme on the ANSI terminal palette, respecting the
// user's terminal colors.
func NewTheme() *Theme {
	return &Theme{
		Colors: Colors{
			Green:  lipgloss.Color(terminalGreen),
			Yellow: lipgloss.Color(terminalYellow),
			Red:    lipgloss.Color(terminalRed),
			Cyan:   lipgloss.Color(terminalCyan),
			Blue:   lipgloss.Color(terminalBlue),
			Violet: lipgloss.Color(terminalViolet),
			Muted:  lipgloss.Color(terminalMutedText),
		},
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(terminalCyan)),
		Title:     lipgloss.NewStyle().Bold(true),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color(terminalGreen)),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color(terminalRed)),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color(terminalYellow)),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color(terminalBlue)),
		Bold:      lipgloss.NewStyle().Bold(true),
		Italic:    lipgloss.NewStyle().Italic(true),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(terminalMutedText)),
		Selected:  lipgloss.NewStyle().Reverse(true),
		Group:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(terminalViolet)),
		StatusBar: lipgloss.NewStyle().Faint(true),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color(terminalCyan)),
	}
}

// RenderStatus renders a status indicator followed by text.
func RenderStatus(status, text string) string {
	switch status {
	case "ok":
		return DefaultTheme.Success.Render("✓") + " " + text
	case "error":
		return DefaultTheme.Error.Render("✗") + " " + text
	case "warn":
		return DefaultTheme.Warning.Render("!") + " " + text
	default:
		return text
	}
}
