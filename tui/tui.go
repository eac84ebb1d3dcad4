// Package tui is the tree-view presentation adapter: an interactive browser
// over the action catalog that hands selected operations back to the command
// loop for execution.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// InitializeTUI forces a color profile when CLICOLOR_FORCE or a truecolor
// COLORTERM is set, so styling survives non-interactive and CI runs. With
// neither set, lipgloss detects the profile itself.
func InitializeTUI() {
	if os.Getenv("CLICOLOR_FORCE") == "1" || os.Getenv("COLORTERM") == "truecolor" {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}
