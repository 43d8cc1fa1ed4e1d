// Package statusbar renders the mode badge and keybinding hints.
package statusbar

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sprintdeck/sprintdeck/internal/types"
	"github.com/sprintdeck/sprintdeck/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode   types.Mode
	user   string
	width  int
	styles *styles.Styles
}

// New creates a new StatusBar with the given mode, width, and styles
func New(mode types.Mode, user string, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		user:   user,
		width:  width,
		styles: styles,
	}
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	// Mode badge
	modeBadge := sb.styles.StatusMode.Render(" " + sb.mode.String() + " ")

	// Keybinding hints
	hints := GetHints(sb.mode)
	hintsRendered := sb.styles.StatusHint.Render(hints)

	// Signed-in user, or a read-only marker when nobody is
	user := sb.user
	if user == "" {
		user = "read-only"
	}
	userRendered := sb.styles.StatusInfo.Render(user)

	// Combine mode badge, hints and user with separators
	separator := sb.styles.StatusHint.Render(" │ ")
	var content string
	if hints != "" {
		content = lipgloss.JoinHorizontal(lipgloss.Left, modeBadge, separator, hintsRendered, separator, userRendered)
	} else {
		content = lipgloss.JoinHorizontal(lipgloss.Left, modeBadge, separator, userRendered)
	}

	// Apply status bar style and fill width
	return sb.styles.StatusBar.Width(sb.width).Render(content)
}
