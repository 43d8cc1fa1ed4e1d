package statusbar

import "github.com/sprintdeck/sprintdeck/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "h/l: lanes  j/k: tasks  Space: grab  e: edit  d: delete  /: search  q: quit"
	case types.ModeDrag:
		return "h/l: move lane  Enter: drop  Esc: cancel"
	case types.ModeSearch:
		return "Type to search  Enter: confirm  Esc: cancel"
	case types.ModeGoto:
		return "g: top  e: end  h: first lane  l: last lane  Esc: cancel"
	default:
		return ""
	}
}
