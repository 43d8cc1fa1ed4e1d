// Package board renders the four-lane kanban board.
package board

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sprintdeck/sprintdeck/internal/domain"
	"github.com/sprintdeck/sprintdeck/internal/ui/styles"
)

// Render renders the entire kanban board with 4 lanes
func Render(
	columns []Column,
	cursor Cursor,
	dragTaskID string,
	hoverLane domain.LaneID,
	s *styles.Styles,
	width int,
	height int,
) string {
	if len(columns) == 0 {
		return ""
	}

	// Calculate column width - 4 lanes, evenly distributed
	columnWidth := width / len(columns)

	// Render each lane
	var columnStrings []string
	for i, col := range columns {
		isActive := i == cursor.Column
		cursorTask := 0
		if isActive {
			cursorTask = cursor.Task
		}
		isHover := hoverLane != "" && col.Lane == hoverLane

		columnStr := renderColumn(
			col,
			cursorTask,
			isActive,
			isHover,
			dragTaskID,
			columnWidth,
			height,
			s,
		)

		// Force consistent width using lipgloss Width
		sized := lipgloss.NewStyle().Width(columnWidth).Height(height).Render(columnStr)
		columnStrings = append(columnStrings, sized)
	}

	// Join lanes horizontally
	return lipgloss.JoinHorizontal(lipgloss.Top, columnStrings...)
}
