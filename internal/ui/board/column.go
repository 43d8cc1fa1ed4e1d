package board

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sprintdeck/sprintdeck/internal/domain"
	"github.com/sprintdeck/sprintdeck/internal/ui/styles"
)

// renderColumn renders a kanban lane with header and task cards
func renderColumn(
	col Column,
	cursorTask int,
	isActive bool,
	isHover bool,
	dragTaskID string,
	width int,
	height int,
	s *styles.Styles,
) string {
	// Choose header style: hover highlight wins over cursor
	headerStyle := s.ColumnHeader
	if isHover {
		headerStyle = s.ColumnHeaderHover
	} else if isActive {
		headerStyle = s.ColumnHeaderActive
	}

	// Render header with title (e.g., "─ To Do ─────")
	headerText := "─ " + col.Title + " "
	remainingWidth := width - len(headerText) - 2 // Account for padding
	if remainingWidth > 0 {
		headerText += strings.Repeat("─", remainingWidth)
	}
	header := headerStyle.Render(headerText)

	// Render cards
	var cardStrings []string
	cardWidth := width - 4 // Account for column border and padding
	for i, task := range col.Tasks {
		isCursor := isActive && i == cursorTask
		isDragging := dragTaskID != "" && task.ID == dragTaskID
		cardStrings = append(cardStrings, renderCard(task, isCursor, isDragging, cardWidth, s))
	}

	// Handle empty lane
	content := ""
	if len(cardStrings) > 0 {
		content = strings.Join(cardStrings, "\n")
	}

	// Apply column style; the hovered drop lane gets a highlighted border
	columnStyle := s.Column
	if isHover {
		columnStyle = s.ColumnHover
	}
	columnContent := columnStyle.Width(width).Height(height).Render(content)

	// Join header and column
	return lipgloss.JoinVertical(lipgloss.Left, header, columnContent)
}

// RenderColumn is the exported version for testing
func RenderColumn(col Column, cursorTask int, isActive, isHover bool, dragTaskID string, width, height int, s *styles.Styles) string {
	return renderColumn(col, cursorTask, isActive, isHover, dragTaskID, width, height, s)
}

// laneAt maps a horizontal cell offset to the lane occupying it, given
// the total board width. It exists for mouse hit-testing of lane
// *identifiers*; the drop target itself always resolves through
// domain.LaneStatus.
func laneAt(x, boardWidth int, lanes []domain.LaneID) (domain.LaneID, bool) {
	if boardWidth <= 0 || len(lanes) == 0 || x < 0 || x >= boardWidth {
		return "", false
	}
	columnWidth := boardWidth / len(lanes)
	if columnWidth == 0 {
		return "", false
	}
	idx := x / columnWidth
	if idx >= len(lanes) {
		idx = len(lanes) - 1
	}
	return lanes[idx], true
}

// LaneAt is the exported version used by the mouse drag sensor
func LaneAt(x, boardWidth int) (domain.LaneID, bool) {
	return laneAt(x, boardWidth, domain.Lanes)
}
