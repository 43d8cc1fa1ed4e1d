package board

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/sprintdeck/sprintdeck/internal/domain"
	"github.com/sprintdeck/sprintdeck/internal/ui/styles"
)

// renderCard renders a task card
func renderCard(task domain.Task, isCursor, isDragging bool, width int, s *styles.Styles) string {
	// Choose card style based on state
	cardStyle := s.Card
	if isDragging {
		cardStyle = s.CardDragging
	} else if isCursor {
		cardStyle = s.CardActive
	}

	// Apply width
	cardStyle = cardStyle.Width(width)

	// Priority badge ("H", "M", "L"; "?" for anything unrecognized)
	priorityBadge := s.PriorityBadge(task.Priority).Render(task.Priority.Short())

	// Points badge
	pointsBadge := s.PointsBadge.Render(fmt.Sprintf("%dpt", task.Points))

	// Title - truncate if needed
	// Account for padding (2), border (2), and some space for badges
	maxTitleLen := width - 4
	title := task.Title
	if maxTitleLen > 1 && len(title) > maxTitleLen {
		title = title[:maxTitleLen-1] + "…"
	}

	// Cursor indicator (▶ symbol when cursor is on this card)
	cursor := ""
	if isCursor {
		cursor = "▶"
	}

	// Build the card content
	titleLine := cursor + s.TaskTitle.Render(title)
	badgeLine := lipgloss.JoinHorizontal(lipgloss.Left, priorityBadge, " • ", pointsBadge)
	if n := len(task.Assignees); n > 0 {
		assignees := s.AssigneeBadge.Render(fmt.Sprintf("◉%d", n))
		badgeLine = lipgloss.JoinHorizontal(lipgloss.Left, badgeLine, " • ", assignees)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, titleLine, badgeLine)

	return cardStyle.Render(content)
}

// RenderCard is the exported version for testing
func RenderCard(task domain.Task, isCursor, isDragging bool, width int, s *styles.Styles) string {
	return renderCard(task, isCursor, isDragging, width, s)
}
