package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sprintdeck/sprintdeck/internal/domain"
	"github.com/sprintdeck/sprintdeck/internal/ui/board"
)

// Board geometry used by the mouse sensor. A lane renders a two line
// header, and each card occupies four bordered rows plus its margin.
const (
	laneHeaderRows = 2
	cardRows       = 5
)

// beginDrag opens a drag session on the given task. The session
// remembers the pre-drag status so a rejected persist can roll back.
func (m *Model) beginDrag(taskID string) bool {
	idx := m.findTask(taskID)
	if idx < 0 {
		return false
	}

	task := m.tasks[idx]
	lane, ok := domain.StatusLane(task.Status)
	if !ok {
		// A task with an unrecognized status has no lane to drag from.
		return false
	}

	m.drag.active = true
	m.drag.taskID = taskID
	m.drag.fromStatus = task.Status
	m.drag.hover = lane
	m.mode = ModeDrag
	return true
}

// moveHover shifts the hovered lane left or right
func (m *Model) moveHover(delta int) {
	idx := 0
	for i, lane := range domain.Lanes {
		if lane == m.drag.hover {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(domain.Lanes) {
		idx = len(domain.Lanes) - 1
	}
	m.drag.hover = domain.Lanes[idx]
}

// cancelDrag abandons the session without touching the task
func (m *Model) cancelDrag() {
	m.drag = dragState{}
	m.mode = ModeNormal
}

// dropDrag settles the session. The drop target resolves exclusively
// through the lane-to-status map; a drop outside any lane, or back
// onto the source lane, is a no-op. A real move applies optimistically
// and persists in the background.
func (m *Model) dropDrag() tea.Cmd {
	taskID := m.drag.taskID
	from := m.drag.fromStatus
	hover := m.drag.hover
	m.drag = dragState{}
	m.mode = ModeNormal

	target, ok := domain.LaneStatus(hover)
	if !ok || target == from {
		return nil
	}

	idx := m.findTask(taskID)
	if idx < 0 {
		return nil
	}

	// Optimistic apply. The sequence number ties the eventual result
	// to this particular move.
	m.tasks[idx].Status = target
	m.moveSeq[taskID]++
	m.clampCursor()

	task := m.tasks[idx]
	return m.moveTaskCmd(task, from, target, m.moveSeq[taskID])
}

// handleMouse runs the mouse drag sensor. A left press arms the
// sensor; motion past the cell threshold promotes it to a drag;
// release drops or, for a plain click, just selects.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.drag.pressed = true
		m.drag.pressX = msg.X
		m.drag.pressY = msg.Y
		m.selectAt(msg.X, msg.Y)
		return m, nil

	case tea.MouseActionMotion:
		if m.drag.active {
			if lane, ok := board.LaneAt(msg.X, m.width); ok {
				m.drag.hover = lane
			}
			return m, nil
		}
		if m.drag.pressed && m.cellDistance(msg.X, msg.Y) >= m.dragThreshold() {
			if task := m.currentTask(); task != nil && m.canMutate() {
				m.beginDrag(task.ID)
				if lane, ok := board.LaneAt(msg.X, m.width); ok {
					m.drag.hover = lane
				}
			}
		}
		return m, nil

	case tea.MouseActionRelease:
		m.drag.pressed = false
		if m.drag.active {
			return m, m.dropDrag()
		}
		return m, nil
	}

	return m, nil
}

// selectAt moves the cursor to the card under the pointer
func (m *Model) selectAt(x, y int) {
	lane, ok := board.LaneAt(x, m.width)
	if !ok {
		return
	}

	columns := m.buildColumns()
	for i, col := range columns {
		if col.Lane == lane {
			m.cursor.Column = i
			break
		}
	}

	row := y - laneHeaderRows
	if row < 0 {
		row = 0
	}
	m.cursor.Task = row / cardRows
	m.clampCursor()
}

// cellDistance returns the Chebyshev distance from the press origin
func (m Model) cellDistance(x, y int) int {
	dx := x - m.drag.pressX
	if dx < 0 {
		dx = -dx
	}
	dy := y - m.drag.pressY
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

func (m Model) dragThreshold() int {
	if m.config != nil && m.config.Board.DragThreshold > 0 {
		return m.config.Board.DragThreshold
	}
	return 2
}
