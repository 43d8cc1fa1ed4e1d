package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sprintdeck/sprintdeck/internal/domain"
	"github.com/sprintdeck/sprintdeck/internal/ui/overlay"
)

// handleKey processes keyboard input based on current mode
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+l":
		return m, tea.ClearScreen
	}

	switch m.mode {
	case ModeNormal:
		return m.handleNormalMode(msg)
	case ModeDrag:
		return m.handleDragMode(msg)
	case ModeSearch:
		return m.handleSearchMode(msg)
	case ModeGoto:
		return m.handleGotoMode(msg)
	default:
		return m, nil
	}
}

// handleNormalMode processes keyboard input in normal mode
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Vertical navigation
	case "j", "down":
		m.cursor.Task++
		m.clampCursor()
		return m, nil

	case "k", "up":
		m.cursor.Task--
		m.clampCursor()
		return m, nil

	// Horizontal navigation
	case "h", "left":
		m.cursor.Column--
		m.clampCursor()
		return m, nil

	case "l", "right":
		m.cursor.Column++
		m.clampCursor()
		return m, nil

	case "g":
		m.mode = ModeGoto
		return m, nil

	case " ": // Grab the card under the cursor
		task := m.currentTask()
		if task == nil {
			return m, nil
		}
		if !m.canMutate() {
			m.addToast(ToastWarning, "Sign in to move tasks", 3*time.Second)
			return m, nil
		}
		m.beginDrag(task.ID)
		return m, nil

	case "c": // Create task
		if !m.canMutate() {
			m.addToast(ToastWarning, "Sign in to create tasks", 3*time.Second)
			return m, nil
		}
		return m, m.overlayStack.Push(overlay.NewTaskFormOverlay())

	case "e": // Edit task
		task := m.currentTask()
		if task == nil {
			return m, nil
		}
		if !m.canMutate() {
			m.addToast(ToastWarning, "Sign in to edit tasks", 3*time.Second)
			return m, nil
		}
		return m, m.overlayStack.Push(overlay.NewEditTaskOverlay(*task))

	case "d": // Delete task (with confirmation)
		task := m.currentTask()
		if task == nil {
			return m, nil
		}
		if !m.canMutate() {
			m.addToast(ToastWarning, "Sign in to delete tasks", 3*time.Second)
			return m, nil
		}
		m.pendingDelete = task.ID
		dialog := overlay.NewConfirmDialog("Delete Task", "Delete \""+task.Title+"\"? This cannot be undone.")
		return m, m.overlayStack.Push(dialog)

	case "m": // Move task to another sprint or the backlog
		task := m.currentTask()
		if task == nil {
			return m, nil
		}
		if !m.canMutate() {
			m.addToast(ToastWarning, "Sign in to move tasks", 3*time.Second)
			return m, nil
		}
		m.pendingMove = task.ID
		picker := overlay.NewSprintPickerOverlay("Move To Sprint", m.sprints, true)
		return m, m.overlayStack.Push(picker)

	case "s": // Switch sprint
		picker := overlay.NewSprintPickerOverlay("Switch Sprint", m.sprints, true)
		return m, m.overlayStack.Push(picker)

	case "/": // Search
		m.mode = ModeSearch
		m.searchInput.SetValue(m.filter.SearchQuery)
		m.searchInput.Focus()
		return m, nil

	case "1", "2", "3": // Toggle priority filters
		switch msg.String() {
		case "1":
			m.filter.TogglePriority(domain.PriorityHigh)
		case "2":
			m.filter.TogglePriority(domain.PriorityMedium)
		case "3":
			m.filter.TogglePriority(domain.PriorityLow)
		}
		m.clampCursor()
		return m, nil

	case "F": // Clear all filters
		m.filter.Clear()
		m.clampCursor()
		return m, nil

	case ",": // Cycle sort key
		m.sortKey = (m.sortKey + 1) % 4
		m.addToast(ToastInfo, "Sort: "+m.sortKey.String(), 2*time.Second)
		return m, nil

	case "r": // Manual refresh
		return m, m.loadTasksCmd()

	case "L": // Sign in, or sign out when a session is active
		if m.profile != nil {
			m.svcs.Auth.SignOut()
			m.profile = nil
			m.addToast(ToastInfo, "Signed out", 3*time.Second)
			return m, nil
		}
		return m, m.overlayStack.Push(overlay.NewLoginOverlay())

	case "P": // Create project
		if !m.canMutate() {
			m.addToast(ToastWarning, "Sign in to create projects", 3*time.Second)
			return m, nil
		}
		prompt := overlay.NewPromptOverlay("create-project", "New Project", "project name...")
		return m, m.overlayStack.Push(prompt)

	case "J": // Join project by share code
		if !m.canMutate() {
			m.addToast(ToastWarning, "Sign in to join projects", 3*time.Second)
			return m, nil
		}
		prompt := overlay.NewPromptOverlay("join-project", "Join Project", "share code...")
		return m, m.overlayStack.Push(prompt)

	case "S": // Create sprint
		if !m.canMutate() {
			m.addToast(ToastWarning, "Sign in to create sprints", 3*time.Second)
			return m, nil
		}
		if m.currentProject.ID == "" {
			m.addToast(ToastWarning, "Create a project first", 3*time.Second)
			return m, nil
		}
		prompt := overlay.NewPromptOverlay("create-sprint", "New Sprint", "sprint name...")
		return m, m.overlayStack.Push(prompt)

	case "esc":
		if m.filter.IsActive() {
			m.filter.Clear()
			m.clampCursor()
		}
		return m, nil
	}

	return m, nil
}

// handleDragMode processes keyboard input while a card is grabbed
func (m Model) handleDragMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		m.moveHover(-1)
		return m, nil

	case "l", "right":
		m.moveHover(1)
		return m, nil

	case "enter", " ":
		return m, m.dropDrag()

	case "esc":
		m.cancelDrag()
		return m, nil
	}

	return m, nil
}

// handleSearchMode routes keystrokes into the search input and keeps
// the live filter in sync
func (m Model) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filter.SearchQuery = ""
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.mode = ModeNormal
		m.clampCursor()
		return m, nil

	case "enter":
		m.searchInput.Blur()
		m.mode = ModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.filter.SearchQuery = m.searchInput.Value()
	m.clampCursor()
	return m, cmd
}

// handleGotoMode processes keyboard input in goto mode
func (m Model) handleGotoMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	columns := m.buildColumns()

	switch msg.String() {
	case "g":
		m.cursor.Task = 0
	case "e":
		if m.cursor.Column >= 0 && m.cursor.Column < len(columns) {
			m.cursor.Task = len(columns[m.cursor.Column].Tasks) - 1
		}
	case "h":
		m.cursor.Column = 0
	case "l":
		m.cursor.Column = len(columns) - 1
	}
	m.clampCursor()

	return m, nil
}
