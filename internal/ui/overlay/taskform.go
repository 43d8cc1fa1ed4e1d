package overlay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sprintdeck/sprintdeck/internal/domain"
)

// TaskSubmittedMsg is emitted when the task form is submitted.
// TaskID is empty for a newly created task.
type TaskSubmittedMsg struct {
	TaskID      string
	Title       string
	Description string
	Priority    domain.Priority
	Points      int
}

// TaskFormOverlay provides a form to create or edit a task
type TaskFormOverlay struct {
	taskID      string
	titleInput  textinput.Model
	description textarea.Model
	points      textinput.Model
	priority    domain.Priority
	focusIndex  int
	styles      *Styles
}

const (
	focusTitle = iota
	focusDescription
	focusPriority
	focusPoints
	focusSubmit
	formFieldCount
)

// NewTaskFormOverlay creates an empty form for a new task
func NewTaskFormOverlay() *TaskFormOverlay {
	ti := textinput.New()
	ti.Placeholder = "Task title..."
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	ta := textarea.New()
	ta.Placeholder = "Task description (optional)..."
	ta.CharLimit = 2000
	ta.SetWidth(60)
	ta.SetHeight(5)

	pts := textinput.New()
	pts.Placeholder = "0"
	pts.CharLimit = 3
	pts.Width = 5

	return &TaskFormOverlay{
		titleInput:  ti,
		description: ta,
		points:      pts,
		priority:    domain.PriorityMedium,
		focusIndex:  focusTitle,
		styles:      New(),
	}
}

// NewEditTaskOverlay creates a form pre-filled from an existing task
func NewEditTaskOverlay(task domain.Task) *TaskFormOverlay {
	f := NewTaskFormOverlay()
	f.taskID = task.ID
	f.titleInput.SetValue(task.Title)
	f.description.SetValue(task.Description)
	f.points.SetValue(strconv.Itoa(task.Points))
	if task.Priority != "" {
		f.priority = task.Priority
	}
	return f
}

// Init initializes the overlay
func (f *TaskFormOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (f *TaskFormOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return f, func() tea.Msg { return CloseOverlayMsg{} }

		case "ctrl+s":
			return f, f.submit()

		case "tab", "shift+tab":
			if msg.String() == "tab" {
				f.focusIndex = (f.focusIndex + 1) % formFieldCount
			} else {
				f.focusIndex = (f.focusIndex - 1 + formFieldCount) % formFieldCount
			}
			f.applyFocus()
			return f, nil

		case "enter":
			if f.focusIndex == focusSubmit {
				return f, f.submit()
			}
			// Let the active field handle enter
		}

		// Priority selection when focused
		if f.focusIndex == focusPriority {
			switch msg.String() {
			case "L":
				f.priority = domain.PriorityLow
				return f, nil
			case "M":
				f.priority = domain.PriorityMedium
				return f, nil
			case "H":
				f.priority = domain.PriorityHigh
				return f, nil
			}
		}
	}

	var cmd tea.Cmd
	switch f.focusIndex {
	case focusTitle:
		f.titleInput, cmd = f.titleInput.Update(msg)
		cmds = append(cmds, cmd)
	case focusDescription:
		f.description, cmd = f.description.Update(msg)
		cmds = append(cmds, cmd)
	case focusPoints:
		f.points, cmd = f.points.Update(msg)
		cmds = append(cmds, cmd)
	}

	return f, tea.Batch(cmds...)
}

func (f *TaskFormOverlay) applyFocus() {
	f.titleInput.Blur()
	f.description.Blur()
	f.points.Blur()

	switch f.focusIndex {
	case focusTitle:
		f.titleInput.Focus()
	case focusDescription:
		f.description.Focus()
	case focusPoints:
		f.points.Focus()
	}
}

// View renders the form
func (f *TaskFormOverlay) View() string {
	var b strings.Builder

	b.WriteString(f.label("Title:", focusTitle))
	b.WriteString("  ")
	b.WriteString(f.titleInput.View())
	b.WriteString("\n\n")

	b.WriteString(f.label("Description:", focusDescription))
	b.WriteString("\n")
	b.WriteString(f.description.View())
	b.WriteString("\n\n")

	b.WriteString(f.label("Priority:", focusPriority))
	b.WriteString("  ")
	b.WriteString(f.renderPrioritySelector())
	b.WriteString("\n\n")

	b.WriteString(f.label("Points:", focusPoints))
	b.WriteString("  ")
	b.WriteString(f.points.View())
	b.WriteString("\n\n")

	b.WriteString(f.styles.Separator.Render(strings.Repeat("─", 60)))
	b.WriteString("\n\n")

	submitStyle := f.styles.MenuItem
	if f.focusIndex == focusSubmit {
		submitStyle = f.styles.MenuItemActive
	}
	if f.taskID == "" {
		b.WriteString(submitStyle.Render("[ Create Task ]"))
	} else {
		b.WriteString(submitStyle.Render("[ Save Changes ]"))
	}
	b.WriteString("\n\n")

	hints := []string{
		f.styles.MenuKey.Render("Tab") + " " + f.styles.Footer.Render("Switch fields"),
		f.styles.MenuKey.Render("Ctrl+S") + " " + f.styles.Footer.Render("Submit"),
		f.styles.MenuKey.Render("Esc") + " " + f.styles.Footer.Render("Cancel"),
	}
	b.WriteString(f.styles.Footer.Render(strings.Join(hints, " • ")))

	return b.String()
}

func (f *TaskFormOverlay) label(text string, index int) string {
	if f.focusIndex == index {
		return f.styles.LabelFocused.Render(text)
	}
	return f.styles.Label.Render(text)
}

// renderPrioritySelector renders the priority selector with current selection
func (f *TaskFormOverlay) renderPrioritySelector() string {
	priorities := []struct {
		key string
		pri domain.Priority
	}{
		{"L", domain.PriorityLow},
		{"M", domain.PriorityMedium},
		{"H", domain.PriorityHigh},
	}

	var parts []string
	for _, p := range priorities {
		style := f.styles.MenuItem
		indicator := " "
		if p.pri == f.priority {
			style = f.styles.MenuItemActive
			indicator = "●"
		}

		parts = append(parts, style.Render(fmt.Sprintf("[%s%s]", indicator, p.key)))
	}

	return strings.Join(parts, " ")
}

// submit emits a TaskSubmittedMsg and closes the overlay
func (f *TaskFormOverlay) submit() tea.Cmd {
	title := strings.TrimSpace(f.titleInput.Value())
	if title == "" {
		return nil // Don't submit if title is empty
	}

	points, err := strconv.Atoi(strings.TrimSpace(f.points.Value()))
	if err != nil || points < 0 {
		points = 0
	}

	msg := TaskSubmittedMsg{
		TaskID:      f.taskID,
		Title:       title,
		Description: strings.TrimSpace(f.description.Value()),
		Priority:    f.priority,
		Points:      points,
	}

	return tea.Batch(
		func() tea.Msg { return msg },
		func() tea.Msg { return CloseOverlayMsg{} },
	)
}

// Title returns the overlay title
func (f *TaskFormOverlay) Title() string {
	if f.taskID == "" {
		return "Create New Task"
	}
	return "Edit Task"
}

// Size returns the overlay dimensions
func (f *TaskFormOverlay) Size() (width, height int) {
	return 70, 24
}
