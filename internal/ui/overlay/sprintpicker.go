package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sprintdeck/sprintdeck/internal/domain"
)

// SprintSelectedMsg is emitted when a sprint is chosen from the picker.
// SprintID is empty when the backlog entry is selected.
type SprintSelectedMsg struct {
	SprintID string
	Name     string
}

// SprintPickerOverlay lists the project's sprints plus the backlog
type SprintPickerOverlay struct {
	title       string
	sprints     []domain.Sprint
	withBacklog bool
	cursor      int
	styles      *Styles
}

// NewSprintPickerOverlay creates a picker over the given sprints.
// When withBacklog is true a "Backlog" entry is prepended.
func NewSprintPickerOverlay(title string, sprints []domain.Sprint, withBacklog bool) *SprintPickerOverlay {
	return &SprintPickerOverlay{
		title:       title,
		sprints:     sprints,
		withBacklog: withBacklog,
		styles:      New(),
	}
}

func (p *SprintPickerOverlay) entryCount() int {
	n := len(p.sprints)
	if p.withBacklog {
		n++
	}
	return n
}

// Init initializes the overlay
func (p *SprintPickerOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (p *SprintPickerOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return p, func() tea.Msg { return CloseOverlayMsg{} }

		case "j", "down":
			if p.cursor < p.entryCount()-1 {
				p.cursor++
			}
			return p, nil

		case "k", "up":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil

		case "enter":
			return p, p.choose()
		}
	}

	return p, nil
}

// choose emits the selection for the cursor row and closes the overlay
func (p *SprintPickerOverlay) choose() tea.Cmd {
	if p.entryCount() == 0 {
		return nil
	}

	var selected SprintSelectedMsg
	idx := p.cursor
	if p.withBacklog {
		if idx == 0 {
			selected = SprintSelectedMsg{Name: "Backlog"}
		} else {
			sp := p.sprints[idx-1]
			selected = SprintSelectedMsg{SprintID: sp.ID, Name: sp.Name}
		}
	} else {
		sp := p.sprints[idx]
		selected = SprintSelectedMsg{SprintID: sp.ID, Name: sp.Name}
	}

	return tea.Batch(
		func() tea.Msg { return selected },
		func() tea.Msg { return CloseOverlayMsg{} },
	)
}

// View renders the picker
func (p *SprintPickerOverlay) View() string {
	var b strings.Builder

	if p.entryCount() == 0 {
		b.WriteString(p.styles.MenuItemDisabled.Render("No sprints yet"))
		b.WriteString("\n\n")
		b.WriteString(p.styles.Footer.Render("Esc: Close"))
		return b.String()
	}

	row := 0
	writeEntry := func(name string) {
		style := p.styles.MenuItem
		prefix := "  "
		if row == p.cursor {
			style = p.styles.MenuItemActive
			prefix = "▶ "
		}
		b.WriteString(style.Render(prefix + name))
		b.WriteString("\n")
		row++
	}

	if p.withBacklog {
		writeEntry("Backlog")
	}
	for _, sp := range p.sprints {
		writeEntry(sp.Name)
	}

	b.WriteString("\n")
	b.WriteString(p.styles.Footer.Render("j/k: Move • Enter: Select • Esc: Cancel"))

	return b.String()
}

// Title returns the picker title
func (p *SprintPickerOverlay) Title() string {
	return p.title
}

// Size returns the overlay dimensions
func (p *SprintPickerOverlay) Size() (width, height int) {
	return 44, p.entryCount() + 6
}
