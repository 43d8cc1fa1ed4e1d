package overlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PromptSubmittedMsg is emitted when a prompt overlay is confirmed.
// Key identifies which prompt produced the value.
type PromptSubmittedMsg struct {
	Key   string
	Value string
}

// PromptOverlay asks for a single line of input
type PromptOverlay struct {
	key    string
	title  string
	input  textinput.Model
	styles *Styles
}

// NewPromptOverlay creates a prompt with the given result key, title
// and placeholder
func NewPromptOverlay(key, title, placeholder string) *PromptOverlay {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 120
	ti.Width = 40

	return &PromptOverlay{
		key:    key,
		title:  title,
		input:  ti,
		styles: New(),
	}
}

// Init initializes the overlay
func (p *PromptOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (p *PromptOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return p, func() tea.Msg { return CloseOverlayMsg{} }

		case "enter":
			value := strings.TrimSpace(p.input.Value())
			if value == "" {
				return p, nil
			}
			result := PromptSubmittedMsg{Key: p.key, Value: value}
			return p, tea.Batch(
				func() tea.Msg { return result },
				func() tea.Msg { return CloseOverlayMsg{} },
			)
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// View renders the prompt
func (p *PromptOverlay) View() string {
	var b strings.Builder
	b.WriteString(p.input.View())
	b.WriteString("\n\n")
	b.WriteString(p.styles.Footer.Render("Enter: Confirm • Esc: Cancel"))
	return b.String()
}

// Title returns the prompt title
func (p *PromptOverlay) Title() string {
	return p.title
}

// Size returns the overlay dimensions
func (p *PromptOverlay) Size() (width, height int) {
	return 50, 7
}
