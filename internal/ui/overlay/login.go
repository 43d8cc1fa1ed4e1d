package overlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginSubmittedMsg is emitted when credentials are submitted
type LoginSubmittedMsg struct {
	Email    string
	Password string
	SignUp   bool
}

// LoginOverlay provides an email/password form for signing in or up
type LoginOverlay struct {
	email      textinput.Model
	password   textinput.Model
	signUp     bool
	focusIndex int
	errMsg     string
	styles     *Styles
}

const (
	focusEmail = iota
	focusPassword
	focusLoginSubmit
	loginFieldCount
)

// NewLoginOverlay creates a new sign-in overlay
func NewLoginOverlay() *LoginOverlay {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Focus()
	email.CharLimit = 120
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 120
	password.Width = 40

	return &LoginOverlay{
		email:      email,
		password:   password,
		focusIndex: focusEmail,
		styles:     New(),
	}
}

// SetError displays an error message below the form
func (l *LoginOverlay) SetError(msg string) {
	l.errMsg = msg
}

// Init initializes the overlay
func (l *LoginOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (l *LoginOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return l, func() tea.Msg { return CloseOverlayMsg{} }

		case "ctrl+n":
			l.signUp = !l.signUp
			return l, nil

		case "tab", "shift+tab":
			if msg.String() == "tab" {
				l.focusIndex = (l.focusIndex + 1) % loginFieldCount
			} else {
				l.focusIndex = (l.focusIndex - 1 + loginFieldCount) % loginFieldCount
			}
			l.email.Blur()
			l.password.Blur()
			switch l.focusIndex {
			case focusEmail:
				l.email.Focus()
			case focusPassword:
				l.password.Focus()
			}
			return l, nil

		case "enter":
			return l, l.submit()
		}
	}

	var cmd tea.Cmd
	switch l.focusIndex {
	case focusEmail:
		l.email, cmd = l.email.Update(msg)
	case focusPassword:
		l.password, cmd = l.password.Update(msg)
	}

	return l, cmd
}

// View renders the form
func (l *LoginOverlay) View() string {
	var b strings.Builder

	b.WriteString(l.label("Email:", focusEmail))
	b.WriteString("  ")
	b.WriteString(l.email.View())
	b.WriteString("\n\n")

	b.WriteString(l.label("Password:", focusPassword))
	b.WriteString("  ")
	b.WriteString(l.password.View())
	b.WriteString("\n\n")

	submitStyle := l.styles.MenuItem
	if l.focusIndex == focusLoginSubmit {
		submitStyle = l.styles.MenuItemActive
	}
	if l.signUp {
		b.WriteString(submitStyle.Render("[ Create Account ]"))
	} else {
		b.WriteString(submitStyle.Render("[ Sign In ]"))
	}
	b.WriteString("\n")

	if l.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(l.styles.MenuItemDisabled.Render(l.errMsg))
		b.WriteString("\n")
	}

	hints := []string{
		l.styles.MenuKey.Render("Enter") + " " + l.styles.Footer.Render("Submit"),
		l.styles.MenuKey.Render("Ctrl+N") + " " + l.styles.Footer.Render("Toggle sign-up"),
		l.styles.MenuKey.Render("Esc") + " " + l.styles.Footer.Render("Cancel"),
	}
	b.WriteString("\n")
	b.WriteString(l.styles.Footer.Render(strings.Join(hints, " • ")))

	return b.String()
}

func (l *LoginOverlay) label(text string, index int) string {
	if l.focusIndex == index {
		return l.styles.LabelFocused.Render(text)
	}
	return l.styles.Label.Render(text)
}

// submit emits a LoginSubmittedMsg when both fields are filled
func (l *LoginOverlay) submit() tea.Cmd {
	email := strings.TrimSpace(l.email.Value())
	password := l.password.Value()
	if email == "" || password == "" {
		l.errMsg = "email and password are required"
		return nil
	}

	msg := LoginSubmittedMsg{Email: email, Password: password, SignUp: l.signUp}
	return func() tea.Msg { return msg }
}

// Title returns the overlay title
func (l *LoginOverlay) Title() string {
	if l.signUp {
		return "Create Account"
	}
	return "Sign In"
}

// Size returns the overlay dimensions
func (l *LoginOverlay) Size() (width, height int) {
	return 64, 12
}
