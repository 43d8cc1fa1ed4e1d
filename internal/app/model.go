// Package app contains the main application model and TEA implementation.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sprintdeck/sprintdeck/internal/config"
	"github.com/sprintdeck/sprintdeck/internal/domain"
	"github.com/sprintdeck/sprintdeck/internal/types"
	"github.com/sprintdeck/sprintdeck/internal/ui/board"
	"github.com/sprintdeck/sprintdeck/internal/ui/overlay"
	"github.com/sprintdeck/sprintdeck/internal/ui/statusbar"
	"github.com/sprintdeck/sprintdeck/internal/ui/styles"
	"github.com/sprintdeck/sprintdeck/internal/ui/toast"
)

// Re-export Mode type and constants for convenience
type Mode = types.Mode

const (
	ModeNormal = types.ModeNormal
	ModeDrag   = types.ModeDrag
	ModeSearch = types.ModeSearch
	ModeGoto   = types.ModeGoto
)

// Re-export Toast type and constants for convenience
type Toast = types.Toast
type ToastLevel = types.ToastLevel

const (
	ToastInfo    = types.ToastInfo
	ToastSuccess = types.ToastSuccess
	ToastWarning = types.ToastWarning
	ToastError   = types.ToastError
)

// TaskAPI is the slice of the backend task service the board needs
type TaskAPI interface {
	ListBySprint(ctx context.Context, sprintID string) ([]domain.Task, error)
	ListBacklog(ctx context.Context, projectID string) ([]domain.Task, error)
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	Update(ctx context.Context, task domain.Task, actingUserID string) error
	Delete(ctx context.Context, taskID string) error
}

// AuthAPI is the slice of the backend auth service the app needs
type AuthAPI interface {
	SignUp(ctx context.Context, email, password, displayName string) (domain.Session, error)
	SignIn(ctx context.Context, email, password string) (domain.Session, error)
	CurrentUser(ctx context.Context) (domain.Profile, error)
	SignOut()
}

// ProjectAPI is the slice of the backend project service the app needs
type ProjectAPI interface {
	List(ctx context.Context) ([]domain.Project, error)
	Create(ctx context.Context, name string) (domain.Project, error)
	Join(ctx context.Context, joinCode string) (domain.Project, error)
}

// SprintAPI is the slice of the backend sprint service the app needs
type SprintAPI interface {
	ListByProject(ctx context.Context, projectID string) ([]domain.Sprint, error)
	Create(ctx context.Context, sprint domain.Sprint) (domain.Sprint, error)
}

// Services bundles the backend clients the model depends on
type Services struct {
	Tasks    TaskAPI
	Auth     AuthAPI
	Projects ProjectAPI
	Sprints  SprintAPI
	Logger   *slog.Logger
}

// dragState tracks an in-flight drag session. A session exists from
// grab (or mouse activation) until drop or cancel.
type dragState struct {
	active     bool
	taskID     string
	fromStatus domain.Status
	hover      domain.LaneID

	// Mouse sensor state. A press is promoted to a drag only after the
	// pointer travels the configured cell threshold.
	pressed bool
	pressX  int
	pressY  int
}

// Model is the main application state
type Model struct {
	// Core data
	tasks []domain.Task

	// Navigation
	cursor board.Cursor
	mode   Mode

	// Filter and sort
	filter      *domain.Filter
	sortKey     domain.SortKey
	searchInput textinput.Model

	// Drag session
	drag dragState

	// moveSeq guards stale move completions: only the result carrying
	// the task's latest sequence number is allowed to settle.
	moveSeq map[string]uint64

	// Pending overlay targets
	pendingDelete string
	pendingMove   string

	// UI state
	overlayStack *overlay.Stack
	toasts       []Toast
	width        int
	height       int
	styles       *styles.Styles

	// Session and scope
	profile        *domain.Profile
	projects       []domain.Project
	currentProject domain.Project
	sprints        []domain.Sprint
	currentSprint  domain.Sprint
	backlogView    bool

	// Loading state
	loading     bool
	spinner     spinner.Model
	lastRefresh time.Time

	// Configuration and services
	config *config.Config
	svcs   Services
	logger *slog.Logger
}

// New creates a new application model with the given config and services
func New(cfg *config.Config, svcs Services) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	logger := svcs.Logger
	if logger == nil {
		logger = slog.Default()
	}

	search := textinput.New()
	search.Placeholder = "search..."
	search.CharLimit = 120
	search.Width = 40

	sortKey := domain.SortNone
	switch cfg.Board.DefaultSort {
	case "priority":
		sortKey = domain.SortPriority
	case "points":
		sortKey = domain.SortPoints
	case "created":
		sortKey = domain.SortCreated
	}

	return Model{
		tasks:        []domain.Task{},
		mode:         ModeNormal,
		filter:       domain.NewFilter(),
		sortKey:      sortKey,
		searchInput:  search,
		moveSeq:      make(map[string]uint64),
		overlayStack: overlay.NewStack(),
		toasts:       []Toast{},
		styles:       styles.New(),
		loading:      true,
		spinner:      s,
		config:       cfg,
		svcs:         svcs,
		logger:       logger,
	}
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.currentUserCmd(),
	)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.overlayStack.IsEmpty() {
			cmd := m.overlayStack.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if !m.overlayStack.IsEmpty() {
			return m, nil
		}
		return m.handleMouse(msg)

	case overlay.CloseOverlayMsg:
		m.overlayStack.Pop()
		return m, nil

	case overlay.SelectionMsg:
		return m.handleSelection(msg)

	case overlay.TaskSubmittedMsg:
		return m.handleTaskSubmitted(msg)

	case overlay.LoginSubmittedMsg:
		return m, m.authCmd(msg.Email, msg.Password, msg.SignUp)

	case overlay.SprintSelectedMsg:
		return m.handleSprintSelected(msg)

	case overlay.PromptSubmittedMsg:
		return m.handlePromptSubmitted(msg)

	case sessionResultMsg:
		return m.handleSessionResult(msg)

	case projectsLoadedMsg:
		return m.handleProjectsLoaded(msg)

	case sprintsLoadedMsg:
		return m.handleSprintsLoaded(msg)

	case projectChangedMsg:
		return m.handleProjectChanged(msg)

	case sprintSavedMsg:
		return m.handleSprintSaved(msg)

	case tasksLoadedMsg:
		m.tasks = msg.tasks
		m.loading = false
		m.lastRefresh = time.Now()
		m.clampCursor()
		return m, m.scheduleRefresh()

	case tasksErrorMsg:
		m.loading = false
		m.addToast(ToastError, fmt.Sprintf("Failed to load tasks: %v", msg.err), 5*time.Second)
		return m, m.scheduleRefresh()

	case moveResultMsg:
		return m.handleMoveResult(msg)

	case taskSavedMsg:
		if msg.err != nil {
			m.addToast(ToastError, fmt.Sprintf("Failed to save task: %v", msg.err), 5*time.Second)
			return m, nil
		}
		if msg.created {
			m.addToast(ToastSuccess, fmt.Sprintf("Task created: %s", msg.task.Title), 3*time.Second)
		} else {
			m.addToast(ToastSuccess, "Task updated", 2*time.Second)
		}
		return m, m.loadTasksCmd()

	case taskDeletedMsg:
		return m.handleTaskDeleted(msg)

	case tickMsg:
		m.expireToasts()
		return m, tea.Batch(m.loadTasksCmd(), m.scheduleRefresh())
	}

	return m, nil
}

// View renders the current state as a string
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.loading {
		return m.renderLoading()
	}

	boardHeight := m.height - 2 // status bar
	view := board.Render(m.buildColumns(), m.cursor, m.drag.taskID, m.drag.hover, m.styles, m.width, boardHeight)

	user := ""
	if m.profile != nil {
		user = m.profile.Email
	}
	sb := statusbar.New(m.mode, user, m.width, m.styles)
	statusBarView := sb.Render()

	if m.mode == ModeSearch {
		statusBarView = lipgloss.JoinVertical(lipgloss.Left, "/"+m.searchInput.View(), statusBarView)
	}

	view = lipgloss.JoinVertical(lipgloss.Left, view, statusBarView)

	if !m.overlayStack.IsEmpty() {
		current := m.overlayStack.Current()
		overlayView := current.View()

		overlayWidth, overlayHeight := current.Size()
		if title := current.Title(); title != "" {
			titleView := m.styles.OverlayTitle.Render(title)
			overlayView = lipgloss.JoinVertical(lipgloss.Left, titleView, overlayView)
		}
		overlayView = m.styles.Overlay.
			Width(overlayWidth).
			Height(overlayHeight).
			Render(overlayView)

		centeredOverlay := lipgloss.Place(
			m.width,
			m.height,
			lipgloss.Center,
			lipgloss.Center,
			overlayView,
		)
		view = lipgloss.JoinVertical(lipgloss.Left, view, centeredOverlay)
	}

	if len(m.toasts) > 0 {
		toastRenderer := toast.New(m.styles)
		if toastView := toastRenderer.Render(m.toasts, m.width); toastView != "" {
			view = lipgloss.JoinVertical(lipgloss.Left, view, toastView)
		}
	}

	return view
}

// renderLoading renders the centered loading spinner
func (m Model) renderLoading() string {
	msg := fmt.Sprintf("%s Loading board...", m.spinner.View())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}

// visibleTasks returns the tasks after filter and sort are applied
func (m Model) visibleTasks() []domain.Task {
	filtered := m.filter.Apply(m.tasks)
	return domain.SortTasks(filtered, m.sortKey)
}

// buildColumns classifies the visible tasks into the four fixed lanes
func (m Model) buildColumns() []board.Column {
	return board.BuildColumns(m.visibleTasks())
}

// currentTask returns the task under the cursor, or nil
func (m Model) currentTask() *domain.Task {
	columns := m.buildColumns()
	if m.cursor.Column < 0 || m.cursor.Column >= len(columns) {
		return nil
	}
	col := columns[m.cursor.Column]
	if m.cursor.Task < 0 || m.cursor.Task >= len(col.Tasks) {
		return nil
	}
	task := col.Tasks[m.cursor.Task]
	return &task
}

// findTask returns the index of the task with the given ID in the
// backing store, or -1
func (m Model) findTask(taskID string) int {
	for i := range m.tasks {
		if m.tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

// clampCursor keeps the cursor inside the current column bounds
func (m *Model) clampCursor() {
	columns := m.buildColumns()
	if len(columns) == 0 {
		m.cursor = board.Cursor{}
		return
	}
	if m.cursor.Column < 0 {
		m.cursor.Column = 0
	}
	if m.cursor.Column >= len(columns) {
		m.cursor.Column = len(columns) - 1
	}
	tasks := columns[m.cursor.Column].Tasks
	if m.cursor.Task >= len(tasks) {
		m.cursor.Task = len(tasks) - 1
	}
	if m.cursor.Task < 0 {
		m.cursor.Task = 0
	}
}

// addToast appends a toast with the given lifetime
func (m *Model) addToast(level ToastLevel, message string, lifetime time.Duration) {
	m.toasts = append(m.toasts, Toast{
		Level:   level,
		Message: message,
		Expires: time.Now().Add(lifetime),
	})
}

// expireToasts drops toasts past their expiry
func (m *Model) expireToasts() {
	now := time.Now()
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if t.Expires.After(now) {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

// canMutate reports whether the signed-in user may change board data
func (m Model) canMutate() bool {
	return m.profile != nil
}

// handleSelection settles confirm dialog results
func (m Model) handleSelection(msg overlay.SelectionMsg) (tea.Model, tea.Cmd) {
	m.overlayStack.Pop()

	result, ok := msg.Value.(overlay.ConfirmResult)
	if !ok {
		return m, nil
	}

	if m.pendingDelete != "" {
		taskID := m.pendingDelete
		m.pendingDelete = ""
		if result.Confirmed {
			return m, m.deleteTaskCmd(taskID)
		}
	}
	return m, nil
}

// handleTaskSubmitted persists a created or edited task
func (m Model) handleTaskSubmitted(msg overlay.TaskSubmittedMsg) (tea.Model, tea.Cmd) {
	if msg.TaskID == "" {
		task := domain.Task{
			Title:       msg.Title,
			Description: msg.Description,
			Status:      domain.StatusTodo,
			Priority:    msg.Priority,
			Points:      msg.Points,
			ProjectID:   m.currentProject.ID,
		}
		if !m.backlogView {
			task.SprintID = m.currentSprint.ID
		}
		return m, m.createTaskCmd(task)
	}

	idx := m.findTask(msg.TaskID)
	if idx < 0 {
		m.addToast(ToastWarning, "Task no longer exists", 3*time.Second)
		return m, nil
	}

	task := m.tasks[idx]
	task.Title = msg.Title
	task.Description = msg.Description
	task.Priority = msg.Priority
	task.Points = msg.Points
	return m, m.updateTaskCmd(task)
}

// handleSprintSelected routes a sprint picker result to either a board
// switch or a task move, depending on what opened the picker
func (m Model) handleSprintSelected(msg overlay.SprintSelectedMsg) (tea.Model, tea.Cmd) {
	if m.pendingMove != "" {
		taskID := m.pendingMove
		m.pendingMove = ""

		idx := m.findTask(taskID)
		if idx < 0 {
			return m, nil
		}
		task := m.tasks[idx]
		task.SprintID = msg.SprintID
		m.addToast(ToastInfo, fmt.Sprintf("Moving task to %s", msg.Name), 2*time.Second)
		return m, m.updateTaskCmd(task)
	}

	if msg.SprintID == "" {
		m.backlogView = true
	} else {
		m.backlogView = false
		for _, sp := range m.sprints {
			if sp.ID == msg.SprintID {
				m.currentSprint = sp
				break
			}
		}
	}
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.loadTasksCmd())
}

// handlePromptSubmitted routes prompt overlay results by their key
func (m Model) handlePromptSubmitted(msg overlay.PromptSubmittedMsg) (tea.Model, tea.Cmd) {
	switch msg.Key {
	case "create-project":
		return m, m.createProjectCmd(msg.Value)
	case "join-project":
		return m, m.joinProjectCmd(msg.Value)
	case "create-sprint":
		return m, m.createSprintCmd(msg.Value)
	}
	return m, nil
}

// handleProjectChanged switches to a created or joined project
func (m Model) handleProjectChanged(msg projectChangedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.addToast(ToastError, fmt.Sprintf("Project change failed: %v", msg.err), 5*time.Second)
		return m, nil
	}

	m.projects = append(m.projects, msg.project)
	m.currentProject = msg.project
	if msg.created {
		m.addToast(ToastSuccess, fmt.Sprintf("Project created. Share code: %s", msg.project.JoinCode), 6*time.Second)
	} else {
		m.addToast(ToastSuccess, fmt.Sprintf("Joined %s", msg.project.Name), 3*time.Second)
	}
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.loadSprintsCmd(m.currentProject.ID))
}

// handleSprintSaved switches the board onto the new sprint
func (m Model) handleSprintSaved(msg sprintSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.addToast(ToastError, fmt.Sprintf("Failed to create sprint: %v", msg.err), 5*time.Second)
		return m, nil
	}

	m.sprints = append(m.sprints, msg.sprint)
	m.currentSprint = msg.sprint
	m.backlogView = false
	m.addToast(ToastSuccess, fmt.Sprintf("Sprint created: %s", msg.sprint.Name), 3*time.Second)
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.loadTasksCmd())
}

// handleSessionResult settles sign-in, sign-up, and session restore
func (m Model) handleSessionResult(msg sessionResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if msg.restore {
			// No valid stored session. The board opens read-only and
			// the user can sign in explicitly.
			m.logger.Debug("no stored session", "error", msg.err)
			m.loading = false
			if m.overlayStack.IsEmpty() {
				login := overlay.NewLoginOverlay()
				return m, m.overlayStack.Push(login)
			}
			return m, nil
		}
		if login, ok := m.overlayStack.Current().(*overlay.LoginOverlay); ok {
			login.SetError(msg.err.Error())
			return m, nil
		}
		m.addToast(ToastError, fmt.Sprintf("Sign-in failed: %v", msg.err), 5*time.Second)
		return m, nil
	}

	m.profile = &msg.profile
	if !msg.restore {
		m.overlayStack.Pop()
		m.addToast(ToastSuccess, fmt.Sprintf("Signed in as %s", msg.profile.Email), 3*time.Second)
	}
	return m, m.loadProjectsCmd()
}

// handleProjectsLoaded picks a project and loads its sprints
func (m Model) handleProjectsLoaded(msg projectsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.loading = false
		m.addToast(ToastError, fmt.Sprintf("Failed to load projects: %v", msg.err), 5*time.Second)
		return m, nil
	}

	m.projects = msg.projects
	if len(m.projects) == 0 {
		m.loading = false
		m.addToast(ToastInfo, "No projects yet. Press P to create one.", 5*time.Second)
		return m, nil
	}

	m.currentProject = m.projects[0]
	return m, m.loadSprintsCmd(m.currentProject.ID)
}

// handleSprintsLoaded picks the most recent sprint and loads its tasks
func (m Model) handleSprintsLoaded(msg sprintsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.loading = false
		m.addToast(ToastError, fmt.Sprintf("Failed to load sprints: %v", msg.err), 5*time.Second)
		return m, nil
	}

	m.sprints = msg.sprints
	if len(m.sprints) == 0 {
		m.backlogView = true
	} else {
		m.currentSprint = m.sprints[len(m.sprints)-1]
		m.backlogView = false
	}
	return m, m.loadTasksCmd()
}

// handleMoveResult settles an optimistic status move. Results carrying
// a stale sequence number are dropped: a later move already owns the
// task's fate.
func (m Model) handleMoveResult(msg moveResultMsg) (tea.Model, tea.Cmd) {
	if m.moveSeq[msg.taskID] != msg.seq {
		m.logger.Debug("dropping stale move result", "taskID", msg.taskID, "seq", msg.seq)
		return m, nil
	}

	if msg.err != nil {
		if idx := m.findTask(msg.taskID); idx >= 0 {
			m.tasks[idx].Status = msg.from
		}
		m.clampCursor()
		m.addToast(ToastError, fmt.Sprintf("Move failed: %v", msg.err), 5*time.Second)
		return m, nil
	}

	m.addToast(ToastSuccess, fmt.Sprintf("Moved to %s", msg.to.Display()), 2*time.Second)
	return m, nil
}

// handleTaskDeleted removes the task only once the backend confirmed
func (m Model) handleTaskDeleted(msg taskDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.addToast(ToastError, fmt.Sprintf("Delete failed: %v", msg.err), 5*time.Second)
		return m, nil
	}

	if idx := m.findTask(msg.taskID); idx >= 0 {
		m.tasks = append(m.tasks[:idx], m.tasks[idx+1:]...)
	}
	m.clampCursor()
	m.addToast(ToastSuccess, "Task deleted", 2*time.Second)
	return m, nil
}
