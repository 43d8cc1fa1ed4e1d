package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sprintdeck/sprintdeck/internal/domain"
)

// Message types for async operations

type tasksLoadedMsg struct {
	tasks []domain.Task
}

type tasksErrorMsg struct {
	err error
}

type tickMsg time.Time

// moveResultMsg settles an optimistic status move. seq ties the result
// to the move that issued it.
type moveResultMsg struct {
	taskID string
	seq    uint64
	from   domain.Status
	to     domain.Status
	err    error
}

type taskSavedMsg struct {
	task    domain.Task
	created bool
	err     error
}

type taskDeletedMsg struct {
	taskID string
	err    error
}

// sessionResultMsg carries the outcome of a sign-in, sign-up, or
// stored session restore
type sessionResultMsg struct {
	profile domain.Profile
	restore bool
	err     error
}

type projectsLoadedMsg struct {
	projects []domain.Project
	err      error
}

type sprintsLoadedMsg struct {
	sprints []domain.Sprint
	err     error
}

// projectChangedMsg carries a newly created or joined project
type projectChangedMsg struct {
	project domain.Project
	created bool
	err     error
}

type sprintSavedMsg struct {
	sprint domain.Sprint
	err    error
}

// Commands

// opCtx returns a context bounded by the configured request timeout
func (m Model) opCtx() (context.Context, context.CancelFunc) {
	timeout := 5 * time.Second
	if m.config != nil && m.config.Server.TimeoutMs > 0 {
		timeout = time.Duration(m.config.Server.TimeoutMs) * time.Millisecond
	}
	return context.WithTimeout(context.Background(), timeout)
}

// loadTasksCmd fetches the current sprint's tasks, or the backlog
func (m Model) loadTasksCmd() tea.Cmd {
	sprintID := m.currentSprint.ID
	projectID := m.currentProject.ID
	backlog := m.backlogView

	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()

		var tasks []domain.Task
		var err error
		if backlog {
			tasks, err = m.svcs.Tasks.ListBacklog(ctx, projectID)
		} else {
			tasks, err = m.svcs.Tasks.ListBySprint(ctx, sprintID)
		}
		if err != nil {
			return tasksErrorMsg{err: err}
		}
		return tasksLoadedMsg{tasks: tasks}
	}
}

// scheduleRefresh arms the periodic board refresh
func (m Model) scheduleRefresh() tea.Cmd {
	interval := 30 * time.Second
	if m.config != nil && m.config.Refresh.IntervalSec > 0 {
		interval = time.Duration(m.config.Refresh.IntervalSec) * time.Second
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// moveTaskCmd persists an already applied status move
func (m Model) moveTaskCmd(task domain.Task, from, to domain.Status, seq uint64) tea.Cmd {
	actingUserID := ""
	if m.profile != nil {
		actingUserID = m.profile.ID
	}

	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()

		err := m.svcs.Tasks.Update(ctx, task, actingUserID)
		return moveResultMsg{taskID: task.ID, seq: seq, from: from, to: to, err: err}
	}
}

// createTaskCmd persists a new task
func (m Model) createTaskCmd(task domain.Task) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()

		created, err := m.svcs.Tasks.Create(ctx, task)
		return taskSavedMsg{task: created, created: true, err: err}
	}
}

// updateTaskCmd persists edits to an existing task
func (m Model) updateTaskCmd(task domain.Task) tea.Cmd {
	actingUserID := ""
	if m.profile != nil {
		actingUserID = m.profile.ID
	}

	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()

		err := m.svcs.Tasks.Update(ctx, task, actingUserID)
		return taskSavedMsg{task: task, created: false, err: err}
	}
}

// deleteTaskCmd deletes a task. The board only drops the card once the
// backend confirms.
func (m Model) deleteTaskCmd(taskID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()

		err := m.svcs.Tasks.Delete(ctx, taskID)
		return taskDeletedMsg{taskID: taskID, err: err}
	}
}

// currentUserCmd restores the stored session, if any
func (m Model) currentUserCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()

		profile, err := m.svcs.Auth.CurrentUser(ctx)
		return sessionResultMsg{profile: profile, restore: true, err: err}
	}
}

// authCmd signs the user in (or up) with the given credentials
func (m Model) authCmd(email, password string, signUp bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()

		var session domain.Session
		var err error
		if signUp {
			session, err = m.svcs.Auth.SignUp(ctx, email, password, email)
		} else {
			session, err = m.svcs.Auth.SignIn(ctx, email, password)
		}
		if err != nil {
			return sessionResultMsg{err: err}
		}
		return sessionResultMsg{profile: session.Profile}
	}
}

// loadProjectsCmd fetches the user's projects
func (m Model) loadProjectsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()

		projects, err := m.svcs.Projects.List(ctx)
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

// createProjectCmd creates a project owned by the current user
func (m Model) createProjectCmd(name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()

		project, err := m.svcs.Projects.Create(ctx, name)
		return projectChangedMsg{project: project, created: true, err: err}
	}
}

// joinProjectCmd joins a project by its share code
func (m Model) joinProjectCmd(joinCode string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()

		project, err := m.svcs.Projects.Join(ctx, joinCode)
		return projectChangedMsg{project: project, err: err}
	}
}

// createSprintCmd creates a sprint in the current project
func (m Model) createSprintCmd(name string) tea.Cmd {
	projectID := m.currentProject.ID
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()

		sprint, err := m.svcs.Sprints.Create(ctx, domain.Sprint{
			Name:      name,
			ProjectID: projectID,
		})
		return sprintSavedMsg{sprint: sprint, err: err}
	}
}

// loadSprintsCmd fetches the sprints of the given project
func (m Model) loadSprintsCmd(projectID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()

		sprints, err := m.svcs.Sprints.ListByProject(ctx, projectID)
		return sprintsLoadedMsg{sprints: sprints, err: err}
	}
}
