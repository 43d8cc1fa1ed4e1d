package app

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sprintdeck/sprintdeck/internal/config"
	"github.com/sprintdeck/sprintdeck/internal/domain"
	"github.com/sprintdeck/sprintdeck/internal/ui/overlay"
)

type fakeTasks struct {
	listTasks []domain.Task
	listErr   error
	createErr error
	updateErr error
	deleteErr error

	created []domain.Task
	updated []domain.Task
	deleted []string
}

func (f *fakeTasks) ListBySprint(ctx context.Context, sprintID string) ([]domain.Task, error) {
	return f.listTasks, f.listErr
}

func (f *fakeTasks) ListBacklog(ctx context.Context, projectID string) ([]domain.Task, error) {
	return f.listTasks, f.listErr
}

func (f *fakeTasks) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	f.created = append(f.created, task)
	task.ID = "new-id"
	return task, f.createErr
}

func (f *fakeTasks) Update(ctx context.Context, task domain.Task, actingUserID string) error {
	f.updated = append(f.updated, task)
	return f.updateErr
}

func (f *fakeTasks) Delete(ctx context.Context, taskID string) error {
	f.deleted = append(f.deleted, taskID)
	return f.deleteErr
}

type fakeAuth struct {
	profile domain.Profile
	err     error
}

func (f *fakeAuth) SignUp(ctx context.Context, email, password, displayName string) (domain.Session, error) {
	return domain.Session{Profile: f.profile}, f.err
}

func (f *fakeAuth) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	return domain.Session{Profile: f.profile}, f.err
}

func (f *fakeAuth) CurrentUser(ctx context.Context) (domain.Profile, error) {
	return f.profile, f.err
}

func (f *fakeAuth) SignOut() {}

type fakeProjects struct {
	projects []domain.Project
	err      error
}

func (f *fakeProjects) List(ctx context.Context) ([]domain.Project, error) {
	return f.projects, f.err
}

func (f *fakeProjects) Create(ctx context.Context, name string) (domain.Project, error) {
	return domain.Project{ID: "p1", Name: name}, f.err
}

func (f *fakeProjects) Join(ctx context.Context, joinCode string) (domain.Project, error) {
	return domain.Project{ID: "p1"}, f.err
}

type fakeSprints struct {
	sprints []domain.Sprint
	err     error
}

func (f *fakeSprints) ListByProject(ctx context.Context, projectID string) ([]domain.Sprint, error) {
	return f.sprints, f.err
}

func (f *fakeSprints) Create(ctx context.Context, sprint domain.Sprint) (domain.Sprint, error) {
	return sprint, f.err
}

func boardTasks() []domain.Task {
	return []domain.Task{
		{ID: "t1", Title: "Alpha", Status: domain.StatusTodo, Priority: domain.PriorityHigh, Points: 3},
		{ID: "t2", Title: "Beta", Status: domain.StatusInProgress, Priority: domain.PriorityMedium, Points: 5},
		{ID: "t3", Title: "Gamma", Status: domain.StatusDone, Priority: domain.PriorityLow, Points: 1},
	}
}

func newTestModel(tasks *fakeTasks) Model {
	m := New(config.DefaultConfig(), Services{
		Tasks:    tasks,
		Auth:     &fakeAuth{},
		Projects: &fakeProjects{},
		Sprints:  &fakeSprints{},
	})
	m.width = 120
	m.height = 40
	m.loading = false
	m.tasks = boardTasks()
	m.profile = &domain.Profile{ID: "u1", Email: "dev@example.com"}
	m.currentSprint = domain.Sprint{ID: "s1", Name: "Sprint 1"}
	return m
}

func hasToast(m Model, level ToastLevel) bool {
	for _, t := range m.toasts {
		if t.Level == level {
			return true
		}
	}
	return false
}

func TestDrop_AppliesOptimisticallyBeforeResolve(t *testing.T) {
	svc := &fakeTasks{}
	m := newTestModel(svc)

	if !m.beginDrag("t1") {
		t.Fatal("expected drag to start")
	}
	m.drag.hover = domain.LaneInProgress
	cmd := m.dropDrag()

	if cmd == nil {
		t.Fatal("expected a persist command")
	}
	// Status changed before the command has run
	if got := m.tasks[m.findTask("t1")].Status; got != domain.StatusInProgress {
		t.Errorf("expected optimistic status in-progress, got %q", got)
	}
	if len(svc.updated) != 0 {
		t.Error("expected no backend call before the command runs")
	}
	if m.moveSeq["t1"] != 1 {
		t.Errorf("expected sequence 1, got %d", m.moveSeq["t1"])
	}
}

func TestDrop_RollbackOnRejectedPersist(t *testing.T) {
	svc := &fakeTasks{updateErr: errors.New("boom")}
	m := newTestModel(svc)

	m.beginDrag("t1")
	m.drag.hover = domain.LaneDone
	cmd := m.dropDrag()

	result := cmd()
	updated, _ := m.Update(result)
	m = updated.(Model)

	if got := m.tasks[m.findTask("t1")].Status; got != domain.StatusTodo {
		t.Errorf("expected rollback to todo, got %q", got)
	}
	if !hasToast(m, ToastError) {
		t.Error("expected an error toast after rollback")
	}
}

func TestDrop_SuccessKeepsNewStatus(t *testing.T) {
	svc := &fakeTasks{}
	m := newTestModel(svc)

	m.beginDrag("t1")
	m.drag.hover = domain.LaneInReview
	cmd := m.dropDrag()

	updated, _ := m.Update(cmd())
	m = updated.(Model)

	if got := m.tasks[m.findTask("t1")].Status; got != domain.StatusInReview {
		t.Errorf("expected in-review, got %q", got)
	}
	if hasToast(m, ToastError) {
		t.Error("expected no error toast on success")
	}
}

func TestDrop_SameLaneIsNoOp(t *testing.T) {
	svc := &fakeTasks{}
	m := newTestModel(svc)

	m.beginDrag("t1")
	// Hover stays on the source lane
	cmd := m.dropDrag()

	if cmd != nil {
		t.Error("expected no command for a same-lane drop")
	}
	if got := m.tasks[m.findTask("t1")].Status; got != domain.StatusTodo {
		t.Errorf("expected status unchanged, got %q", got)
	}
	if m.moveSeq["t1"] != 0 {
		t.Error("expected no sequence bump for a no-op drop")
	}
}

func TestDrop_UnknownLaneIsNoOp(t *testing.T) {
	svc := &fakeTasks{}
	m := newTestModel(svc)

	m.beginDrag("t1")
	m.drag.hover = "column-bogus"
	cmd := m.dropDrag()

	if cmd != nil {
		t.Error("expected no command when the hover lane resolves to no status")
	}
	if got := m.tasks[m.findTask("t1")].Status; got != domain.StatusTodo {
		t.Errorf("expected status unchanged, got %q", got)
	}
}

func TestDrop_StaleResultIsIgnored(t *testing.T) {
	svc := &fakeTasks{}
	m := newTestModel(svc)

	// First move: todo -> in-progress
	m.beginDrag("t1")
	m.drag.hover = domain.LaneInProgress
	cmd1 := m.dropDrag()

	// Second move before the first resolves: in-progress -> done
	m.beginDrag("t1")
	m.drag.hover = domain.LaneDone
	cmd2 := m.dropDrag()

	if m.moveSeq["t1"] != 2 {
		t.Fatalf("expected sequence 2 after two moves, got %d", m.moveSeq["t1"])
	}

	// The first move fails after the second was issued. Its rollback
	// must not clobber the newer move.
	first := cmd1().(moveResultMsg)
	first.err = errors.New("late failure")
	updated, _ := m.Update(first)
	m = updated.(Model)

	if got := m.tasks[m.findTask("t1")].Status; got != domain.StatusDone {
		t.Errorf("expected stale failure to be dropped, status is %q", got)
	}
	if hasToast(m, ToastError) {
		t.Error("expected no error toast for a stale result")
	}

	// The second move's own result still settles normally.
	updated, _ = m.Update(cmd2())
	m = updated.(Model)
	if got := m.tasks[m.findTask("t1")].Status; got != domain.StatusDone {
		t.Errorf("expected done after current move settles, got %q", got)
	}
}

func TestGrabKey_CapturesPreDragStatus(t *testing.T) {
	svc := &fakeTasks{}
	m := newTestModel(svc)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = updated.(Model)

	if m.mode != ModeDrag {
		t.Fatalf("expected drag mode, got %s", m.mode)
	}
	if m.drag.taskID != "t1" {
		t.Errorf("expected t1 grabbed, got %q", m.drag.taskID)
	}
	if m.drag.fromStatus != domain.StatusTodo {
		t.Errorf("expected pre-drag status todo, got %q", m.drag.fromStatus)
	}
	if m.drag.hover != domain.LaneTodo {
		t.Errorf("expected hover to start on source lane, got %q", m.drag.hover)
	}
}

func TestEscCancelsDragWithoutChanges(t *testing.T) {
	svc := &fakeTasks{}
	m := newTestModel(svc)

	m.beginDrag("t1")
	m.moveHover(1)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = updated.(Model)

	if m.mode != ModeNormal {
		t.Errorf("expected normal mode after cancel, got %s", m.mode)
	}
	if got := m.tasks[m.findTask("t1")].Status; got != domain.StatusTodo {
		t.Errorf("expected status unchanged after cancel, got %q", got)
	}
	if len(svc.updated) != 0 {
		t.Error("expected no backend calls for a cancelled drag")
	}
}

func TestDelete_RemovesOnlyOnSuccess(t *testing.T) {
	t.Run("failure keeps the task", func(t *testing.T) {
		m := newTestModel(&fakeTasks{})

		updated, _ := m.Update(taskDeletedMsg{taskID: "t1", err: errors.New("denied")})
		m = updated.(Model)

		if m.findTask("t1") < 0 {
			t.Error("expected task to survive a failed delete")
		}
		if !hasToast(m, ToastError) {
			t.Error("expected an error toast")
		}
	})

	t.Run("success removes the task", func(t *testing.T) {
		m := newTestModel(&fakeTasks{})

		updated, _ := m.Update(taskDeletedMsg{taskID: "t1"})
		m = updated.(Model)

		if m.findTask("t1") >= 0 {
			t.Error("expected task removed after confirmed delete")
		}
	})
}

func TestEmptyLoadIsSilent(t *testing.T) {
	m := newTestModel(&fakeTasks{})
	m.loading = true

	updated, _ := m.Update(tasksLoadedMsg{tasks: nil})
	m = updated.(Model)

	if m.loading {
		t.Error("expected loading to clear")
	}
	if len(m.toasts) != 0 {
		t.Error("expected no toast for an empty board")
	}
	if len(m.buildColumns()) != 4 {
		t.Error("expected all four lanes to render for an empty board")
	}
}

func TestMouseThresholdPromotesPressToDrag(t *testing.T) {
	svc := &fakeTasks{}
	m := newTestModel(svc)

	// Press on the todo lane (lane width is 30 at width 120)
	updated, _ := m.Update(tea.MouseMsg{X: 5, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = updated.(Model)

	if m.drag.active {
		t.Fatal("expected no drag immediately after press")
	}

	// One cell of travel stays below the default threshold of two
	updated, _ = m.Update(tea.MouseMsg{X: 6, Y: 3, Action: tea.MouseActionMotion})
	m = updated.(Model)
	if m.drag.active {
		t.Fatal("expected no drag below the travel threshold")
	}

	// Crossing the threshold starts the drag
	updated, _ = m.Update(tea.MouseMsg{X: 8, Y: 3, Action: tea.MouseActionMotion})
	m = updated.(Model)
	if !m.drag.active {
		t.Fatal("expected drag after crossing the travel threshold")
	}
	if m.drag.taskID != "t1" {
		t.Errorf("expected t1 grabbed, got %q", m.drag.taskID)
	}

	// Dragging over the done lane and releasing drops there
	updated, _ = m.Update(tea.MouseMsg{X: 110, Y: 3, Action: tea.MouseActionMotion})
	m = updated.(Model)
	if m.drag.hover != domain.LaneDone {
		t.Fatalf("expected hover over done lane, got %q", m.drag.hover)
	}

	updated, _ = m.Update(tea.MouseMsg{X: 110, Y: 3, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m = updated.(Model)
	if got := m.tasks[m.findTask("t1")].Status; got != domain.StatusDone {
		t.Errorf("expected optimistic move to done, got %q", got)
	}
}

func TestReadOnlyBlocksMutations(t *testing.T) {
	m := newTestModel(&fakeTasks{})
	m.profile = nil

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = updated.(Model)

	if m.mode == ModeDrag {
		t.Error("expected grab to be blocked without a signed-in user")
	}
	if !hasToast(m, ToastWarning) {
		t.Error("expected a warning toast")
	}
}

func TestSearchFiltersBoard(t *testing.T) {
	m := newTestModel(&fakeTasks{})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = updated.(Model)
	if m.mode != ModeSearch {
		t.Fatalf("expected search mode, got %s", m.mode)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("beta")})
	m = updated.(Model)

	visible := m.visibleTasks()
	if len(visible) != 1 || visible[0].ID != "t2" {
		t.Errorf("expected only t2 visible, got %d tasks", len(visible))
	}

	// Esc clears the query
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = updated.(Model)
	if len(m.visibleTasks()) != 3 {
		t.Error("expected all tasks visible after cancelling search")
	}
}

func TestProjectAndSprintCreation(t *testing.T) {
	m := newTestModel(&fakeTasks{})

	_, cmd := m.Update(overlay.PromptSubmittedMsg{Key: "create-project", Value: "Apollo"})
	if cmd == nil {
		t.Fatal("expected a create-project command")
	}

	updated, _ := m.Update(cmd())
	m = updated.(Model)
	if m.currentProject.Name != "Apollo" {
		t.Errorf("expected board to switch to the new project, got %q", m.currentProject.Name)
	}
	if !hasToast(m, ToastSuccess) {
		t.Error("expected a success toast")
	}

	_, cmd = m.Update(overlay.PromptSubmittedMsg{Key: "create-sprint", Value: "Sprint 2"})
	if cmd == nil {
		t.Fatal("expected a create-sprint command")
	}

	updated, _ = m.Update(cmd())
	m = updated.(Model)
	if m.currentSprint.Name != "Sprint 2" {
		t.Errorf("expected board to switch to the new sprint, got %q", m.currentSprint.Name)
	}
	if m.backlogView {
		t.Error("expected the sprint board, not the backlog")
	}
}

func TestToastExpiry(t *testing.T) {
	m := newTestModel(&fakeTasks{})
	m.toasts = []Toast{
		{Level: ToastInfo, Message: "old", Expires: time.Now().Add(-time.Second)},
		{Level: ToastInfo, Message: "fresh", Expires: time.Now().Add(time.Minute)},
	}

	m.expireToasts()

	if len(m.toasts) != 1 || m.toasts[0].Message != "fresh" {
		t.Errorf("expected only the fresh toast to survive, got %d", len(m.toasts))
	}
}
