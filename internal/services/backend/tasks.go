package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/sprintdeck/sprintdeck/internal/domain"
)

// TaskService exposes task persistence operations
type TaskService struct {
	c *Client
}

// NewTaskService creates a TaskService over the shared transport
func NewTaskService(c *Client) *TaskService {
	return &TaskService{c: c}
}

// ListBySprint fetches all tasks belonging to a sprint. A missing
// sprint (or a backing table that does not exist yet) is an empty
// board, not an error.
func (s *TaskService) ListBySprint(ctx context.Context, sprintID string) ([]domain.Task, error) {
	s.c.logger.Debug("fetching sprint tasks", "sprintID", sprintID)

	var tasks []domain.Task
	err := s.c.do(ctx, http.MethodGet, "/sprints/"+sprintID+"/tasks", nil, &tasks, "list")
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.Task{}, nil
		}
		return nil, err
	}

	s.c.logger.Debug("fetched sprint tasks", "count", len(tasks))
	return tasks, nil
}

// ListBacklog fetches the project's backlog tasks (no sprint assigned).
// NotFound is an empty backlog.
func (s *TaskService) ListBacklog(ctx context.Context, projectID string) ([]domain.Task, error) {
	s.c.logger.Debug("fetching backlog", "projectID", projectID)

	var tasks []domain.Task
	err := s.c.do(ctx, http.MethodGet, "/projects/"+projectID+"/backlog", nil, &tasks, "backlog")
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.Task{}, nil
		}
		return nil, err
	}
	return tasks, nil
}

// Create persists a new task and returns the stored record
func (s *TaskService) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	s.c.logger.Debug("creating task", "title", task.Title)

	var created domain.Task
	if err := s.c.do(ctx, http.MethodPost, "/tasks", task, &created, "create"); err != nil {
		return domain.Task{}, err
	}
	return created, nil
}

// updateRequest carries the full task record plus the acting user, so
// the backend can attribute the mutation.
type updateRequest struct {
	Task         domain.Task `json:"task"`
	ActingUserID string      `json:"acting_user_id"`
}

// Update persists the full task record. The caller passes the acting
// user's id; callers with no signed-in user must not reach this point.
func (s *TaskService) Update(ctx context.Context, task domain.Task, actingUserID string) error {
	s.c.logger.Debug("updating task", "id", task.ID, "status", task.Status)

	req := updateRequest{Task: task, ActingUserID: actingUserID}
	err := s.c.do(ctx, http.MethodPut, "/tasks/"+task.ID, req, nil, "update")
	if err != nil {
		if apiErr := asAPIError(err); apiErr != nil {
			apiErr.TaskID = task.ID
		}
		return err
	}

	s.c.logger.Debug("task updated", "id", task.ID)
	return nil
}

// Delete removes a task by id
func (s *TaskService) Delete(ctx context.Context, taskID string) error {
	s.c.logger.Debug("deleting task", "id", taskID)

	err := s.c.do(ctx, http.MethodDelete, "/tasks/"+taskID, nil, nil, "delete")
	if err != nil {
		if apiErr := asAPIError(err); apiErr != nil {
			apiErr.TaskID = taskID
		}
		return err
	}

	s.c.logger.Debug("task deleted", "id", taskID)
	return nil
}

func asAPIError(err error) *domain.APIError {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
