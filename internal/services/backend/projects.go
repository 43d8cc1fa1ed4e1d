package backend

import (
	"context"
	"net/http"

	"github.com/sprintdeck/sprintdeck/internal/domain"
)

// ProjectService exposes project membership operations
type ProjectService struct {
	c *Client
}

// NewProjectService creates a ProjectService over the shared transport
func NewProjectService(c *Client) *ProjectService {
	return &ProjectService{c: c}
}

// List returns the projects the signed-in user belongs to
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	if err := s.c.do(ctx, http.MethodGet, "/projects", nil, &projects, "projects"); err != nil {
		return nil, err
	}
	return projects, nil
}

// Create makes a new project owned by the signed-in user. The server
// mints the join code.
func (s *ProjectService) Create(ctx context.Context, name string) (domain.Project, error) {
	s.c.logger.Debug("creating project", "name", name)

	body := map[string]string{"name": name}
	var project domain.Project
	if err := s.c.do(ctx, http.MethodPost, "/projects", body, &project, "create-project"); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

// Join adds the signed-in user to the project behind a join code
func (s *ProjectService) Join(ctx context.Context, joinCode string) (domain.Project, error) {
	s.c.logger.Debug("joining project")

	body := map[string]string{"join_code": joinCode}
	var project domain.Project
	if err := s.c.do(ctx, http.MethodPost, "/projects/join", body, &project, "join"); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

// SprintService exposes sprint planning operations
type SprintService struct {
	c *Client
}

// NewSprintService creates a SprintService over the shared transport
func NewSprintService(c *Client) *SprintService {
	return &SprintService{c: c}
}

// ListByProject returns the project's sprints, oldest first
func (s *SprintService) ListByProject(ctx context.Context, projectID string) ([]domain.Sprint, error) {
	var sprints []domain.Sprint
	err := s.c.do(ctx, http.MethodGet, "/projects/"+projectID+"/sprints", nil, &sprints, "sprints")
	if err != nil {
		return nil, err
	}
	return sprints, nil
}

// Create makes a new sprint in the project
func (s *SprintService) Create(ctx context.Context, sprint domain.Sprint) (domain.Sprint, error) {
	s.c.logger.Debug("creating sprint", "name", sprint.Name)

	var created domain.Sprint
	if err := s.c.do(ctx, http.MethodPost, "/projects/"+sprint.ProjectID+"/sprints", sprint, &created, "create-sprint"); err != nil {
		return domain.Sprint{}, err
	}
	return created, nil
}
