// Package server implements the sprintdeckd development backend: a
// gin HTTP API over an embedded sqlite database.
package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sprintdeck/sprintdeck/internal/domain"
	_ "modernc.org/sqlite"
)

// Store wraps the sqlite database behind typed accessors
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	display_name TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	owner_id TEXT NOT NULL,
	join_code TEXT NOT NULL UNIQUE,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS memberships (
	project_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	PRIMARY KEY (project_id, user_id)
);

CREATE TABLE IF NOT EXISTS sprints (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	name TEXT NOT NULL,
	starts_at DATETIME NOT NULL,
	ends_at DATETIME NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT,
	status TEXT NOT NULL,
	priority TEXT NOT NULL,
	points INTEGER NOT NULL DEFAULT 0,
	assignees TEXT,
	sprint_id TEXT,
	project_id TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_sprint ON tasks(sprint_id);
CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);
CREATE INDEX IF NOT EXISTS idx_sprints_project ON sprints(project_id);
`

// OpenStore opens (or creates) the database at path and bootstraps
// the schema
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// Users

// CreateUser inserts a new account. A duplicate email reports
// domain.ErrConflict.
func (s *Store) CreateUser(email, displayName, passwordHash string) (domain.Profile, error) {
	profile := domain.Profile{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO users (id, email, display_name, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		profile.ID, profile.Email, profile.DisplayName, passwordHash, profile.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return domain.Profile{}, domain.ErrConflict
		}
		return domain.Profile{}, err
	}
	return profile, nil
}

// UserByEmail returns the profile and password hash behind an email
func (s *Store) UserByEmail(email string) (domain.Profile, string, error) {
	var p domain.Profile
	var hash string
	err := s.db.QueryRow(
		`SELECT id, email, display_name, password_hash, created_at FROM users WHERE email = ?`,
		email,
	).Scan(&p.ID, &p.Email, &p.DisplayName, &hash, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Profile{}, "", domain.ErrNotFound
	}
	if err != nil {
		return domain.Profile{}, "", err
	}
	return p, hash, nil
}

// UserByID returns the profile for a user id
func (s *Store) UserByID(id string) (domain.Profile, error) {
	var p domain.Profile
	err := s.db.QueryRow(
		`SELECT id, email, display_name, created_at FROM users WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Email, &p.DisplayName, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Profile{}, domain.ErrNotFound
	}
	return p, err
}

// Projects

// CreateProject inserts a project owned by ownerID and enrolls the
// owner as a member. The join code is minted here.
func (s *Store) CreateProject(name, ownerID string) (domain.Project, error) {
	project := domain.Project{
		ID:        uuid.NewString(),
		Name:      name,
		OwnerID:   ownerID,
		JoinCode:  strings.ToUpper(uuid.NewString()[:8]),
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO projects (id, name, owner_id, join_code, created_at) VALUES (?, ?, ?, ?, ?)`,
		project.ID, project.Name, project.OwnerID, project.JoinCode, project.CreatedAt,
	)
	if err != nil {
		return domain.Project{}, err
	}

	if err := s.AddMember(project.ID, ownerID); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

// ProjectsForUser lists the projects the user is a member of
func (s *Store) ProjectsForUser(userID string) ([]domain.Project, error) {
	rows, err := s.db.Query(
		`SELECT p.id, p.name, p.owner_id, p.join_code, p.created_at
		 FROM projects p
		 JOIN memberships m ON m.project_id = p.id
		 WHERE m.user_id = ?
		 ORDER BY p.created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.OwnerID, &p.JoinCode, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ProjectByJoinCode resolves a join code to its project
func (s *Store) ProjectByJoinCode(code string) (domain.Project, error) {
	var p domain.Project
	err := s.db.QueryRow(
		`SELECT id, name, owner_id, join_code, created_at FROM projects WHERE join_code = ?`,
		code,
	).Scan(&p.ID, &p.Name, &p.OwnerID, &p.JoinCode, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Project{}, domain.ErrNotFound
	}
	return p, err
}

// AddMember enrolls a user into a project. Re-joining is a no-op.
func (s *Store) AddMember(projectID, userID string) error {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO memberships (project_id, user_id) VALUES (?, ?)`,
		projectID, userID,
	)
	return err
}

// IsMember reports whether the user belongs to the project
func (s *Store) IsMember(projectID, userID string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM memberships WHERE project_id = ? AND user_id = ?`,
		projectID, userID,
	).Scan(&count)
	return count > 0, err
}

// Sprints

// CreateSprint inserts a sprint into its project
func (s *Store) CreateSprint(sprint domain.Sprint) (domain.Sprint, error) {
	sprint.ID = uuid.NewString()
	sprint.CreatedAt = time.Now().UTC()

	_, err := s.db.Exec(
		`INSERT INTO sprints (id, project_id, name, starts_at, ends_at, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		sprint.ID, sprint.ProjectID, sprint.Name, sprint.StartsAt, sprint.EndsAt, sprint.CreatedAt,
	)
	if err != nil {
		return domain.Sprint{}, err
	}
	return sprint, nil
}

// SprintsByProject lists the project's sprints, oldest first
func (s *Store) SprintsByProject(projectID string) ([]domain.Sprint, error) {
	rows, err := s.db.Query(
		`SELECT id, project_id, name, starts_at, ends_at, created_at
		 FROM sprints WHERE project_id = ? ORDER BY created_at ASC`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sprints []domain.Sprint
	for rows.Next() {
		var sp domain.Sprint
		if err := rows.Scan(&sp.ID, &sp.ProjectID, &sp.Name, &sp.StartsAt, &sp.EndsAt, &sp.CreatedAt); err != nil {
			return nil, err
		}
		sprints = append(sprints, sp)
	}
	return sprints, rows.Err()
}

// SprintByID returns a sprint by id
func (s *Store) SprintByID(id string) (domain.Sprint, error) {
	var sp domain.Sprint
	err := s.db.QueryRow(
		`SELECT id, project_id, name, starts_at, ends_at, created_at FROM sprints WHERE id = ?`,
		id,
	).Scan(&sp.ID, &sp.ProjectID, &sp.Name, &sp.StartsAt, &sp.EndsAt, &sp.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Sprint{}, domain.ErrNotFound
	}
	return sp, err
}

// Tasks

// CreateTask inserts a task and returns the stored record
func (s *Store) CreateTask(task domain.Task) (domain.Task, error) {
	task.ID = uuid.NewString()
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	assignees, err := json.Marshal(task.Assignees)
	if err != nil {
		return domain.Task{}, err
	}

	_, err = s.db.Exec(
		`INSERT INTO tasks (id, title, description, status, priority, points, assignees, sprint_id, project_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.Description, string(task.Status), string(task.Priority),
		task.Points, string(assignees), task.SprintID, task.ProjectID, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// TaskByID returns a task by id
func (s *Store) TaskByID(id string) (domain.Task, error) {
	row := s.db.QueryRow(
		`SELECT id, title, description, status, priority, points, assignees, sprint_id, project_id, created_at, updated_at
		 FROM tasks WHERE id = ?`,
		id,
	)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, domain.ErrNotFound
	}
	return task, err
}

// TasksBySprint lists a sprint's tasks in insertion order
func (s *Store) TasksBySprint(sprintID string) ([]domain.Task, error) {
	return s.queryTasks(
		`SELECT id, title, description, status, priority, points, assignees, sprint_id, project_id, created_at, updated_at
		 FROM tasks WHERE sprint_id = ? ORDER BY created_at ASC`,
		sprintID,
	)
}

// BacklogTasks lists a project's tasks that sit in no sprint
func (s *Store) BacklogTasks(projectID string) ([]domain.Task, error) {
	return s.queryTasks(
		`SELECT id, title, description, status, priority, points, assignees, sprint_id, project_id, created_at, updated_at
		 FROM tasks WHERE project_id = ? AND (sprint_id = '' OR sprint_id IS NULL) ORDER BY created_at ASC`,
		projectID,
	)
}

// UpdateTask persists the full task record. Updating an unknown task
// reports domain.ErrNotFound.
func (s *Store) UpdateTask(task domain.Task) (domain.Task, error) {
	task.UpdatedAt = time.Now().UTC()

	assignees, err := json.Marshal(task.Assignees)
	if err != nil {
		return domain.Task{}, err
	}

	res, err := s.db.Exec(
		`UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?, points = ?, assignees = ?, sprint_id = ?, updated_at = ?
		 WHERE id = ?`,
		task.Title, task.Description, string(task.Status), string(task.Priority),
		task.Points, string(assignees), task.SprintID, task.UpdatedAt, task.ID,
	)
	if err != nil {
		return domain.Task{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Task{}, err
	}
	if affected == 0 {
		return domain.Task{}, domain.ErrNotFound
	}
	return task, nil
}

// DeleteTask removes a task. Deleting an unknown task reports
// domain.ErrNotFound.
func (s *Store) DeleteTask(id string) error {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) queryTasks(query string, args ...any) ([]domain.Task, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (domain.Task, error) {
	var t domain.Task
	var status, priority string
	var description, assignees, sprintID sql.NullString

	err := row.Scan(
		&t.ID, &t.Title, &description, &status, &priority, &t.Points,
		&assignees, &sprintID, &t.ProjectID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.Task{}, err
	}

	t.Description = description.String
	t.Status = domain.Status(status)
	t.Priority = domain.Priority(priority)
	t.SprintID = sprintID.String
	if assignees.Valid && assignees.String != "" && assignees.String != "null" {
		if err := json.Unmarshal([]byte(assignees.String), &t.Assignees); err != nil {
			return domain.Task{}, err
		}
	}
	return t, nil
}
