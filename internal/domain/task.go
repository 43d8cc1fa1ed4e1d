// Package domain contains core business types for sprintdeck.
package domain

import "time"

// Task represents a single work item on a project board.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	Points      int       `json:"points"`
	Assignees   []string  `json:"assignees,omitempty"`
	SprintID    string    `json:"sprint_id,omitempty"`
	ProjectID   string    `json:"project_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InBacklog reports whether the task sits in the product backlog
// rather than a sprint.
func (t Task) InBacklog() bool {
	return t.SprintID == ""
}

// Status represents task workflow status
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusInReview   Status = "in-review"
	StatusDone       Status = "done"
)

// Statuses lists the four workflow statuses in board order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusInReview, StatusDone}

// Valid reports whether s is one of the four recognized statuses.
// Anything else is carried as-is but classified into no lane.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusInReview, StatusDone:
		return true
	default:
		return false
	}
}

// Column returns the board column index for this status, or -1 for an
// unrecognized status.
func (s Status) Column() int {
	switch s {
	case StatusTodo:
		return 0
	case StatusInProgress:
		return 1
	case StatusInReview:
		return 2
	case StatusDone:
		return 3
	default:
		return -1
	}
}

// Display returns the human-readable column title.
func (s Status) Display() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusInReview:
		return "In Review"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// String returns the wire string
func (s Status) String() string {
	return string(s)
}

// Priority represents task priority
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank returns a sortable rank, highest priority first. Unknown
// priorities sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Short returns a single-character badge label.
func (p Priority) Short() string {
	switch p {
	case PriorityHigh:
		return "H"
	case PriorityMedium:
		return "M"
	case PriorityLow:
		return "L"
	default:
		return "?"
	}
}

// String returns the wire string
func (p Priority) String() string {
	return string(p)
}
