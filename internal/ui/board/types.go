package board

import "github.com/sprintdeck/sprintdeck/internal/domain"

// Column represents one kanban lane with its classified tasks
type Column struct {
	Lane   domain.LaneID
	Title  string
	Status domain.Status
	Tasks  []domain.Task
}

// Cursor represents the current cursor position
type Cursor struct {
	Column int // Column index (0-3)
	Task   int // Task index within column
}

// BuildColumns classifies tasks into the four fixed lanes. Tasks with
// an unrecognized status land in no lane.
func BuildColumns(tasks []domain.Task) []Column {
	columns := make([]Column, 0, len(domain.Lanes))
	for _, lane := range domain.Lanes {
		status, _ := domain.LaneStatus(lane)
		columns = append(columns, Column{
			Lane:   lane,
			Title:  status.Display(),
			Status: status,
			Tasks:  domain.ByStatus(tasks, status),
		})
	}
	return columns
}
