package domain

// LaneID identifies one of the four fixed board lanes. Drop targets
// are resolved through the lane map only, never from screen geometry.
type LaneID string

const (
	LaneTodo       LaneID = "column-todo"
	LaneInProgress LaneID = "column-in-progress"
	LaneInReview   LaneID = "column-in-review"
	LaneDone       LaneID = "column-done"
)

// Lanes lists the four lanes in board order.
var Lanes = []LaneID{LaneTodo, LaneInProgress, LaneInReview, LaneDone}

var laneStatus = map[LaneID]Status{
	LaneTodo:       StatusTodo,
	LaneInProgress: StatusInProgress,
	LaneInReview:   StatusInReview,
	LaneDone:       StatusDone,
}

var statusLane = map[Status]LaneID{
	StatusTodo:       LaneTodo,
	StatusInProgress: LaneInProgress,
	StatusInReview:   LaneInReview,
	StatusDone:       LaneDone,
}

// LaneStatus resolves a lane to its status. The second return is false
// for an unknown lane id.
func LaneStatus(id LaneID) (Status, bool) {
	s, ok := laneStatus[id]
	return s, ok
}

// StatusLane resolves a status to its lane. The second return is false
// for an unrecognized status.
func StatusLane(s Status) (LaneID, bool) {
	id, ok := statusLane[s]
	return id, ok
}

// ByStatus returns the tasks whose status equals status, preserving
// relative order. Zero matches yields an empty slice, not an error.
func ByStatus(tasks []Task, status Status) []Task {
	var out []Task
	for _, t := range tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}
