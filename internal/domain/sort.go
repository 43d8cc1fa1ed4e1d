package domain

import "sort"

// SortKey selects how tasks inside a lane are ordered
type SortKey int

const (
	SortNone SortKey = iota
	SortPriority
	SortPoints
	SortCreated
)

// String returns the display name of the sort key
func (k SortKey) String() string {
	switch k {
	case SortPriority:
		return "priority"
	case SortPoints:
		return "points"
	case SortCreated:
		return "created"
	default:
		return "none"
	}
}

// SortTasks returns a sorted copy of tasks. SortNone preserves the
// store's relative order, which is what the board shows by default.
func SortTasks(tasks []Task, key SortKey) []Task {
	if key == SortNone {
		return tasks
	}

	out := make([]Task, len(tasks))
	copy(out, tasks)

	switch key {
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		})
	case SortPoints:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Points > out[j].Points
		})
	case SortCreated:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	}

	return out
}
