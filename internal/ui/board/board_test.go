package board

import (
	"strings"
	"testing"

	"github.com/sprintdeck/sprintdeck/internal/domain"
	"github.com/sprintdeck/sprintdeck/internal/ui/styles"
)

func testTasks() []domain.Task {
	return []domain.Task{
		{ID: "t-1", Title: "Implement user authentication", Status: domain.StatusTodo, Priority: domain.PriorityMedium, Points: 3},
		{ID: "t-2", Title: "Fix login redirect bug", Status: domain.StatusTodo, Priority: domain.PriorityHigh, Points: 1},
		{ID: "t-3", Title: "API endpoint refactor", Status: domain.StatusInProgress, Priority: domain.PriorityHigh, Points: 5},
		{ID: "t-4", Title: "Review board styles", Status: domain.StatusInReview, Priority: domain.PriorityLow, Points: 2},
		{ID: "t-5", Title: "Setup CI pipeline", Status: domain.StatusDone, Priority: domain.PriorityLow, Points: 3},
		{ID: "t-6", Title: "Mystery state", Status: domain.Status("archived"), Priority: domain.PriorityLow, Points: 1},
	}
}

func TestBuildColumns(t *testing.T) {
	columns := BuildColumns(testTasks())

	if len(columns) != 4 {
		t.Fatalf("Expected 4 lanes, got %d", len(columns))
	}

	wantCounts := []int{2, 1, 1, 1}
	for i, col := range columns {
		if len(col.Tasks) != wantCounts[i] {
			t.Errorf("Lane %s: expected %d tasks, got %d", col.Lane, wantCounts[i], len(col.Tasks))
		}
	}

	// The unrecognized status must land nowhere
	for _, col := range columns {
		for _, task := range col.Tasks {
			if task.ID == "t-6" {
				t.Errorf("Unrecognized status classified into lane %s", col.Lane)
			}
		}
	}
}

func TestRenderCard(t *testing.T) {
	s := styles.New()

	t.Run("contains title and badges", func(t *testing.T) {
		task := domain.Task{ID: "t-1", Title: "Short title", Priority: domain.PriorityHigh, Points: 5}
		out := RenderCard(task, false, false, 40, s)

		if !strings.Contains(out, "Short title") {
			t.Error("Expected card to contain title")
		}
		if !strings.Contains(out, "H") {
			t.Error("Expected priority badge")
		}
		if !strings.Contains(out, "5pt") {
			t.Error("Expected points badge")
		}
	})

	t.Run("shows assignee count", func(t *testing.T) {
		task := domain.Task{ID: "t-1", Title: "Pair task", Assignees: []string{"u-1", "u-2"}}
		out := RenderCard(task, false, false, 40, s)

		if !strings.Contains(out, "◉2") {
			t.Error("Expected assignee badge")
		}
	})

	t.Run("cursor indicator", func(t *testing.T) {
		task := domain.Task{ID: "t-1", Title: "Focused"}
		out := RenderCard(task, true, false, 40, s)

		if !strings.Contains(out, "▶") {
			t.Error("Expected cursor indicator")
		}
	})

	t.Run("unknown priority never panics", func(t *testing.T) {
		task := domain.Task{ID: "t-1", Title: "Odd", Priority: "urgent"}
		out := RenderCard(task, false, false, 40, s)

		if !strings.Contains(out, "?") {
			t.Error("Expected fallback priority badge")
		}
	})

	t.Run("long title truncated", func(t *testing.T) {
		task := domain.Task{ID: "t-1", Title: strings.Repeat("x", 200)}
		out := RenderCard(task, false, false, 30, s)

		if !strings.Contains(out, "…") {
			t.Error("Expected truncated title")
		}
	})
}

func TestRender(t *testing.T) {
	s := styles.New()
	columns := BuildColumns(testTasks())

	t.Run("renders all lane headers", func(t *testing.T) {
		out := Render(columns, Cursor{}, "", "", s, 120, 30)

		for _, title := range []string{"To Do", "In Progress", "In Review", "Done"} {
			if !strings.Contains(out, title) {
				t.Errorf("Expected header %q", title)
			}
		}
	})

	t.Run("empty columns", func(t *testing.T) {
		if out := Render(nil, Cursor{}, "", "", s, 120, 30); out != "" {
			t.Error("Expected empty output for no columns")
		}
	})

	t.Run("empty lanes render without error", func(t *testing.T) {
		out := Render(BuildColumns(nil), Cursor{}, "", "", s, 120, 30)
		if out == "" {
			t.Error("Expected board frame even with no tasks")
		}
	})
}

func TestLaneAt(t *testing.T) {
	tests := []struct {
		name  string
		x     int
		width int
		want  domain.LaneID
		ok    bool
	}{
		{"first lane", 0, 120, domain.LaneTodo, true},
		{"second lane", 30, 120, domain.LaneInProgress, true},
		{"third lane", 65, 120, domain.LaneInReview, true},
		{"last lane", 119, 120, domain.LaneDone, true},
		{"negative x", -1, 120, "", false},
		{"past right edge", 120, 120, "", false},
		{"zero width", 10, 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LaneAt(tt.x, tt.width)
			if ok != tt.ok || got != tt.want {
				t.Errorf("LaneAt(%d, %d) = (%q, %v), want (%q, %v)", tt.x, tt.width, got, ok, tt.want, tt.ok)
			}
		})
	}
}
