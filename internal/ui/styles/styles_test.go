package styles

import (
	"testing"

	"github.com/sprintdeck/sprintdeck/internal/domain"
)

func TestPriorityColor(t *testing.T) {
	for _, p := range []domain.Priority{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh} {
		if PriorityColor(p) == Overlay0 {
			t.Errorf("Expected dedicated color for %q", p)
		}
	}

	if PriorityColor("urgent") != Overlay0 {
		t.Error("Expected neutral fallback for unknown priority")
	}
}

func TestStatusColor(t *testing.T) {
	for _, s := range domain.Statuses {
		if StatusColor(s) == Overlay0 {
			t.Errorf("Expected dedicated color for %q", s)
		}
	}

	if StatusColor("archived") != Overlay0 {
		t.Error("Expected neutral fallback for unknown status")
	}
}

func TestNewStyles(t *testing.T) {
	s := New()

	if s.PriorityBadge == nil {
		t.Fatal("Expected priority badge style func")
	}

	// Badge render must not panic for any value, known or not
	for _, p := range []domain.Priority{domain.PriorityLow, "weird", ""} {
		_ = s.PriorityBadge(p).Render(p.Short())
	}
}
