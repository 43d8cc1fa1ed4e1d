package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewConfirmDialog(t *testing.T) {
	dialog := NewConfirmDialog("Delete Task", "Delete SD-42?")

	if dialog.title != "Delete Task" {
		t.Errorf("expected title %q, got %q", "Delete Task", dialog.title)
	}
	if dialog.selected {
		t.Error("expected default selection to be No")
	}
}

func TestConfirmDialog_YesKey(t *testing.T) {
	dialog := NewConfirmDialog("Title", "Message")

	_, cmd := dialog.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if cmd == nil {
		t.Fatal("expected command, got nil")
	}

	selMsg, ok := cmd().(SelectionMsg)
	if !ok {
		t.Fatalf("expected SelectionMsg, got %T", cmd())
	}
	if selMsg.Key != "yes" {
		t.Errorf("expected key %q, got %q", "yes", selMsg.Key)
	}
	if !selMsg.Value.(ConfirmResult).Confirmed {
		t.Error("expected Confirmed to be true")
	}
}

func TestConfirmDialog_Escape(t *testing.T) {
	dialog := NewConfirmDialog("Title", "Message")

	_, cmd := dialog.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected command, got nil")
	}

	selMsg := cmd().(SelectionMsg)
	if selMsg.Key != "no" {
		t.Errorf("expected key %q (escape = cancel), got %q", "no", selMsg.Key)
	}
	if selMsg.Value.(ConfirmResult).Confirmed {
		t.Error("expected Confirmed to be false")
	}
}

func TestConfirmDialog_EnterConfirmsSelection(t *testing.T) {
	tests := []struct {
		name            string
		initialSelected bool
		expectedKey     string
	}{
		{"enter on No", false, "no"},
		{"enter on Yes", true, "yes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialog := NewConfirmDialog("Title", "Message")
			dialog.selected = tt.initialSelected

			_, cmd := dialog.Update(tea.KeyMsg{Type: tea.KeyEnter})
			if cmd == nil {
				t.Fatal("expected command, got nil")
			}

			selMsg := cmd().(SelectionMsg)
			if selMsg.Key != tt.expectedKey {
				t.Errorf("expected key %q, got %q", tt.expectedKey, selMsg.Key)
			}
		})
	}
}

func TestConfirmDialog_Navigation(t *testing.T) {
	dialog := NewConfirmDialog("Title", "Message")

	updated, _ := dialog.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	if !updated.(*ConfirmDialog).selected {
		t.Error("expected l to move selection to Yes")
	}

	updated, _ = updated.(*ConfirmDialog).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	if updated.(*ConfirmDialog).selected {
		t.Error("expected h to move selection to No")
	}
}
