package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestAPIError(t *testing.T) {
	t.Run("includes op and task id", func(t *testing.T) {
		err := &APIError{Op: "update", TaskID: "t-42", Err: errors.New("boom")}
		msg := err.Error()
		if !strings.Contains(msg, "update") || !strings.Contains(msg, "t-42") {
			t.Errorf("Expected op and id in message, got %q", msg)
		}
	})

	t.Run("falls back to status code", func(t *testing.T) {
		err := &APIError{Op: "delete", StatusCode: 500}
		if !strings.Contains(err.Error(), "500") {
			t.Errorf("Expected status in message, got %q", err.Error())
		}
	})

	t.Run("unwraps sentinel", func(t *testing.T) {
		err := &APIError{Op: "list", Err: ErrNotFound}
		if !errors.Is(err, ErrNotFound) {
			t.Error("Expected errors.Is to find ErrNotFound")
		}
	})
}
