package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/sprintdeck/sprintdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDoer implements Doer for testing
type mockDoer struct {
	status  int
	body    string
	err     error
	lastReq *http.Request
	lastBody []byte
}

func (m *mockDoer) Do(req *http.Request) (*http.Response, error) {
	m.lastReq = req
	if req.Body != nil {
		m.lastBody, _ = io.ReadAll(req.Body)
	}
	if m.err != nil {
		return nil, m.err
	}
	status := m.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(m.body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func newTestClient(doer *mockDoer) *Client {
	return NewClient("http://backend.test", doer, slog.Default())
}

func TestTaskService_ListBySprint(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		doErr     error
		wantCount int
		wantErr   bool
	}{
		{
			name: "valid response with multiple tasks",
			body: `[
				{"id": "t-1", "title": "Task 1", "status": "todo", "priority": "high", "points": 3, "project_id": "p-1", "sprint_id": "sp-1"},
				{"id": "t-2", "title": "Task 2", "status": "in-progress", "priority": "low", "points": 1, "project_id": "p-1", "sprint_id": "sp-1"}
			]`,
			wantCount: 2,
		},
		{
			name:      "empty response",
			body:      `[]`,
			wantCount: 0,
		},
		{
			name:      "not found is an empty board",
			status:    http.StatusNotFound,
			body:      `{"error": "sprint not found"}`,
			wantCount: 0,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"error": "boom"}`,
			wantErr: true,
		},
		{
			name:    "invalid json",
			body:    `not json`,
			wantErr: true,
		},
		{
			name:    "transport error",
			doErr:   errors.New("connection refused"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &mockDoer{status: tt.status, body: tt.body, err: tt.doErr}
			svc := NewTaskService(newTestClient(doer))

			tasks, err := svc.ListBySprint(context.Background(), "sp-1")

			if tt.wantErr {
				require.Error(t, err)
				var apiErr *domain.APIError
				assert.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "list", apiErr.Op)
				return
			}

			require.NoError(t, err)
			assert.Len(t, tasks, tt.wantCount)
		})
	}
}

func TestTaskService_Update(t *testing.T) {
	task := domain.Task{
		ID:        "t-9",
		Title:     "Move me",
		Status:    domain.StatusDone,
		Priority:  domain.PriorityMedium,
		ProjectID: "p-1",
		SprintID:  "sp-1",
	}

	t.Run("sends full record and acting user", func(t *testing.T) {
		doer := &mockDoer{body: `{}`}
		svc := NewTaskService(newTestClient(doer))

		err := svc.Update(context.Background(), task, "u-7")
		require.NoError(t, err)

		require.NotNil(t, doer.lastReq)
		assert.Equal(t, http.MethodPut, doer.lastReq.Method)
		assert.Equal(t, "/tasks/t-9", doer.lastReq.URL.Path)

		var sent updateRequest
		require.NoError(t, json.Unmarshal(doer.lastBody, &sent))
		assert.Equal(t, "u-7", sent.ActingUserID)
		assert.Equal(t, domain.StatusDone, sent.Task.Status)
	})

	t.Run("failure carries task id", func(t *testing.T) {
		doer := &mockDoer{status: http.StatusInternalServerError, body: `{"error": "write failed"}`}
		svc := NewTaskService(newTestClient(doer))

		err := svc.Update(context.Background(), task, "u-7")
		require.Error(t, err)

		var apiErr *domain.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "update", apiErr.Op)
		assert.Equal(t, "t-9", apiErr.TaskID)
		assert.Contains(t, err.Error(), "t-9")
	})
}

func TestTaskService_Delete(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		doer := &mockDoer{body: `{}`}
		svc := NewTaskService(newTestClient(doer))

		err := svc.Delete(context.Background(), "t-3")
		require.NoError(t, err)
		assert.Equal(t, http.MethodDelete, doer.lastReq.Method)
		assert.Equal(t, "/tasks/t-3", doer.lastReq.URL.Path)
	})

	t.Run("failure carries task id", func(t *testing.T) {
		doer := &mockDoer{err: errors.New("connection reset")}
		svc := NewTaskService(newTestClient(doer))

		err := svc.Delete(context.Background(), "t-3")
		require.Error(t, err)

		var apiErr *domain.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "delete", apiErr.Op)
		assert.Equal(t, "t-3", apiErr.TaskID)
	})
}

func TestTaskService_Create(t *testing.T) {
	doer := &mockDoer{body: `{"id": "t-100", "title": "New task", "status": "todo", "priority": "low", "project_id": "p-1"}`}
	svc := NewTaskService(newTestClient(doer))

	created, err := svc.Create(context.Background(), domain.Task{Title: "New task", ProjectID: "p-1"})
	require.NoError(t, err)
	assert.Equal(t, "t-100", created.ID)
	assert.Equal(t, domain.StatusTodo, created.Status)
}

func TestClient_AuthHeader(t *testing.T) {
	doer := &mockDoer{body: `[]`}
	client := newTestClient(doer)
	client.SetToken("session-token")
	svc := NewTaskService(client)

	_, err := svc.ListBySprint(context.Background(), "sp-1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer session-token", doer.lastReq.Header.Get("Authorization"))
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, domain.ErrUnauthorized},
		{http.StatusForbidden, domain.ErrForbidden},
		{http.StatusConflict, domain.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			doer := &mockDoer{status: tt.status, body: `{"error": "nope"}`}
			svc := NewTaskService(newTestClient(doer))

			err := svc.Delete(context.Background(), "t-1")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
