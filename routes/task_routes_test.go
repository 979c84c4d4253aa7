package routes

import (
	"net/http"
	"testing"

	"github.com/anjiri1684/taskmate/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRoutes(t *testing.T) {
	app := newTestApp(t)
	_, token := newUserWithToken(t, "owner@example.com")
	_, otherToken := newUserWithToken(t, "other@example.com")

	resp, body := doRequest(t, app, http.MethodPost, "/api/v1/tasks", map[string]string{"title": "Build chat interface", "description": "UI"}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var task models.Task
	decode(t, body, &task)
	assert.Equal(t, models.TaskPending, task.Status)
	path := "/api/v1/tasks/" + task.ID.String()

	resp, body = doRequest(t, app, http.MethodPatch, path, map[string]string{"status": "completed"}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	decode(t, body, &task)
	assert.Equal(t, models.TaskCompleted, task.Status)

	resp, _ = doRequest(t, app, http.MethodPatch, path, map[string]string{"status": "archived"}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = doRequest(t, app, http.MethodGet, "/api/v1/tasks?status=completed", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tasks []models.Task
	decode(t, body, &tasks)
	assert.Len(t, tasks, 1)

	resp, _ = doRequest(t, app, http.MethodGet, "/api/v1/tasks?status=bogus", nil, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodGet, path, nil, otherToken)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodDelete, path, nil, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodGet, path, nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateTaskValidation(t *testing.T) {
	app := newTestApp(t)
	_, token := newUserWithToken(t, "owner@example.com")

	resp, _ := doRequest(t, app, http.MethodPost, "/api/v1/tasks", map[string]string{"title": "  "}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/tasks", map[string]string{"title": "x", "status": "done"}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
