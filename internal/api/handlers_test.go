package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tareas/internal/service"
	"tareas/internal/store"
	"tareas/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newSQLiteServer wires the real service and an in-memory store.
func newSQLiteServer(t *testing.T) *Server {
	t.Helper()
	s, err := store.NewSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return NewServer(service.NewTaskService(s), Options{Logger: quietLogger()})
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func decodeTask(t *testing.T, w *httptest.ResponseRecorder) service.Task {
	t.Helper()
	var task service.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	return task
}

func decodeTasks(t *testing.T, w *httptest.ResponseRecorder) []service.Task {
	t.Helper()
	var tasks []service.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	return tasks
}

func TestHealth(t *testing.T) {
	srv := newSQLiteServer(t)

	w := do(t, srv, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestList_EmptyIsArray(t *testing.T) {
	srv := newSQLiteServer(t)

	w := do(t, srv, http.MethodGet, "/api/tareas", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreateListUpdate_Walkthrough(t *testing.T) {
	srv := newSQLiteServer(t)

	w := do(t, srv, http.MethodPost, "/api/tareas", `{"descripcion":"Buy milk"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	milk := decodeTask(t, w)
	assert.Equal(t, "Buy milk", milk.Descripcion)
	assert.False(t, milk.Completada)

	w = do(t, srv, http.MethodPost, "/api/tareas", `{"descripcion":"Walk dog"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	dog := decodeTask(t, w)
	assert.Greater(t, dog.ID, milk.ID)

	w = do(t, srv, http.MethodGet, "/api/tareas", "")
	require.Equal(t, http.StatusOK, w.Code)
	tasks := decodeTasks(t, w)
	require.Len(t, tasks, 2)
	assert.Equal(t, dog.ID, tasks[0].ID)
	assert.Equal(t, milk.ID, tasks[1].ID)

	w = do(t, srv, http.MethodPatch, "/api/tareas/"+itoa(milk.ID), `{"completada":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeTask(t, w)
	assert.True(t, updated.Completada)
	assert.Equal(t, milk.ID, updated.ID)

	w = do(t, srv, http.MethodGet, "/api/tareas", "")
	tasks = decodeTasks(t, w)
	require.Len(t, tasks, 2)
	assert.Equal(t, dog.ID, tasks[0].ID)
	assert.True(t, tasks[1].Completada)
}

func TestCreate_JSONShape(t *testing.T) {
	srv := newSQLiteServer(t)

	w := do(t, srv, http.MethodPost, "/api/tareas", `{"descripcion":"Buy milk"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.ElementsMatch(t, []string{"id", "descripcion", "completada", "fecha_creacion"}, keys(raw))
	assert.Equal(t, false, raw["completada"])
}

func TestCreate_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing field", `{}`},
		{"empty string", `{"descripcion":""}`},
		{"whitespace", `{"descripcion":"   "}`},
		{"not a string", `{"descripcion":42}`},
		{"null", `{"descripcion":null}`},
		{"malformed json", `{"descripcion":`},
		{"no body", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newSQLiteServer(t)

			w := do(t, srv, http.MethodPost, "/api/tareas", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"descripcion is required"}`, w.Body.String())

			w = do(t, srv, http.MethodGet, "/api/tareas", "")
			assert.Empty(t, decodeTasks(t, w))
		})
	}
}

func TestUpdateStatus_PUTIsAccepted(t *testing.T) {
	srv := newSQLiteServer(t)
	created := decodeTask(t, do(t, srv, http.MethodPost, "/api/tareas", `{"descripcion":"Buy milk"}`))

	w := do(t, srv, http.MethodPut, "/api/tareas/"+itoa(created.ID), `{"completada":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeTask(t, w).Completada)

	w = do(t, srv, http.MethodPut, "/api/tareas/"+itoa(created.ID), `{"completada":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeTask(t, w).Completada)
}

func TestUpdateStatus_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
		want string
	}{
		{"string status", "/api/tareas/1", `{"completada":"true"}`, msgCompletadaInvalid},
		{"numeric status", "/api/tareas/1", `{"completada":1}`, msgCompletadaInvalid},
		{"missing status", "/api/tareas/1", `{}`, msgCompletadaInvalid},
		{"non-numeric id", "/api/tareas/abc", `{"completada":true}`, msgInvalidID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newSQLiteServer(t)
			do(t, srv, http.MethodPost, "/api/tareas", `{"descripcion":"Buy milk"}`)

			w := do(t, srv, http.MethodPatch, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"`+tt.want+`"}`, w.Body.String())

			tasks := decodeTasks(t, do(t, srv, http.MethodGet, "/api/tareas", ""))
			require.Len(t, tasks, 1)
			assert.False(t, tasks[0].Completada)
		})
	}
}

func TestUpdateStatus_UnknownID(t *testing.T) {
	srv := newSQLiteServer(t)
	do(t, srv, http.MethodPost, "/api/tareas", `{"descripcion":"Buy milk"}`)

	w := do(t, srv, http.MethodPatch, "/api/tareas/999", `{"completada":true}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"task not found"}`, w.Body.String())

	tasks := decodeTasks(t, do(t, srv, http.MethodGet, "/api/tareas", ""))
	require.Len(t, tasks, 1)
	assert.False(t, tasks[0].Completada)
}

func TestStoreFailuresAreGeneric500(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1:5432: connection refused")
	fake := testutil.NewFakeService()
	fake.AddTask("Buy milk", false)
	fake.ListErr = cause
	fake.CreateErr = cause
	fake.UpdateStatusErr = cause

	var logs bytes.Buffer
	srv := NewServer(fake, Options{Logger: slog.New(slog.NewTextHandler(&logs, nil))})

	tests := []struct {
		method, path, body, want string
	}{
		{http.MethodGet, "/api/tareas", "", msgListFailed},
		{http.MethodPost, "/api/tareas", `{"descripcion":"x"}`, msgCreateFailed},
		{http.MethodPatch, "/api/tareas/1", `{"completada":true}`, msgUpdateFailed},
	}
	for _, tt := range tests {
		w := do(t, srv, tt.method, tt.path, tt.body)
		assert.Equal(t, http.StatusInternalServerError, w.Code, tt.path)
		assert.JSONEq(t, `{"error":"`+tt.want+`"}`, w.Body.String())
		assert.NotContains(t, w.Body.String(), "10.0.0.1")
	}
	assert.Contains(t, logs.String(), "connection refused")
}

func TestRequestIDIsPropagated(t *testing.T) {
	srv := newSQLiteServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	fake := testutil.NewFakeService()

	t.Run("listed origin", func(t *testing.T) {
		srv := NewServer(fake, Options{AllowedOrigins: []string{"http://localhost:5173"}, Logger: quietLogger()})

		req := httptest.NewRequest(http.MethodGet, "/api/tareas", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unlisted origin", func(t *testing.T) {
		srv := NewServer(fake, Options{AllowedOrigins: []string{"http://localhost:5173"}, Logger: quietLogger()})

		req := httptest.NewRequest(http.MethodGet, "/api/tareas", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("wildcard preflight", func(t *testing.T) {
		srv := NewServer(fake, Options{AllowedOrigins: []string{"*"}, Logger: quietLogger()})

		req := httptest.NewRequest(http.MethodOptions, "/api/tareas/1", nil)
		req.Header.Set("Origin", "http://anywhere.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
	})
}

func itoa(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestInvalidInputUsesFixedMessage(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.AddTask("Buy milk", false)
	fake.UpdateStatusErr = fmt.Errorf("check constraint tareas_completada: %w", service.ErrInvalidInput)
	srv := NewServer(fake, Options{Logger: quietLogger()})

	w := do(t, srv, http.MethodPatch, "/api/tareas/1", `{"completada":true}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"`+msgInvalidRequest+`"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "constraint")
}

func TestOversizedBodyIsRejected(t *testing.T) {
	srv := newSQLiteServer(t)
	huge := strings.Repeat("x", maxBodyBytes)

	w := do(t, srv, http.MethodPost, "/api/tareas", `{"descripcion":"`+huge+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"error":"`+msgBodyTooLarge+`"}`, w.Body.String())

	w = do(t, srv, http.MethodPost, "/api/tareas", `{"descripcion":"Buy milk"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeTask(t, w)

	w = do(t, srv, http.MethodPatch, "/api/tareas/"+itoa(created.ID), `{"completada":true,"pad":"`+huge+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = do(t, srv, http.MethodGet, "/api/tareas", "")
	tasks := decodeTasks(t, w)
	require.Len(t, tasks, 1)
	assert.False(t, tasks[0].Completada)
}
