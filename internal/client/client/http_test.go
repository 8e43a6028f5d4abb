package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/todolist/internal/client/models"
	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	auth   string
	body   map[string]any
}

func newTestServer(t *testing.T, status int, reply string) (*HTTPClient, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method, rec.path = r.Method, r.URL.Path
		rec.auth = r.Header.Get("Authorization")
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &rec.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/", time.Second), rec
}

func TestLogin_SendsCredentialsAndDecodes(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, `{"token":"tok","user":{"id":"u1","name":"Ana","email":"ana@x.io"}}`)

	res, err := c.Login(context.Background(), "ana@x.io", "p1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/login", rec.path)
	assert.Empty(t, rec.auth)
	assert.Equal(t, map[string]any{"email": "ana@x.io", "password": "p1"}, rec.body)
	assert.Equal(t, "tok", res.Token)
	assert.Equal(t, models.User{ID: "u1", Name: "Ana", Email: "ana@x.io"}, res.User)
}

func TestRegister_Conflict(t *testing.T) {
	c, rec := newTestServer(t, http.StatusConflict, `{"error":"E-mail já cadastrado."}`)

	_, err := c.Register(context.Background(), "Ana", "ana@x.io", "p1")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrAlreadyExists)

	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusConflict, he.StatusCode)
	assert.Equal(t, "E-mail já cadastrado.", he.Message)
	assert.Equal(t, "Ana", rec.body["name"])
}

func TestTasks_BearerAndRoutes(t *testing.T) {
	task := `{"id":"t1","text":"Buy milk","completed":true,"created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z"}`

	tests := []struct {
		name       string
		status     int
		reply      string
		call       func(c *HTTPClient) error
		wantMethod string
		wantPath   string
		wantBody   map[string]any
	}{
		{
			name: "list", status: http.StatusOK, reply: "[" + task + "]",
			call: func(c *HTTPClient) error {
				list, err := c.ListTasks(context.Background())
				if err == nil && len(list) != 1 {
					t.Errorf("want one task, got %d", len(list))
				}
				return err
			},
			wantMethod: http.MethodGet, wantPath: "/tasks",
		},
		{
			name: "create", status: http.StatusCreated, reply: task,
			call: func(c *HTTPClient) error {
				_, err := c.CreateTask(context.Background(), "Buy milk")
				return err
			},
			wantMethod: http.MethodPost, wantPath: "/tasks", wantBody: map[string]any{"text": "Buy milk"},
		},
		{
			name: "update", status: http.StatusOK, reply: task,
			call: func(c *HTTPClient) error {
				text := "Buy oat milk"
				_, err := c.UpdateTask(context.Background(), "t1", models.TaskUpdate{Text: &text})
				return err
			},
			wantMethod: http.MethodPut, wantPath: "/tasks/t1", wantBody: map[string]any{"text": "Buy oat milk"},
		},
		{
			name: "toggle", status: http.StatusOK, reply: task,
			call: func(c *HTTPClient) error {
				got, err := c.ToggleTask(context.Background(), "t1", true)
				if err == nil && !got.Completed {
					t.Error("want completed task")
				}
				return err
			},
			wantMethod: http.MethodPatch, wantPath: "/tasks/t1/toggle", wantBody: map[string]any{"completed": true},
		},
		{
			name: "delete", status: http.StatusNoContent, reply: "",
			call: func(c *HTTPClient) error {
				return c.DeleteTask(context.Background(), "t1")
			},
			wantMethod: http.MethodDelete, wantPath: "/tasks/t1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestServer(t, tt.status, tt.reply)
			c.SetToken("tok")

			require.NoError(t, tt.call(c))
			assert.Equal(t, tt.wantMethod, rec.method)
			assert.Equal(t, tt.wantPath, rec.path)
			assert.Equal(t, "Bearer tok", rec.auth)
			assert.Equal(t, tt.wantBody, rec.body)
		})
	}
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, common.ErrValidation},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusNotFound, common.ErrorNotFound},
		{http.StatusConflict, common.ErrAlreadyExists},
		{http.StatusInternalServerError, common.ErrorInternal},
		{http.StatusBadGateway, common.ErrorInternal},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c, _ := newTestServer(t, tt.status, `{"error":"x"}`)
			_, err := c.ListTasks(context.Background())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestHTTPError_NonJSONBody(t *testing.T) {
	c, _ := newTestServer(t, http.StatusTeapot, `<html>nope</html>`)

	err := c.Ping(context.Background())
	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusTeapot, he.StatusCode)
	assert.Empty(t, he.Message)
	assert.Equal(t, "http 418", he.Error())
}

func TestUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, time.Second)
	err := c.Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCancelledContext(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Ping(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestBadResponseBody(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `not json`)

	_, err := c.CreateTask(context.Background(), "x")
	assert.ErrorContains(t, err, "decode response")
}
