package api

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/logging"
	"github.com/dmitrijs2005/todolist/internal/server/auth"
	"github.com/dmitrijs2005/todolist/internal/server/models"
	"github.com/dmitrijs2005/todolist/internal/server/services"
	"github.com/google/uuid"
)

const testSecret = "api-test-secret-0123456789"

// fakeUsers mimics services.UserService over a map, issuing real tokens.
type fakeUsers struct {
	mu       sync.Mutex
	byEmail  map[string]*models.User
	password map[string]string
	err      error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*models.User{}, password: map[string]string{}}
}

func (f *fakeUsers) session(u *models.User) (*services.Session, error) {
	token, err := auth.GenerateToken(u.ID, u.Name, []byte(testSecret), time.Hour)
	if err != nil {
		return nil, err
	}
	return &services.Session{Token: token, User: u}, nil
}

func (f *fakeUsers) Register(ctx context.Context, name, email, password string) (*services.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	email = services.NormalizeEmail(email)
	if _, ok := f.byEmail[email]; ok {
		return nil, common.ErrAlreadyExists
	}
	u := &models.User{ID: uuid.NewString(), Name: strings.TrimSpace(name), Email: email, CreatedAt: time.Now()}
	f.byEmail[email] = u
	f.password[email] = password
	return f.session(u)
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (*services.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	email = services.NormalizeEmail(email)
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrUserNotFound
	}
	if f.password[email] != password {
		return nil, common.ErrInvalidPassword
	}
	return f.session(u)
}

// fakeTasks mimics services.TaskService, scoping tasks by owner.
type fakeTasks struct {
	mu    sync.Mutex
	items []*models.Task
	err   error
}

func (f *fakeTasks) find(userID, id string) (*models.Task, error) {
	for _, t := range f.items {
		if t.ID == id && t.UserID == userID {
			return t, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeTasks) List(ctx context.Context, userID string) ([]*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []*models.Task{}
	for _, t := range f.items {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTasks) Create(ctx context.Context, userID, text string) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, common.ErrValidation
	}
	now := time.Now().UTC()
	t := &models.Task{ID: uuid.NewString(), UserID: userID, Text: text, CreatedAt: now, UpdatedAt: now}
	f.items = append(f.items, t)
	cp := *t
	return &cp, nil
}

func (f *fakeTasks) Update(ctx context.Context, userID, id string, patch models.TaskPatch) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	t, err := f.find(userID, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(t)
	cp := *t
	return &cp, nil
}

func (f *fakeTasks) SetCompleted(ctx context.Context, userID, id string, completed bool) (*models.Task, error) {
	return f.Update(ctx, userID, id, models.TaskPatch{Completed: &completed})
}

func (f *fakeTasks) Delete(ctx context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for i, t := range f.items {
		if t.ID == id && t.UserID == userID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			break
		}
	}
	return nil
}

func newTestServer() (*HTTPServer, *fakeUsers, *fakeTasks) {
	us, ts := newFakeUsers(), &fakeTasks{}
	return NewHTTPServer(":0", logging.NewNopLogger(), us, ts, testSecret, time.Second), us, ts
}

var errBoom = fmt.Errorf("%w: boom", common.ErrorInternal)
