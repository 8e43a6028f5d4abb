package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/dbx"
	"github.com/dmitrijs2005/todolist/internal/server/models"
	"github.com/dmitrijs2005/todolist/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/todolist/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// --- in-memory users ---

type memUsers struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	creates int

	getErr    error
	createErr error
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: map[string]*models.User{}}
}

func (m *memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	if _, ok := m.byEmail[u.Email]; ok {
		return nil, common.ErrAlreadyExists
	}
	m.creates++
	stored := *u
	stored.CreatedAt = time.Now()
	m.byEmail[u.Email] = &stored
	out := stored
	return &out, nil
}

func (m *memUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	u, ok := m.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

// --- in-memory tasks ---

type memTasks struct {
	mu    sync.Mutex
	order []string
	byID  map[string]*models.Task

	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func newMemTasks() *memTasks {
	return &memTasks{byID: map[string]*models.Task{}}
}

func (m *memTasks) List(ctx context.Context, userID string) ([]*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*models.Task, 0)
	for _, id := range m.order {
		if t, ok := m.byID[id]; ok && t.UserID == userID {
			c := *t
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *memTasks) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	stored := *t
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.byID[t.ID] = &stored
	m.order = append(m.order, t.ID)
	out := stored
	return &out, nil
}

func (m *memTasks) GetForUpdate(ctx context.Context, id, userID string) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byID[id]
	if !ok || t.UserID != userID {
		return nil, common.ErrorNotFound
	}
	out := *t
	return &out, nil
}

func (m *memTasks) Update(ctx context.Context, t *models.Task) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	cur, ok := m.byID[t.ID]
	if !ok || cur.UserID != t.UserID {
		return nil, common.ErrorNotFound
	}
	cur.Text = t.Text
	cur.Completed = t.Completed
	cur.UpdatedAt = time.Now()
	out := *cur
	return &out, nil
}

func (m *memTasks) Delete(ctx context.Context, id, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return false, m.deleteErr
	}
	t, ok := m.byID[id]
	if !ok || t.UserID != userID {
		return false, nil
	}
	delete(m.byID, id)
	return true, nil
}

// --- repository manager ---

type fakeRepoManager struct {
	u *memUsers
	t *memTasks
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository         { return m.u }
func (m *fakeRepoManager) Tasks(db dbx.DBTX) tasks.Repository         { return m.t }
