// Package tasks holds the client-side task list and the operations that keep
// it in step with the server. Local state only changes after the server has
// confirmed a mutation.
package tasks

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/todolist/internal/client/client"
	"github.com/dmitrijs2005/todolist/internal/client/models"
	"github.com/dmitrijs2005/todolist/internal/logging"
)

// MinAddDuration is the shortest time Add keeps the store busy, so the
// indicator never flickers.
const MinAddDuration = 150 * time.Millisecond

var ErrTaskNotFound = errors.New("task not found in local list")

// API is the part of client.Client the store calls.
type API interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, text string) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, upd models.TaskUpdate) (*models.Task, error)
	ToggleTask(ctx context.Context, id string, completed bool) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

type Store struct {
	api    API
	logger logging.Logger
	logout func(ctx context.Context)
	minAdd time.Duration

	mu      sync.RWMutex
	tasks   []models.Task
	loading bool
	busy    bool
	input   string
}

// NewStore builds an empty store. logout runs whenever the server rejects
// the session (401/403); it may be nil.
func NewStore(api API, logger logging.Logger, logout func(ctx context.Context)) *Store {
	return &Store{
		api:    api,
		logger: logger.With("module", "tasks"),
		logout: logout,
		minAdd: MinAddDuration,
		tasks:  []models.Task{},
	}
}

// Tasks returns a copy of the current list.
func (s *Store) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy
}

func (s *Store) Input() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.input
}

func (s *Store) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = text
}

// Reset drops all local state, e.g. after logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = []models.Task{}
	s.input = ""
	s.loading = false
	s.busy = false
}

// Load replaces the local list with the server's.
func (s *Store) Load(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	list, err := s.api.ListTasks(ctx)
	if err != nil {
		return s.fail(ctx, "load tasks", err)
	}

	s.mu.Lock()
	s.tasks = append(make([]models.Task, 0, len(list)), list...)
	s.mu.Unlock()
	return nil
}

// Add creates a task from text. Blank text is ignored.
func (s *Store) Add(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	s.setBusy(true)
	defer s.setBusy(false)
	start := time.Now()

	task, err := s.api.CreateTask(ctx, text)

	if wait := s.minAdd - time.Since(start); wait > 0 {
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
	}

	if err != nil {
		return s.fail(ctx, "add task", err)
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, *task)
	s.input = ""
	s.mu.Unlock()
	return nil
}

// ToggleComplete flips the completed flag of the task with id.
func (s *Store) ToggleComplete(ctx context.Context, id string) error {
	current, err := s.lookup(id)
	if err != nil {
		return err
	}

	updated, err := s.api.ToggleTask(ctx, id, !current.Completed)
	if err != nil {
		return s.fail(ctx, "toggle task", err)
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.tasks[i].Completed = updated.Completed
	}
	s.mu.Unlock()
	return nil
}

func (s *Store) Remove(ctx context.Context, id string) error {
	if _, err := s.lookup(id); err != nil {
		return err
	}

	if err := s.api.DeleteTask(ctx, id); err != nil {
		return s.fail(ctx, "remove task", err)
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	}
	s.mu.Unlock()
	return nil
}

// Update sends a partial edit and replaces the local task with the result.
func (s *Store) Update(ctx context.Context, id string, upd models.TaskUpdate) error {
	if _, err := s.lookup(id); err != nil {
		return err
	}

	updated, err := s.api.UpdateTask(ctx, id, upd)
	if err != nil {
		return s.fail(ctx, "update task", err)
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.tasks[i] = *updated
	}
	s.mu.Unlock()
	return nil
}

// fail routes a request error: a rejected session triggers logout, anything
// else is logged. The error is returned either way.
func (s *Store) fail(ctx context.Context, op string, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		s.logger.Info(ctx, "session rejected, logging out", "op", op)
		if s.logout != nil {
			s.logout(ctx)
		}
		return err
	}
	s.logger.Error(ctx, op+" failed", "error", err)
	return err
}

func (s *Store) lookup(id string) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], nil
	}
	return models.Task{}, ErrTaskNotFound
}

// indexOf expects s.mu to be held.
func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Store) setBusy(v bool) {
	s.mu.Lock()
	s.busy = v
	s.mu.Unlock()
}
