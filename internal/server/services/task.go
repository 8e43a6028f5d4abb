package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/dbx"
	"github.com/dmitrijs2005/todolist/internal/server/models"
	"github.com/dmitrijs2005/todolist/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TaskService implements the owner-scoped task operations. Ids that are not
// valid UUIDs cannot exist and are treated as not found.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

func (s *TaskService) List(ctx context.Context, userID string) ([]*models.Task, error) {
	list, err := s.repomanager.Tasks(s.db).List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list tasks: %v", common.ErrorInternal, err)
	}
	return list, nil
}

// Create adds an incomplete task. Text is trimmed and must not be empty.
func (s *TaskService) Create(ctx context.Context, userID, text string) (*models.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, common.ErrValidation
	}

	task, err := s.repomanager.Tasks(s.db).Create(ctx, &models.Task{
		ID:     uuid.NewString(),
		UserID: userID,
		Text:   text,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create task: %v", common.ErrorInternal, err)
	}
	return task, nil
}

// Update applies a partial change under a row lock and returns the stored task.
func (s *TaskService) Update(ctx context.Context, userID, id string, patch models.TaskPatch) (*models.Task, error) {
	if patch.Empty() {
		return nil, common.ErrValidation
	}
	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		if text == "" {
			return nil, common.ErrValidation
		}
		patch.Text = &text
	}
	if !isTaskID(id) {
		return nil, common.ErrorNotFound
	}

	var updated *models.Task
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		task, err := repo.GetForUpdate(ctx, id, userID)
		if err != nil {
			return err
		}
		patch.Apply(task)

		updated, err = repo.Update(ctx, task)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: update task: %v", common.ErrorInternal, err)
	}
	return updated, nil
}

// SetCompleted sets the completed flag to the given value.
func (s *TaskService) SetCompleted(ctx context.Context, userID, id string, completed bool) (*models.Task, error) {
	return s.Update(ctx, userID, id, models.TaskPatch{Completed: &completed})
}

// Delete removes the task. Deleting a task that does not exist is not an error.
func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	if !isTaskID(id) {
		return nil
	}
	if _, err := s.repomanager.Tasks(s.db).Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("%w: delete task: %v", common.ErrorInternal, err)
	}
	return nil
}

func isTaskID(id string) bool {
	return uuid.Validate(id) == nil
}
