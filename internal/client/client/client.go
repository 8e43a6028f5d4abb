package client

import (
	"context"

	"github.com/dmitrijs2005/todolist/internal/client/models"
)

type Client interface {
	SetToken(token string)
	Register(ctx context.Context, name, email, password string) (*models.AuthResult, error)
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	Ping(ctx context.Context) error
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, text string) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, upd models.TaskUpdate) (*models.Task, error)
	ToggleTask(ctx context.Context, id string, completed bool) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
}
