package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/todolist/internal/client/models"
	"github.com/dmitrijs2005/todolist/internal/client/tasks"
)

var errNotLoggedIn = errors.New("not logged in")

func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please log in first.")
		return errNotLoggedIn
	}
	return nil
}

// List prints the local task list, numbered from 1.
func (a *App) List(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	list := a.tasks.Tasks()
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No tasks yet.")
		return nil
	}
	for i, t := range list {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(a.out, "%2d. [%s] %s\n", i+1, mark, t.Text)
	}
	return nil
}

func (a *App) Add(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		var err error
		if text, err = getSimpleText(a.reader, "Task text", a.out); err != nil {
			return err
		}
	}
	a.tasks.SetInput(text)

	if err := a.tasks.Add(ctx, a.tasks.Input()); err != nil {
		a.report(err)
		return err
	}
	return a.List(ctx)
}

func (a *App) Toggle(ctx context.Context, args []string) error {
	id, err := a.resolve(args)
	if err != nil {
		return err
	}
	if err := a.tasks.ToggleComplete(ctx, id); err != nil {
		a.report(err)
		return err
	}
	return a.List(ctx)
}

func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := a.resolve(args)
	if err != nil {
		return err
	}

	text := strings.Join(args[1:], " ")
	if strings.TrimSpace(text) == "" {
		if text, err = getSimpleText(a.reader, "New text", a.out); err != nil {
			return err
		}
	}
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(a.out, "Task text cannot be empty.")
		return nil
	}

	if err := a.tasks.Update(ctx, id, models.TaskUpdate{Text: &text}); err != nil {
		a.report(err)
		return err
	}
	return a.List(ctx)
}

func (a *App) Remove(ctx context.Context, args []string) error {
	id, err := a.resolve(args)
	if err != nil {
		return err
	}
	if err := a.tasks.Remove(ctx, id); err != nil {
		a.report(err)
		return err
	}
	return a.List(ctx)
}

// resolve maps the first argument, a list position or a task id, to an id.
func (a *App) resolve(args []string) (string, error) {
	if err := a.requireLogin(); err != nil {
		return "", err
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: <command> <n>")
		return "", tasks.ErrTaskNotFound
	}

	list := a.tasks.Tasks()
	if n, err := strconv.Atoi(args[0]); err == nil {
		if n < 1 || n > len(list) {
			fmt.Fprintf(a.out, "No task #%d\n", n)
			return "", tasks.ErrTaskNotFound
		}
		return list[n-1].ID, nil
	}
	for _, t := range list {
		if t.ID == args[0] {
			return t.ID, nil
		}
	}
	fmt.Fprintf(a.out, "No task %q\n", args[0])
	return "", tasks.ErrTaskNotFound
}
