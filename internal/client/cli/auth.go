package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todolist/internal/client/client"
	"github.com/dmitrijs2005/todolist/internal/client/session"
	"github.com/dmitrijs2005/todolist/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Register prompts for name, email and password and creates the account.
// A successful registration also signs the user in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	res, err := a.auth.Register(ctx, name, email, password)
	if err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintln(a.out, res.Message)
	return a.afterLogin(ctx)
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	u, err := a.auth.Login(ctx, email, password)
	if err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintf(a.out, "Hello, %s!\n", u.Name)
	return a.afterLogin(ctx)
}

// Logout forgets the stored session and the local task list.
func (a *App) Logout(ctx context.Context) error {
	a.tasks.Reset()
	if err := a.auth.Logout(ctx); err != nil {
		a.logger.Error(ctx, "logout failed", "error", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) afterLogin(ctx context.Context) error {
	if err := a.tasks.Load(ctx); err != nil {
		a.report(err)
		return err
	}
	return a.List(ctx)
}

// restore signs back in with the stored session, if any.
func (a *App) restore(ctx context.Context) {
	u, err := a.auth.Restore(ctx)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			a.logger.Warn(ctx, "session restore failed", "error", err)
		}
		fmt.Fprintln(a.out, "Not logged in. Use 'login' or 'register'.")
		return
	}

	fmt.Fprintf(a.out, "Welcome back, %s!\n", u.Name)
	if err := a.tasks.Load(ctx); err != nil {
		a.report(err)
	}
}

// sessionExpired is the task store's logout hook.
func (a *App) sessionExpired(ctx context.Context) {
	a.tasks.Reset()
	if err := a.auth.Logout(ctx); err != nil {
		a.logger.Error(ctx, "logout failed", "error", err)
	}
	fmt.Fprintln(a.out, "Session expired, please log in again.")
}

// report prints a user-facing line for err. Server messages are shown as
// sent; transport problems get a generic hint.
func (a *App) report(err error) {
	var he *client.HTTPError
	switch {
	case errors.As(err, &he) && he.Message != "":
		fmt.Fprintln(a.out, he.Message)
	case errors.Is(err, client.ErrUnauthorized):
		// sessionExpired already told the user
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable, try again later.")
	case errors.Is(err, common.ErrValidation):
		fmt.Fprintln(a.out, "Please fill in all fields.")
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
}
