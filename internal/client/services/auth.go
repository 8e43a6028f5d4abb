// Package services contains application services for the to-do client.
// This file defines the authentication service: register, login, session
// restore across runs, logout and the liveness probe.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/todolist/internal/client/client"
	"github.com/dmitrijs2005/todolist/internal/client/models"
	"github.com/dmitrijs2005/todolist/internal/client/session"
	"github.com/dmitrijs2005/todolist/internal/common"
)

// SessionStore persists the current session between runs.
type SessionStore interface {
	Save(ctx context.Context, s session.Session) error
	Load(ctx context.Context) (*session.Session, error)
	Clear(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.AuthResult, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Restore(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser() *models.User
	Ping(ctx context.Context) error
}

type authService struct {
	client   client.Client
	sessions SessionStore

	mu   sync.RWMutex
	user *models.User
}

func NewAuthService(c client.Client, s SessionStore) AuthService {
	return &authService{client: c, sessions: s}
}

// Register creates the account and signs the user in with the returned token.
func (a *authService) Register(ctx context.Context, name, email, password string) (*models.AuthResult, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, common.ErrValidation
	}

	res, err := a.client.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	if err := a.start(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, common.ErrValidation
	}

	res, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := a.start(ctx, res); err != nil {
		return nil, err
	}
	return &res.User, nil
}

func (a *authService) start(ctx context.Context, res *models.AuthResult) error {
	if err := a.sessions.Save(ctx, session.Session{Token: res.Token, User: res.User}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	a.client.SetToken(res.Token)

	u := res.User
	a.mu.Lock()
	a.user = &u
	a.mu.Unlock()
	return nil
}

// Restore signs back in with the stored token, if any. The token is not
// verified here; the first rejected request ends the session.
func (a *authService) Restore(ctx context.Context) (*models.User, error) {
	s, err := a.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	a.client.SetToken(s.Token)

	u := s.User
	a.mu.Lock()
	a.user = &u
	a.mu.Unlock()
	return &u, nil
}

// Logout forgets the token locally; there is no server-side session.
func (a *authService) Logout(ctx context.Context) error {
	a.client.SetToken("")
	a.mu.Lock()
	a.user = nil
	a.mu.Unlock()

	if err := a.sessions.Clear(ctx); err != nil && !errors.Is(err, session.ErrNoSession) {
		return err
	}
	return nil
}

func (a *authService) CurrentUser() *models.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
