// Package auth implements the client-side authentication flow: the
// remote login/register/check calls and the application-wide session
// state built on top of them.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lucasvmx/painel/internal/api"
	"github.com/lucasvmx/painel/internal/session"
)

// Service performs the /auth remote operations and keeps the session
// store in sync with their results.
type Service struct {
	client *api.Client
	store  *session.Store
	log    *slog.Logger
}

// NewService creates the auth service.
func NewService(client *api.Client, store *session.Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{
		client: client,
		store:  store,
		log:    log.With("component", "auth-service"),
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session. A token-bearing success is
// persisted before returning. A success body without a token is
// returned as-is but never persisted. Failures propagate unchanged so
// the caller can show the server's message.
func (s *Service) Login(ctx context.Context, username, password string) (*api.Session, error) {
	s.log.Info("logging in", "username", username)

	var sess api.Session
	err := s.client.Post(ctx, "/auth/login", loginRequest{Username: username, Password: password}, &sess)
	if err != nil {
		s.log.Error("login failed", "username", username, "err", err)
		return nil, err
	}

	if sess.Token == "" {
		s.log.Warn("login response had no token, nothing persisted", "username", username)
		return &sess, nil
	}

	if err := s.store.Save(&sess); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	s.log.Info("login succeeded", "username", sess.Username, "roles", sess.Roles)
	return &sess, nil
}

// Register creates a new account. It never touches the session store;
// registering does not log the user in.
func (s *Service) Register(ctx context.Context, username, email, password string) (*api.RegisterResult, error) {
	s.log.Info("registering account", "username", username, "email", email)

	var result api.RegisterResult
	err := s.client.Post(ctx, "/auth/register", registerRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, &result)
	if err != nil {
		s.log.Error("registration failed", "username", username, "err", err)
		return nil, err
	}
	return &result, nil
}

// Logout discards the stored session. There is no remote call and no
// failure mode.
func (s *Service) Logout() {
	s.log.Info("logging out")
	s.store.Clear()
}

// CheckAuth asks the backend whether the attached credential is still
// valid. It is best-effort: an expired token, a network error or a
// server error all come back as nil, never as an error.
func (s *Service) CheckAuth(ctx context.Context) *api.CheckStatus {
	var status api.CheckStatus
	if err := s.client.Get(ctx, "/auth/check", &status); err != nil {
		s.log.Warn("auth check failed", "err", err)
		return nil
	}
	return &status
}

// Me fetches the current user's profile. Best-effort like CheckAuth.
func (s *Service) Me(ctx context.Context) *api.Profile {
	var profile api.Profile
	if err := s.client.Get(ctx, "/auth/me", &profile); err != nil {
		s.log.Warn("profile fetch failed", "err", err)
		return nil
	}
	return &profile
}
