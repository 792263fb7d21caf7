package auth

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lucasvmx/painel/internal/api"
)

// RoleAdmin marks administrator accounts.
const RoleAdmin = "ROLE_ADMIN"

// User is the display projection of the current session. It carries
// everything the UI needs and deliberately omits the bearer token,
// which stays in the session store.
type User struct {
	ID       int64
	Username string
	Email    string
	Roles    []string
}

// State is the application-wide session state: who is logged in, and
// whether the startup revalidation has finished. The UI model reads it
// on every render; mutations happen from command goroutines, hence the
// mutex.
type State struct {
	svc *Service
	log *slog.Logger

	mu      sync.Mutex
	user    *api.Session
	loading bool
}

// NewState creates the session state. It starts in the loading phase,
// which Bootstrap ends.
func NewState(svc *Service, log *slog.Logger) *State {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &State{
		svc:     svc,
		log:     log.With("component", "auth-state"),
		loading: true,
	}
}

// Bootstrap runs the one-time startup sequence: load any persisted
// session, revalidate it against the backend, and settle into either
// an authenticated or logged-out steady state. It never returns an
// error; the worst outcome is ending up logged out. Calling it again
// after it has completed is a no-op.
func (st *State) Bootstrap(ctx context.Context) {
	st.mu.Lock()
	if !st.loading {
		st.mu.Unlock()
		return
	}
	st.mu.Unlock()

	defer func() {
		st.mu.Lock()
		st.loading = false
		st.mu.Unlock()
	}()

	stored := st.svc.store.Load()
	if stored == nil {
		st.log.Debug("no stored session")
		return
	}

	st.log.Debug("revalidating stored session", "username", stored.Username)
	status := st.svc.CheckAuth(ctx)
	if status == nil || !status.Authenticated {
		st.log.Info("stored session is stale, discarding", "username", stored.Username)
		st.svc.Logout()
		return
	}

	st.mu.Lock()
	st.user = stored
	st.mu.Unlock()
	st.log.Info("session restored", "username", stored.Username)
}

// Login authenticates and, on success, makes the returned session the
// current user. On failure the current user is left untouched and the
// error propagates for the UI to display.
func (st *State) Login(ctx context.Context, username, password string) (*User, error) {
	sess, err := st.svc.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	st.user = sess
	st.mu.Unlock()
	return project(sess), nil
}

// Register creates an account. It is a pure passthrough: the current
// user never changes, success or not.
func (st *State) Register(ctx context.Context, username, email, password string) (*api.RegisterResult, error) {
	return st.svc.Register(ctx, username, email, password)
}

// Logout clears the stored session and the current user. The UI is
// expected to drop every authenticated view in response.
func (st *State) Logout() {
	st.svc.Logout()
	st.mu.Lock()
	st.user = nil
	st.mu.Unlock()
}

// Invalidate handles a credential rejection raised by the transport:
// the session is gone, locally and in memory. Wired to
// api.Client.OnUnauthorized.
func (st *State) Invalidate() {
	st.log.Warn("credential rejected by backend, clearing session")
	st.svc.store.Clear()
	st.mu.Lock()
	st.user = nil
	st.mu.Unlock()
}

// Loading reports whether the startup revalidation is still running.
func (st *State) Loading() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.loading
}

// CurrentUser returns the display projection of the logged-in user, or
// nil when logged out.
func (st *State) CurrentUser() *User {
	st.mu.Lock()
	defer st.mu.Unlock()
	return project(st.user)
}

// IsAuthenticated reports whether someone is logged in.
func (st *State) IsAuthenticated() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.user != nil
}

// IsAdmin reports whether the logged-in user has the admin role.
func (st *State) IsAdmin() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.user.HasRole(RoleAdmin)
}

func project(sess *api.Session) *User {
	if sess == nil {
		return nil
	}
	roles := make([]string, len(sess.Roles))
	copy(roles, sess.Roles)
	return &User{
		ID:       sess.ID,
		Username: sess.Username,
		Email:    sess.Email,
		Roles:    roles,
	}
}
