package auth

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lucasvmx/painel/internal/api"
)

func storedSession() *api.Session {
	return &api.Session{
		Token:    "jwt-token-abc",
		Type:     "Bearer",
		ID:       1,
		Username: "maria",
		Email:    "maria@example.com",
		Roles:    []string{"ROLE_USER"},
	}
}

func TestState_BootstrapNoSession(t *testing.T) {
	f := newFixture(t, authBackend(t))
	st := NewState(f.svc, nil)

	require.True(t, st.Loading())
	require.False(t, st.IsAuthenticated())

	st.Bootstrap(context.Background())

	require.False(t, st.Loading())
	require.False(t, st.IsAuthenticated())
	require.Nil(t, st.CurrentUser())
}

func TestState_BootstrapValidSession(t *testing.T) {
	f := newFixture(t, authBackend(t))
	require.NoError(t, f.store.Save(storedSession()))

	st := NewState(f.svc, nil)
	st.Bootstrap(context.Background())

	require.False(t, st.Loading())
	require.True(t, st.IsAuthenticated())

	user := st.CurrentUser()
	require.NotNil(t, user)
	require.Equal(t, "maria", user.Username)
	require.Equal(t, "maria@example.com", user.Email)
	require.Equal(t, []string{"ROLE_USER"}, user.Roles)
	require.NotNil(t, f.store.Load(), "a valid session stays persisted")
}

func TestState_BootstrapStaleSession(t *testing.T) {
	f := newFixture(t, authBackend(t))
	stale := storedSession()
	stale.Token = "expired-token"
	require.NoError(t, f.store.Save(stale))

	st := NewState(f.svc, nil)
	st.Bootstrap(context.Background())

	require.False(t, st.Loading())
	require.False(t, st.IsAuthenticated())
	require.Nil(t, f.store.Load(), "a stale session must be cleared")
}

func TestState_BootstrapCheckUnreachable(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	require.NoError(t, f.store.Save(storedSession()))

	st := NewState(f.svc, nil)
	st.Bootstrap(context.Background())

	require.False(t, st.Loading())
	require.False(t, st.IsAuthenticated(), "unverifiable means logged out")
}

func TestState_BootstrapRunsOnce(t *testing.T) {
	f := newFixture(t, authBackend(t))
	st := NewState(f.svc, nil)

	st.Bootstrap(context.Background())

	// A second bootstrap must not resurrect a session saved afterwards.
	require.NoError(t, f.store.Save(storedSession()))
	st.Bootstrap(context.Background())
	require.False(t, st.IsAuthenticated())
}

func TestState_LoginSuccess(t *testing.T) {
	f := newFixture(t, authBackend(t))
	st := NewState(f.svc, nil)
	st.Bootstrap(context.Background())

	user, err := st.Login(context.Background(), "maria", "secret")
	require.NoError(t, err)
	require.Equal(t, "maria", user.Username)

	require.True(t, st.IsAuthenticated())
	require.NotNil(t, f.store.Load())
}

func TestState_LoginFailureLeavesStateUntouched(t *testing.T) {
	f := newFixture(t, authBackend(t))
	st := NewState(f.svc, nil)
	st.Bootstrap(context.Background())

	user, err := st.Login(context.Background(), "maria", "wrong")
	require.Nil(t, user)
	require.Error(t, err)
	require.Equal(t, "Credenciais inválidas", err.Error())

	require.False(t, st.IsAuthenticated())
	require.Nil(t, st.CurrentUser())
}

func TestState_Register(t *testing.T) {
	f := newFixture(t, authBackend(t))
	st := NewState(f.svc, nil)
	st.Bootstrap(context.Background())

	result, err := st.Register(context.Background(), "joao", "joao@example.com", "pw123456")
	require.NoError(t, err)
	require.NotEmpty(t, result.Message)

	require.False(t, st.IsAuthenticated(), "registration does not imply login")
	require.Nil(t, f.store.Load())
}

func TestState_Logout(t *testing.T) {
	f := newFixture(t, authBackend(t))
	st := NewState(f.svc, nil)
	st.Bootstrap(context.Background())

	_, err := st.Login(context.Background(), "maria", "secret")
	require.NoError(t, err)

	st.Logout()
	require.False(t, st.IsAuthenticated())
	require.Nil(t, st.CurrentUser())
	require.Nil(t, f.store.Load())
}

func TestState_IsAdmin(t *testing.T) {
	f := newFixture(t, authBackend(t))
	admin := storedSession()
	admin.Roles = []string{"ROLE_USER", "ROLE_ADMIN"}
	require.NoError(t, f.store.Save(admin))

	st := NewState(f.svc, nil)
	st.Bootstrap(context.Background())
	require.True(t, st.IsAdmin())

	st.Logout()
	require.False(t, st.IsAdmin())
}

func TestState_IsAdminWithoutRole(t *testing.T) {
	f := newFixture(t, authBackend(t))
	st := NewState(f.svc, nil)
	st.Bootstrap(context.Background())

	_, err := st.Login(context.Background(), "maria", "secret")
	require.NoError(t, err)
	require.True(t, st.IsAuthenticated())
	require.False(t, st.IsAdmin())
}

func TestState_InvalidateOnCredentialRejection(t *testing.T) {
	f := newFixture(t, authBackend(t))
	require.NoError(t, f.store.Save(storedSession()))

	st := NewState(f.svc, nil)
	f.client.OnUnauthorized(st.Invalidate)
	st.Bootstrap(context.Background())
	require.True(t, st.IsAuthenticated())

	// Corrupt the stored token, then hit an authenticated endpoint: the
	// 401 must clear both the store and the in-memory user.
	broken := storedSession()
	broken.Token = "expired-token"
	require.NoError(t, f.store.Save(broken))

	require.Nil(t, f.svc.Me(context.Background()))
	require.False(t, st.IsAuthenticated())
	require.Nil(t, f.store.Load())
}

func TestState_ProjectionOmitsToken(t *testing.T) {
	user := project(storedSession())
	require.Equal(t, &User{
		ID:       1,
		Username: "maria",
		Email:    "maria@example.com",
		Roles:    []string{"ROLE_USER"},
	}, user)
}
