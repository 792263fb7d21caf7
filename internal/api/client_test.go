package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler, token TokenFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, token, nil)
}

func TestClient_AttachesFreshToken(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	var token string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Header.Get("Authorization"))
		mu.Unlock()
		w.Write([]byte(`{}`))
	}), func() string {
		mu.Lock()
		defer mu.Unlock()
		return token
	})

	require.NoError(t, client.Get(context.Background(), "/auth/check", nil))

	// Simulates a login writing the store after the client exists.
	mu.Lock()
	token = "tok-123"
	mu.Unlock()

	require.NoError(t, client.Get(context.Background(), "/auth/check", nil))

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"", "Bearer tok-123"}, seen,
		"token must be read per request, not cached at construction")
}

func TestClient_SetsRequestHeaders(t *testing.T) {
	var gotUA, gotReqID, gotCT string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotReqID = r.Header.Get("X-Request-Id")
		gotCT = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}), nil)

	require.NoError(t, client.Post(context.Background(), "/auth/login",
		map[string]string{"username": "u"}, nil))

	require.Equal(t, userAgent, gotUA)
	require.NotEmpty(t, gotReqID)
	require.Equal(t, "application/json", gotCT)
}

func TestClient_UnauthorizedFiresEvent(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Token expirado"}`))
	}), func() string { return "stale-token" })

	var fired int
	client.OnUnauthorized(func() { fired++ })

	err := client.Get(context.Background(), "/auth/me", nil)
	require.Error(t, err)
	require.True(t, IsUnauthorized(err))
	require.Equal(t, "Token expirado", err.Error())
	require.Equal(t, 1, fired, "one rejection fires the event exactly once")
}

func TestClient_UnauthorizedWithoutTokenIsSilent(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Credenciais inválidas"}`))
	}), nil)

	var fired int
	client.OnUnauthorized(func() { fired++ })

	err := client.Post(context.Background(), "/auth/login", map[string]string{"username": "u"}, nil)
	require.Error(t, err)
	require.True(t, IsUnauthorized(err))
	require.Zero(t, fired, "a rejected login attempt is not a session rejection")
}

func TestClient_ServerErrorMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"Erro: Username já está em uso!"}`))
	}), nil)

	var fired int
	client.OnUnauthorized(func() { fired++ })

	err := client.Post(context.Background(), "/auth/register", nil, nil)
	require.Error(t, err)
	require.False(t, IsUnauthorized(err))
	require.Equal(t, "Erro: Username já está em uso!", err.Error())
	require.Zero(t, fired, "non-401 failures are not credential rejections")
}

func TestClient_ErrorWithoutMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), nil)

	err := client.Get(context.Background(), "/auth/check", nil)
	require.Error(t, err)
	require.Equal(t, "request failed with status 500", err.Error())
}

func TestClient_DecodesResponse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"authenticated":true,"username":"maria"}`))
	}), nil)

	var status CheckStatus
	require.NoError(t, client.Get(context.Background(), "/auth/check", &status))
	require.True(t, status.Authenticated)
	require.Equal(t, "maria", status.Username)
}

func TestErrorMessage_Fallback(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond, nil, nil)

	err := client.Get(context.Background(), "/auth/check", nil)
	require.Error(t, err)
	require.Equal(t, "could not reach the server, try again", ErrorMessage(err))
}
