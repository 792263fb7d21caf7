package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lucasvmx/painel/internal/api"
)

func testSession() *api.Session {
	return &api.Session{
		Token:    "abc.def.ghi",
		Type:     "Bearer",
		ID:       7,
		Username: "maria",
		Email:    "maria@example.com",
		Roles:    []string{"ROLE_USER", "ROLE_ADMIN"},
	}
}

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))

	want := testSession()
	require.NoError(t, store.Save(want))

	got := store.Load()
	require.NotNil(t, got)
	require.Equal(t, want, got)
	require.Equal(t, "abc.def.ghi", store.Token())
}

func TestStore_LoadMissing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.Nil(t, store.Load())
	require.Empty(t, store.Token())
}

func TestStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewStore(path)
	require.Nil(t, store.Load())
}

func TestStore_LoadIncomplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"username":"maria"}`), 0o600))

	store := NewStore(path)
	require.Nil(t, store.Load(), "record without a token is not a session")
}

func TestStore_SaveOverwrites(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))

	first := testSession()
	require.NoError(t, store.Save(first))

	second := testSession()
	second.Token = "new-token"
	second.Username = "joao"
	require.NoError(t, store.Save(second))

	got := store.Load()
	require.NotNil(t, got)
	require.Equal(t, "new-token", got.Token)
	require.Equal(t, "joao", got.Username)
}

func TestStore_ClearIdempotent(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))

	require.NoError(t, store.Save(testSession()))
	store.Clear()
	require.Nil(t, store.Load())

	// Clearing again must not panic or recreate anything.
	store.Clear()
	require.Nil(t, store.Load())
}

func TestStore_SaveCreatesParentDir(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nested", "dir", "session.json"))
	require.NoError(t, store.Save(testSession()))
	require.NotNil(t, store.Load())
}

func TestStore_HasRole(t *testing.T) {
	sess := testSession()
	require.True(t, sess.HasRole("ROLE_ADMIN"))
	require.False(t, sess.HasRole("ROLE_MODERATOR"))

	var nilSess *api.Session
	require.False(t, nilSess.HasRole("ROLE_USER"))
}
