// Package session persists the current login session to disk.
//
// The store is a single slot: one JSON file holding the last successful
// login response. There is no in-memory copy; every Load re-reads the
// file so concurrent writers (the auth service) and readers (the HTTP
// transport attaching the token) always see the latest state.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/lucasvmx/painel/internal/api"
)

// Store reads and writes the session file.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save writes the full session record, replacing any prior one.
func (s *Store) Save(sess *api.Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Load returns the stored session, or nil if there is none. A missing
// file, unparsable contents, or a record without a token or username
// all count as "no session" — a broken file never propagates an error.
func (s *Store) Load() *api.Session {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var sess api.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil
	}
	if sess.Token == "" || sess.Username == "" {
		return nil
	}
	return &sess
}

// Token returns the stored bearer token, or "" when logged out.
func (s *Store) Token() string {
	if sess := s.Load(); sess != nil {
		return sess.Token
	}
	return ""
}

// Clear removes the session file. Clearing an empty store is a no-op.
func (s *Store) Clear() {
	os.Remove(s.path)
}
