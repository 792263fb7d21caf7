package cache

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lucasvmx/painel/internal/api"
)

// GetProfile retrieves a cached profile. The second return value
// reports whether the entry is still fresh for the given TTL. A row
// whose roles column no longer parses counts as a miss.
func (d *DB) GetProfile(username string, ttl time.Duration) (*api.Profile, bool, error) {
	row := d.db.QueryRow(`SELECT user_id, email, roles, fetched_at FROM profiles WHERE username = ?`, username)

	var profile api.Profile
	var email sql.NullString
	var roles string
	var fetchedAt int64

	err := row.Scan(&profile.ID, &email, &roles, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := json.Unmarshal([]byte(roles), &profile.Roles); err != nil {
		return nil, false, nil
	}
	profile.Username = username
	profile.Email = email.String

	isFresh := time.Since(time.Unix(fetchedAt, 0)) < ttl
	return &profile, isFresh, nil
}

// PutProfile stores a profile, replacing any prior entry for the user.
func (d *DB) PutProfile(profile *api.Profile) error {
	roles, err := json.Marshal(profile.Roles)
	if err != nil {
		return err
	}
	_, err = d.db.Exec(`INSERT OR REPLACE INTO profiles (username, user_id, email, roles, fetched_at) VALUES (?, ?, ?, ?, ?)`,
		profile.Username, profile.ID, nullStr(profile.Email), string(roles), time.Now().Unix())
	return err
}

// DeleteProfile removes a cached profile. Missing rows are fine.
func (d *DB) DeleteProfile(username string) error {
	_, err := d.db.Exec(`DELETE FROM profiles WHERE username = ?`, username)
	return err
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
