// Package prefs stores small key/value preferences in the statussaver database.
package prefs

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

const (
	// KeyLastLocation holds the last browsed status location.
	KeyLastLocation = "last_location"
	// KeyLastFallback records that the last location is a device or backup
	// root rather than a status folder.
	KeyLastFallback = "last_fallback"
)

// Repository reads and writes rows of the preferences table.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository using db.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the value for key and whether it was present.
func (r *Repository) Get(key string) (string, bool, error) {
	var v string
	err := r.db.QueryRow("SELECT value FROM preferences WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %q: %w", key, err)
	}
	return v, true, nil
}

// Set upserts key. An empty value removes the key.
func (r *Repository) Set(key, value string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("invalid key: key cannot be empty")
	}
	if value == "" {
		return r.Delete(key)
	}
	_, err := r.db.Exec(`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`, key, value)
	if err != nil {
		return fmt.Errorf("set preference %q: %w", key, err)
	}
	return nil
}

// Delete removes key; deleting a missing key is not an error.
func (r *Repository) Delete(key string) error {
	if _, err := r.db.Exec("DELETE FROM preferences WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete preference %q: %w", key, err)
	}
	return nil
}

// GetBool reports whether key holds "true".
func (r *Repository) GetBool(key string) (bool, error) {
	v, _, err := r.Get(key)
	return v == "true", err
}

// SetBool stores "true" for v and removes key otherwise.
func (r *Repository) SetBool(key string, v bool) error {
	if v {
		return r.Set(key, "true")
	}
	return r.Set(key, "")
}
