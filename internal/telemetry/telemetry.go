// Package telemetry records analytics events raised by the UI layer.
package telemetry

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is one recorded analytics event.
type Event struct {
	ID        string
	Name      string
	Params    map[string]string
	SessionID string
	CreatedAt time.Time
}

// Count is the number of times an event name was recorded.
type Count struct {
	Name  string
	Count int
}

// Recorder persists analytics events in the analytics_events table.
type Recorder struct {
	db      *sql.DB
	session string
	now     func() time.Time
}

// NewRecorder returns a Recorder tagging every event with a fresh session id.
func NewRecorder(db *sql.DB) *Recorder {
	return &Recorder{db: db, session: uuid.NewString(), now: time.Now}
}

// Session returns the id attached to events recorded by r.
func (r *Recorder) Session() string { return r.session }

// Record stores an event and returns its id.
func (r *Recorder) Record(name string, params map[string]string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("invalid event: name cannot be empty")
	}
	var raw []byte
	if len(params) > 0 {
		var err error
		if raw, err = json.Marshal(params); err != nil {
			return "", fmt.Errorf("encode params: %w", err)
		}
	}
	id := uuid.NewString()
	_, err := r.db.Exec("INSERT INTO analytics_events (id, name, params, session_id, created_at) VALUES (?, ?, ?, ?, ?)",
		id, name, nullable(raw), r.session, r.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}
	return id, nil
}

// Recent returns up to limit events, newest first.
func (r *Recorder) Recent(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(`SELECT id, name, params, session_id, created_at FROM analytics_events
		ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Event
	for rows.Next() {
		var ev Event
		var params, session sql.NullString
		var created string
		if err := rows.Scan(&ev.ID, &ev.Name, &params, &session, &created); err != nil {
			return nil, err
		}
		if params.Valid && params.String != "" {
			if err := json.Unmarshal([]byte(params.String), &ev.Params); err != nil {
				return nil, fmt.Errorf("decode params for %s: %w", ev.ID, err)
			}
		}
		ev.SessionID = session.String
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			ev.CreatedAt = ts
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// Counts returns per-name totals, most frequent first.
func (r *Recorder) Counts() ([]Count, error) {
	rows, err := r.db.Query("SELECT name, COUNT(*) AS n FROM analytics_events GROUP BY name ORDER BY n DESC, name ASC")
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []Count
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func nullable(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
