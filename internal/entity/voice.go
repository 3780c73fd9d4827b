package entity

import (
	"time"

	"github.com/lib/pq"
)

// VoiceUtterance is one transcript the interpreter processed, kept for the
// command history screen.
type VoiceUtterance struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	SessionID  string    `db:"session_id"`
	Transcript string    `db:"transcript"`
	Intent     string    `db:"intent"`
	Confidence int       `db:"confidence"`
	Outcome    string    `db:"outcome"`
	CreatedAt  time.Time `db:"created_at"`
}

type RouteMapping struct {
	RouteID     string         `db:"route_id"`
	Path        string         `db:"path"`
	DisplayName string         `db:"display_name"`
	Keywords    pq.StringArray `db:"keywords"`
	IsActive    bool           `db:"is_active"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}
