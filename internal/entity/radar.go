package entity

import (
	"database/sql"
	"time"
)

// Radar is a price watch on an origin/destination pair. TargetValue and the
// date bounds are optional; MonitorType is "moeda" or "milhas".
type Radar struct {
	ID          string          `db:"id"`
	UserID      string          `db:"user_id"`
	Origin      string          `db:"origin"`
	Destination string          `db:"destination"`
	StartDate   sql.NullString  `db:"start_date"`
	EndDate     sql.NullString  `db:"end_date"`
	TargetValue sql.NullFloat64 `db:"target_value"`
	MonitorType string          `db:"monitor_type"`
	IsActive    bool            `db:"is_active"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}
