package domain

import "time"

// Organization is a tenant. Its Prefix scopes every org-bound route.
type Organization struct {
	ID                  uint       `json:"id"`
	Name                string     `json:"name"`
	Prefix              string     `json:"prefix"`
	Description         string     `json:"description"`
	IsActive            bool       `json:"is_active"`
	PointsPerEvent      int        `json:"points_per_event"`
	CalendarSyncEnabled bool       `json:"calendar_sync_enabled"`
	CalendarSourceID    string     `json:"calendar_source_id,omitempty"`
	LastSyncAt          *time.Time `json:"last_sync_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
