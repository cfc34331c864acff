package domain

import "time"

// PointTransaction is an immutable points delta. A member's total is the
// sum of all their transactions in one organization, never a stored figure.
type PointTransaction struct {
	ID             uint       `json:"id"`
	OrganizationID uint       `json:"organization_id"`
	MemberID       uint       `json:"member_id"`
	Event          string     `json:"event"`
	Points         float64    `json:"points"`
	AwardedBy      string     `json:"awarded_by,omitempty"`
	Timestamp      *time.Time `json:"timestamp"`
}

// MemberPoints is the aggregation result for one member: the database-side
// total plus a bounded, most-recent-first breakdown.
type MemberPoints struct {
	TotalPoints float64            `json:"total_points"`
	Breakdown   []PointTransaction `json:"breakdown"`
}

// LeaderboardEntry is one row of an organization's points leaderboard.
// Email is only populated for authenticated callers.
type LeaderboardEntry struct {
	MemberUUID  string  `json:"member_uuid"`
	Username    string  `json:"username"`
	Email       string  `json:"email,omitempty"`
	TotalPoints float64 `json:"total_points"`
}
