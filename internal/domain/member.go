package domain

import "time"

type Member struct {
	ID         uint      `json:"id"`
	UUID       string    `json:"uuid"`
	ExternalID string    `json:"external_id,omitempty"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	Password   string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Membership ties a member to one organization. A member cannot transact
// points in an organization without an active membership.
type Membership struct {
	ID             uint      `json:"id"`
	MemberID       uint      `json:"member_id"`
	OrganizationID uint      `json:"organization_id"`
	IsActive       bool      `json:"is_active"`
	JoinedAt       time.Time `json:"joined_at"`
}
