package domain

import "time"

// RefreshToken is an opaque server-side token backing the login token pair.
type RefreshToken struct {
	ID        uint      `json:"id"`
	Token     string    `json:"token"`
	MemberID  uint      `json:"member_id"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}
