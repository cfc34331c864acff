package response

import "github.com/clubsync/orghub/internal/domain"

// MemberPointsResponse is the aggregation payload: database-side total,
// bounded most-recent-first breakdown, and the resolved member and
// organization.
type MemberPointsResponse struct {
	TotalPoints  float64                   `json:"total_points"`
	Breakdown    []domain.PointTransaction `json:"breakdown"`
	Member       MemberSummary             `json:"member"`
	Organization OrganizationSummary       `json:"organization"`
}

type MemberSummary struct {
	UUID     string `json:"uuid"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type OrganizationSummary struct {
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
}

type LeaderboardResponse struct {
	Organization OrganizationSummary       `json:"organization"`
	Entries      []domain.LeaderboardEntry `json:"entries"`
}
