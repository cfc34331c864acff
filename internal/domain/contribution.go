package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Officer struct {
	UUID           string `json:"uuid"`
	OrganizationID uint   `json:"organization_id"`
	Email          string `json:"email,omitempty"`
	Name           string `json:"name"`
	Title          string `json:"title"`
	Department     string `json:"department"`
}

// OfficerContribution records one officer's work at one event. BasePoints
// and Timestamp are immutable after creation; Weight is admin-adjustable.
type OfficerContribution struct {
	ID             uint            `json:"id"`
	OrganizationID uint            `json:"organization_id"`
	OfficerUUID    string          `json:"officer_uuid"`
	Event          string          `json:"event"`
	EventType      string          `json:"event_type"`
	Role           string          `json:"role"`
	BasePoints     int             `json:"base_points"`
	Weight         decimal.Decimal `json:"weight"`
	Timestamp      *time.Time      `json:"timestamp"`
	SourcePageID   string          `json:"source_page_id,omitempty"`
}

// WeightedPoints is BasePoints × Weight, recomputed on every read.
func (c OfficerContribution) WeightedPoints() decimal.Decimal {
	return decimal.NewFromInt(int64(c.BasePoints)).Mul(c.Weight)
}

// OfficerAggregate is one officer's totals over a date range.
type OfficerAggregate struct {
	Officer         Officer               `json:"officer"`
	TotalPoints     decimal.Decimal       `json:"total_points"`
	TotalBasePoints int                   `json:"total_base_points"`
	Contributions   []OfficerContribution `json:"contributions"`
}
