package request

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Prefixes are lowercase slugs; they appear in every org-scoped route.
var prefixExp = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type OrganizationRequest struct {
	Name                string `json:"name"`
	Prefix              string `json:"prefix"`
	Description         string `json:"description"`
	PointsPerEvent      int    `json:"points_per_event"`
	CalendarSyncEnabled bool   `json:"calendar_sync_enabled"`
	CalendarSourceID    string `json:"calendar_source_id"`
}

func (req *OrganizationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Prefix, validation.Required, validation.Length(2, 30), validation.Match(prefixExp)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.PointsPerEvent, validation.Min(0)),
	)
}
