package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type AwardPointsRequest struct {
	Member    string     `json:"member"`
	Event     string     `json:"event"`
	Points    *float64   `json:"points"`
	AwardedBy string     `json:"awarded_by"`
	Timestamp *time.Time `json:"timestamp"`
}

func (req *AwardPointsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Member, validation.Required),
		validation.Field(&req.Event, validation.Required, validation.Length(1, 200)),
		// NotNil rather than Required: a zero-point transaction is valid,
		// only a missing points field is not.
		validation.Field(&req.Points, validation.NotNil),
	)
}
