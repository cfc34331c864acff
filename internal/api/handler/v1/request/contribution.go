package request

import (
	"encoding/json"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// UpdateWeightRequest carries the new weight as a json.Number so that
// non-numeric payloads fail binding with 400 before reaching the service.
type UpdateWeightRequest struct {
	Weight json.Number `json:"weight"`
}

func (req *UpdateWeightRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Weight, validation.Required),
	)
}

type AddContributionRequest struct {
	Org          string     `json:"org"`
	OfficerName  string     `json:"officer_name"`
	OfficerEmail string     `json:"officer_email"`
	Event        string     `json:"event"`
	EventType    string     `json:"event_type"`
	Role         string     `json:"role"`
	BasePoints   int        `json:"base_points"`
	Timestamp    *time.Time `json:"timestamp"`
}

func (req *AddContributionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Org, validation.Required),
		validation.Field(&req.OfficerName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Event, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Role, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.BasePoints, validation.Min(1)),
	)
}
