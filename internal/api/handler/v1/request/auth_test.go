package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequestValidate(t *testing.T) {
	valid := SignupRequest{
		Email:           "alex@example.com",
		Password:        "hunter2hunter2",
		ConfirmPassword: "hunter2hunter2",
		Username:        "alex",
		Name:            "Alex",
	}

	tests := []struct {
		name    string
		mutate  func(*SignupRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(*SignupRequest) {}},
		{
			name:    "malformed email",
			mutate:  func(r *SignupRequest) { r.Email = "not-an-email" },
			wantErr: true,
		},
		{
			name: "password too short",
			mutate: func(r *SignupRequest) {
				r.Password = "ab1"
				r.ConfirmPassword = "ab1"
			},
			wantErr: true,
		},
		{
			name: "password without a digit",
			mutate: func(r *SignupRequest) {
				r.Password = "onlyletters"
				r.ConfirmPassword = "onlyletters"
			},
			wantErr: true,
		},
		{
			name: "password without a letter",
			mutate: func(r *SignupRequest) {
				r.Password = "12345678"
				r.ConfirmPassword = "12345678"
			},
			wantErr: true,
		},
		{
			name:    "confirm mismatch",
			mutate:  func(r *SignupRequest) { r.ConfirmPassword = "different2pass" },
			wantErr: true,
		},
		{
			name:    "username too short",
			mutate:  func(r *SignupRequest) { r.Username = "a" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
