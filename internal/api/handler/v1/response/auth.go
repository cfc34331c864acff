package response

import "github.com/clubsync/orghub/internal/domain"

type LoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	Member       domain.Member `json:"member"`
}
