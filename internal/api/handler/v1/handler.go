package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubsync/orghub/internal/api/handler/v1/response"
	"github.com/clubsync/orghub/internal/api/middleware"
)

var errNotAuthenticated = errors.New("not authenticated")

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Produce      json
// @Success      200 {string} string
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, "ok")
}

// memberUUIDFromContext reads the UUID deposited by the authenticator.
func memberUUIDFromContext(ctx *gin.Context) (string, *response.Err) {
	memberUUID := ctx.GetString(middleware.ContextKeyMemberUUID)
	if memberUUID == "" {
		return "", response.ErrUnauthorized(errNotAuthenticated)
	}

	return memberUUID, nil
}
