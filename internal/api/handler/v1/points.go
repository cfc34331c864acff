package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clubsync/orghub/internal/api/handler/v1/request"
	"github.com/clubsync/orghub/internal/api/handler/v1/response"
	"github.com/clubsync/orghub/internal/api/middleware"
	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/service"
)

var errMissingMemberParam = errors.New("member query parameter is required")

type PointsService interface {
	GetMemberPoints(ctx context.Context, orgPrefix, identifier string) (domain.Organization, domain.Member, domain.MemberPoints, error)
	AwardPoints(ctx context.Context, orgPrefix, identifier string, transaction domain.PointTransaction) (domain.PointTransaction, error)
	Leaderboard(ctx context.Context, orgPrefix string, includeEmails bool) ([]domain.LeaderboardEntry, error)
	DeleteTransaction(ctx context.Context, orgPrefix string, id uint) error
}

type PointsHandler struct {
	svc PointsService
}

func NewPointsHandler(svc PointsService) *PointsHandler {
	return &PointsHandler{
		svc: svc,
	}
}

// HandleGetMemberPoints godoc
// @Summary      Get a member's points in an organization
// @Tags         points
// @Produce      json
// @Param        orgPrefix  path      string true  "organization prefix"
// @Param        member     query     string true  "member UUID, email or username"
// @Success      200  {object}  response.MemberPointsResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /{orgPrefix}/members/points [get]
func (h *PointsHandler) HandleGetMemberPoints(ctx *gin.Context) {
	if _, respErr := memberUUIDFromContext(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	orgPrefix := ctx.Param("orgPrefix")
	identifier := ctx.Query("member")
	if identifier == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errMissingMemberParam))
		return
	}

	org, member, points, err := h.svc.GetMemberPoints(ctx.Request.Context(), orgPrefix, identifier)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrgNotFound):
			response.RenderErr(ctx, response.ErrNotFound("organization", "prefix", orgPrefix))
		case errors.Is(err, service.ErrMemberNotFound), errors.Is(err, service.ErrNotMember):
			response.RenderErr(ctx, response.ErrNotFound("member", "identifier", identifier))
		default:
			err = fmt.Errorf("v1.HandleGetMemberPoints -> h.svc.GetMemberPoints -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.MemberPointsResponse{
		TotalPoints: points.TotalPoints,
		Breakdown:   points.Breakdown,
		Member: response.MemberSummary{
			UUID:     member.UUID,
			Email:    member.Email,
			Username: member.Username,
			Name:     member.Name,
		},
		Organization: response.OrganizationSummary{
			Name:   org.Name,
			Prefix: org.Prefix,
		},
	})
}

// HandleAwardPoints godoc
// @Summary      Record a point transaction for a member
// @Tags         points
// @Produce      json
// @Param        orgPrefix  path      string                      true "organization prefix"
// @Param        request    body      request.AwardPointsRequest  true "request body"
// @Success      201  {object}  domain.PointTransaction
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /{orgPrefix}/points/transactions [post]
func (h *PointsHandler) HandleAwardPoints(ctx *gin.Context) {
	if _, respErr := memberUUIDFromContext(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AwardPointsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	orgPrefix := ctx.Param("orgPrefix")
	transaction, err := h.svc.AwardPoints(ctx.Request.Context(), orgPrefix, req.Member, domain.PointTransaction{
		Event:     req.Event,
		Points:    *req.Points,
		AwardedBy: req.AwardedBy,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrgNotFound):
			response.RenderErr(ctx, response.ErrNotFound("organization", "prefix", orgPrefix))
		case errors.Is(err, service.ErrMemberNotFound), errors.Is(err, service.ErrNotMember):
			response.RenderErr(ctx, response.ErrNotFound("member", "identifier", req.Member))
		default:
			err = fmt.Errorf("v1.HandleAwardPoints -> h.svc.AwardPoints -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, transaction)
}

// HandleLeaderboard godoc
// @Summary      Get the organization's points leaderboard
// @Tags         points
// @Produce      json
// @Param        orgPrefix  path      string true "organization prefix"
// @Success      200  {object}  response.LeaderboardResponse
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /{orgPrefix}/points/leaderboard [get]
func (h *PointsHandler) HandleLeaderboard(ctx *gin.Context) {
	orgPrefix := ctx.Param("orgPrefix")

	// Authenticated callers see member emails; anonymous ones do not.
	includeEmails := ctx.GetString(middleware.ContextKeyMemberUUID) != ""

	entries, err := h.svc.Leaderboard(ctx.Request.Context(), orgPrefix, includeEmails)
	if err != nil {
		if errors.Is(err, service.ErrOrgNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("organization", "prefix", orgPrefix))
			return
		}

		err = fmt.Errorf("v1.HandleLeaderboard -> h.svc.Leaderboard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.LeaderboardResponse{
		Organization: response.OrganizationSummary{Prefix: orgPrefix},
		Entries:      entries,
	})
}

// HandleDeleteTransaction godoc
// @Summary      Delete a point transaction
// @Tags         points
// @Produce      json
// @Param        orgPrefix      path  string true "organization prefix"
// @Param        transactionID  path  int    true "transaction ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /{orgPrefix}/points/transactions/{transactionID} [delete]
func (h *PointsHandler) HandleDeleteTransaction(ctx *gin.Context) {
	if _, respErr := memberUUIDFromContext(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("transactionID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid transaction ID: %w", err)))
		return
	}

	orgPrefix := ctx.Param("orgPrefix")
	if err = h.svc.DeleteTransaction(ctx.Request.Context(), orgPrefix, uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrOrgNotFound):
			response.RenderErr(ctx, response.ErrNotFound("organization", "prefix", orgPrefix))
		case errors.Is(err, service.ErrTransactionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("transaction", "ID", id))
		default:
			err = fmt.Errorf("v1.HandleDeleteTransaction -> h.svc.DeleteTransaction -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}
