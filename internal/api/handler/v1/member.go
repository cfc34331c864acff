package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubsync/orghub/internal/api/handler/v1/request"
	"github.com/clubsync/orghub/internal/api/handler/v1/response"
	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/service"
)

type MemberService interface {
	EnrollMember(ctx context.Context, orgPrefix string, member domain.Member) (domain.Member, bool, error)
	ListMembers(ctx context.Context, orgPrefix string) ([]domain.Member, error)
	GetSelf(ctx context.Context, memberUUID string) (domain.Member, error)
}

type MemberHandler struct {
	svc MemberService
}

func NewMemberHandler(svc MemberService) *MemberHandler {
	return &MemberHandler{
		svc: svc,
	}
}

// HandleEnrollMember godoc
// @Summary      Enroll a member in an organization
// @Description  Creates the member on first sight (matched by email) and adds the membership.
// @Tags         members
// @Produce      json
// @Param        orgPrefix  path  string                       true "organization prefix"
// @Param        request    body  request.EnrollMemberRequest  true "request body"
// @Success      200  {object}  domain.Member "existing member enrolled"
// @Success      201  {object}  domain.Member "member created and enrolled"
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /{orgPrefix}/members [post]
func (h *MemberHandler) HandleEnrollMember(ctx *gin.Context) {
	if _, respErr := memberUUIDFromContext(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.EnrollMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	orgPrefix := ctx.Param("orgPrefix")
	member, created, err := h.svc.EnrollMember(ctx.Request.Context(), orgPrefix, domain.Member{
		Email:    req.Email,
		Username: req.Username,
		Name:     req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrgNotFound):
			response.RenderErr(ctx, response.ErrNotFound("organization", "prefix", orgPrefix))
		case errors.Is(err, service.ErrAlreadyMember):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleEnrollMember -> h.svc.EnrollMember -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ctx.JSON(status, member)
}

// HandleListMembers godoc
// @Summary      List an organization's members
// @Tags         members
// @Produce      json
// @Param        orgPrefix  path  string true "organization prefix"
// @Success      200  {array}   domain.Member
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /{orgPrefix}/members [get]
func (h *MemberHandler) HandleListMembers(ctx *gin.Context) {
	if _, respErr := memberUUIDFromContext(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	orgPrefix := ctx.Param("orgPrefix")
	members, err := h.svc.ListMembers(ctx.Request.Context(), orgPrefix)
	if err != nil {
		if errors.Is(err, service.ErrOrgNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("organization", "prefix", orgPrefix))
			return
		}

		err = fmt.Errorf("v1.HandleListMembers -> h.svc.ListMembers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, members)
}

// HandleGetSelf godoc
// @Summary      Get the authenticated member
// @Tags         members
// @Produce      json
// @Success      200  {object}  domain.Member
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /members/me [get]
func (h *MemberHandler) HandleGetSelf(ctx *gin.Context) {
	memberUUID, respErr := memberUUIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	member, err := h.svc.GetSelf(ctx.Request.Context(), memberUUID)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("member", "UUID", memberUUID))
			return
		}

		err = fmt.Errorf("v1.HandleGetSelf -> h.svc.GetSelf -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, member)
}
