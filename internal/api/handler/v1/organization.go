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
	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/service"
)

type OrganizationService interface {
	Create(ctx context.Context, org domain.Organization) (domain.Organization, error)
	GetByID(ctx context.Context, id uint) (domain.Organization, error)
	List(ctx context.Context) ([]domain.Organization, error)
	Update(ctx context.Context, org domain.Organization) (domain.Organization, error)
	Deactivate(ctx context.Context, id uint) error
}

type OrganizationHandler struct {
	svc OrganizationService
}

func NewOrganizationHandler(svc OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		svc: svc,
	}
}

// HandleListOrganizations godoc
// @Summary      List active organizations
// @Tags         organizations
// @Produce      json
// @Success      200  {array}   domain.Organization
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizations [get]
func (h *OrganizationHandler) HandleListOrganizations(ctx *gin.Context) {
	if _, respErr := memberUUIDFromContext(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	orgs, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListOrganizations -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, orgs)
}

// HandleGetOrganization godoc
// @Summary      Get one organization
// @Tags         organizations
// @Produce      json
// @Param        orgID  path  int true "organization ID"
// @Success      200  {object}  domain.Organization
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizations/{orgID} [get]
func (h *OrganizationHandler) HandleGetOrganization(ctx *gin.Context) {
	if _, respErr := memberUUIDFromContext(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("orgID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid organization ID: %w", err)))
		return
	}

	org, err := h.svc.GetByID(ctx.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrOrgNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("organization", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetOrganization -> h.svc.GetByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, org)
}

// HandleCreateOrganization godoc
// @Summary      Create an organization
// @Tags         organizations
// @Produce      json
// @Param        request   body      request.OrganizationRequest true "request body"
// @Success      201  {object}  domain.Organization
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizations [post]
func (h *OrganizationHandler) HandleCreateOrganization(ctx *gin.Context) {
	if _, respErr := memberUUIDFromContext(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.OrganizationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	org, err := h.svc.Create(ctx.Request.Context(), domain.Organization{
		Name:                req.Name,
		Prefix:              req.Prefix,
		Description:         req.Description,
		PointsPerEvent:      req.PointsPerEvent,
		CalendarSyncEnabled: req.CalendarSyncEnabled,
		CalendarSourceID:    req.CalendarSourceID,
	})
	if err != nil {
		if errors.Is(err, service.ErrOrgPrefixExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrOrgPrefixExists))
			return
		}

		err = fmt.Errorf("v1.HandleCreateOrganization -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, org)
}

// HandleUpdateOrganization godoc
// @Summary      Update an organization
// @Tags         organizations
// @Produce      json
// @Param        orgID     path      int                         true "organization ID"
// @Param        request   body      request.OrganizationRequest true "request body"
// @Success      200  {object}  domain.Organization
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizations/{orgID} [put]
func (h *OrganizationHandler) HandleUpdateOrganization(ctx *gin.Context) {
	if _, respErr := memberUUIDFromContext(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("orgID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid organization ID: %w", err)))
		return
	}

	var req request.OrganizationRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	org, err := h.svc.Update(ctx.Request.Context(), domain.Organization{
		ID:                  uint(id),
		Name:                req.Name,
		Prefix:              req.Prefix,
		Description:         req.Description,
		PointsPerEvent:      req.PointsPerEvent,
		CalendarSyncEnabled: req.CalendarSyncEnabled,
		CalendarSourceID:    req.CalendarSourceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrgNotFound):
			response.RenderErr(ctx, response.ErrNotFound("organization", "ID", id))
		case errors.Is(err, service.ErrOrgPrefixExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrOrgPrefixExists))
		default:
			err = fmt.Errorf("v1.HandleUpdateOrganization -> h.svc.Update -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, org)
}

// HandleDeleteOrganization godoc
// @Summary      Deactivate an organization
// @Tags         organizations
// @Produce      json
// @Param        orgID  path  int true "organization ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /organizations/{orgID} [delete]
func (h *OrganizationHandler) HandleDeleteOrganization(ctx *gin.Context) {
	if _, respErr := memberUUIDFromContext(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("orgID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid organization ID: %w", err)))
		return
	}

	if err = h.svc.Deactivate(ctx.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrOrgNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("organization", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteOrganization -> h.svc.Deactivate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
