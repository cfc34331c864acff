package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clubsync/orghub/internal/api/handler/v1/request"
	"github.com/clubsync/orghub/internal/api/handler/v1/response"
	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/service"
)

const dateLayout = "2006-01-02"

type ContributionService interface {
	OfficerPoints(ctx context.Context, officerUUID string, start, end *time.Time) (domain.OfficerAggregate, error)
	AllOfficerPoints(ctx context.Context, orgPrefix string, start, end *time.Time) ([]domain.OfficerAggregate, error)
	UpdateWeight(ctx context.Context, id uint, rawWeight string, start, end *time.Time) (domain.OfficerAggregate, error)
	AddContribution(ctx context.Context, input service.AddContributionInput) (domain.OfficerContribution, error)
	DeleteContribution(ctx context.Context, id uint) error
}

type ContributionHandler struct {
	svc ContributionService
}

func NewContributionHandler(svc ContributionService) *ContributionHandler {
	return &ContributionHandler{
		svc: svc,
	}
}

// HandleGetOfficerPoints godoc
// @Summary      Get weighted officer contribution points
// @Tags         contributions
// @Produce      json
// @Param        officer_uuid  query  string false "officer UUID; omitted = all officers"
// @Param        org           query  string false "organization prefix filter"
// @Param        start_date    query  string false "inclusive start (YYYY-MM-DD)"
// @Param        end_date      query  string false "inclusive end (YYYY-MM-DD)"
// @Success      200  {array}   domain.OfficerAggregate
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /ocp/officer-points [get]
func (h *ContributionHandler) HandleGetOfficerPoints(ctx *gin.Context) {
	if _, respErr := memberUUIDFromContext(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	start, end, err := parseDateRange(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	officerUUID := ctx.Query("officer_uuid")
	if officerUUID != "" {
		aggregate, err := h.svc.OfficerPoints(ctx.Request.Context(), officerUUID, start, end)
		if err != nil {
			if errors.Is(err, service.ErrOfficerNotFound) {
				response.RenderErr(ctx, response.ErrNotFound("officer", "UUID", officerUUID))
				return
			}

			err = fmt.Errorf("v1.HandleGetOfficerPoints -> h.svc.OfficerPoints -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}

		ctx.JSON(http.StatusOK, []domain.OfficerAggregate{aggregate})
		return
	}

	orgPrefix := ctx.Query("org")
	aggregates, err := h.svc.AllOfficerPoints(ctx.Request.Context(), orgPrefix, start, end)
	if err != nil {
		if errors.Is(err, service.ErrOrgNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("organization", "prefix", orgPrefix))
			return
		}

		err = fmt.Errorf("v1.HandleGetOfficerPoints -> h.svc.AllOfficerPoints -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, aggregates)
}

// HandleUpdateContribution godoc
// @Summary      Re-weight a contribution
// @Tags         contributions
// @Produce      json
// @Param        contributionID  path   int                          true  "contribution ID"
// @Param        request         body   request.UpdateWeightRequest  true  "request body"
// @Param        start_date      query  string                       false "inclusive start (YYYY-MM-DD)"
// @Param        end_date        query  string                       false "inclusive end (YYYY-MM-DD)"
// @Success      200  {object}  domain.OfficerAggregate
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /ocp/contribution/{contributionID} [put]
func (h *ContributionHandler) HandleUpdateContribution(ctx *gin.Context) {
	if _, respErr := memberUUIDFromContext(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("contributionID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid contribution ID: %w", err)))
		return
	}

	var req request.UpdateWeightRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	start, end, err := parseDateRange(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	aggregate, err := h.svc.UpdateWeight(ctx.Request.Context(), uint(id), req.Weight.String(), start, end)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidWeight):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrContributionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("contribution", "ID", id))
		default:
			err = fmt.Errorf("v1.HandleUpdateContribution -> h.svc.UpdateWeight -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, aggregate)
}

// HandleAddContribution godoc
// @Summary      Record an officer contribution
// @Tags         contributions
// @Produce      json
// @Param        request   body      request.AddContributionRequest true "request body"
// @Success      201  {object}  domain.OfficerContribution
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /ocp/contribution [post]
func (h *ContributionHandler) HandleAddContribution(ctx *gin.Context) {
	if _, respErr := memberUUIDFromContext(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AddContributionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	contribution, err := h.svc.AddContribution(ctx.Request.Context(), service.AddContributionInput{
		OrgPrefix:    req.Org,
		OfficerName:  req.OfficerName,
		OfficerEmail: req.OfficerEmail,
		Event:        req.Event,
		EventType:    req.EventType,
		Role:         req.Role,
		BasePoints:   req.BasePoints,
		Timestamp:    req.Timestamp,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrgNotFound):
			response.RenderErr(ctx, response.ErrNotFound("organization", "prefix", req.Org))
		case errors.Is(err, service.ErrContributionExists):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleAddContribution -> h.svc.AddContribution -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, contribution)
}

// HandleDeleteContribution godoc
// @Summary      Delete a contribution
// @Tags         contributions
// @Produce      json
// @Param        contributionID  path  int true "contribution ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /ocp/contribution/{contributionID} [delete]
func (h *ContributionHandler) HandleDeleteContribution(ctx *gin.Context) {
	if _, respErr := memberUUIDFromContext(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("contributionID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid contribution ID: %w", err)))
		return
	}

	if err = h.svc.DeleteContribution(ctx.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrContributionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("contribution", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteContribution -> h.svc.DeleteContribution -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// parseDateRange reads optional start_date/end_date query parameters.
// Both bounds are inclusive; the end bound covers its whole day.
func parseDateRange(ctx *gin.Context) (*time.Time, *time.Time, error) {
	var start, end *time.Time

	if raw := ctx.Query("start_date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid start_date: %w", err)
		}
		start = &parsed
	}

	if raw := ctx.Query("end_date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid end_date: %w", err)
		}
		endOfDay := parsed.Add(24*time.Hour - time.Nanosecond)
		end = &endOfDay
	}

	return start, end, nil
}
