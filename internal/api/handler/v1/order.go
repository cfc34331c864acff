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

type OrderService interface {
	CreateOrder(ctx context.Context, orgPrefix, memberUUID string, items []domain.OrderItem) (domain.Order, error)
	GetOrder(ctx context.Context, orgPrefix string, id uint) (domain.Order, error)
	ListOrders(ctx context.Context, orgPrefix string) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orgPrefix string, id uint, status domain.OrderStatus) error
	DeleteOrder(ctx context.Context, orgPrefix string, id uint) error
}

type OrderHandler struct {
	svc OrderService
}

func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{
		svc: svc,
	}
}

// HandleCreateOrder godoc
// @Summary      Place an order
// @Tags         store
// @Produce      json
// @Param        orgPrefix  path  string                      true "organization prefix"
// @Param        request    body  request.CreateOrderRequest  true "request body"
// @Success      201  {object}  domain.Order
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /{orgPrefix}/orders [post]
func (h *OrderHandler) HandleCreateOrder(ctx *gin.Context) {
	memberUUID, respErr := memberUUIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	items := make([]domain.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	orgPrefix := ctx.Param("orgPrefix")
	order, err := h.svc.CreateOrder(ctx.Request.Context(), orgPrefix, memberUUID, items)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrgNotFound):
			response.RenderErr(ctx, response.ErrNotFound("organization", "prefix", orgPrefix))
		case errors.Is(err, service.ErrProductNotFound):
			response.RenderErr(ctx, response.ErrNotFound("product", "order item", orgPrefix))
		case errors.Is(err, service.ErrInsufficientStock):
			response.RenderErr(ctx, response.ErrConflict(service.ErrInsufficientStock))
		case errors.Is(err, service.ErrEmptyOrder):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCreateOrder -> h.svc.CreateOrder -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, order)
}

// HandleListOrders godoc
// @Summary      List an organization's orders
// @Tags         store
// @Produce      json
// @Param        orgPrefix  path  string true "organization prefix"
// @Success      200  {array}   domain.Order
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /{orgPrefix}/orders [get]
func (h *OrderHandler) HandleListOrders(ctx *gin.Context) {
	if _, respErr := memberUUIDFromContext(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	orgPrefix := ctx.Param("orgPrefix")
	orders, err := h.svc.ListOrders(ctx.Request.Context(), orgPrefix)
	if err != nil {
		if errors.Is(err, service.ErrOrgNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("organization", "prefix", orgPrefix))
			return
		}

		err = fmt.Errorf("v1.HandleListOrders -> h.svc.ListOrders -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, orders)
}

// HandleGetOrder godoc
// @Summary      Get one order
// @Tags         store
// @Produce      json
// @Param        orgPrefix  path  string true "organization prefix"
// @Param        orderID    path  int    true "order ID"
// @Success      200  {object}  domain.Order
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /{orgPrefix}/orders/{orderID} [get]
func (h *OrderHandler) HandleGetOrder(ctx *gin.Context) {
	if _, respErr := memberUUIDFromContext(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("orderID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid order ID: %w", err)))
		return
	}

	orgPrefix := ctx.Param("orgPrefix")
	order, err := h.svc.GetOrder(ctx.Request.Context(), orgPrefix, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrgNotFound):
			response.RenderErr(ctx, response.ErrNotFound("organization", "prefix", orgPrefix))
		case errors.Is(err, service.ErrOrderNotFound):
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", id))
		default:
			err = fmt.Errorf("v1.HandleGetOrder -> h.svc.GetOrder -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// HandleUpdateOrderStatus godoc
// @Summary      Update an order's status
// @Tags         store
// @Produce      json
// @Param        orgPrefix  path  string                            true "organization prefix"
// @Param        orderID    path  int                               true "order ID"
// @Param        request    body  request.UpdateOrderStatusRequest  true "request body"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /{orgPrefix}/orders/{orderID}/status [put]
func (h *OrderHandler) HandleUpdateOrderStatus(ctx *gin.Context) {
	if _, respErr := memberUUIDFromContext(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("orderID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid order ID: %w", err)))
		return
	}

	var req request.UpdateOrderStatusRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	orgPrefix := ctx.Param("orgPrefix")
	err = h.svc.UpdateOrderStatus(ctx.Request.Context(), orgPrefix, uint(id), domain.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrgNotFound):
			response.RenderErr(ctx, response.ErrNotFound("organization", "prefix", orgPrefix))
		case errors.Is(err, service.ErrOrderNotFound):
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", id))
		case errors.Is(err, service.ErrInvalidOrderStatus):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateOrderStatus -> h.svc.UpdateOrderStatus -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDeleteOrder godoc
// @Summary      Delete an order
// @Tags         store
// @Produce      json
// @Param        orgPrefix  path  string true "organization prefix"
// @Param        orderID    path  int    true "order ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /{orgPrefix}/orders/{orderID} [delete]
func (h *OrderHandler) HandleDeleteOrder(ctx *gin.Context) {
	if _, respErr := memberUUIDFromContext(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("orderID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid order ID: %w", err)))
		return
	}

	orgPrefix := ctx.Param("orgPrefix")
	if err = h.svc.DeleteOrder(ctx.Request.Context(), orgPrefix, uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrOrgNotFound):
			response.RenderErr(ctx, response.ErrNotFound("organization", "prefix", orgPrefix))
		case errors.Is(err, service.ErrOrderNotFound):
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", id))
		default:
			err = fmt.Errorf("v1.HandleDeleteOrder -> h.svc.DeleteOrder -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}
