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

type ProductService interface {
	CreateProduct(ctx context.Context, orgPrefix string, product domain.Product) (domain.Product, error)
	GetProduct(ctx context.Context, orgPrefix string, id uint) (domain.Product, error)
	ListProducts(ctx context.Context, orgPrefix string) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, orgPrefix string, product domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, orgPrefix string, id uint) error
}

type ProductHandler struct {
	svc ProductService
}

func NewProductHandler(svc ProductService) *ProductHandler {
	return &ProductHandler{
		svc: svc,
	}
}

// HandleListProducts godoc
// @Summary      List an organization's products
// @Tags         store
// @Produce      json
// @Param        orgPrefix  path  string true "organization prefix"
// @Success      200  {array}   domain.Product
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /{orgPrefix}/products [get]
func (h *ProductHandler) HandleListProducts(ctx *gin.Context) {
	orgPrefix := ctx.Param("orgPrefix")

	products, err := h.svc.ListProducts(ctx.Request.Context(), orgPrefix)
	if err != nil {
		if errors.Is(err, service.ErrOrgNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("organization", "prefix", orgPrefix))
			return
		}

		err = fmt.Errorf("v1.HandleListProducts -> h.svc.ListProducts -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, products)
}

// HandleGetProduct godoc
// @Summary      Get one product
// @Tags         store
// @Produce      json
// @Param        orgPrefix  path  string true "organization prefix"
// @Param        productID  path  int    true "product ID"
// @Success      200  {object}  domain.Product
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /{orgPrefix}/products/{productID} [get]
func (h *ProductHandler) HandleGetProduct(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("productID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid product ID: %w", err)))
		return
	}

	orgPrefix := ctx.Param("orgPrefix")
	product, err := h.svc.GetProduct(ctx.Request.Context(), orgPrefix, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrgNotFound):
			response.RenderErr(ctx, response.ErrNotFound("organization", "prefix", orgPrefix))
		case errors.Is(err, service.ErrProductNotFound):
			response.RenderErr(ctx, response.ErrNotFound("product", "ID", id))
		default:
			err = fmt.Errorf("v1.HandleGetProduct -> h.svc.GetProduct -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// HandleCreateProduct godoc
// @Summary      Create a product
// @Tags         store
// @Produce      json
// @Param        orgPrefix  path  string                  true "organization prefix"
// @Param        request    body  request.ProductRequest  true "request body"
// @Success      201  {object}  domain.Product
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /{orgPrefix}/products [post]
func (h *ProductHandler) HandleCreateProduct(ctx *gin.Context) {
	if _, respErr := memberUUIDFromContext(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	orgPrefix := ctx.Param("orgPrefix")
	product, err := h.svc.CreateProduct(ctx.Request.Context(), orgPrefix, domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	})
	if err != nil {
		if errors.Is(err, service.ErrOrgNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("organization", "prefix", orgPrefix))
			return
		}

		err = fmt.Errorf("v1.HandleCreateProduct -> h.svc.CreateProduct -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, product)
}

// HandleUpdateProduct godoc
// @Summary      Update a product
// @Tags         store
// @Produce      json
// @Param        orgPrefix  path  string                  true "organization prefix"
// @Param        productID  path  int                     true "product ID"
// @Param        request    body  request.ProductRequest  true "request body"
// @Success      200  {object}  domain.Product
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /{orgPrefix}/products/{productID} [put]
func (h *ProductHandler) HandleUpdateProduct(ctx *gin.Context) {
	if _, respErr := memberUUIDFromContext(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("productID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid product ID: %w", err)))
		return
	}

	var req request.ProductRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	orgPrefix := ctx.Param("orgPrefix")
	product, err := h.svc.UpdateProduct(ctx.Request.Context(), orgPrefix, domain.Product{
		ID:          uint(id),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrgNotFound):
			response.RenderErr(ctx, response.ErrNotFound("organization", "prefix", orgPrefix))
		case errors.Is(err, service.ErrProductNotFound):
			response.RenderErr(ctx, response.ErrNotFound("product", "ID", id))
		default:
			err = fmt.Errorf("v1.HandleUpdateProduct -> h.svc.UpdateProduct -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// HandleDeleteProduct godoc
// @Summary      Delete a product
// @Tags         store
// @Produce      json
// @Param        orgPrefix  path  string true "organization prefix"
// @Param        productID  path  int    true "product ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /{orgPrefix}/products/{productID} [delete]
func (h *ProductHandler) HandleDeleteProduct(ctx *gin.Context) {
	if _, respErr := memberUUIDFromContext(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("productID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid product ID: %w", err)))
		return
	}

	orgPrefix := ctx.Param("orgPrefix")
	if err = h.svc.DeleteProduct(ctx.Request.Context(), orgPrefix, uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrOrgNotFound):
			response.RenderErr(ctx, response.ErrNotFound("organization", "prefix", orgPrefix))
		case errors.Is(err, service.ErrProductNotFound):
			response.RenderErr(ctx, response.ErrNotFound("product", "ID", id))
		default:
			err = fmt.Errorf("v1.HandleDeleteProduct -> h.svc.DeleteProduct -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}
