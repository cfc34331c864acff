package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubsync/orghub/internal/api/handler/v1/request"
	"github.com/clubsync/orghub/internal/api/handler/v1/response"
	"github.com/clubsync/orghub/internal/config"
	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/pkg/jwthelper"
	"github.com/clubsync/orghub/internal/service"
)

type AuthService interface {
	Signup(ctx context.Context, member domain.Member) (domain.Member, error)
	Login(ctx context.Context, email, password string) (domain.Member, error)
	IssueRefreshToken(ctx context.Context, memberID uint) (domain.RefreshToken, error)
	Refresh(ctx context.Context, token string) (domain.Member, domain.RefreshToken, error)
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleSignup godoc
// @Summary      Signup a new member
// @Tags         auth
// @Produce      json
// @Param        request   body      request.SignupRequest true "request body"
// @Success      201      {object}   domain.Member
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/signup [post]
func (h *AuthHandler) HandleSignup(ctx *gin.Context) {
	var req request.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	member, err := h.svc.Signup(ctx.Request.Context(), domain.Member{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
		Name:     req.Name,
	})
	if err != nil {
		if errors.Is(err, service.ErrMemberEmailExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrMemberEmailExists))
			return
		}

		err = fmt.Errorf("v1.HandleSignup -> h.svc.Signup -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, member)
}

// HandleLogin godoc
// @Summary      Login a member
// @Tags         auth
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	member, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) ||
			errors.Is(err, service.ErrWrongPassword) ||
			errors.Is(err, service.ErrPasswordLoginBlocked) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))
			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.renderTokenPair(ctx, member)
}

// HandleRefresh godoc
// @Summary      Rotate the token pair
// @Tags         auth
// @Produce      json
// @Param        request   body      request.RefreshRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/refresh [post]
func (h *AuthHandler) HandleRefresh(ctx *gin.Context) {
	req := request.RefreshRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	member, refreshToken, err := h.svc.Refresh(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))
			return
		}

		err = fmt.Errorf("v1.HandleRefresh -> h.svc.Refresh -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	accessToken, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), member.UUID, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.HandleRefresh -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		Member:       member,
	})
}

func (h *AuthHandler) renderTokenPair(ctx *gin.Context, member domain.Member) {
	accessToken, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), member.UUID, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.renderTokenPair -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	refreshToken, err := h.svc.IssueRefreshToken(ctx.Request.Context(), member.ID)
	if err != nil {
		err = fmt.Errorf("v1.renderTokenPair -> h.svc.IssueRefreshToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		Member:       member,
	})
}
