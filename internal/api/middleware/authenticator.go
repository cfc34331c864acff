package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/clubsync/orghub/internal/api/handler/v1/response"
	"github.com/clubsync/orghub/internal/config"
	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/pkg/jwthelper"
)

// ContextKeyMemberUUID holds the authenticated member's UUID in the gin
// context. Handlers never learn which token scheme put it there.
const ContextKeyMemberUUID = "memberUUID"

var errMissingToken = errors.New("missing or malformed authorization header")

// MemberResolver maps identity-provider subjects onto members.
type MemberResolver interface {
	ResolveExternalMember(ctx context.Context, externalID, email, name string) (domain.Member, error)
}

type idpClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Authenticator struct {
	conf     *config.APIConfig
	resolver MemberResolver
}

func NewAuthenticator(conf *config.APIConfig, resolver MemberResolver) *Authenticator {
	return &Authenticator{
		conf:     conf,
		resolver: resolver,
	}
}

// Authenticate accepts either an internal access token or an external
// identity-provider token and rejects the request otherwise.
func (a *Authenticator) Authenticate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		memberUUID, err := a.memberUUIDFromRequest(ctx)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		ctx.Set(ContextKeyMemberUUID, memberUUID)
		ctx.Next()
	}
}

// AuthenticateOptional deposits the member UUID when a valid token is
// present and lets anonymous requests through untouched.
func (a *Authenticator) AuthenticateOptional() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if memberUUID, err := a.memberUUIDFromRequest(ctx); err == nil {
			ctx.Set(ContextKeyMemberUUID, memberUUID)
		}

		ctx.Next()
	}
}

// memberUUIDFromRequest tries the internal JWT first, then the identity
// provider's token.
func (a *Authenticator) memberUUIDFromRequest(ctx *gin.Context) (string, error) {
	header := ctx.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", errMissingToken
	}

	claims, err := jwthelper.VerifyToken([]byte(a.conf.JWTSigningKey), token)
	if err == nil {
		return claims.MemberUUID, nil
	}

	return a.verifyIdPToken(ctx.Request.Context(), token)
}

func (a *Authenticator) verifyIdPToken(ctx context.Context, tokenString string) (string, error) {
	claims := &idpClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(a.conf.IdPSigningKey), nil
		},
		jwt.WithIssuer(a.conf.IdPIssuer),
		jwt.WithAudience(a.conf.IdPAudience),
	)
	if err != nil {
		return "", fmt.Errorf("jwt.ParseWithClaims -> %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", jwthelper.ErrInvalidToken
	}

	member, err := a.resolver.ResolveExternalMember(ctx, claims.Subject, claims.Email, claims.Name)
	if err != nil {
		return "", fmt.Errorf("a.resolver.ResolveExternalMember -> %w", err)
	}

	return member.UUID, nil
}
