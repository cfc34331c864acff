package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsync/orghub/internal/api/handler/v1/response"
	"github.com/clubsync/orghub/internal/api/middleware"
	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func jsonBody(s string) *strings.Reader {
	return strings.NewReader(s)
}

// authenticatedAs stands in for the authenticator in handler tests.
func authenticatedAs(memberUUID string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyMemberUUID, memberUUID)
		ctx.Next()
	}
}

type stubPointsService struct {
	org         domain.Organization
	member      domain.Member
	points      domain.MemberPoints
	leaderboard []domain.LeaderboardEntry
	err         error

	gotIncludeEmails bool
}

func (s *stubPointsService) GetMemberPoints(_ context.Context, _, _ string) (domain.Organization, domain.Member, domain.MemberPoints, error) {
	return s.org, s.member, s.points, s.err
}

func (s *stubPointsService) AwardPoints(_ context.Context, _, _ string, transaction domain.PointTransaction) (domain.PointTransaction, error) {
	if s.err != nil {
		return domain.PointTransaction{}, s.err
	}
	transaction.ID = 1
	return transaction, nil
}

func (s *stubPointsService) Leaderboard(_ context.Context, _ string, includeEmails bool) ([]domain.LeaderboardEntry, error) {
	s.gotIncludeEmails = includeEmails
	return s.leaderboard, s.err
}

func (s *stubPointsService) DeleteTransaction(_ context.Context, _ string, _ uint) error {
	return s.err
}

func pointsRouter(svc PointsService, memberUUID string) *gin.Engine {
	h := NewPointsHandler(svc)
	router := gin.New()
	group := router.Group("/api/v1/:orgPrefix", authenticatedAs(memberUUID))
	group.GET("/members/points", h.HandleGetMemberPoints)
	group.GET("/points/leaderboard", h.HandleLeaderboard)
	group.POST("/points/transactions", h.HandleAwardPoints)
	return router
}

func TestHandleGetMemberPoints(t *testing.T) {
	t.Run("returns the aggregated payload", func(t *testing.T) {
		svc := &stubPointsService{
			org:    domain.Organization{Name: "Chess Club", Prefix: "chess"},
			member: domain.Member{UUID: "mem-9", Email: "alex@example.com", Username: "alex"},
			points: domain.MemberPoints{
				TotalPoints: 42.5,
				Breakdown:   []domain.PointTransaction{{ID: 2, Event: "Game night", Points: 5}},
			},
		}
		router := pointsRouter(svc, "caller-1")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/chess/members/points?member=alex@example.com", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body response.MemberPointsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 42.5, body.TotalPoints)
		require.Len(t, body.Breakdown, 1)
		assert.Equal(t, "mem-9", body.Member.UUID)
		assert.Equal(t, "chess", body.Organization.Prefix)
	})

	t.Run("missing member parameter", func(t *testing.T) {
		router := pointsRouter(&stubPointsService{}, "caller-1")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/chess/members/points", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown organization", func(t *testing.T) {
		router := pointsRouter(&stubPointsService{err: service.ErrOrgNotFound}, "caller-1")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/nope/members/points?member=alex@example.com", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-member looks identical to unknown member", func(t *testing.T) {
		router := pointsRouter(&stubPointsService{err: service.ErrNotMember}, "caller-1")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/chess/members/points?member=drifter@example.com", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		router := pointsRouter(&stubPointsService{}, "")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/chess/members/points?member=alex@example.com", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandleLeaderboard(t *testing.T) {
	t.Run("anonymous callers are served without emails", func(t *testing.T) {
		svc := &stubPointsService{leaderboard: []domain.LeaderboardEntry{
			{MemberUUID: "mem-9", Username: "alex", TotalPoints: 42},
		}}
		router := pointsRouter(svc, "")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/chess/points/leaderboard", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, svc.gotIncludeEmails)
	})

	t.Run("authenticated callers get emails", func(t *testing.T) {
		svc := &stubPointsService{}
		router := pointsRouter(svc, "caller-1")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/chess/points/leaderboard", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, svc.gotIncludeEmails)
	})
}

func TestHandleAwardPoints(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		router := pointsRouter(&stubPointsService{}, "caller-1")

		body := `{"member":"alex@example.com","event":"Bake sale","points":10}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chess/points/transactions", jsonBody(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("zero points is a valid transaction", func(t *testing.T) {
		router := pointsRouter(&stubPointsService{}, "caller-1")

		body := `{"member":"alex@example.com","event":"No-show penalty waived","points":0}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chess/points/transactions", jsonBody(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var got domain.PointTransaction
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Zero(t, got.Points)
	})

	t.Run("missing points field", func(t *testing.T) {
		router := pointsRouter(&stubPointsService{}, "caller-1")

		body := `{"member":"alex@example.com","event":"Bake sale"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chess/points/transactions", jsonBody(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation failure", func(t *testing.T) {
		router := pointsRouter(&stubPointsService{}, "caller-1")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chess/points/transactions", jsonBody(`{"points":10}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
