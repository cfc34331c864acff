package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/service"
)

type stubContributionService struct {
	aggregate  domain.OfficerAggregate
	aggregates []domain.OfficerAggregate
	err        error

	gotWeight string
	gotStart  *time.Time
	gotEnd    *time.Time
}

func (s *stubContributionService) OfficerPoints(_ context.Context, _ string, start, end *time.Time) (domain.OfficerAggregate, error) {
	s.gotStart, s.gotEnd = start, end
	return s.aggregate, s.err
}

func (s *stubContributionService) AllOfficerPoints(_ context.Context, _ string, start, end *time.Time) ([]domain.OfficerAggregate, error) {
	s.gotStart, s.gotEnd = start, end
	return s.aggregates, s.err
}

func (s *stubContributionService) UpdateWeight(_ context.Context, _ uint, rawWeight string, _, _ *time.Time) (domain.OfficerAggregate, error) {
	s.gotWeight = rawWeight
	if s.err != nil {
		return domain.OfficerAggregate{}, s.err
	}
	return s.aggregate, nil
}

func (s *stubContributionService) AddContribution(_ context.Context, _ service.AddContributionInput) (domain.OfficerContribution, error) {
	if s.err != nil {
		return domain.OfficerContribution{}, s.err
	}
	return domain.OfficerContribution{ID: 1}, nil
}

func (s *stubContributionService) DeleteContribution(_ context.Context, _ uint) error {
	return s.err
}

func contributionRouter(svc ContributionService, memberUUID string) *gin.Engine {
	h := NewContributionHandler(svc)
	router := gin.New()
	group := router.Group("/api/v1/ocp", authenticatedAs(memberUUID))
	group.GET("/officer-points", h.HandleGetOfficerPoints)
	group.POST("/contribution", h.HandleAddContribution)
	group.PUT("/contribution/:contributionID", h.HandleUpdateContribution)
	group.DELETE("/contribution/:contributionID", h.HandleDeleteContribution)
	return router
}

func TestHandleGetOfficerPoints(t *testing.T) {
	t.Run("single officer is wrapped in a list", func(t *testing.T) {
		svc := &stubContributionService{aggregate: domain.OfficerAggregate{
			Officer:     domain.Officer{UUID: "off-1", Name: "Alex"},
			TotalPoints: decimal.RequireFromString("15"),
		}}
		router := contributionRouter(svc, "caller-1")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/ocp/officer-points?officer_uuid=off-1", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body []domain.OfficerAggregate
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body, 1)
		assert.Equal(t, "off-1", body[0].Officer.UUID)
	})

	t.Run("date range covers the whole end day", func(t *testing.T) {
		svc := &stubContributionService{}
		router := contributionRouter(svc, "caller-1")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/ocp/officer-points?start_date=2026-01-01&end_date=2026-01-31", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, svc.gotStart)
		require.NotNil(t, svc.gotEnd)
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *svc.gotStart)
		assert.Equal(t, time.Date(2026, 1, 31, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC), *svc.gotEnd)
	})

	t.Run("malformed date", func(t *testing.T) {
		router := contributionRouter(&stubContributionService{}, "caller-1")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/ocp/officer-points?start_date=01/02/2026", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown officer", func(t *testing.T) {
		router := contributionRouter(&stubContributionService{err: service.ErrOfficerNotFound}, "caller-1")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/ocp/officer-points?officer_uuid=missing", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		router := contributionRouter(&stubContributionService{}, "")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/ocp/officer-points", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandleUpdateContribution(t *testing.T) {
	t.Run("numeric weight reaches the service verbatim", func(t *testing.T) {
		svc := &stubContributionService{}
		router := contributionRouter(svc, "caller-1")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/v1/ocp/contribution/7", jsonBody(`{"weight":1.5}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1.5", svc.gotWeight)
	})

	t.Run("non-numeric weight never reaches the service", func(t *testing.T) {
		svc := &stubContributionService{}
		router := contributionRouter(svc, "caller-1")

		for _, body := range []string{`{"weight":"abc"}`, `{"weight":true}`, `{}`} {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/api/v1/ocp/contribution/7", jsonBody(body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
			assert.Empty(t, svc.gotWeight, "body %s", body)
		}
	})

	t.Run("negative weight", func(t *testing.T) {
		router := contributionRouter(&stubContributionService{err: service.ErrInvalidWeight}, "caller-1")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/v1/ocp/contribution/7", jsonBody(`{"weight":-1}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown contribution", func(t *testing.T) {
		router := contributionRouter(&stubContributionService{err: service.ErrContributionNotFound}, "caller-1")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/v1/ocp/contribution/99", jsonBody(`{"weight":1}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleAddContribution(t *testing.T) {
	body := `{"org":"chess","officer_name":"Alex","event":"Fall Tournament","role":"Organizer","base_points":10}`

	t.Run("created", func(t *testing.T) {
		router := contributionRouter(&stubContributionService{}, "caller-1")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/ocp/contribution", jsonBody(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("duplicate", func(t *testing.T) {
		router := contributionRouter(&stubContributionService{err: service.ErrContributionExists}, "caller-1")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/ocp/contribution", jsonBody(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
