package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fitlane/fitlane/internal/analytics/domain"
)

type stubService struct {
	trend   domain.RevenueTrend
	summary domain.Summary
	dist    domain.Distribution
	err     error
}

func (s *stubService) RevenueTrend(ctx context.Context, req domain.TrendRequest) (domain.RevenueTrend, error) {
	return s.trend, s.err
}

func (s *stubService) Summary(ctx context.Context, req domain.SummaryRequest) (domain.Summary, error) {
	return s.summary, s.err
}

func (s *stubService) Distribution(ctx context.Context, req domain.SummaryRequest) (domain.Distribution, error) {
	return s.dist, s.err
}

func newTestRouter(svc domain.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewAnalyticsHandler(svc, zap.NewNop())
	r := gin.New()
	r.GET("/api/v1/analytics/revenue", h.RevenueTrend)
	r.GET("/api/v1/analytics/summary", h.Summary)
	r.GET("/api/v1/analytics/distribution", h.Distribution)
	return r
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRevenueTrendOK(t *testing.T) {
	svc := &stubService{trend: domain.RevenueTrend{GrandTotalCents: 4200}}
	w := get(t, newTestRouter(svc), "/api/v1/analytics/revenue?months=6")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"grand_total_cents":4200`)
}

func TestRevenueTrendRejectsNonNumericParam(t *testing.T) {
	w := get(t, newTestRouter(&stubService{}), "/api/v1/analytics/revenue?months=six")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid window", domain.ErrInvalidWindow, http.StatusBadRequest},
		{"superseded", domain.ErrSuperseded, http.StatusConflict},
		{"unavailable", domain.ErrAnalyticsUnavailable, http.StatusServiceUnavailable},
		{"unexpected", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&stubService{err: tc.err})
			assert.Equal(t, tc.want, get(t, r, "/api/v1/analytics/summary").Code)
			assert.Equal(t, tc.want, get(t, r, "/api/v1/analytics/distribution").Code)
		})
	}
}
