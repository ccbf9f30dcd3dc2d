package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fitlane/fitlane/internal/analytics/domain"
)

// AnalyticsHandler exposes the aggregation engine over HTTP.
type AnalyticsHandler struct {
	svc domain.Service
	log *zap.Logger
}

func NewAnalyticsHandler(svc domain.Service, log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		svc: svc,
		log: log.Named("analytics.handler"),
	}
}

// RevenueTrend handles GET /api/v1/analytics/revenue?months=6.
func (h *AnalyticsHandler) RevenueTrend(c *gin.Context) {
	months, ok := intQuery(c, "months")
	if !ok {
		return
	}

	trend, err := h.svc.RevenueTrend(c.Request.Context(), domain.TrendRequest{MonthsBack: months})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, trend)
}

// Summary handles GET /api/v1/analytics/summary?window_days=30.
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	days, ok := intQuery(c, "window_days")
	if !ok {
		return
	}

	summary, err := h.svc.Summary(c.Request.Context(), domain.SummaryRequest{WindowDays: days})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Distribution handles GET /api/v1/analytics/distribution?window_days=30.
func (h *AnalyticsHandler) Distribution(c *gin.Context) {
	days, ok := intQuery(c, "window_days")
	if !ok {
		return
	}

	dist, err := h.svc.Distribution(c.Request.Context(), domain.SummaryRequest{WindowDays: days})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dist)
}

func (h *AnalyticsHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidWindow):
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidWindow.Error()})
	case errors.Is(err, domain.ErrSuperseded):
		c.JSON(http.StatusConflict, gin.H{"error": domain.ErrSuperseded.Error()})
	case errors.Is(err, domain.ErrAnalyticsUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": domain.ErrAnalyticsUnavailable.Error()})
	default:
		h.log.Error("analytics query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}

// intQuery parses an optional non-negative integer query parameter. A missing
// parameter reads as zero, which the service replaces with its default.
func intQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return v, true
}
