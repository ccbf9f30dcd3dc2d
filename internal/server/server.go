// Package server wires the HTTP surface: the analytics read API plus health
// and metrics endpoints.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fitlane/fitlane/internal/config"
	"github.com/fitlane/fitlane/internal/observability"
	"github.com/fitlane/fitlane/internal/observability/logger"
	"github.com/fitlane/fitlane/internal/observability/metrics"
	"github.com/fitlane/fitlane/internal/observability/tracing"
	"github.com/fitlane/fitlane/internal/ratelimit"
)

type Params struct {
	fx.In

	Cfg         config.Config
	ObsCfg      observability.Config
	Log         *zap.Logger
	HTTPMetrics *metrics.HTTPMetrics
	Bucket      *ratelimit.TokenBucket `optional:"true"`
	Handlers    *AnalyticsHandler
}

// NewRouter builds the gin engine with the observability middleware chain.
func NewRouter(p Params) *gin.Engine {
	if !p.ObsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(tracing.GinMiddleware())
	r.Use(metrics.GinMiddleware(p.HTTPMetrics))
	r.Use(logger.GinMiddleware(p.Log.Named("http")))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1/analytics")
	v1.Use(ratelimit.GinMiddleware(p.Bucket, p.Cfg, p.Log))
	{
		v1.GET("/revenue", p.Handlers.RevenueTrend)
		v1.GET("/summary", p.Handlers.Summary)
		v1.GET("/distribution", p.Handlers.Distribution)
	}

	return r
}

// Run registers the HTTP server on the fx lifecycle.
func Run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, router *gin.Engine) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(NewAnalyticsHandler),
	fx.Provide(NewRouter),
	fx.Invoke(Run),
)
