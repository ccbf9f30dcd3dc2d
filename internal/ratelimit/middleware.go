package ratelimit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fitlane/fitlane/internal/config"
)

// GinMiddleware throttles requests per client IP. With no redis configured
// the bucket is nil and the middleware passes everything through.
func GinMiddleware(bucket *TokenBucket, cfg config.Config, log *zap.Logger) gin.HandlerFunc {
	log = log.Named("ratelimit")

	return func(c *gin.Context) {
		res, err := bucket.Allow(c.Request.Context(), "ratelimit:"+c.ClientIP(), cfg.RateLimitRPS, cfg.RateLimitBurst)
		if err != nil {
			// Fail open: the limiter protects capacity, it is not an
			// authorization gate.
			log.Warn("rate limit check failed", zap.Error(err))
			c.Next()
			return
		}

		if !res.Allowed {
			if res.RetryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())+1))
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate_limited"})
			return
		}
		c.Next()
	}
}
