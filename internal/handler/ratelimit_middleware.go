package handler

import (
	"math"
	"net/http"
	"strconv"

	"heritage-check-api/internal/metrics"
	"heritage-check-api/internal/models"
	"heritage-check-api/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimit returns middleware that admits or rejects requests per client IP
// against the given limiter profile. Rejections get a 429 with a retry hint;
// admitted requests carry the remaining-quota header.
func RateLimit(limiter *ratelimit.Limiter, profile string, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := limiter.Allow(c.ClientIP())
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			m.RateLimitRejections.WithLabelValues(profile).Inc()
			retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Error:     "too many requests, slow down",
				ErrorCode: models.CodeRateLimited,
			})
			return
		}

		c.Next()
	}
}
