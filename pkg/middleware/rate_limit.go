package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/jkberiksson/bsv-edutask/pkg/metrics"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware returns a Gin middleware enforcing a token-bucket limit per
// client IP. rps = allowed events per second, burst = maximum tokens in bucket.
// route labels the allowed/rejected counters (e.g. "ready").
func RateLimitMiddleware(route string, rps float64, burst int) gin.HandlerFunc {
	var limiters sync.Map // client IP -> *rate.Limiter

	limiterFor := func(key string) *rate.Limiter {
		if v, ok := limiters.Load(key); ok {
			return v.(*rate.Limiter)
		}
		v, _ := limiters.LoadOrStore(key, rate.NewLimiter(rate.Limit(rps), burst))
		return v.(*rate.Limiter)
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		if !limiterFor(ip).Allow() {
			c.Header("Retry-After", "1")
			metrics.RateLimitRejected.WithLabelValues(route).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues(route).Inc()
		c.Next()
	}
}
