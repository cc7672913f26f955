package handler

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// APIKeyAuth returns a Gin middleware that enforces X-API-Key header
// validation. If key is empty, the middleware is a no-op (auth disabled).
func APIKeyAuth(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		provided := strings.TrimSpace(c.GetHeader("X-API-Key"))
		if provided == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing X-API-Key header"})
			return
		}
		if provided != key {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid API key"})
			return
		}
		c.Next()
	}
}

// RateLimit returns a token-bucket middleware allowing perMinute requests,
// shared across all clients. Requests over the budget get a 429 instead of
// queueing; the council is a decision API, not a firehose.
func RateLimit(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	refill := time.Minute / time.Duration(perMinute)
	var mu sync.Mutex
	tokens := perMinute
	lastRefill := time.Now()

	return func(c *gin.Context) {
		mu.Lock()
		now := time.Now()
		replenished := int(now.Sub(lastRefill) / refill)
		if replenished > 0 {
			tokens += replenished
			if tokens > perMinute {
				tokens = perMinute
			}
			lastRefill = lastRefill.Add(time.Duration(replenished) * refill)
		}
		if tokens == 0 {
			mu.Unlock()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		tokens--
		mu.Unlock()
		c.Next()
	}
}
