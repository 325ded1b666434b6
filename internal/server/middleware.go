package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL    = time.Hour
	limiterSweepEvery = 5 * time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit applies a token bucket per client IP. Buckets idle for an hour
// are dropped during lookups, at most once per sweep interval.
func RateLimit(perSec float64, burst int) gin.HandlerFunc {
	if burst < 1 {
		burst = 1
	}
	var (
		mu        sync.Mutex
		limiters  = make(map[string]*limiterEntry)
		lastSweep = time.Now()
	)
	get := func(id string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		now := time.Now()
		if now.Sub(lastSweep) > limiterSweepEvery {
			for k, e := range limiters {
				if now.Sub(e.lastSeen) > limiterIdleTTL {
					delete(limiters, k)
				}
			}
			lastSweep = now
		}
		e, ok := limiters[id]
		if !ok {
			e = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(perSec), burst)}
			limiters[id] = e
		}
		e.lastSeen = now
		return e.limiter
	}

	return func(c *gin.Context) {
		if !get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{Error: "Too many requests"})
			return
		}
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Str("client", c.ClientIP()).
			Msg("request")
	}
}
