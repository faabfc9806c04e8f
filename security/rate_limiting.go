// Package security provides redis-backed request throttling for the
// brute-forceable endpoints (admin login, gate scans).
package security

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

type RateLimiter struct {
	redis *redis.Client
}

func NewRateLimiter(redisClient *redis.Client) *RateLimiter {
	return &RateLimiter{redis: redisClient}
}

// Limit wraps a handler with a fixed-window per-IP counter: at most max
// requests per window. A broken redis fails open; throttling is advisory.
func (r *RateLimiter) Limit(name string, max int64, window time.Duration, next func(*core.RequestEvent) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ip := clientIP(e.Request)
		key := fmt.Sprintf("ratelimit:%s:%s", name, ip)

		ctx := e.Request.Context()
		count, err := r.redis.Incr(ctx, key).Result()
		if err != nil {
			log.WithError(err).Warn("rate limit counter unavailable")
			return next(e)
		}
		if count == 1 {
			r.redis.Expire(ctx, key, window)
		}
		if count > max {
			return apis.NewApiError(http.StatusTooManyRequests,
				"too many requests, try again later", nil)
		}

		return next(e)
	}
}

func clientIP(req *http.Request) string {
	// X-Forwarded-For accumulates one hop per proxy; only the first entry is
	// the client, and using the whole list would let a caller mint fresh
	// throttle keys by appending junk hops.
	if fwd := req.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return host
}
