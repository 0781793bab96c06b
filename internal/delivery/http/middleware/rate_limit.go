package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go-ringside-backend/internal/delivery/http/response"
	"go-ringside-backend/pkg/logger"
	"go-ringside-backend/pkg/redis"
	"go-ringside-backend/pkg/sanitize"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds the per-form submission policy.
type RateLimitConfig struct {
	// Form kind label used in the counter key (contact, subsidy-support)
	FormType string
	// Submissions allowed per window
	Limit int
	// Fixed time window duration
	Window time.Duration
	// Whether to reject when Redis is configured but unavailable
	FailClosed bool
}

// RateLimitResult is the outcome of one check. A denied check is a normal
// outcome, surfaced as HTTP 429, never an error.
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
	Message   string
}

// window tracks submissions for one key in the in-memory store.
type window struct {
	count   int
	resetAt time.Time
}

// memoryStore is the default fixed-window counter store, used when Redis is
// not configured. Expired windows are garbage-collected lazily on each check.
type memoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
}

func newMemoryStore() *memoryStore {
	return &memoryStore{windows: make(map[string]*window)}
}

// check evaluates one submission against the key's current window at the
// given instant. The sweep runs over the whole store first, so stale keys
// never accumulate past the next check.
func (s *memoryStore) check(key string, limit int, windowDur time.Duration, now time.Time) RateLimitResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, w := range s.windows {
		if !w.resetAt.After(now) {
			delete(s.windows, k)
		}
	}

	w, ok := s.windows[key]
	if !ok {
		w = &window{count: 1, resetAt: now.Add(windowDur)}
		s.windows[key] = w
		return RateLimitResult{Allowed: true, Remaining: limit - 1, ResetAt: w.resetAt}
	}

	if w.count >= limit {
		seconds := ceilSeconds(w.resetAt.Sub(now))
		return RateLimitResult{
			Allowed:   false,
			Remaining: 0,
			ResetAt:   w.resetAt,
			Message:   fmt.Sprintf("Rate limit exceeded. Try again in %d seconds.", seconds),
		}
	}

	w.count++
	return RateLimitResult{Allowed: true, Remaining: limit - w.count, ResetAt: w.resetAt}
}

// Lua script for atomic increment with TTL on first set.
// KEYS[1] = counter key, ARGV[1] = TTL in seconds.
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// checkRateLimitRedis evaluates the key against Redis. Each counter expires
// on its own TTL, so no sweep is needed on this path.
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, cfg RateLimitConfig) (RateLimitResult, error) {
	ttlSeconds := int(cfg.Window.Seconds())

	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return RateLimitResult{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)
	resetAt := time.Now().Add(time.Duration(ttl) * time.Second)

	if int(count) > cfg.Limit {
		return RateLimitResult{
			Allowed:   false,
			Remaining: 0,
			ResetAt:   resetAt,
			Message:   fmt.Sprintf("Rate limit exceeded. Try again in %d seconds.", ttl),
		}, nil
	}

	remaining := cfg.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return RateLimitResult{Allowed: true, Remaining: remaining, ResetAt: resetAt}, nil
}

// FormRateLimit limits submissions per (form kind, client address). It runs
// before the body is parsed, so a rate-limited caller learns nothing about
// field requirements. Uses Redis when configured, in-memory otherwise.
func FormRateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	store := newMemoryStore()

	return func(c *gin.Context) {
		key := "form:" + cfg.FormType + ":" + clientAddress(c)
		now := time.Now()

		var result RateLimitResult
		if redisClient := redis.Client(); redisClient != nil {
			r, err := checkRateLimitRedis(c.Request.Context(), redisClient, key, cfg)
			if err != nil {
				if cfg.FailClosed {
					logger.Log.Error("rate limit store unavailable", "form", cfg.FormType, "error", err)
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
					c.Abort()
					return
				}
				result = store.check(key, cfg.Limit, cfg.Window, now)
			} else {
				result = r
			}
		} else {
			result = store.check(key, cfg.Limit, cfg.Window, now)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", result.ResetAt.Format(time.RFC3339))

		if !result.Allowed {
			retryAfter := ceilSeconds(result.ResetAt.Sub(now))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Warn("rate limit exceeded", "form", cfg.FormType, "key", key)

			msg := result.Message
			if msg == "" {
				msg = "Rate limit exceeded"
			}
			response.Error(c, http.StatusTooManyRequests, msg, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// clientAddress derives the counter key's address component: the first
// entry of X-Forwarded-For, else X-Real-IP, else "unknown".
func clientAddress(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		if first := strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0]); first != "" {
			return sanitize.SanitizeIdentifier(first)
		}
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return sanitize.SanitizeIdentifier(realIP)
	}
	return "unknown"
}

func ceilSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}
