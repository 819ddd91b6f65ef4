package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	redisStore "payzoll-audit/internal/adapter/storage/redis"
	"payzoll-audit/pkg/apperror"
	"payzoll-audit/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Rate limit groups.
const (
	GroupAuditRead    = "audit_read"
	GroupAuditWrite   = "audit_write"
	GroupAuditRecover = "audit_recover"
	GroupPointerRead  = "pointer_read"
	GroupPointerWrite = "pointer_write"
)

// RateLimitRule defines a rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// Limiter counts requests against a key. *redis.RateLimitStore implements it.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*redisStore.RateLimitResult, error)
}

// DefaultRateLimitRules returns the per-group limits for the given per-minute
// read and write budgets. Pointer groups get double: every device polls the
// pointer on every write.
func DefaultRateLimitRules(writes, reads int64) map[string]RateLimitRule {
	return map[string]RateLimitRule{
		GroupAuditRead:    {Limit: reads, Window: time.Minute},
		GroupAuditWrite:   {Limit: writes, Window: time.Minute},
		GroupAuditRecover: {Limit: 3, Window: time.Hour},
		GroupPointerRead:  {Limit: reads * 2, Window: time.Minute},
		GroupPointerWrite: {Limit: writes * 2, Window: time.Minute},
	}
}

// RateLimiter creates a rate-limiting middleware for a given endpoint group.
func RateLimiter(store Limiter, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := extractIdentifier(c)
		key := fmt.Sprintf("%s:%s", identifier, group)

		result, err := store.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := result.ResetAt - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}

		c.Next()
	}
}

// extractIdentifier keys limits by authenticated subject, else by client IP.
func extractIdentifier(c *gin.Context) string {
	if sub := Subject(c); sub != "" {
		return "sub:" + sub
	}
	return "ip:" + c.ClientIP()
}
