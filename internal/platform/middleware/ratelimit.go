package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// DefaultRateLimitConfig returns default rate limiting settings.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute: 60,
		Burst:             10,
	}
}

const rateLimitWindow = time.Minute

// RateLimit returns per-IP rate limiting middleware backed by Redis fixed
// windows: INCR on a per-IP key, TTL set on the first hit of the window.
// Counters live in Redis so the limit holds across server instances.
//
// The limiter fails open: if Redis is unreachable the request proceeds and a
// warning is logged. Availability of the API is preferred over strict limits.
func RateLimit(client redis.UniversalClient, cfg RateLimitConfig, logger zerolog.Logger) echo.MiddlewareFunc {
	limit := int64(cfg.RequestsPerMinute + cfg.Burst)
	log := logger.With().Str("component", "ratelimit").Logger()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := "ratelimit:" + c.RealIP()

			count, err := client.Incr(ctx, key).Result()
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			// First hit opens the window.
			if count == 1 {
				if err := client.Expire(ctx, key, rateLimitWindow).Err(); err != nil {
					log.Warn().Err(err).Msg("failed to set rate limit window")
				}
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.FormatInt(limit, 10))

			if count > limit {
				retryAfter := int(rateLimitWindow.Seconds())
				if ttl, err := client.TTL(ctx, key).Result(); err == nil && ttl > 0 {
					retryAfter = int(ttl.Seconds()) + 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				c.Response().Header().Set("X-RateLimit-Remaining", "0")
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			remaining := limit - count
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			return next(c)
		}
	}
}
