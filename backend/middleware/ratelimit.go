package middleware

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"learngenie/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type RateLimiter struct {
	redisClient *redis.Client
}

// NewRateLimiter counts requests in Redis. A nil client falls back to a
// per-process counter.
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{redisClient: client}
}

// Limit allows limit requests per client IP in each window.
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) fiber.Handler {
	if limit <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if rl.redisClient == nil {
		return limiter.New(limiter.Config{
			Max:        limit,
			Expiration: window,
			LimitReached: func(c *fiber.Ctx) error {
				return tooManyRequests(c, window)
			},
		})
	}

	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, c.IP())
		ctx := c.UserContext()

		count, err := rl.redisClient.Incr(ctx, key).Result()
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable")
			return c.Next()
		}

		// First hit in the window starts the clock. A counter left without an
		// expiry would block the client forever, so drop it instead.
		if count == 1 {
			if err := rl.redisClient.Expire(ctx, key, window).Err(); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limit window not set, resetting counter")
				if err := rl.redisClient.Del(ctx, key).Err(); err != nil {
					log.Warn().Err(err).Str("key", key).Msg("rate limit counter not reset")
				}
				return c.Next()
			}
		}

		if count > int64(limit) {
			ttl, err := rl.redisClient.TTL(ctx, key).Result()
			if err == nil && ttl < 0 {
				// Counter survived without an expiry; give it one.
				if err := rl.redisClient.Expire(ctx, key, window).Err(); err != nil {
					log.Warn().Err(err).Str("key", key).Msg("rate limit window not repaired")
				}
			}
			if err != nil || ttl <= 0 {
				ttl = window
			}
			return tooManyRequests(c, ttl)
		}
		return c.Next()
	}
}

func tooManyRequests(c *fiber.Ctx, retryAfter time.Duration) error {
	seconds := int(math.Ceil(retryAfter.Seconds()))
	c.Set(fiber.HeaderRetryAfter, strconv.Itoa(seconds))
	return utils.Error(c, fiber.StatusTooManyRequests, "Too many requests, please try again later",
		fiber.Map{"retryAfterSeconds": seconds})
}
