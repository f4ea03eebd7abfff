package controllers

import (
	"context"
	"time"

	"learngenie/backend/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	healthTimeout = 2 * time.Second
	checkFailed   = "unavailable"
)

type HealthController struct {
	Store *repository.Store
	Redis *redis.Client
}

func NewHealthController(store *repository.Store, rdb *redis.Client) *HealthController {
	return &HealthController{Store: store, Redis: rdb}
}

// Health reports the reachability of the store and, when configured, Redis.
// A failing dependency turns the reply into a 503; the cause is only logged.
func (hc *HealthController) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	status := fiber.StatusOK
	checks := fiber.Map{"store": "ok"}
	if err := hc.Store.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("health check: store unreachable")
		checks["store"] = checkFailed
		status = fiber.StatusServiceUnavailable
	}
	if hc.Redis != nil {
		checks["redis"] = "ok"
		if err := hc.Redis.Ping(ctx).Err(); err != nil {
			log.Error().Err(err).Msg("health check: redis unreachable")
			checks["redis"] = checkFailed
			status = fiber.StatusServiceUnavailable
		}
	}

	overall := "ok"
	if status != fiber.StatusOK {
		overall = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{"status": overall, "checks": checks})
}
