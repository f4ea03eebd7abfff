package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LoggingMiddleware writes one structured event per request.
func LoggingMiddleware(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()
		status := finalStatus(c, err)

		var event *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			event = logger.Error()
		case status >= fiber.StatusBadRequest:
			event = logger.Warn()
		default:
			event = logger.Info()
		}

		if rid, ok := c.Locals("requestid").(string); ok {
			event = event.Str("request_id", rid)
		}
		if actor := ActorID(c); actor != uuid.Nil {
			event = event.Str("user_id", actor.String())
		}

		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Str("user_agent", c.Get(fiber.HeaderUserAgent)).
			Err(err).
			Msg("request")

		return nil
	}
}

// finalStatus hands err to the app error handler so the response carries its
// real status, then reports that status. The caller must not return err
// afterwards or the handler would run twice.
func finalStatus(c *fiber.Ctx, err error) int {
	if err != nil {
		if herr := c.App().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}
	return c.Response().StatusCode()
}
