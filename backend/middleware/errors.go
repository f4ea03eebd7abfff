package middleware

import (
	"errors"

	"learngenie/backend/repository"
	"learngenie/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the application-wide fiber error handler. Handlers may
// return repository or validation errors directly and get the matching
// status here.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var ve *utils.ValidationErrors
	if errors.As(err, &ve) {
		return utils.ValidationError(c, ve.Messages)
	}

	var dup *repository.DuplicateError
	if errors.As(err, &dup) {
		return utils.Conflict(c, dup.Error())
	}
	if errors.Is(err, repository.ErrDuplicate) {
		return utils.Conflict(c, "Record already exists")
	}
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NotFound(c, "Resource not found")
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= fiber.StatusInternalServerError {
			return utils.InternalServerError(c, "Internal server error")
		}
		return utils.Error(c, fe.Code, fe.Message)
	}

	rid, _ := c.Locals("requestid").(string)
	log.Error().Err(err).
		Str("request_id", rid).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("unhandled error")
	return utils.InternalServerError(c, "Internal server error")
}

// NotFoundHandler answers every route that did not match.
func NotFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success":      false,
		"error":        "Not Found",
		"message":      "Route not found",
		"requestedUrl": c.OriginalURL(),
	})
}
