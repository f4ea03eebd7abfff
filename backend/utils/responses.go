package utils

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Success   bool        `json:"success"`
	Error     string      `json:"error"`
	Message   string      `json:"message,omitempty"`
	Errors    []string    `json:"errors,omitempty"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"requestId,omitempty"`
}

// Error writes an error reply with the status text as the error field.
func Error(c *fiber.Ctx, status int, message string, details ...interface{}) error {
	response := ErrorResponse{
		Success: false,
		Error:   http.StatusText(status),
		Message: message,
	}

	if len(details) > 0 {
		response.Details = details[0]
	}

	return c.Status(status).JSON(response)
}

// ValidationError writes a 400 listing every failed field.
func ValidationError(c *fiber.Ctx, messages []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Success: false,
		Error:   http.StatusText(fiber.StatusBadRequest),
		Message: "Validation Error",
		Errors:  messages,
	})
}

// Conflict writes a 409 for a unique-key violation.
func Conflict(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
		Success: false,
		Error:   "Duplicate entry",
		Message: message,
	})
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

func BadGateway(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadGateway, message)
}

// InternalServerError hides err from the client. The request id lets the
// caller match the reply with the server log.
func InternalServerError(c *fiber.Ctx, message string) error {
	response := ErrorResponse{
		Success: false,
		Error:   http.StatusText(fiber.StatusInternalServerError),
		Message: message,
	}
	if rid, ok := c.Locals("requestid").(string); ok {
		response.RequestID = rid
	}
	return c.Status(fiber.StatusInternalServerError).JSON(response)
}
