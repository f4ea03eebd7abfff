package controllers

import (
	"strings"

	"learngenie/backend/middleware"
	"learngenie/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// parseID parses a UUID path or body value. label names the value in the
// 400 message.
func parseID(raw, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+label+" format")
	}
	return id, nil
}

// resolveUser returns the user a request acts for. An empty supplied id
// means the caller; any other id must be the caller unless the caller is an
// admin.
func resolveUser(c *fiber.Ctx, supplied string) (uuid.UUID, error) {
	claims := middleware.Claims(c)
	if claims == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	if strings.TrimSpace(supplied) == "" {
		return claims.UserID, nil
	}
	id, err := parseID(supplied, "userId")
	if err != nil {
		return uuid.Nil, err
	}
	if id != claims.UserID && claims.Role != models.RoleAdmin {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "Not allowed to act for another user")
	}
	return id, nil
}

// userParam parses the named path parameter and checks the caller may act
// on that user.
func userParam(c *fiber.Ctx, name, label string) (uuid.UUID, error) {
	id, err := parseID(c.Params(name), label)
	if err != nil {
		return uuid.Nil, err
	}
	if !middleware.CanAccessUser(c, id) {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "Not allowed to access this user")
	}
	return id, nil
}

// pageParams reads 1-based page and limit query values. limit is clamped to
// [1, maxLimit].
func pageParams(c *fiber.Ctx, defaultLimit, maxLimit int) (int, int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
