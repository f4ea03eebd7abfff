package middleware

import (
	"learngenie/backend/config"
	"learngenie/backend/models"
	"learngenie/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const claimsKey = "claims"

// AuthMiddleware rejects requests without a valid session token and stores
// the token claims for the handlers.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ExtractClaimsFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// OptionalAuth stores the claims when a valid token is present and lets the
// request through either way.
func OptionalAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) != "" {
			if claims, err := utils.ExtractClaimsFromToken(c, cfg); err == nil {
				c.Locals(claimsKey, claims)
			}
		}
		return c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		for _, role := range roles {
			if claims.Role == role {
				return c.Next()
			}
		}
		return utils.Forbidden(c, "Forbidden - insufficient role")
	}
}

// Claims returns the authenticated caller, or nil.
func Claims(c *fiber.Ctx) *utils.Claims {
	claims, _ := c.Locals(claimsKey).(*utils.Claims)
	return claims
}

// ActorID returns the authenticated caller's id, or uuid.Nil.
func ActorID(c *fiber.Ctx) uuid.UUID {
	if claims := Claims(c); claims != nil {
		return claims.UserID
	}
	return uuid.Nil
}

// CanAccessUser reports whether the caller may act on userID's data.
func CanAccessUser(c *fiber.Ctx, userID uuid.UUID) bool {
	claims := Claims(c)
	if claims == nil {
		return false
	}
	return claims.UserID == userID || claims.Role == models.RoleAdmin
}
