package handlers

import (
	"strings"

	"rewear/internal/domain"
	applog "rewear/internal/log"
	"rewear/internal/services"

	"github.com/gofiber/fiber/v2"
)

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// RequireUser authenticates the bearer token and stashes the user in Locals.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return jsonErr(c, fiber.StatusUnauthorized, "unauthorized", "Authentication required")
		}
		u, err := auth.UserFromToken(raw)
		if err != nil {
			applog.Security(c, "auth.token.reject", nil)
			return jsonErr(c, fiber.StatusUnauthorized, "unauthorized", "Authentication required")
		}
		c.Locals("user", u)
		c.Locals("userID", u.ID)
		return c.Next()
	}
}

// AdminOnly must sit behind RequireUser in the chain.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, _ := c.Locals("user").(*domain.User)
		if u == nil || u.Role != domain.RoleAdmin {
			applog.Security(c, "access.denied.admin", nil)
			return jsonErr(c, fiber.StatusForbidden, "forbidden", "Access denied")
		}
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
