package auth

import (
	"github.com/gofiber/fiber/v2"

	"rentrix_backend/internals/constants"
	helpers "rentrix_backend/internals/helpers"
)

// RoleMiddlewareWithCustomError checks the role set by AuthMiddleware.
func RoleMiddlewareWithCustomError(allowedRoles []string, customForbiddenMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(constants.LocUserRole).(string)
		if !ok || role == "" {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		if customForbiddenMessage == "" {
			customForbiddenMessage = "Forbidden: you are not authorized to access this resource"
		}
		return helpers.JsonError(c, fiber.StatusForbidden, customForbiddenMessage)
	}
}

// Shortcut
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}
