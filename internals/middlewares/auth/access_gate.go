package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"rentrix_backend/internals/constants"
	helpers "rentrix_backend/internals/helpers"
)

// Paths a tenant may still reach while a password change is pending.
var passwordChangeAllowList = map[string]struct{}{
	"/api/auth/logout":                {},
	"/api/auth/force-password-change": {},
	"/api/auth/me":                    {},
	"/api/auth/refresh-token":         {},
}

// AccessGate blocks every protected route with 403 PASSWORD_CHANGE_REQUIRED
// until the tenant completes the forced password change. Runs after AuthMiddleware.
func AccessGate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, _ := c.Locals(constants.LocAccessState).(string)
		if state != constants.AccessTenantMustChangePw {
			return c.Next()
		}
		if _, ok := passwordChangeAllowList[strings.TrimRight(c.Path(), "/")]; ok {
			return c.Next()
		}
		return helpers.JsonErrorCode(c, fiber.StatusForbidden, constants.ErrCodePasswordChangeRequired,
			"You must change your password before continuing")
	}
}
