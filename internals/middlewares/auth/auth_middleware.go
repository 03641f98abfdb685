// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"rentrix_backend/internals/configs"
	"rentrix_backend/internals/constants"
	authRepo "rentrix_backend/internals/features/users/auth/repository"
	userService "rentrix_backend/internals/features/users/user/service"
	helpers "rentrix_backend/internals/helpers"
)

// AuthMiddleware verifies the access token and stores the caller on Locals.
// Role and access state come from the database, not the token, so a reset
// by the landlord takes effect on the tenant's very next request.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		// blacklist check, once per request
		if c.Locals("token_checked") == nil {
			blacklisted, err := authRepo.IsBlacklisted(db, tokenString)
			if err != nil {
				configs.Log.Error("blacklist lookup failed", zap.Error(err))
				return helpers.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
			}
			if blacklisted {
				return helpers.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
			}
			c.Locals("token_checked", true)
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			configs.Log.Error("JWT_SECRET is empty")
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secretKey), nil
		}); err != nil {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}
		if typ, _ := claims["typ"].(string); typ != "" && typ != "access" {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Wrong token type")
		}
		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}

		access, err := userService.ResolveAccess(db, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helpers.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			configs.Log.Error("resolve access failed", zap.Error(err))
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
		}
		if !access.IsActive {
			return helpers.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
		}

		c.Locals(constants.LocUserID, userID.String())
		c.Locals(constants.LocUserRole, access.Role())
		c.Locals(constants.LocUserName, access.UserName)
		c.Locals(constants.LocAccessState, access.State())
		helpers.SetRawAccessToken(c, tokenString)

		return c.Next()
	}
}
