// file: internals/features/users/auth/route/user_route.go
package route

import (
	controller "rentrix_backend/internals/features/users/auth/controller"
	rateLimiter "rentrix_backend/internals/middlewares"
	authMiddleware "rentrix_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	// ==========================
	// PUBLIC
	// Base: /api/auth
	// ==========================
	baseAuth := app.Group("/api/auth")

	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/refresh-token", authController.RefreshToken)

	// ==========================
	// PROTECTED
	// ==========================
	protectedAuth := app.Group("/api/auth",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.AccessGate(),
	)

	protectedAuth.Post("/logout", authController.Logout)
	protectedAuth.Get("/me", authController.Me)
	protectedAuth.Post("/force-password-change", authController.ForcePasswordChange)
	protectedAuth.Post("/change-password", authController.ChangePassword)
}
