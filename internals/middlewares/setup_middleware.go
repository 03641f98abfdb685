package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"rentrix_backend/internals/middlewares/logger"
)

// SetupMiddlewares installs the app-wide chain: panic recovery, request log, CORS.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
}
