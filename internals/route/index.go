// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	rateLimiter "rentrix_backend/internals/middlewares"
	authMiddleware "rentrix_backend/internals/middlewares/auth"
	routeDetails "rentrix_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== GROUPS =====================

	// PRIVATE (USER): any logged-in account, subject to the password-change gate
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u",
		rateLimiter.GlobalRateLimiter(),
		authMiddleware.AuthMiddleware(db),
		authMiddleware.AccessGate(),
	)

	// ADMIN: landlords only (role checked again per feature group)
	log.Println("[INFO] Setting up ADMIN group (Auth + Gate + RoleCheck)...")
	admin := app.Group("/api/a",
		rateLimiter.GlobalRateLimiter(),
		authMiddleware.AuthMiddleware(db),
		authMiddleware.AccessGate(),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Home routes...")
	routeDetails.HomeAdminRoutes(admin, db)
	routeDetails.HomeUserRoutes(private, db)

	log.Println("[INFO] Mounting Rooms routes...")
	routeDetails.RoomsAdminRoutes(admin, db)
	routeDetails.RoomsUserRoutes(private, db)

	log.Println("[INFO] Mounting Finance routes...")
	routeDetails.FinanceAdminRoutes(admin, db)
	routeDetails.FinanceUserRoutes(private, db)

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserAdminRoutes(admin, db)
}
