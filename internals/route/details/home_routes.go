package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dashboardRoute "rentrix_backend/internals/features/home/dashboard/route"
	searchRoute "rentrix_backend/internals/features/home/search/route"
)

func HomeAdminRoutes(admin fiber.Router, db *gorm.DB) {
	dashboardRoute.DashboardAdminRoutes(admin, db)
}

func HomeUserRoutes(user fiber.Router, db *gorm.DB) {
	dashboardRoute.DashboardUserRoutes(user, db)
	searchRoute.SearchUserRoutes(user, db)
}
