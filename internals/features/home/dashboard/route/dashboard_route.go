package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rentrix_backend/internals/constants"
	dashboardController "rentrix_backend/internals/features/home/dashboard/controller"
	authMiddleware "rentrix_backend/internals/middlewares/auth"
)

// DashboardAdminRoutes mounts under /api/a.
func DashboardAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := dashboardController.NewDashboardController(db)
	r.Get("/dashboard",
		authMiddleware.OnlyRoles(constants.RoleErrorLandlord("the landlord dashboard"), constants.LandlordOnly...),
		ctl.Landlord,
	)
}

// DashboardUserRoutes mounts under /api/u.
func DashboardUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := dashboardController.NewDashboardController(db)
	r.Get("/dashboard", ctl.Home)
}
