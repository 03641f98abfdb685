package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userRoute "rentrix_backend/internals/features/users/user/route"
)

// UserAdminRoutes: tenant accounts, password resets, landlord signature.
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	userRoute.UserAdminRoutes(admin, db)
}
