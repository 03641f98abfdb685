// file: internals/features/users/user/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rentrix_backend/internals/constants"
	userController "rentrix_backend/internals/features/users/user/controller"
	authMiddleware "rentrix_backend/internals/middlewares/auth"
)

// UserAdminRoutes mounts under /api/a.
func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	onlyLandlord := authMiddleware.OnlyRoles(constants.RoleErrorLandlord("tenant accounts"), constants.LandlordOnly...)

	accounts := userController.NewTenantAccountController(db, nil)
	r.Post("/tenants", onlyLandlord, accounts.Create)
	r.Get("/users", onlyLandlord, accounts.List)
	r.Post("/users/:id/reset-password", onlyLandlord, accounts.ResetPassword)

	sig := userController.NewSignatureController(db, nil)
	s := r.Group("/signature", onlyLandlord)
	s.Get("/", sig.Get)
	s.Post("/", sig.Upload)
}
