// file: internals/features/finance/payments/route/payment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rentrix_backend/internals/constants"
	paymentController "rentrix_backend/internals/features/finance/payments/controller"
	authMiddleware "rentrix_backend/internals/middlewares/auth"
)

// PaymentAdminRoutes mounts under /api/a.
func PaymentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := paymentController.NewPaymentController(db, nil)

	g := r.Group("/payments",
		authMiddleware.OnlyRoles(constants.RoleErrorLandlord("payments"), constants.LandlordOnly...),
	)
	g.Get("/", ctl.List)
	g.Get("/tracking", ctl.Tracking)
	g.Get("/tracking/export", ctl.ExportTracking)
	g.Patch("/:id", ctl.Patch)

	t := r.Group("/tenants/:user_id/payments",
		authMiddleware.OnlyRoles(constants.RoleErrorLandlord("tenant payments"), constants.LandlordOnly...),
	)
	t.Get("/", ctl.TenantHistory)
	t.Get("/preview", ctl.Preview)
	t.Post("/", ctl.Create)
}

// PaymentUserRoutes mounts under /api/u.
func PaymentUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := paymentController.NewPaymentController(db, nil)
	r.Get("/payments", ctl.MyPayments)
}
