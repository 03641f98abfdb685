// file: internals/features/rooms/assignments/route/assignment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rentrix_backend/internals/constants"
	assignmentController "rentrix_backend/internals/features/rooms/assignments/controller"
	authMiddleware "rentrix_backend/internals/middlewares/auth"
)

// AssignmentAdminRoutes mounts under /api/a.
func AssignmentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := assignmentController.NewAssignmentController(db, nil)
	onlyLandlord := authMiddleware.OnlyRoles(constants.RoleErrorLandlord("tenant assignments"), constants.LandlordOnly...)

	rt := r.Group("/rooms/:id/tenants", onlyLandlord)
	rt.Post("/", ctl.Assign)
	rt.Get("/:assignment_id", ctl.Get)
	rt.Patch("/:assignment_id", ctl.Patch)
	rt.Delete("/:assignment_id", ctl.Delete)
	rt.Post("/:assignment_id/archive", ctl.Archive)

	t := r.Group("/tenants", onlyLandlord)
	t.Get("/", ctl.ListTenants)
	t.Get("/archived", ctl.ListArchived)
	t.Post("/:assignment_id/restore", ctl.Restore)

	ao := r.Group("/assignments/:assignment_id/addons", onlyLandlord)
	ao.Get("/", ctl.ListAddOns)
	ao.Post("/", ctl.CreateAddOn)
	ao.Delete("/:addon_id", ctl.DeleteAddOn)
}
