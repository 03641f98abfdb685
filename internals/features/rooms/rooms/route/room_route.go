// file: internals/features/rooms/rooms/route/room_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rentrix_backend/internals/constants"
	roomController "rentrix_backend/internals/features/rooms/rooms/controller"
	authMiddleware "rentrix_backend/internals/middlewares/auth"
)

// RoomAdminRoutes mounts under /api/a.
func RoomAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := roomController.NewRoomController(db, nil)

	g := r.Group("/rooms",
		authMiddleware.OnlyRoles(constants.RoleErrorLandlord("rooms"), constants.LandlordOnly...),
	)
	g.Post("/reconcile", ctl.ReconcileAll)
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.Get)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", ctl.Delete)
}

// RoomUserRoutes mounts under /api/u.
func RoomUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := roomController.NewRoomController(db, nil)
	r.Get("/rooms", ctl.ListPublic)
	r.Get("/rooms/:id", ctl.GetPublic)
}
