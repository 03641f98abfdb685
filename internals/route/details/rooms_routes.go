package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	assignmentRoute "rentrix_backend/internals/features/rooms/assignments/route"
	roomRoute "rentrix_backend/internals/features/rooms/rooms/route"
)

func RoomsAdminRoutes(admin fiber.Router, db *gorm.DB) {
	roomRoute.RoomAdminRoutes(admin, db)
	assignmentRoute.AssignmentAdminRoutes(admin, db)
}

func RoomsUserRoutes(user fiber.Router, db *gorm.DB) {
	roomRoute.RoomUserRoutes(user, db)
}
