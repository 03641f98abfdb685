package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	searchController "rentrix_backend/internals/features/home/search/controller"
)

// SearchUserRoutes mounts under /api/u.
func SearchUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := searchController.NewSearchController(db)
	r.Get("/search", ctl.Search)
}
