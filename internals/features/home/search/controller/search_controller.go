package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"rentrix_backend/internals/configs"
	searchService "rentrix_backend/internals/features/home/search/service"
	helper "rentrix_backend/internals/helpers"
)

type SearchController struct {
	DB *gorm.DB
}

func NewSearchController(db *gorm.DB) *SearchController {
	return &SearchController{DB: db}
}

// GET /api/u/search?q=
// Answers a bare JSON array, without the usual envelope.
func (ctl *SearchController) Search(c *fiber.Ctx) error {
	results, err := searchService.Search(c.UserContext(), ctl.DB, c.Query("q"))
	if err != nil {
		configs.Log.Error("search failed", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Search failed")
	}
	return c.JSON(results)
}
