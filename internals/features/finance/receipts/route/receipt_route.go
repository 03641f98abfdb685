package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	receiptController "rentrix_backend/internals/features/finance/receipts/controller"
	rateLimiter "rentrix_backend/internals/middlewares"
)

// ReceiptUserRoutes mounts under /api/u. Landlords see every receipt, tenants only their own.
func ReceiptUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := receiptController.NewReceiptController(db, nil, nil)
	g := r.Group("/receipts")
	g.Get("/:id", ctl.Get)
	g.Get("/:id/pdf", rateLimiter.RenderRateLimiter(), ctl.DownloadPDF)
}
