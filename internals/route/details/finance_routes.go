package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentRoute "rentrix_backend/internals/features/finance/payments/route"
	receiptRoute "rentrix_backend/internals/features/finance/receipts/route"
)

func FinanceAdminRoutes(admin fiber.Router, db *gorm.DB) {
	paymentRoute.PaymentAdminRoutes(admin, db)
}

func FinanceUserRoutes(user fiber.Router, db *gorm.DB) {
	paymentRoute.PaymentUserRoutes(user, db)
	receiptRoute.ReceiptUserRoutes(user, db)
}
