package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"rentrix_backend/internals/configs"
	"rentrix_backend/internals/features/finance/payments/dto"
	paymentService "rentrix_backend/internals/features/finance/payments/service"
	helper "rentrix_backend/internals/helpers"
)

// MyPayments: GET /api/u/payments?year=YYYY
// The caller's own payments for one year (default: current) plus the years they can pick from.
func (ctl *PaymentController) MyPayments(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	now := time.Now()
	year := c.QueryInt("year", now.Year())

	rows, err := paymentService.History(ctl.DB.WithContext(c.UserContext()), userID, year)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"year":            year,
		"available_years": paymentService.AvailableYears(now, year),
		"payments":        dto.ToPaymentResponses(rows, configs.CurrencySymbol),
	})
}
