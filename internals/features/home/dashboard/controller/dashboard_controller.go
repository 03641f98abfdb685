// file: internals/features/home/dashboard/controller/dashboard_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"rentrix_backend/internals/configs"
	dashboardService "rentrix_backend/internals/features/home/dashboard/service"
	assignmentDTO "rentrix_backend/internals/features/rooms/assignments/dto"
	assignmentService "rentrix_backend/internals/features/rooms/assignments/service"
	userModel "rentrix_backend/internals/features/users/user/model"
	helper "rentrix_backend/internals/helpers"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GET /api/a/dashboard
func (ctl *DashboardController) Landlord(c *fiber.Ctx) error {
	sx, err := helper.SQLX(ctl.DB)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Database unavailable")
	}
	out, err := dashboardService.Landlord(c.UserContext(), sx, helper.Now())
	if err != nil {
		configs.Log.Error("landlord dashboard failed", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load dashboard")
	}
	return helper.JsonOK(c, "ok", out)
}

type tenantAssignment struct {
	assignmentDTO.AssignmentResponse
	BaseRent   decimal.Decimal `json:"base_rent"`
	MonthlyDue decimal.Decimal `json:"monthly_due"`
}

// GET /api/u/dashboard
// Landlords get their own dashboard here too.
func (ctl *DashboardController) Home(c *fiber.Ctx) error {
	if helper.IsLandlord(c) {
		return ctl.Landlord(c)
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	db := ctl.DB.WithContext(c.UserContext())

	active, err := assignmentService.ActiveAssignmentsForTenant(db, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load room assignment")
	}
	assignments := make([]tenantAssignment, 0, len(active))
	for _, a := range active {
		full, err := assignmentService.GetAssignment(db, a.RoomTenantID)
		if err != nil {
			return helper.FromError(c, err)
		}
		resp := assignmentDTO.ToAssignmentResponse(*full)
		assignments = append(assignments, tenantAssignment{
			AssignmentResponse: resp,
			BaseRent:           configs.BaseRent,
			MonthlyDue:         configs.BaseRent.Add(resp.AddOnTotal),
		})
	}

	sx, err := helper.SQLX(ctl.DB)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Database unavailable")
	}
	payments, err := dashboardService.TenantPayments(c.UserContext(), sx, userID)
	if err != nil {
		configs.Log.Error("tenant dashboard payments failed", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load payments")
	}

	var user userModel.UserModel
	if err := db.Select("id", "user_name", "first_name", "last_name").
		Where("id = ?", userID).First(&user).Error; err != nil {
		return helper.FromError(c, helper.MapDBError(err))
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"tenant_name":     user.FullName(),
		"assignments":     assignments,
		"recent_payments": payments,
	})
}
