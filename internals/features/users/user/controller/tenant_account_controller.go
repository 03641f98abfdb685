// file: internals/features/users/user/controller/tenant_account_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"rentrix_backend/internals/configs"
	"rentrix_backend/internals/features/users/user/dto"
	userService "rentrix_backend/internals/features/users/user/service"
	helper "rentrix_backend/internals/helpers"
)

type TenantAccountController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewTenantAccountController(db *gorm.DB, v *validator.Validate) *TenantAccountController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &TenantAccountController{DB: db, Validate: v}
}

// POST /api/a/tenants
func (ctl *TenantAccountController) Create(c *fiber.Ctx) error {
	var req dto.CreateTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	u, err := userService.CreateTenant(c.UserContext(), ctl.DB, userService.CreateTenantInput{
		UserName: req.UserName,
		Password: req.Password,
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	configs.Log.Info("tenant account created", zap.String("user_id", u.ID.String()), zap.String("user_name", u.UserName))

	return helper.JsonCreated(c, "Tenant account created. Share the initial password with the tenant.", dto.CreatedTenantResponse{
		UserResponse:       dto.ToUserResponse(*u),
		InitialPassword:    req.Password,
		MustChangePassword: true,
	})
}

// GET /api/a/users?q=
// Tenant accounts, assigned or not. Used to pick a tenant when assigning a room.
func (ctl *TenantAccountController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)
	rows, total, err := userService.ListTenantAccounts(ctl.DB.WithContext(c.UserContext()), c.Query("q"), p.Limit, p.Offset)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", dto.ToUserResponses(rows), helper.BuildPagination(total, p))
}

// POST /api/a/users/:id/reset-password
func (ctl *TenantAccountController) ResetPassword(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	u, err := userService.ResetTenantPassword(c.UserContext(), ctl.DB, id, req.NewPassword)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Password reset. The tenant must change it at next login.", fiber.Map{
		"user":                 dto.ToUserResponse(*u),
		"must_change_password": true,
	})
}
