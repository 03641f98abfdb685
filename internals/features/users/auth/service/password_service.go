package service

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authHelper "rentrix_backend/internals/features/users/auth/helper"
	authRepo "rentrix_backend/internals/features/users/auth/repository"
	userService "rentrix_backend/internals/features/users/user/service"
	helpers "rentrix_backend/internals/helpers"
)

var validate = helpers.NewValidator()

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

type forcePasswordChangeInput struct {
	OldPassword     string `json:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
	FirstName       string `json:"first_name" validate:"required,max=30"`
	LastName        string `json:"last_name" validate:"required,max=30"`
	Email           string `json:"email" validate:"required,email,max=254"`
}

// ========================== CHANGE PASSWORD ==========================
// POST /api/auth/change-password (any role, voluntary)
func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromError(c, err)
	}
	var input changePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := validate.Struct(&input); err != nil {
		return helpers.ValidationError(c, err)
	}

	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helpers.FromError(c, err)
	}
	if err := authHelper.CheckPasswordHash(user.Password, input.CurrentPassword); err != nil {
		return helpers.JsonValidationError(c, map[string][]string{"current_password": {"Current password is incorrect"}})
	}
	if err := authHelper.ValidateNewPassword(input.NewPassword, user.UserName); err != nil {
		return helpers.JsonValidationError(c, map[string][]string{"new_password": {err.Error()}})
	}
	hashed, err := authHelper.HashPassword(input.NewPassword)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := authRepo.UpdateUserPassword(db, user.ID, hashed); err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}
	return helpers.JsonUpdated(c, "Password changed", nil)
}

// ========================== FORCED PASSWORD CHANGE ==========================
// POST /api/auth/force-password-change
// First-login form for tenants: new password plus name and email. Clears the flag.
func ForcePasswordChange(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromError(c, err)
	}
	var input forcePasswordChangeInput
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)
	if err := validate.Struct(&input); err != nil {
		return helpers.ValidationError(c, err)
	}

	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helpers.FromError(c, err)
	}
	if user.IsStaff {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Landlord accounts do not need a forced password change")
	}
	if err := authHelper.CheckPasswordHash(user.Password, input.OldPassword); err != nil {
		return helpers.JsonValidationError(c, map[string][]string{"old_password": {"Old password is incorrect"}})
	}
	if input.NewPassword == input.OldPassword {
		return helpers.JsonValidationError(c, map[string][]string{"new_password": {"New password must differ from the old one"}})
	}
	if err := authHelper.ValidateNewPassword(input.NewPassword, user.UserName); err != nil {
		return helpers.JsonValidationError(c, map[string][]string{"new_password": {err.Error()}})
	}
	hashed, err := authHelper.HashPassword(input.NewPassword)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	err = db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := authRepo.UpdateUserPassword(tx, user.ID, hashed); err != nil {
			return err
		}
		if err := userService.ApplyProfile(tx, user.ID, userService.CompleteProfileInput{
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Email:     input.Email,
		}); err != nil {
			return err
		}
		return userService.SetForcePasswordChange(tx, user.ID, false)
	})
	if err != nil {
		return helpers.FromError(c, err)
	}

	access, err := userService.ResolveAccess(db, user.ID)
	if err != nil {
		return helpers.FromError(c, err)
	}
	fresh, err := authRepo.FindUserByID(db, user.ID)
	if err != nil {
		return helpers.FromError(c, err)
	}
	return helpers.JsonUpdated(c, "Password updated. Welcome!", fiber.Map{"user": buildUserPayload(*fresh, access)})
}
