package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authHelper "rentrix_backend/internals/features/users/auth/helper"
	userModel "rentrix_backend/internals/features/users/user/model"
	helper "rentrix_backend/internals/helpers"
)

var (
	ErrUsernameTaken   = fiber.NewError(fiber.StatusConflict, "This username is already taken")
	ErrUsernameInvalid = fiber.NewError(fiber.StatusBadRequest, "Username is empty after normalization")
	ErrUserNotFound    = fiber.NewError(fiber.StatusNotFound, "User not found")
	ErrNotATenant      = fiber.NewError(fiber.StatusBadRequest, "User is a landlord, not a tenant")
)

type CreateTenantInput struct {
	UserName string
	Password string
}

// CreateTenant makes a tenant login with an initial password.
// The username gets the Tenant_ prefix when missing and must be unique ignoring case.
// The new tenant must change the password on first login.
func CreateTenant(ctx context.Context, db *gorm.DB, in CreateTenantInput) (*userModel.UserModel, error) {
	username := helper.TenantUsername(in.UserName)
	if username == "" {
		return nil, ErrUsernameInvalid
	}
	if err := authHelper.ValidateNewPassword(in.Password, username); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	hash, err := authHelper.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	var u *userModel.UserModel
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := helper.UsernameTakenCI(ctx, tx, username)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}
		u = &userModel.UserModel{
			UserName: username,
			Password: hash,
			IsStaff:  false,
			IsActive: true,
		}
		if err := tx.Create(u).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return ErrUsernameTaken
			}
			return err
		}
		return SetForcePasswordChange(tx, u.ID, true)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ResetTenantPassword sets a new password chosen by the landlord and forces a change at next login.
func ResetTenantPassword(ctx context.Context, db *gorm.DB, userID uuid.UUID, newPassword string) (*userModel.UserModel, error) {
	var u userModel.UserModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", userID).First(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if u.IsStaff {
			return ErrNotATenant
		}
		if err := authHelper.ValidateNewPassword(newPassword, u.UserName); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		hash, err := authHelper.HashPassword(newPassword)
		if err != nil {
			return err
		}
		if err := tx.Model(&u).Update("password", hash).Error; err != nil {
			return err
		}
		// outstanding sessions keep working until the access token expires
		if err := tx.Exec(`UPDATE refresh_tokens SET revoked_at = ? WHERE user_id = ? AND revoked_at IS NULL`,
			helper.Now(), u.ID).Error; err != nil {
			return err
		}
		return SetForcePasswordChange(tx, u.ID, true)
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

type CompleteProfileInput struct {
	FirstName string
	LastName  string
	Email     string
}

// ApplyProfile writes first/last name and email from the first-login form.
func ApplyProfile(tx *gorm.DB, userID uuid.UUID, in CompleteProfileInput) error {
	email := strings.TrimSpace(in.Email)
	return tx.Model(&userModel.UserModel{}).Where("id = ?", userID).Updates(map[string]any{
		"first_name": strings.TrimSpace(in.FirstName),
		"last_name":  strings.TrimSpace(in.LastName),
		"email":      &email,
	}).Error
}

// ListTenantAccounts returns non-staff users, optionally filtered by q.
func ListTenantAccounts(tx *gorm.DB, q string, limit, offset int) ([]userModel.UserModel, int64, error) {
	db := tx.Model(&userModel.UserModel{}).Where("is_staff = ?", false)
	if q = strings.TrimSpace(q); q != "" {
		s := "%" + strings.ToLower(q) + "%"
		db = db.Where(`LOWER(user_name) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(COALESCE(email,'')) LIKE ?`, s, s, s, s)
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []userModel.UserModel
	err := db.Order("first_name ASC").Order("last_name ASC").Order("user_name ASC").
		Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, err
}
