package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rentrix_backend/internals/constants"
	userModel "rentrix_backend/internals/features/users/user/model"
)

// AccessInfo is what the auth middleware needs about the caller on every request.
type AccessInfo struct {
	UserID             uuid.UUID
	UserName           string
	IsStaff            bool
	IsActive           bool
	MustChangePassword bool
}

func (a AccessInfo) Role() string {
	return constants.RoleFromStaff(a.IsStaff)
}

// State maps the identity to one of the three access states.
func (a AccessInfo) State() string {
	switch {
	case a.IsStaff:
		return constants.AccessLandlord
	case a.MustChangePassword:
		return constants.AccessTenantMustChangePw
	default:
		return constants.AccessTenant
	}
}

// ResolveAccess reads the user row and its security profile in one query.
// A tenant without a profile row is not forced to change the password.
func ResolveAccess(tx *gorm.DB, userID uuid.UUID) (*AccessInfo, error) {
	var row struct {
		ID        uuid.UUID
		UserName  string
		IsStaff   bool
		IsActive  bool
		ForcePass *bool `gorm:"column:force_pass"`
	}
	res := tx.Table("users AS u").
		Select("u.id, u.user_name, u.is_staff, u.is_active, p.tenant_security_profile_force_password_change AS force_pass").
		Joins("LEFT JOIN tenant_security_profiles p ON p.tenant_security_profile_user_id = u.id").
		Where("u.id = ?", userID).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &AccessInfo{
		UserID:             row.ID,
		UserName:           row.UserName,
		IsStaff:            row.IsStaff,
		IsActive:           row.IsActive,
		MustChangePassword: !row.IsStaff && row.ForcePass != nil && *row.ForcePass,
	}, nil
}

// SetForcePasswordChange upserts the tenant's security profile flag.
func SetForcePasswordChange(tx *gorm.DB, userID uuid.UUID, force bool) error {
	p := userModel.TenantSecurityProfileModel{
		TenantSecurityProfileUserID:              userID,
		TenantSecurityProfileForcePasswordChange: force,
	}
	// Create alone would swap false for the column default.
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_security_profile_user_id"}},
		DoUpdates: clause.Assignments(map[string]any{"tenant_security_profile_force_password_change": force}),
	}).Select("*").Create(&p).Error
}

// MustChangePassword reports the flag; false when no profile exists.
func MustChangePassword(tx *gorm.DB, userID uuid.UUID) (bool, error) {
	var p userModel.TenantSecurityProfileModel
	err := tx.Where("tenant_security_profile_user_id = ?", userID).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.TenantSecurityProfileForcePasswordChange, nil
}
