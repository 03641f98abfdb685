package model

import (
	"time"

	"github.com/google/uuid"
)

// TenantSecurityProfileModel exists for every non-staff user.
type TenantSecurityProfileModel struct {
	TenantSecurityProfileUserID              uuid.UUID `gorm:"column:tenant_security_profile_user_id;type:uuid;primaryKey" json:"tenant_security_profile_user_id"`
	TenantSecurityProfileForcePasswordChange bool      `gorm:"column:tenant_security_profile_force_password_change;not null;default:true" json:"tenant_security_profile_force_password_change"`
	TenantSecurityProfileCreatedAt           time.Time `gorm:"column:tenant_security_profile_created_at;autoCreateTime" json:"tenant_security_profile_created_at"`
	TenantSecurityProfileUpdatedAt           time.Time `gorm:"column:tenant_security_profile_updated_at;autoUpdateTime" json:"tenant_security_profile_updated_at"`
}

func (TenantSecurityProfileModel) TableName() string {
	return "tenant_security_profiles"
}
