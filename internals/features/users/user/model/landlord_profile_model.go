package model

import (
	"time"

	"github.com/google/uuid"
)

// LandlordProfileModel holds the signature printed on receipts.
type LandlordProfileModel struct {
	LandlordProfileUserID       uuid.UUID `gorm:"column:landlord_profile_user_id;type:uuid;primaryKey" json:"landlord_profile_user_id"`
	LandlordProfileSignatureKey *string   `gorm:"column:landlord_profile_signature_key;size:255" json:"landlord_profile_signature_key,omitempty"`
	LandlordProfileSignatureURL *string   `gorm:"column:landlord_profile_signature_url;type:text" json:"landlord_profile_signature_url,omitempty"`
	LandlordProfileCreatedAt    time.Time `gorm:"column:landlord_profile_created_at;autoCreateTime" json:"landlord_profile_created_at"`
	LandlordProfileUpdatedAt    time.Time `gorm:"column:landlord_profile_updated_at;autoUpdateTime" json:"landlord_profile_updated_at"`
}

func (LandlordProfileModel) TableName() string {
	return "landlord_profiles"
}
