package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AddOnModel is an extra charge on an assignment. It feeds the payment total only at creation time.
type AddOnModel struct {
	AddOnID           uuid.UUID       `gorm:"column:add_on_id;type:uuid;primaryKey" json:"add_on_id"`
	AddOnRoomTenantID uuid.UUID       `gorm:"column:add_on_room_tenant_id;type:uuid;not null;index:idx_add_ons_room_tenant" json:"add_on_room_tenant_id"`
	AddOnDescription  string          `gorm:"column:add_on_description;size:200;not null" json:"add_on_description"`
	AddOnAmount       decimal.Decimal `gorm:"column:add_on_amount;type:decimal(10,2);not null" json:"add_on_amount"`
	AddOnCreatedAt    time.Time       `gorm:"column:add_on_created_at;autoCreateTime;index:idx_add_ons_created" json:"add_on_created_at"`
}

func (AddOnModel) TableName() string {
	return "add_ons"
}

func (m *AddOnModel) BeforeCreate(tx *gorm.DB) error {
	if m.AddOnID == uuid.Nil {
		m.AddOnID = uuid.New()
	}
	return nil
}
