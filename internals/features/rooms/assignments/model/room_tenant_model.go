package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	roomModel "rentrix_backend/internals/features/rooms/rooms/model"
	userModel "rentrix_backend/internals/features/users/user/model"
)

const (
	AssignmentActive   = "active"
	AssignmentInactive = "inactive"
)

// RoomTenantModel links a tenant to a room. (room, tenant) is unique regardless of status.
type RoomTenantModel struct {
	RoomTenantID         uuid.UUID      `gorm:"column:room_tenant_id;type:uuid;primaryKey" json:"room_tenant_id"`
	RoomTenantRoomID     uuid.UUID      `gorm:"column:room_tenant_room_id;type:uuid;not null;uniqueIndex:uq_room_tenants_room_user,priority:1;index:idx_room_tenants_room_status,priority:1" json:"room_tenant_room_id"`
	RoomTenantUserID     uuid.UUID      `gorm:"column:room_tenant_user_id;type:uuid;not null;uniqueIndex:uq_room_tenants_room_user,priority:2;index:idx_room_tenants_user" json:"room_tenant_user_id"`
	RoomTenantMoveInDate datatypes.Date `gorm:"column:room_tenant_move_in_date;not null" json:"room_tenant_move_in_date"`
	RoomTenantStatus     string         `gorm:"column:room_tenant_status;size:10;not null;default:'active';index:idx_room_tenants_room_status,priority:2" json:"room_tenant_status"`

	RoomTenantCreatedAt time.Time `gorm:"column:room_tenant_created_at;autoCreateTime" json:"room_tenant_created_at"`
	RoomTenantUpdatedAt time.Time `gorm:"column:room_tenant_updated_at;autoUpdateTime" json:"room_tenant_updated_at"`

	Room   *roomModel.RoomModel `gorm:"foreignKey:RoomTenantRoomID;references:RoomID;constraint:OnDelete:CASCADE" json:"room,omitempty"`
	Tenant *userModel.UserModel `gorm:"foreignKey:RoomTenantUserID;references:ID;constraint:OnDelete:CASCADE" json:"tenant,omitempty"`
	AddOns []AddOnModel         `gorm:"foreignKey:AddOnRoomTenantID;references:RoomTenantID;constraint:OnDelete:CASCADE" json:"add_ons,omitempty"`
}

func (RoomTenantModel) TableName() string {
	return "room_tenants"
}

func (m *RoomTenantModel) BeforeCreate(tx *gorm.DB) error {
	if m.RoomTenantID == uuid.Nil {
		m.RoomTenantID = uuid.New()
	}
	if m.RoomTenantStatus == "" {
		m.RoomTenantStatus = AssignmentActive
	}
	return nil
}

func (m *RoomTenantModel) IsActive() bool {
	return m.RoomTenantStatus == AssignmentActive
}
