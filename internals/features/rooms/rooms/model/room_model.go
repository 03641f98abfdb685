package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoomStatusVacant = "vacant"
	RoomStatusFull   = "full"

	DefaultRoomCapacity = 4
)

type RoomModel struct {
	RoomID               uuid.UUID `gorm:"column:room_id;type:uuid;primaryKey" json:"room_id"`
	RoomNumber           string    `gorm:"column:room_number;size:10;not null;uniqueIndex:uq_rooms_room_number" json:"room_number"`
	RoomCapacity         int       `gorm:"column:room_capacity;not null;default:4" json:"room_capacity"`
	RoomCurrentOccupants int       `gorm:"column:room_current_occupants;not null;default:0" json:"room_current_occupants"`
	RoomStatus           string    `gorm:"column:room_status;size:10;not null;default:'vacant';index:idx_rooms_status" json:"room_status"`

	RoomCreatedAt time.Time `gorm:"column:room_created_at;autoCreateTime" json:"room_created_at"`
	RoomUpdatedAt time.Time `gorm:"column:room_updated_at;autoUpdateTime" json:"room_updated_at"`
}

func (RoomModel) TableName() string {
	return "rooms"
}

func (m *RoomModel) BeforeCreate(tx *gorm.DB) error {
	if m.RoomID == uuid.Nil {
		m.RoomID = uuid.New()
	}
	if m.RoomCapacity <= 0 {
		m.RoomCapacity = DefaultRoomCapacity
	}
	m.ApplyOccupancy(m.RoomCurrentOccupants)
	return nil
}

// ApplyOccupancy sets the occupant count and the status that follows from it.
func (m *RoomModel) ApplyOccupancy(occupants int) {
	if occupants < 0 {
		occupants = 0
	}
	m.RoomCurrentOccupants = occupants
	if occupants >= m.RoomCapacity {
		m.RoomStatus = RoomStatusFull
	} else {
		m.RoomStatus = RoomStatusVacant
	}
}

func (m *RoomModel) IsFull() bool {
	return m.RoomStatus == RoomStatusFull
}
