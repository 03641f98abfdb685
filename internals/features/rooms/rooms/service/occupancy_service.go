package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	assignmentModel "rentrix_backend/internals/features/rooms/assignments/model"
	roomModel "rentrix_backend/internals/features/rooms/rooms/model"
)

// ReconcileRoom recounts active assignments on the room, derives the status,
// writes both back (even when unchanged) and returns the fresh row.
// Call it with the transaction that mutated the assignments.
func ReconcileRoom(tx *gorm.DB, roomID uuid.UUID) (*roomModel.RoomModel, error) {
	var room roomModel.RoomModel
	if err := tx.Where("room_id = ?", roomID).First(&room).Error; err != nil {
		return nil, err
	}

	var active int64
	if err := tx.Model(&assignmentModel.RoomTenantModel{}).
		Where("room_tenant_room_id = ? AND room_tenant_status = ?", roomID, assignmentModel.AssignmentActive).
		Count(&active).Error; err != nil {
		return nil, err
	}

	room.ApplyOccupancy(int(active))
	room.RoomUpdatedAt = time.Now()
	if err := tx.Model(&roomModel.RoomModel{}).
		Where("room_id = ?", roomID).
		Updates(map[string]interface{}{
			"room_current_occupants": room.RoomCurrentOccupants,
			"room_status":            room.RoomStatus,
			"room_updated_at":        room.RoomUpdatedAt,
		}).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// ReconcileRooms runs ReconcileRoom for each distinct id, in order.
func ReconcileRooms(tx *gorm.DB, roomIDs ...uuid.UUID) ([]roomModel.RoomModel, error) {
	seen := make(map[uuid.UUID]struct{}, len(roomIDs))
	out := make([]roomModel.RoomModel, 0, len(roomIDs))
	for _, id := range roomIDs {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		room, err := ReconcileRoom(tx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *room)
	}
	return out, nil
}

// ReconcileAll repairs every room. Used by the operator CLI and the landlord "reconcile" action.
func ReconcileAll(tx *gorm.DB) (int, error) {
	var ids []uuid.UUID
	if err := tx.Model(&roomModel.RoomModel{}).Pluck("room_id", &ids).Error; err != nil {
		return 0, err
	}
	rooms, err := ReconcileRooms(tx, ids...)
	return len(rooms), err
}
