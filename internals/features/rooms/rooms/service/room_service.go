package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	assignmentModel "rentrix_backend/internals/features/rooms/assignments/model"
	roomModel "rentrix_backend/internals/features/rooms/rooms/model"
	helper "rentrix_backend/internals/helpers"
)

var (
	ErrRoomNotFound     = fiber.NewError(fiber.StatusNotFound, "Room not found")
	ErrRoomNumberTaken  = fiber.NewError(fiber.StatusConflict, "Room number already exists")
	ErrRoomCapacity     = fiber.NewError(fiber.StatusBadRequest, "Room capacity must be at least 1")
	ErrRoomNumberNeeded = fiber.NewError(fiber.StatusBadRequest, "Room number is required")
)

// CreateRoom inserts a room with zero occupants.
func CreateRoom(ctx context.Context, db *gorm.DB, number string, capacity int) (*roomModel.RoomModel, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, ErrRoomNumberNeeded
	}
	if capacity < 0 {
		return nil, ErrRoomCapacity
	}
	room := &roomModel.RoomModel{RoomNumber: number, RoomCapacity: capacity}
	if err := db.WithContext(ctx).Create(room).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, ErrRoomNumberTaken
		}
		return nil, err
	}
	return room, nil
}

type UpdateRoomInput struct {
	RoomNumber *string
	Capacity   *int
}

// UpdateRoom edits number/capacity; the status is re-derived in the same transaction.
func UpdateRoom(ctx context.Context, db *gorm.DB, roomID uuid.UUID, in UpdateRoomInput) (*roomModel.RoomModel, error) {
	var out *roomModel.RoomModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := GetRoom(tx, roomID)
		if err != nil {
			return err
		}
		changes := map[string]interface{}{}
		if in.RoomNumber != nil {
			n := strings.TrimSpace(*in.RoomNumber)
			if n == "" {
				return ErrRoomNumberNeeded
			}
			changes["room_number"] = n
		}
		if in.Capacity != nil {
			if *in.Capacity < 1 {
				return ErrRoomCapacity
			}
			changes["room_capacity"] = *in.Capacity
		}
		if len(changes) > 0 {
			if err := tx.Model(&roomModel.RoomModel{}).Where("room_id = ?", room.RoomID).Updates(changes).Error; err != nil {
				if helper.IsUniqueViolation(err) {
					return ErrRoomNumberTaken
				}
				return err
			}
		}
		out, err = ReconcileRoom(tx, room.RoomID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteRoom removes the room with its assignments, add-ons, payments and receipts.
func DeleteRoom(ctx context.Context, db *gorm.DB, roomID uuid.UUID) (*roomModel.RoomModel, error) {
	var room *roomModel.RoomModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if room, err = GetRoom(tx, roomID); err != nil {
			return err
		}
		assignments := tx.Model(&assignmentModel.RoomTenantModel{}).
			Select("room_tenant_id").
			Where("room_tenant_room_id = ?", roomID)
		if err := tx.Where("add_on_room_tenant_id IN (?)", assignments).
			Delete(&assignmentModel.AddOnModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_tenant_room_id = ?", roomID).
			Delete(&assignmentModel.RoomTenantModel{}).Error; err != nil {
			return err
		}
		// payments live in another feature; plain table names keep the import graph acyclic
		if err := tx.Exec(`DELETE FROM receipts WHERE receipt_payment_id IN
			(SELECT payment_id FROM payments WHERE payment_room_id = ?)`, roomID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM payments WHERE payment_room_id = ?`, roomID).Error; err != nil {
			return err
		}
		return tx.Delete(&roomModel.RoomModel{}, "room_id = ?", roomID).Error
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

func GetRoom(tx *gorm.DB, roomID uuid.UUID) (*roomModel.RoomModel, error) {
	var r roomModel.RoomModel
	if err := tx.Where("room_id = ?", roomID).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &r, nil
}

// GetRoomCached reads through the room cache.
func GetRoomCached(ctx context.Context, db *gorm.DB, roomID uuid.UUID) (*roomModel.RoomModel, error) {
	if r, err := Cache.Get(ctx, roomID); err == nil {
		return r, nil
	}
	r, err := GetRoom(db.WithContext(ctx), roomID)
	if err != nil {
		return nil, err
	}
	_ = Cache.Set(ctx, r)
	return r, nil
}

type ListRoomsFilter struct {
	Q      string
	Status string
}

// ListRooms filters by room number substring and status, ordered by number.
func ListRooms(tx *gorm.DB, f ListRoomsFilter, limit, offset int) ([]roomModel.RoomModel, int64, error) {
	q := tx.Model(&roomModel.RoomModel{})
	if s := strings.TrimSpace(f.Q); s != "" {
		q = q.Where("LOWER(room_number) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if f.Status != "" {
		q = q.Where("room_status = ?", f.Status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []roomModel.RoomModel
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Order("room_number ASC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ActiveAssignments returns the room's active assignments with tenant and add-ons (newest first).
func ActiveAssignments(tx *gorm.DB, roomID uuid.UUID) ([]assignmentModel.RoomTenantModel, error) {
	var rows []assignmentModel.RoomTenantModel
	err := tx.
		Preload("Tenant").
		Preload("AddOns", func(db *gorm.DB) *gorm.DB { return db.Order("add_on_created_at DESC") }).
		Where("room_tenant_room_id = ? AND room_tenant_status = ?", roomID, assignmentModel.AssignmentActive).
		Order("room_tenant_move_in_date ASC").
		Find(&rows).Error
	return rows, err
}
