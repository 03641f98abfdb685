package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"rentrix_backend/internals/constants"
	model "rentrix_backend/internals/features/rooms/assignments/model"
	roomModel "rentrix_backend/internals/features/rooms/rooms/model"
	roomService "rentrix_backend/internals/features/rooms/rooms/service"
	userModel "rentrix_backend/internals/features/users/user/model"
	helper "rentrix_backend/internals/helpers"
)

var (
	ErrAssignmentNotFound = fiber.NewError(fiber.StatusNotFound, "Assignment not found")
	ErrRoomNotFound       = fiber.NewError(fiber.StatusNotFound, "Room not found")
	ErrTenantNotFound     = fiber.NewError(fiber.StatusNotFound, "Tenant not found")
	ErrNotATenant         = fiber.NewError(fiber.StatusBadRequest, "Landlord accounts cannot be assigned to rooms")
	ErrAlreadyAssigned    = fiber.NewError(fiber.StatusConflict, "Tenant already has an assignment in this room")
	ErrAssignmentInactive = fiber.NewError(fiber.StatusBadRequest, "Assignment is archived")
)

func errRoomFull(number string) error {
	return helper.NewCodedError(fiber.StatusConflict, constants.ErrCodeRoomFull, "Room "+number+" is full")
}

// Result is what every assignment mutation hands back:
// the assignment plus every room the reconciler touched.
type Result struct {
	Assignment *model.RoomTenantModel
	Rooms      []roomModel.RoomModel
}

type AssignInput struct {
	RoomID     uuid.UUID
	UserID     uuid.UUID
	MoveInDate time.Time
	Status     string
}

// Assign creates an assignment and reconciles its room in one transaction.
func Assign(ctx context.Context, db *gorm.DB, in AssignInput) (*Result, error) {
	if in.Status == "" {
		in.Status = model.AssignmentActive
	}
	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := loadRoom(tx, in.RoomID)
		if err != nil {
			return err
		}
		if err := ensureTenant(tx, in.UserID); err != nil {
			return err
		}
		if in.Status == model.AssignmentActive && room.IsFull() {
			return errRoomFull(room.RoomNumber)
		}

		a := &model.RoomTenantModel{
			RoomTenantRoomID:     room.RoomID,
			RoomTenantUserID:     in.UserID,
			RoomTenantMoveInDate: helper.DateOf(in.MoveInDate),
			RoomTenantStatus:     in.Status,
		}
		if err := tx.Create(a).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return ErrAlreadyAssigned
			}
			return err
		}

		rooms, err := roomService.ReconcileRooms(tx, room.RoomID)
		if err != nil {
			return err
		}
		res = Result{Assignment: a, Rooms: rooms}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

type UpdateInput struct {
	RoomID     *uuid.UUID
	MoveInDate *time.Time
	Status     *string
}

// Update edits an assignment. A room change is a move: both rooms are reconciled.
func Update(ctx context.Context, db *gorm.DB, assignmentID uuid.UUID, in UpdateInput) (*Result, error) {
	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := loadAssignment(tx, assignmentID)
		if err != nil {
			return err
		}
		oldRoomID := a.RoomTenantRoomID
		wasActive := a.IsActive()

		if in.MoveInDate != nil {
			a.RoomTenantMoveInDate = helper.DateOf(*in.MoveInDate)
		}
		if in.Status != nil {
			a.RoomTenantStatus = *in.Status
		}
		if in.RoomID != nil && *in.RoomID != uuid.Nil {
			a.RoomTenantRoomID = *in.RoomID
		}

		moved := a.RoomTenantRoomID != oldRoomID
		joining := a.IsActive() && (moved || !wasActive)
		if joining {
			target, err := loadRoom(tx, a.RoomTenantRoomID)
			if err != nil {
				return err
			}
			if target.IsFull() {
				return errRoomFull(target.RoomNumber)
			}
		}

		if err := saveAssignment(tx, a); err != nil {
			return err
		}

		rooms, err := roomService.ReconcileRooms(tx, oldRoomID, a.RoomTenantRoomID)
		if err != nil {
			return err
		}
		res = Result{Assignment: a, Rooms: rooms}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Move is Update restricted to a room change.
func Move(ctx context.Context, db *gorm.DB, assignmentID, newRoomID uuid.UUID) (*Result, error) {
	return Update(ctx, db, assignmentID, UpdateInput{RoomID: &newRoomID})
}

// Archive marks the assignment inactive; its room frees a slot.
func Archive(ctx context.Context, db *gorm.DB, assignmentID uuid.UUID) (*Result, error) {
	status := model.AssignmentInactive
	return Update(ctx, db, assignmentID, UpdateInput{Status: &status})
}

// Restore reactivates an archived assignment in roomID (or its previous room when roomID is nil).
func Restore(ctx context.Context, db *gorm.DB, assignmentID, roomID uuid.UUID) (*Result, error) {
	status := model.AssignmentActive
	in := UpdateInput{Status: &status}
	if roomID != uuid.Nil {
		in.RoomID = &roomID
	}
	return Update(ctx, db, assignmentID, in)
}

// Delete removes the assignment with its add-ons and reconciles the room.
func Delete(ctx context.Context, db *gorm.DB, assignmentID uuid.UUID) (*Result, error) {
	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := loadAssignment(tx, assignmentID)
		if err != nil {
			return err
		}
		if err := tx.Where("add_on_room_tenant_id = ?", a.RoomTenantID).Delete(&model.AddOnModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.RoomTenantModel{}, "room_tenant_id = ?", a.RoomTenantID).Error; err != nil {
			return err
		}
		rooms, err := roomService.ReconcileRooms(tx, a.RoomTenantRoomID)
		if err != nil {
			return err
		}
		res = Result{Assignment: a, Rooms: rooms}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ActiveAssignmentsForTenant returns active assignments of a user, room preloaded.
func ActiveAssignmentsForTenant(tx *gorm.DB, userID uuid.UUID) ([]model.RoomTenantModel, error) {
	var rows []model.RoomTenantModel
	err := tx.Preload("Room").
		Where("room_tenant_user_id = ? AND room_tenant_status = ?", userID, model.AssignmentActive).
		Order("room_tenant_created_at ASC").
		Find(&rows).Error
	return rows, err
}

/* ====================== internals ====================== */

func saveAssignment(tx *gorm.DB, a *model.RoomTenantModel) error {
	err := tx.Model(&model.RoomTenantModel{}).
		Where("room_tenant_id = ?", a.RoomTenantID).
		Updates(map[string]interface{}{
			"room_tenant_room_id":      a.RoomTenantRoomID,
			"room_tenant_move_in_date": a.RoomTenantMoveInDate,
			"room_tenant_status":       a.RoomTenantStatus,
			"room_tenant_updated_at":   time.Now(),
		}).Error
	if err != nil && helper.IsUniqueViolation(err) {
		return ErrAlreadyAssigned
	}
	return err
}

func loadAssignment(tx *gorm.DB, id uuid.UUID) (*model.RoomTenantModel, error) {
	var a model.RoomTenantModel
	if err := tx.Where("room_tenant_id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

func loadRoom(tx *gorm.DB, id uuid.UUID) (*roomModel.RoomModel, error) {
	var r roomModel.RoomModel
	if err := tx.Where("room_id = ?", id).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &r, nil
}

func ensureTenant(tx *gorm.DB, userID uuid.UUID) error {
	var u userModel.UserModel
	if err := tx.Select("id", "is_staff").Where("id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTenantNotFound
		}
		return err
	}
	if u.IsStaff {
		return ErrNotATenant
	}
	return nil
}
