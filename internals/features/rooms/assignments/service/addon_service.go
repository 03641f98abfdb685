package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	model "rentrix_backend/internals/features/rooms/assignments/model"
)

var (
	ErrAddOnNotFound    = fiber.NewError(fiber.StatusNotFound, "Add-on not found")
	ErrAddOnAmount      = fiber.NewError(fiber.StatusBadRequest, "Add-on amount must not be negative")
	ErrAddOnDescription = fiber.NewError(fiber.StatusBadRequest, "Add-on description is required")
)

// AddAddOn attaches a charge to an active assignment.
func AddAddOn(ctx context.Context, db *gorm.DB, assignmentID uuid.UUID, description string, amount decimal.Decimal) (*model.AddOnModel, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrAddOnDescription
	}
	if amount.IsNegative() {
		return nil, ErrAddOnAmount
	}

	var out *model.AddOnModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := loadAssignment(tx, assignmentID)
		if err != nil {
			return err
		}
		if !a.IsActive() {
			return ErrAssignmentInactive
		}
		ao := &model.AddOnModel{
			AddOnRoomTenantID: a.RoomTenantID,
			AddOnDescription:  description,
			AddOnAmount:       amount.Round(2),
		}
		if err := tx.Create(ao).Error; err != nil {
			return err
		}
		out = ao
		return nil
	})
	return out, err
}

// DeleteAddOn removes a charge. Past payments keep their computed amount.
func DeleteAddOn(ctx context.Context, db *gorm.DB, assignmentID, addOnID uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := loadAssignment(tx, assignmentID)
		if err != nil {
			return err
		}
		if !a.IsActive() {
			return ErrAssignmentInactive
		}
		res := tx.Where("add_on_id = ? AND add_on_room_tenant_id = ?", addOnID, a.RoomTenantID).
			Delete(&model.AddOnModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAddOnNotFound
		}
		return nil
	})
}

// ListAddOns returns the assignment's add-ons, newest first.
func ListAddOns(tx *gorm.DB, assignmentID uuid.UUID) ([]model.AddOnModel, error) {
	var rows []model.AddOnModel
	err := tx.Where("add_on_room_tenant_id = ?", assignmentID).
		Order("add_on_created_at DESC").
		Order("add_on_id DESC").
		Find(&rows).Error
	return rows, err
}

// SumAddOns totals every add-on on the assignment.
func SumAddOns(tx *gorm.DB, assignmentID uuid.UUID) (decimal.Decimal, []model.AddOnModel, error) {
	rows, err := ListAddOns(tx, assignmentID)
	if err != nil {
		return decimal.Zero, nil, err
	}
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.AddOnAmount)
	}
	return total, rows, nil
}

// GetAssignment loads one assignment with room, tenant and add-ons.
func GetAssignment(tx *gorm.DB, assignmentID uuid.UUID) (*model.RoomTenantModel, error) {
	var a model.RoomTenantModel
	err := tx.Preload("Room").
		Preload("Tenant").
		Preload("AddOns", func(q *gorm.DB) *gorm.DB { return q.Order("add_on_created_at DESC") }).
		Where("room_tenant_id = ?", assignmentID).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
