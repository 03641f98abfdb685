package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"rentrix_backend/internals/constants"
	model "rentrix_backend/internals/features/finance/payments/model"
	receiptSnapshot "rentrix_backend/internals/features/finance/receipts/snapshot"
	assignmentModel "rentrix_backend/internals/features/rooms/assignments/model"
	assignmentService "rentrix_backend/internals/features/rooms/assignments/service"
	roomModel "rentrix_backend/internals/features/rooms/rooms/model"
	helper "rentrix_backend/internals/helpers"
)

var (
	ErrPaymentNotFound  = fiber.NewError(fiber.StatusNotFound, "Payment not found")
	ErrDuplicateReceipt = fiber.NewError(fiber.StatusConflict, "Receipt number already exists, retry in a moment")
	ErrPaymentAmount    = fiber.NewError(fiber.StatusBadRequest, "Payment amount must not be negative")
)

// Breakdown is the amount a new payment would carry right now.
type Breakdown struct {
	Assignment *assignmentModel.RoomTenantModel `json:"assignment"`
	Room       *roomModel.RoomModel             `json:"room"`
	BaseAmount decimal.Decimal                  `json:"base_amount"`
	AddOns     []assignmentModel.AddOnModel     `json:"add_ons"`
	AddOnTotal decimal.Decimal                  `json:"add_on_total"`
	Total      decimal.Decimal                  `json:"total_amount"`
}

// ResolveActiveAssignment requires exactly one active assignment for the tenant.
func ResolveActiveAssignment(tx *gorm.DB, userID uuid.UUID) (*assignmentModel.RoomTenantModel, error) {
	rows, err := assignmentService.ActiveAssignmentsForTenant(tx, userID)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, helper.NewCodedError(fiber.StatusNotFound, constants.ErrCodeNoActiveAssignment,
			"Tenant has no active room assignment")
	case 1:
		return &rows[0], nil
	default:
		return nil, helper.NewCodedError(fiber.StatusConflict, constants.ErrCodeMultipleAssignments,
			"Tenant has more than one active room assignment")
	}
}

// Preview computes base + Σ add-ons for the tenant's active assignment.
func Preview(tx *gorm.DB, userID uuid.UUID, base decimal.Decimal) (*Breakdown, error) {
	a, err := ResolveActiveAssignment(tx, userID)
	if err != nil {
		return nil, err
	}
	addOnTotal, addOns, err := assignmentService.SumAddOns(tx, a.RoomTenantID)
	if err != nil {
		return nil, err
	}
	return &Breakdown{
		Assignment: a,
		Room:       a.Room,
		BaseAmount: base,
		AddOns:     addOns,
		AddOnTotal: addOnTotal,
		Total:      base.Add(addOnTotal),
	}, nil
}

type CreateInput struct {
	UserID      uuid.UUID
	Month       time.Time
	PaymentDate *time.Time
	Status      string
	BaseAmount  decimal.Decimal
	LandlordID  uuid.UUID
}

// Create records a payment and its receipt in one transaction.
// The amount is fixed at creation; later add-on changes never touch it.
func Create(ctx context.Context, db *gorm.DB, in CreateInput) (*model.PaymentModel, error) {
	if in.Status == "" {
		in.Status = model.PaymentStatusPaid
	}
	paidOn := helper.Today()
	if in.PaymentDate != nil {
		paidOn = helper.DateOf(*in.PaymentDate)
	}

	var out *model.PaymentModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := Preview(tx, in.UserID, in.BaseAmount)
		if err != nil {
			return err
		}

		p := &model.PaymentModel{
			PaymentUserID: in.UserID,
			PaymentRoomID: b.Assignment.RoomTenantRoomID,
			PaymentAmount: b.Total.Round(2),
			PaymentMonth:  helper.DateOf(helper.MonthStart(in.Month)),
			PaymentDate:   paidOn,
			PaymentStatus: in.Status,
		}
		if err := tx.Create(p).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return ErrDuplicateReceipt
			}
			return err
		}

		snap, err := receiptSnapshot.SnapshotForPayment(tx, p, in.LandlordID)
		if err != nil {
			return err
		}
		r := receiptSnapshot.BuildReceipt(p, snap)
		if err := tx.Create(r).Error; err != nil {
			return err
		}
		p.Receipt = r
		out = p
		return nil
	})
	return out, err
}

type UpdateInput struct {
	Month       *time.Time
	PaymentDate *time.Time
	Status      *string
	Amount      *decimal.Decimal
}

// Update edits a payment. The receipt number and the receipt row stay as they were.
func Update(ctx context.Context, db *gorm.DB, paymentID uuid.UUID, in UpdateInput) (*model.PaymentModel, error) {
	if in.Amount != nil && in.Amount.IsNegative() {
		return nil, ErrPaymentAmount
	}
	var p model.PaymentModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("payment_id = ?", paymentID).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		if in.Month != nil {
			p.PaymentMonth = helper.DateOf(helper.MonthStart(*in.Month))
		}
		if in.PaymentDate != nil {
			p.PaymentDate = helper.DateOf(*in.PaymentDate)
		}
		if in.Status != nil {
			p.PaymentStatus = *in.Status
		}
		if in.Amount != nil {
			p.PaymentAmount = in.Amount.Round(2)
		}
		return tx.Omit("payment_receipt_number", "payment_created_at", "Receipt").Save(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type ListFilter struct {
	Year   int
	Month  *time.Time
	Status string
	Q      string
}

// List pages payments for the landlord, newest month first.
// Q matches username, first/last name, room number or receipt number.
func List(tx *gorm.DB, f ListFilter, limit, offset int) ([]model.PaymentModel, int64, error) {
	q := tx.Model(&model.PaymentModel{}).
		Joins("JOIN users u ON u.id = payments.payment_user_id").
		Joins("JOIN rooms r ON r.room_id = payments.payment_room_id")

	if f.Year > 0 {
		q = q.Where("payments.payment_year = ?", f.Year)
	}
	if f.Month != nil {
		q = q.Where("payments.payment_month = ?", helper.DateOf(helper.MonthStart(*f.Month)))
	}
	if f.Status != "" {
		q = q.Where("payments.payment_status = ?", f.Status)
	}
	if s := strings.TrimSpace(f.Q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where(`(
			LOWER(u.user_name) LIKE ?
			OR LOWER(u.first_name) LIKE ?
			OR LOWER(u.last_name) LIKE ?
			OR LOWER(r.room_number) LIKE ?
			OR LOWER(payments.payment_receipt_number) LIKE ?
		)`, like, like, like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}

	var rows []model.PaymentModel
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Preload("Receipt").
		Order("payments.payment_month DESC").
		Order("payments.payment_created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}
	return rows, total, nil
}

// Get loads a payment with its receipt.
func Get(tx *gorm.DB, paymentID uuid.UUID) (*model.PaymentModel, error) {
	var p model.PaymentModel
	if err := tx.Preload("Receipt").Where("payment_id = ?", paymentID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}

// History returns a tenant's payments, newest first, optionally for one year.
func History(tx *gorm.DB, userID uuid.UUID, year int) ([]model.PaymentModel, error) {
	q := tx.Preload("Receipt").Where("payment_user_id = ?", userID)
	if year > 0 {
		q = q.Where("payment_year = ?", year)
	}
	var rows []model.PaymentModel
	err := q.Order("payment_month DESC").Order("payment_created_at DESC").Find(&rows).Error
	return rows, err
}
