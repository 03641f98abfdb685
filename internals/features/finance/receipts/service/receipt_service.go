package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	paymentModel "rentrix_backend/internals/features/finance/payments/model"
	receiptSnapshot "rentrix_backend/internals/features/finance/receipts/snapshot"
)

var (
	ErrReceiptNotFound  = fiber.NewError(fiber.StatusNotFound, "Receipt not found")
	ErrReceiptForbidden = fiber.NewError(fiber.StatusForbidden, "You are not authorized to view this receipt")
)

// ReceiptForViewer loads a receipt if the viewer is a landlord or the paying tenant.
func ReceiptForViewer(tx *gorm.DB, receiptID, viewerID uuid.UUID, isLandlord bool) (*paymentModel.ReceiptModel, error) {
	var row struct {
		paymentModel.ReceiptModel
		TenantID uuid.UUID `gorm:"column:tenant_id"`
	}
	err := tx.Table("receipts AS rc").
		Select("rc.*, p.payment_user_id AS tenant_id").
		Joins("JOIN payments p ON p.payment_id = rc.receipt_payment_id").
		Where("rc.receipt_id = ?", receiptID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiptNotFound
		}
		return nil, err
	}
	if !isLandlord && row.TenantID != viewerID {
		return nil, ErrReceiptForbidden
	}
	r := row.ReceiptModel
	return &r, nil
}

// SignatureKeyForRender prefers the key frozen on the receipt, then the current landlord signature.
func SignatureKeyForRender(tx *gorm.DB, r *paymentModel.ReceiptModel) (*string, error) {
	if r.ReceiptLandlordSignature != nil && *r.ReceiptLandlordSignature != "" {
		return r.ReceiptLandlordSignature, nil
	}
	return receiptSnapshot.SignatureKey(tx, uuid.Nil)
}
