// file: internals/features/finance/receipts/snapshot/receipt_snapshot.go
package snapshot

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	paymentModel "rentrix_backend/internals/features/finance/payments/model"
)

// ReceiptSnapshot is everything a receipt copies at creation time.
type ReceiptSnapshot struct {
	TenantName   string
	RoomNumber   string
	SignatureKey *string
}

// SnapshotForPayment reads tenant + room names and the landlord signature
// as they are right now. landlordID may be uuid.Nil (falls back to any landlord with a signature).
func SnapshotForPayment(tx *gorm.DB, p *paymentModel.PaymentModel, landlordID uuid.UUID) (*ReceiptSnapshot, error) {
	var row struct {
		UserName   string `gorm:"column:user_name"`
		FirstName  string `gorm:"column:first_name"`
		LastName   string `gorm:"column:last_name"`
		RoomNumber string `gorm:"column:room_number"`
	}
	if err := tx.Raw(`
		SELECT u.user_name, u.first_name, u.last_name, r.room_number
		FROM users u, rooms r
		WHERE u.id = ? AND r.room_id = ?
	`, p.PaymentUserID, p.PaymentRoomID).Scan(&row).Error; err != nil {
		return nil, err
	}
	if strings.TrimSpace(row.RoomNumber) == "" {
		return nil, fiber.NewError(fiber.StatusNotFound, "Tenant or room not found for receipt")
	}

	name := strings.TrimSpace(strings.TrimSpace(row.FirstName) + " " + strings.TrimSpace(row.LastName))
	if name == "" {
		name = row.UserName
	}

	sig, err := SignatureKey(tx, landlordID)
	if err != nil {
		return nil, err
	}
	return &ReceiptSnapshot{TenantName: name, RoomNumber: row.RoomNumber, SignatureKey: sig}, nil
}

// SignatureKey prefers the acting landlord's signature, then the most recent one on file.
func SignatureKey(tx *gorm.DB, landlordID uuid.UUID) (*string, error) {
	var keys []string
	q := tx.Table("landlord_profiles").
		Where("landlord_profile_signature_key IS NOT NULL AND landlord_profile_signature_key <> ''")
	if landlordID != uuid.Nil {
		if err := q.Session(&gorm.Session{}).
			Where("landlord_profile_user_id = ?", landlordID).
			Limit(1).
			Pluck("landlord_profile_signature_key", &keys).Error; err != nil {
			return nil, err
		}
	}
	if len(keys) == 0 {
		if err := q.Session(&gorm.Session{}).
			Order("landlord_profile_updated_at DESC").
			Limit(1).
			Pluck("landlord_profile_signature_key", &keys).Error; err != nil {
			return nil, err
		}
	}
	if len(keys) == 0 {
		return nil, nil
	}
	return &keys[0], nil
}

// BuildReceipt copies the payment and snapshot into a receipt row.
func BuildReceipt(p *paymentModel.PaymentModel, s *ReceiptSnapshot) *paymentModel.ReceiptModel {
	return &paymentModel.ReceiptModel{
		ReceiptPaymentID:         p.PaymentID,
		ReceiptNumber:            p.PaymentReceiptNumber,
		ReceiptTenantName:        s.TenantName,
		ReceiptRoomNumber:        s.RoomNumber,
		ReceiptAmount:            p.PaymentAmount,
		ReceiptPaymentMonth:      p.PaymentMonth,
		ReceiptPaymentDate:       p.PaymentDate,
		ReceiptLandlordSignature: s.SignatureKey,
	}
}
