package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"
)

type PaymentModel struct {
	PaymentID            uuid.UUID       `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`
	PaymentUserID        uuid.UUID       `gorm:"column:payment_user_id;type:uuid;not null;index:idx_payments_user_year,priority:1" json:"payment_user_id"`
	PaymentRoomID        uuid.UUID       `gorm:"column:payment_room_id;type:uuid;not null;index:idx_payments_room" json:"payment_room_id"`
	PaymentAmount        decimal.Decimal `gorm:"column:payment_amount;type:decimal(10,2);not null" json:"payment_amount"`
	PaymentMonth         datatypes.Date  `gorm:"column:payment_month;not null" json:"payment_month"`
	PaymentDate          datatypes.Date  `gorm:"column:payment_date;not null" json:"payment_date"`
	PaymentStatus        string          `gorm:"column:payment_status;size:10;not null;default:'unpaid'" json:"payment_status"`
	PaymentReceiptNumber string          `gorm:"column:payment_receipt_number;size:50;not null;uniqueIndex:uq_payments_receipt_number" json:"payment_receipt_number"`
	PaymentYear          int             `gorm:"column:payment_year;not null;index:idx_payments_user_year,priority:2" json:"payment_year"`

	PaymentCreatedAt time.Time `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`

	Receipt *ReceiptModel `gorm:"foreignKey:ReceiptPaymentID;references:PaymentID;constraint:OnDelete:CASCADE" json:"receipt,omitempty"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

// NowFunc is swapped in tests.
var NowFunc = time.Now

// GenerateReceiptNumber returns RCPT-YYYYMMDDHHMMSS-<first 8 hex of the tenant id>.
func GenerateReceiptNumber(at time.Time, tenantID uuid.UUID) string {
	short := strings.ReplaceAll(tenantID.String(), "-", "")[:8]
	return fmt.Sprintf("RCPT-%s-%s", at.Format("20060102150405"), short)
}

func (m *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	return nil
}

// BeforeSave fills the receipt number once and keeps year in sync with the month.
func (m *PaymentModel) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(m.PaymentReceiptNumber) == "" {
		m.PaymentReceiptNumber = GenerateReceiptNumber(NowFunc(), m.PaymentUserID)
	}
	if !time.Time(m.PaymentMonth).IsZero() {
		m.PaymentYear = time.Time(m.PaymentMonth).Year()
	}
	if m.PaymentStatus == "" {
		m.PaymentStatus = PaymentStatusUnpaid
	}
	return nil
}
