package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReceiptModel is a frozen copy of a payment. Nothing updates it after insert.
type ReceiptModel struct {
	ReceiptID                uuid.UUID       `gorm:"column:receipt_id;type:uuid;primaryKey" json:"receipt_id"`
	ReceiptPaymentID         uuid.UUID       `gorm:"column:receipt_payment_id;type:uuid;not null;uniqueIndex:uq_receipts_payment" json:"receipt_payment_id"`
	ReceiptNumber            string          `gorm:"column:receipt_number;size:50;not null;index:idx_receipts_number" json:"receipt_number"`
	ReceiptTenantName        string          `gorm:"column:receipt_tenant_name;size:200;not null" json:"receipt_tenant_name"`
	ReceiptRoomNumber        string          `gorm:"column:receipt_room_number;size:10;not null" json:"receipt_room_number"`
	ReceiptAmount            decimal.Decimal `gorm:"column:receipt_amount;type:decimal(10,2);not null" json:"receipt_amount"`
	ReceiptPaymentMonth      datatypes.Date  `gorm:"column:receipt_payment_month;not null" json:"receipt_payment_month"`
	ReceiptPaymentDate       datatypes.Date  `gorm:"column:receipt_payment_date;not null" json:"receipt_payment_date"`
	ReceiptLandlordSignature *string         `gorm:"column:receipt_landlord_signature;size:255" json:"receipt_landlord_signature,omitempty"`
	ReceiptPDFPath           *string         `gorm:"column:receipt_pdf_path;size:255" json:"receipt_pdf_path,omitempty"`
	ReceiptGeneratedAt       time.Time       `gorm:"column:receipt_generated_at;autoCreateTime" json:"receipt_generated_at"`
}

func (ReceiptModel) TableName() string {
	return "receipts"
}

func (m *ReceiptModel) BeforeCreate(tx *gorm.DB) error {
	if m.ReceiptID == uuid.Nil {
		m.ReceiptID = uuid.New()
	}
	return nil
}
