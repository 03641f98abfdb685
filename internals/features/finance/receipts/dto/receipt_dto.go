package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	paymentModel "rentrix_backend/internals/features/finance/payments/model"
	helper "rentrix_backend/internals/helpers"
)

type ReceiptResponse struct {
	ReceiptID           uuid.UUID       `json:"receipt_id"`
	ReceiptPaymentID    uuid.UUID       `json:"receipt_payment_id"`
	ReceiptNumber       string          `json:"receipt_number"`
	ReceiptTenantName   string          `json:"receipt_tenant_name"`
	ReceiptRoomNumber   string          `json:"receipt_room_number"`
	ReceiptAmount       decimal.Decimal `json:"receipt_amount"`
	ReceiptAmountText   string          `json:"receipt_amount_text"`
	ReceiptPaymentMonth string          `json:"receipt_payment_month"`
	ReceiptPaymentDate  string          `json:"receipt_payment_date"`
	ReceiptHasSignature bool            `json:"receipt_has_signature"`
	ReceiptGeneratedAt  time.Time       `json:"receipt_generated_at"`
	ReceiptPDFURL       string          `json:"receipt_pdf_url"`
}

func ToReceiptResponse(r paymentModel.ReceiptModel, currency string) ReceiptResponse {
	return ReceiptResponse{
		ReceiptID:           r.ReceiptID,
		ReceiptPaymentID:    r.ReceiptPaymentID,
		ReceiptNumber:       r.ReceiptNumber,
		ReceiptTenantName:   r.ReceiptTenantName,
		ReceiptRoomNumber:   r.ReceiptRoomNumber,
		ReceiptAmount:       r.ReceiptAmount,
		ReceiptAmountText:   helper.FormatMoney(currency, r.ReceiptAmount),
		ReceiptPaymentMonth: helper.TimeOf(r.ReceiptPaymentMonth).Format(helper.MonthLayout),
		ReceiptPaymentDate:  helper.TimeOf(r.ReceiptPaymentDate).Format(helper.DateLayout),
		ReceiptHasSignature: r.ReceiptLandlordSignature != nil && *r.ReceiptLandlordSignature != "",
		ReceiptGeneratedAt:  r.ReceiptGeneratedAt,
		ReceiptPDFURL:       "/api/u/receipts/" + r.ReceiptID.String() + "/pdf",
	}
}
