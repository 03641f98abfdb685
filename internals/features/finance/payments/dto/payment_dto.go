// file: internals/features/finance/payments/dto/payment_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentrix_backend/internals/features/finance/payments/model"
	helper "rentrix_backend/internals/helpers"
)

//
// ========== CREATE ==========
//

// CreatePaymentRequest: month "YYYY-MM", date "YYYY-MM-DD" (optional, defaults to today).
type CreatePaymentRequest struct {
	PaymentMonth  string  `json:"payment_month" validate:"required"`
	PaymentDate   *string `json:"payment_date" validate:"omitempty"`
	PaymentStatus string  `json:"payment_status" validate:"omitempty,oneof=paid unpaid"`
}

func (r *CreatePaymentRequest) Normalize() {
	r.PaymentMonth = strings.TrimSpace(r.PaymentMonth)
	r.PaymentStatus = strings.ToLower(strings.TrimSpace(r.PaymentStatus))
	if r.PaymentDate != nil {
		v := strings.TrimSpace(*r.PaymentDate)
		if v == "" {
			r.PaymentDate = nil
		} else {
			r.PaymentDate = &v
		}
	}
}

// Parse returns the month and optional payment date.
func (r *CreatePaymentRequest) Parse() (time.Time, *time.Time, error) {
	month, err := helper.ParseMonth(r.PaymentMonth)
	if err != nil {
		return time.Time{}, nil, err
	}
	if r.PaymentDate == nil {
		return month, nil, nil
	}
	d, err := helper.ParseDate(*r.PaymentDate)
	if err != nil {
		return time.Time{}, nil, err
	}
	return month, &d, nil
}

//
// ========== UPDATE ==========
//

type UpdatePaymentRequest struct {
	PaymentMonth  *string          `json:"payment_month" validate:"omitempty"`
	PaymentDate   *string          `json:"payment_date" validate:"omitempty"`
	PaymentStatus *string          `json:"payment_status" validate:"omitempty,oneof=paid unpaid"`
	PaymentAmount *decimal.Decimal `json:"payment_amount" validate:"omitempty"`
}

func (r *UpdatePaymentRequest) Normalize() {
	if r.PaymentStatus != nil {
		v := strings.ToLower(strings.TrimSpace(*r.PaymentStatus))
		r.PaymentStatus = &v
	}
}

//
// ========== LIST QUERY ==========
//

type ListPaymentsQuery struct {
	Year   int    `query:"year"`
	Month  string `query:"month"`
	Status string `query:"status"`
	Q      string `query:"q"`
}

func (q *ListPaymentsQuery) Normalize() {
	q.Month = strings.TrimSpace(q.Month)
	q.Status = strings.ToLower(strings.TrimSpace(q.Status))
	q.Q = strings.TrimSpace(q.Q)
}

//
// ========== RESPONSE ==========
//

type ReceiptBrief struct {
	ReceiptID     uuid.UUID `json:"receipt_id"`
	ReceiptNumber string    `json:"receipt_number"`
}

type PaymentResponse struct {
	PaymentID            uuid.UUID       `json:"payment_id"`
	PaymentUserID        uuid.UUID       `json:"payment_user_id"`
	PaymentRoomID        uuid.UUID       `json:"payment_room_id"`
	PaymentAmount        decimal.Decimal `json:"payment_amount"`
	PaymentAmountText    string          `json:"payment_amount_text"`
	PaymentMonth         string          `json:"payment_month"`
	PaymentDate          string          `json:"payment_date"`
	PaymentStatus        string          `json:"payment_status"`
	PaymentReceiptNumber string          `json:"payment_receipt_number"`
	PaymentYear          int             `json:"payment_year"`
	PaymentCreatedAt     time.Time       `json:"payment_created_at"`

	Receipt *ReceiptBrief `json:"receipt,omitempty"`

	// filled by list queries that join users/rooms
	TenantName string `json:"tenant_name,omitempty"`
	RoomNumber string `json:"room_number,omitempty"`
}

func ToPaymentResponse(m model.PaymentModel, currency string) PaymentResponse {
	out := PaymentResponse{
		PaymentID:            m.PaymentID,
		PaymentUserID:        m.PaymentUserID,
		PaymentRoomID:        m.PaymentRoomID,
		PaymentAmount:        m.PaymentAmount,
		PaymentAmountText:    helper.FormatMoney(currency, m.PaymentAmount),
		PaymentMonth:         helper.TimeOf(m.PaymentMonth).Format(helper.MonthLayout),
		PaymentDate:          helper.TimeOf(m.PaymentDate).Format(helper.DateLayout),
		PaymentStatus:        m.PaymentStatus,
		PaymentReceiptNumber: m.PaymentReceiptNumber,
		PaymentYear:          m.PaymentYear,
		PaymentCreatedAt:     m.PaymentCreatedAt,
	}
	if m.Receipt != nil {
		out.Receipt = &ReceiptBrief{ReceiptID: m.Receipt.ReceiptID, ReceiptNumber: m.Receipt.ReceiptNumber}
	}
	return out
}

func ToPaymentResponses(rows []model.PaymentModel, currency string) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, ToPaymentResponse(m, currency))
	}
	return out
}

type AddOnLine struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// PaymentPreviewResponse is the amount a new payment would carry right now.
type PaymentPreviewResponse struct {
	AssignmentID   uuid.UUID       `json:"assignment_id"`
	RoomID         uuid.UUID       `json:"room_id"`
	RoomNumber     string          `json:"room_number"`
	BaseAmount     decimal.Decimal `json:"base_amount"`
	AddOns         []AddOnLine     `json:"add_ons"`
	AddOnTotal     decimal.Decimal `json:"add_on_total"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TotalAmountTxt string          `json:"total_amount_text"`
}
