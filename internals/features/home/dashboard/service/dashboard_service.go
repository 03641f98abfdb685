package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	paymentModel "rentrix_backend/internals/features/finance/payments/model"
	assignmentModel "rentrix_backend/internals/features/rooms/assignments/model"
	roomModel "rentrix_backend/internals/features/rooms/rooms/model"
)

const recentPaymentsLimit = 5

type LandlordStats struct {
	TotalRooms         int             `db:"total_rooms" json:"total_rooms"`
	VacantRooms        int             `db:"vacant_rooms" json:"vacant_rooms"`
	FullRooms          int             `db:"full_rooms" json:"full_rooms"`
	ActiveTenants      int             `db:"active_tenants" json:"active_tenants"`
	PaidPayments       int             `db:"paid_payments" json:"paid_payments"`
	PaymentsThisMonth  int             `db:"payments_this_month" json:"payments_this_month"`
	CollectedThisMonth decimal.Decimal `db:"collected_this_month" json:"collected_this_month"`
	CollectedThisYear  decimal.Decimal `db:"collected_this_year" json:"collected_this_year"`
}

type RecentPayment struct {
	PaymentID     uuid.UUID       `db:"payment_id" json:"payment_id"`
	ReceiptNumber string          `db:"payment_receipt_number" json:"payment_receipt_number"`
	UserID        uuid.UUID       `db:"payment_user_id" json:"payment_user_id"`
	UserName      string          `db:"user_name" json:"-"`
	FirstName     string          `db:"first_name" json:"-"`
	LastName      string          `db:"last_name" json:"-"`
	TenantName    string          `db:"-" json:"tenant_name"`
	RoomNumber    string          `db:"room_number" json:"room_number"`
	Amount        decimal.Decimal `db:"payment_amount" json:"payment_amount"`
	Month         time.Time       `db:"payment_month" json:"payment_month"`
	Date          time.Time       `db:"payment_date" json:"payment_date"`
	Status        string          `db:"payment_status" json:"payment_status"`
}

type LandlordDashboard struct {
	Stats          LandlordStats   `json:"stats"`
	RecentPayments []RecentPayment `json:"recent_payments"`
}

// Landlord collects the landlord home counters and the latest paid payments.
func Landlord(ctx context.Context, db *sqlx.DB, now time.Time) (*LandlordDashboard, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var stats LandlordStats
	err := db.GetContext(ctx, &stats, db.Rebind(`
		SELECT
			(SELECT COUNT(*) FROM rooms) AS total_rooms,
			(SELECT COUNT(*) FROM rooms WHERE room_status = ?) AS vacant_rooms,
			(SELECT COUNT(*) FROM rooms WHERE room_status = ?) AS full_rooms,
			(SELECT COUNT(*) FROM room_tenants WHERE room_tenant_status = ?) AS active_tenants,
			(SELECT COUNT(*) FROM payments WHERE payment_status = ?) AS paid_payments,
			(SELECT COUNT(*) FROM payments WHERE payment_month = ?) AS payments_this_month,
			(SELECT COALESCE(SUM(payment_amount), 0) FROM payments
				WHERE payment_status = ? AND payment_month = ?) AS collected_this_month,
			(SELECT COALESCE(SUM(payment_amount), 0) FROM payments
				WHERE payment_status = ? AND payment_year = ?) AS collected_this_year`),
		roomModel.RoomStatusVacant,
		roomModel.RoomStatusFull,
		assignmentModel.AssignmentActive,
		paymentModel.PaymentStatusPaid,
		monthStart,
		paymentModel.PaymentStatusPaid, monthStart,
		paymentModel.PaymentStatusPaid, now.Year(),
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	recent, err := recentPayments(ctx, db, "p.payment_status = ?", paymentModel.PaymentStatusPaid)
	if err != nil {
		return nil, err
	}
	return &LandlordDashboard{Stats: stats, RecentPayments: recent}, nil
}

// TenantPayments returns the latest payments of one tenant, any status.
func TenantPayments(ctx context.Context, db *sqlx.DB, userID uuid.UUID) ([]RecentPayment, error) {
	return recentPayments(ctx, db, "p.payment_user_id = ?", userID)
}

func recentPayments(ctx context.Context, db *sqlx.DB, where string, arg interface{}) ([]RecentPayment, error) {
	var rows []RecentPayment
	err := db.SelectContext(ctx, &rows, db.Rebind(`
		SELECT p.payment_id, p.payment_receipt_number, p.payment_user_id,
		       u.user_name, u.first_name, u.last_name,
		       r.room_number,
		       p.payment_amount, p.payment_month, p.payment_date, p.payment_status
		FROM payments p
		JOIN users u ON u.id = p.payment_user_id
		JOIN rooms r ON r.room_id = p.payment_room_id
		WHERE `+where+`
		ORDER BY p.payment_date DESC, p.payment_created_at DESC
		LIMIT ?`), arg, recentPaymentsLimit)
	if err != nil {
		return nil, fmt.Errorf("recent payments: %w", err)
	}
	for i := range rows {
		n := strings.TrimSpace(strings.TrimSpace(rows[i].FirstName) + " " + strings.TrimSpace(rows[i].LastName))
		if n == "" {
			n = rows[i].UserName
		}
		rows[i].TenantName = n
	}
	if rows == nil {
		rows = []RecentPayment{}
	}
	return rows, nil
}
