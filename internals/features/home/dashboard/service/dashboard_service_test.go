package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return sqlx.NewDb(raw, "sqlmock"), mock
}

var paymentColumns = []string{
	"payment_id", "payment_receipt_number", "payment_user_id",
	"user_name", "first_name", "last_name", "room_number",
	"payment_amount", "payment_month", "payment_date", "payment_status",
}

func TestLandlord(t *testing.T) {
	db, mock := newMock(t)
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	march := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT\s+\(SELECT COUNT\(\*\) FROM rooms\) AS total_rooms`).
		WithArgs("vacant", "full", "active", "paid", march, "paid", march, "paid", 2025).
		WillReturnRows(sqlmock.NewRows([]string{
			"total_rooms", "vacant_rooms", "full_rooms", "active_tenants",
			"paid_payments", "payments_this_month", "collected_this_month", "collected_this_year",
		}).AddRow(4, 3, 1, 5, 7, 2, "7000.00", "24500.50"))

	uid := uuid.New()
	mock.ExpectQuery(`FROM payments p\s+JOIN users u`).
		WithArgs("paid", recentPaymentsLimit).
		WillReturnRows(sqlmock.NewRows(paymentColumns).
			AddRow(uuid.New().String(), "RCPT-20250303100000-aaaaaaaa", uid.String(),
				"Tenant_ana", "Ana", "Cruz", "101", "3500.00", march, march, "paid").
			AddRow(uuid.New().String(), "RCPT-20250302100000-bbbbbbbb", uuid.New().String(),
				"Tenant_ben", "", "", "102", "3500.00", march, march, "paid"))

	got, err := Landlord(context.Background(), db, now)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, 4, got.Stats.TotalRooms)
	assert.Equal(t, 1, got.Stats.FullRooms)
	assert.Equal(t, 5, got.Stats.ActiveTenants)
	assert.True(t, got.Stats.CollectedThisYear.Equal(decimal.RequireFromString("24500.50")))

	require.Len(t, got.RecentPayments, 2)
	assert.Equal(t, uid, got.RecentPayments[0].UserID)
	assert.Equal(t, "Ana Cruz", got.RecentPayments[0].TenantName)
	assert.Equal(t, "Tenant_ben", got.RecentPayments[1].TenantName)
}

func TestTenantPayments_EmptyIsNotNil(t *testing.T) {
	db, mock := newMock(t)
	uid := uuid.New()

	mock.ExpectQuery(`WHERE p.payment_user_id = \?`).
		WithArgs(uid, recentPaymentsLimit).
		WillReturnRows(sqlmock.NewRows(paymentColumns))

	rows, err := TenantPayments(context.Background(), db, uid)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
	require.NoError(t, mock.ExpectationsWereMet())
}
