package helper

import (
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":          "₱0.00",
		"5":          "₱5.00",
		"1350.5":     "₱1,350.50",
		"1234567.89": "₱1,234,567.89",
		"0.005":      "₱0.01",
		"-42.1":      "-₱42.10",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatMoney("₱", decimal.RequireFromString(in)), in)
	}
}

func TestSumDecimals(t *testing.T) {
	assert.True(t, SumDecimals().IsZero())
	got := SumDecimals(decimal.RequireFromString("100.25"), decimal.RequireFromString("49.75"))
	assert.True(t, got.Equal(decimal.NewFromInt(150)))
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.True(t, errors.As(err, &fe), "got %T %v", err, err)
	return fe.Code
}

func TestMapDBError(t *testing.T) {
	assert.Nil(t, MapDBError(nil))
	assert.Equal(t, fiber.StatusNotFound, statusOf(t, MapDBError(gorm.ErrRecordNotFound)))
	assert.Equal(t, fiber.StatusConflict, statusOf(t, MapDBError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_rooms_number"})))
	assert.Equal(t, fiber.StatusBadRequest, statusOf(t, MapDBError(&pgconn.PgError{Code: "23503"})))
	assert.Equal(t, fiber.StatusConflict, statusOf(t, MapDBError(errors.New("UNIQUE constraint failed: rooms.room_number"))))

	plain := errors.New("boom")
	assert.Same(t, plain, MapDBError(plain))

	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: x")))
	assert.False(t, IsUniqueViolation(plain))
}

func TestTenantUsername(t *testing.T) {
	assert.Equal(t, "Tenant_ana", TenantUsername("ana"))
	assert.Equal(t, "tenant_ana", TenantUsername("tenant_ana"))
	assert.Equal(t, "Tenant_Jose_Maria", TenantUsername(" José María "))
	assert.Equal(t, "Tenant_ana.b", TenantUsername("ana.b!#"))
	assert.Equal(t, "", TenantUsername("  "))
}

func TestParseMonth(t *testing.T) {
	got, err := ParseMonth("2025-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseMonth("2025-02-17")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseMonth("Feb 2025")
	assert.Error(t, err)

	_, err = ParseDate("2025-13-01")
	assert.Error(t, err)
}
