package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rentrix_backend/internals/constants"
	model "rentrix_backend/internals/features/finance/payments/model"
	assignmentModel "rentrix_backend/internals/features/rooms/assignments/model"
	assignmentService "rentrix_backend/internals/features/rooms/assignments/service"
	userModel "rentrix_backend/internals/features/users/user/model"
	helper "rentrix_backend/internals/helpers"
	"rentrix_backend/internals/testutil"
)

var (
	ctx = context.Background()
	feb = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixedClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := model.NowFunc
	model.NowFunc = func() time.Time { return at }
	t.Cleanup(func() { model.NowFunc = prev })
}

type fixture struct {
	db     *gorm.DB
	tenant *userModel.UserModel
	link   *assignmentModel.RoomTenantModel
}

func newFixture(t *testing.T, addOns ...string) fixture {
	t.Helper()
	db := testutil.NewDB(t)
	room := testutil.Room(t, db, "101", 2)
	tenant := testutil.Tenant(t, db, "Tenant_ana")
	require.NoError(t, db.Model(tenant).Updates(map[string]any{"first_name": "Ana", "last_name": "Cruz"}).Error)
	link := testutil.Assignment(t, db, room.RoomID, tenant.ID, feb, assignmentModel.AssignmentActive)
	for i, amt := range addOns {
		_, err := assignmentService.AddAddOn(ctx, db, link.RoomTenantID, "extra "+string(rune('a'+i)), dec(amt))
		require.NoError(t, err)
	}
	return fixture{db: db, tenant: tenant, link: link}
}

func TestCreate_TotalIncludesAddOns(t *testing.T) {
	cases := []struct {
		name   string
		addOns []string
		want   string
	}{
		{"no add-ons", nil, "3500.00"},
		{"one add-on", []string{"250"}, "3750.00"},
		{"three add-ons", []string{"100", "200.50", "49.50"}, "3850.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.addOns...)
			p, err := Create(ctx, f.db, CreateInput{UserID: f.tenant.ID, Month: feb, BaseAmount: dec("3500")})
			require.NoError(t, err)
			assert.True(t, p.PaymentAmount.Equal(dec(tc.want)), p.PaymentAmount.String())
			require.NotNil(t, p.Receipt)
			assert.True(t, p.Receipt.ReceiptAmount.Equal(p.PaymentAmount))
		})
	}
}

func TestCreate_ReceiptSnapshot(t *testing.T) {
	f := newFixture(t)
	at := time.Date(2025, 2, 3, 10, 4, 5, 0, time.UTC)
	fixedClock(t, at)

	paid := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	p, err := Create(ctx, f.db, CreateInput{
		UserID:      f.tenant.ID,
		Month:       time.Date(2025, 2, 17, 0, 0, 0, 0, time.UTC),
		PaymentDate: &paid,
		BaseAmount:  dec("1000"),
	})
	require.NoError(t, err)

	assert.Equal(t, model.PaymentStatusPaid, p.PaymentStatus)
	assert.Equal(t, 2025, p.PaymentYear)
	assert.Equal(t, "2025-02-01", helper.TimeOf(p.PaymentMonth).Format(helper.DateLayout))
	assert.Equal(t, model.GenerateReceiptNumber(at, f.tenant.ID), p.PaymentReceiptNumber)

	r := p.Receipt
	assert.Equal(t, p.PaymentReceiptNumber, r.ReceiptNumber)
	assert.Equal(t, "Ana Cruz", r.ReceiptTenantName)
	assert.Equal(t, "101", r.ReceiptRoomNumber)
	assert.Nil(t, r.ReceiptLandlordSignature)

	// later renames never reach the receipt
	require.NoError(t, f.db.Model(f.tenant).Update("first_name", "Anna").Error)
	got, err := Get(f.db, p.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Cruz", got.Receipt.ReceiptTenantName)
}

func TestCreate_SignatureFromLandlordProfile(t *testing.T) {
	f := newFixture(t)
	owner := testutil.Landlord(t, f.db, "owner")
	key := "signatures/owner.png"
	require.NoError(t, f.db.Create(&userModel.LandlordProfileModel{
		LandlordProfileUserID:       owner.ID,
		LandlordProfileSignatureKey: &key,
	}).Error)

	p, err := Create(ctx, f.db, CreateInput{UserID: f.tenant.ID, Month: feb, BaseAmount: dec("1"), LandlordID: owner.ID})
	require.NoError(t, err)
	require.NotNil(t, p.Receipt.ReceiptLandlordSignature)
	assert.Equal(t, key, *p.Receipt.ReceiptLandlordSignature)
}

func TestCreate_DuplicateReceiptNumber(t *testing.T) {
	f := newFixture(t)
	fixedClock(t, time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC))

	_, err := Create(ctx, f.db, CreateInput{UserID: f.tenant.ID, Month: feb, BaseAmount: dec("1")})
	require.NoError(t, err)
	_, err = Create(ctx, f.db, CreateInput{UserID: f.tenant.ID, Month: feb, BaseAmount: dec("1")})
	assert.ErrorIs(t, err, ErrDuplicateReceipt)

	var n int64
	require.NoError(t, f.db.Model(&model.ReceiptModel{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestCreate_AmountFrozenAfterAddOnChange(t *testing.T) {
	f := newFixture(t, "500")
	p, err := Create(ctx, f.db, CreateInput{UserID: f.tenant.ID, Month: feb, BaseAmount: dec("1000")})
	require.NoError(t, err)

	_, err = assignmentService.AddAddOn(ctx, f.db, f.link.RoomTenantID, "Parking", dec("700"))
	require.NoError(t, err)

	got, err := Get(f.db, p.PaymentID)
	require.NoError(t, err)
	assert.True(t, got.PaymentAmount.Equal(dec("1500")), got.PaymentAmount.String())
}

func TestResolveActiveAssignment(t *testing.T) {
	db := testutil.NewDB(t)
	tenant := testutil.Tenant(t, db, "Tenant_solo")

	_, err := ResolveActiveAssignment(db, tenant.ID)
	var ce *helper.CodedError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, fiber.StatusNotFound, ce.Status)
	assert.Equal(t, constants.ErrCodeNoActiveAssignment, ce.Code)

	a := testutil.Room(t, db, "201", 2)
	b := testutil.Room(t, db, "202", 2)
	testutil.Assignment(t, db, a.RoomID, tenant.ID, feb, assignmentModel.AssignmentActive)
	got, err := ResolveActiveAssignment(db, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, a.RoomID, got.RoomTenantRoomID)

	testutil.Assignment(t, db, b.RoomID, tenant.ID, feb, assignmentModel.AssignmentActive)
	_, err = ResolveActiveAssignment(db, tenant.ID)
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, fiber.StatusConflict, ce.Status)
	assert.Equal(t, constants.ErrCodeMultipleAssignments, ce.Code)
}

func TestUpdate_YearFollowsMonthAndReceiptUntouched(t *testing.T) {
	f := newFixture(t)
	p, err := Create(ctx, f.db, CreateInput{UserID: f.tenant.ID, Month: feb, BaseAmount: dec("1000")})
	require.NoError(t, err)

	month := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	unpaid := model.PaymentStatusUnpaid
	amount := dec("900")
	updated, err := Update(ctx, f.db, p.PaymentID, UpdateInput{Month: &month, Status: &unpaid, Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, 2024, updated.PaymentYear)
	assert.Equal(t, p.PaymentReceiptNumber, updated.PaymentReceiptNumber)

	got, err := Get(f.db, p.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, 2024, got.PaymentYear)
	assert.Equal(t, model.PaymentStatusUnpaid, got.PaymentStatus)
	assert.True(t, got.Receipt.ReceiptAmount.Equal(dec("1000")))
	assert.Equal(t, "2025-02-01", helper.TimeOf(got.Receipt.ReceiptPaymentMonth).Format(helper.DateLayout))
}

func TestUpdate_NotFound(t *testing.T) {
	db := testutil.NewDB(t)
	_, err := Update(ctx, db, uuid.New(), UpdateInput{})
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestHistory_FiltersByYear(t *testing.T) {
	f := newFixture(t)
	for i, m := range []time.Time{
		time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	} {
		fixedClock(t, time.Date(2025, 3, 1, 0, 0, i, 0, time.UTC))
		_, err := Create(ctx, f.db, CreateInput{UserID: f.tenant.ID, Month: m, BaseAmount: dec("1")})
		require.NoError(t, err)
	}

	all, err := History(f.db, f.tenant.ID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	rows, err := History(f.db, f.tenant.ID, 2025)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, time.February, helper.TimeOf(rows[0].PaymentMonth).Month())
}

func TestUpdate_RejectsNegativeAmount(t *testing.T) {
	f := newFixture(t)
	p, err := Create(ctx, f.db, CreateInput{UserID: f.tenant.ID, Month: feb, BaseAmount: dec("1000")})
	require.NoError(t, err)

	amount := dec("-1")
	_, err = Update(ctx, f.db, p.PaymentID, UpdateInput{Amount: &amount})
	assert.ErrorIs(t, err, ErrPaymentAmount)

	got, err := Get(f.db, p.PaymentID)
	require.NoError(t, err)
	assert.True(t, got.PaymentAmount.Equal(dec("1000")))
}

func TestList_QueryKeepsOtherFilters(t *testing.T) {
	f := newFixture(t)
	for i, tc := range []struct {
		month  time.Time
		status string
	}{
		{feb, model.PaymentStatusPaid},
		{time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), model.PaymentStatusUnpaid},
		{time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), model.PaymentStatusUnpaid},
	} {
		fixedClock(t, time.Date(2025, 4, 1, 0, 0, i, 0, time.UTC))
		_, err := Create(ctx, f.db, CreateInput{UserID: f.tenant.ID, Month: tc.month, Status: tc.status, BaseAmount: dec("1")})
		require.NoError(t, err)
	}

	rows, total, err := List(f.db, ListFilter{Q: "ana", Status: model.PaymentStatusUnpaid}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, r := range rows {
		assert.Equal(t, model.PaymentStatusUnpaid, r.PaymentStatus)
	}

	rows, total, err = List(f.db, ListFilter{Q: "101", Year: 2025, Status: model.PaymentStatusUnpaid}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, time.March, helper.TimeOf(rows[0].PaymentMonth).Month())

	march := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	_, total, err = List(f.db, ListFilter{Q: "cruz", Month: &march, Status: model.PaymentStatusPaid}, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, total, err = List(f.db, ListFilter{Q: "nobody"}, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}
