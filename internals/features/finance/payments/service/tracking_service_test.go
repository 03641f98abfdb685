package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	assignmentModel "rentrix_backend/internals/features/rooms/assignments/model"
	helper "rentrix_backend/internals/helpers"
	"rentrix_backend/internals/testutil"
)

func TestAvailableYears(t *testing.T) {
	now := time.Date(2027, 5, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []int{2025, 2026, 2027}, AvailableYears(now, 2026))
	assert.Equal(t, []int{2025, 2026, 2027, 2029}, AvailableYears(now, 2029))
	assert.Equal(t, []int{2025}, AvailableYears(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 0))
}

func TestTracking_Grid(t *testing.T) {
	f := newFixture(t) // Tenant_ana moved into 101 on 2025-02-01
	march := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	prevYear := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, m := range []time.Time{march, jan, prevYear} {
		fixedClock(t, time.Date(2025, 4, 1, 0, 0, i, 0, time.UTC))
		_, err := Create(ctx, f.db, CreateInput{UserID: f.tenant.ID, Month: m, BaseAmount: dec("1")})
		require.NoError(t, err)
	}

	// archived tenants drop out of the grid
	other := testutil.Tenant(t, f.db, "Tenant_gone")
	testutil.Assignment(t, f.db, f.link.RoomTenantRoomID, other.ID, feb, assignmentModel.AssignmentInactive)

	sx, err := helper.SQLX(f.db)
	require.NoError(t, err)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	grid, err := Tracking(ctx, sx, 2025, now)
	require.NoError(t, err)
	assert.Equal(t, 2025, grid.Year)
	assert.Equal(t, []int{2025}, grid.AvailableYears)
	require.Len(t, grid.Rows, 1)

	row := grid.Rows[0]
	assert.Equal(t, "Ana Cruz", row.TenantName)
	assert.Equal(t, "101", row.RoomNumber)
	assert.Equal(t, "2025-02-01", row.MoveInDate)
	require.NotNil(t, row.Months[0])
	assert.Equal(t, CellInvalid, *row.Months[0], "paid before move-in still reads invalid")
	assert.Nil(t, row.Months[1])
	require.NotNil(t, row.Months[2])
	assert.Equal(t, CellPaid, *row.Months[2])
	for m := 3; m < 12; m++ {
		assert.Nil(t, row.Months[m])
	}

	// default year is the current one
	grid, err = Tracking(ctx, sx, 0, now)
	require.NoError(t, err)
	assert.Equal(t, 2025, grid.Year)
}

func TestExportTracking(t *testing.T) {
	paid, invalid := CellPaid, CellInvalid
	g := &TrackingGrid{
		Year: 2025,
		Rows: []TrackingRow{{
			TenantName: "Ana Cruz",
			UserName:   "Tenant_ana",
			RoomNumber: "101",
			MoveInDate: "2025-02-01",
			Months:     [12]*string{0: &invalid, 2: &paid},
		}},
	}

	data, err := ExportTracking(g)
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	sheet := "Payments 2025"
	assert.Equal(t, []string{sheet}, wb.GetSheetList())

	rows, err := wb.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Room", "Tenant", "Username", "Move-in", "Jan", "Feb", "Mar"}, rows[0][:7])
	assert.Equal(t, "Dec", rows[0][15])

	v, _ := wb.GetCellValue(sheet, "E2")
	assert.Equal(t, "N/A", v)
	v, _ = wb.GetCellValue(sheet, "F2")
	assert.Empty(t, v)
	v, _ = wb.GetCellValue(sheet, "G2")
	assert.Equal(t, "PAID", v)
	v, _ = wb.GetCellValue(sheet, "B2")
	assert.Equal(t, "Ana Cruz", v)

	assert.Equal(t, "payment_tracking_2025.xlsx", TrackingFilename(2025))
}
