package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	assignmentModel "rentrix_backend/internals/features/rooms/assignments/model"
)

// FirstTrackedYear is the earliest year the tracking grid offers.
const FirstTrackedYear = 2025

const (
	CellPaid    = "paid"
	CellInvalid = "invalid"
)

// TrackingRow is one active tenant in one room. Months[i] is January+i:
// "paid", "invalid" (before move-in month) or nil.
type TrackingRow struct {
	AssignmentID uuid.UUID   `json:"assignment_id"`
	UserID       uuid.UUID   `json:"user_id"`
	TenantName   string      `json:"tenant_name"`
	UserName     string      `json:"user_name"`
	RoomNumber   string      `json:"room_number"`
	MoveInDate   string      `json:"move_in_date"`
	Months       [12]*string `json:"months"`
}

type TrackingGrid struct {
	Year           int           `json:"year"`
	AvailableYears []int         `json:"available_years"`
	Rows           []TrackingRow `json:"rows"`
}

type trackingTenantRow struct {
	AssignmentID uuid.UUID `db:"room_tenant_id"`
	UserID       uuid.UUID `db:"user_id"`
	UserName     string    `db:"user_name"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	RoomNumber   string    `db:"room_number"`
	MoveInDate   time.Time `db:"move_in_date"`
}

type trackingPaymentRow struct {
	UserID uuid.UUID `db:"payment_user_id"`
	Month  time.Time `db:"payment_month"`
}

// AvailableYears lists FirstTrackedYear..current, plus selected when it lies in the future.
func AvailableYears(now time.Time, selected int) []int {
	var out []int
	for y := FirstTrackedYear; y <= now.Year(); y++ {
		out = append(out, y)
	}
	if selected > now.Year() {
		out = append(out, selected)
	}
	return out
}

// Tracking builds the per-month grid for every active assignment in year.
// Any payment row for a month counts as paid; months before move-in are invalid even if paid.
func Tracking(ctx context.Context, db *sqlx.DB, year int, now time.Time) (*TrackingGrid, error) {
	if year <= 0 {
		year = now.Year()
	}

	var tenants []trackingTenantRow
	err := db.SelectContext(ctx, &tenants, db.Rebind(`
		SELECT rt.room_tenant_id,
		       u.id AS user_id,
		       u.user_name,
		       u.first_name,
		       u.last_name,
		       r.room_number,
		       rt.room_tenant_move_in_date AS move_in_date
		FROM room_tenants rt
		JOIN users u ON u.id = rt.room_tenant_user_id
		JOIN rooms r ON r.room_id = rt.room_tenant_room_id
		WHERE rt.room_tenant_status = ?
		ORDER BY r.room_number, u.user_name`), assignmentModel.AssignmentActive)
	if err != nil {
		return nil, fmt.Errorf("tracking tenants: %w", err)
	}

	var payments []trackingPaymentRow
	err = db.SelectContext(ctx, &payments, db.Rebind(`
		SELECT payment_user_id, payment_month
		FROM payments
		WHERE payment_year = ?`), year)
	if err != nil {
		return nil, fmt.Errorf("tracking payments: %w", err)
	}

	paid := make(map[uuid.UUID][12]bool, len(payments))
	for _, p := range payments {
		m := paid[p.UserID]
		m[int(p.Month.Month())-1] = true
		paid[p.UserID] = m
	}

	grid := &TrackingGrid{
		Year:           year,
		AvailableYears: AvailableYears(now, year),
		Rows:           make([]TrackingRow, 0, len(tenants)),
	}
	for _, t := range tenants {
		row := TrackingRow{
			AssignmentID: t.AssignmentID,
			UserID:       t.UserID,
			TenantName:   displayName(t.FirstName, t.LastName, t.UserName),
			UserName:     t.UserName,
			RoomNumber:   t.RoomNumber,
			MoveInDate:   t.MoveInDate.Format("2006-01-02"),
		}
		moveIn := time.Date(t.MoveInDate.Year(), t.MoveInDate.Month(), 1, 0, 0, 0, 0, time.UTC)
		flags := paid[t.UserID]
		for i := 0; i < 12; i++ {
			month := time.Date(year, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC)
			switch {
			case month.Before(moveIn):
				row.Months[i] = cell(CellInvalid)
			case flags[i]:
				row.Months[i] = cell(CellPaid)
			}
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid, nil
}

func cell(s string) *string { return &s }

func displayName(first, last, username string) string {
	if n := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last)); n != "" {
		return n
	}
	return username
}
