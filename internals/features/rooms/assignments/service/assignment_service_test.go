package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rentrix_backend/internals/constants"
	model "rentrix_backend/internals/features/rooms/assignments/model"
	roomModel "rentrix_backend/internals/features/rooms/rooms/model"
	helper "rentrix_backend/internals/helpers"
	"rentrix_backend/internals/testutil"
)

var (
	ctx    = context.Background()
	moveIn = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
)

func assign(t *testing.T, db *gorm.DB, roomID, userID uuid.UUID) *Result {
	t.Helper()
	res, err := Assign(ctx, db, AssignInput{RoomID: roomID, UserID: userID, MoveInDate: moveIn})
	require.NoError(t, err)
	return res
}

func requireRoomFull(t *testing.T, err error) {
	t.Helper()
	var ce *helper.CodedError
	require.True(t, errors.As(err, &ce), "expected coded error, got %v", err)
	assert.Equal(t, fiber.StatusConflict, ce.Status)
	assert.Equal(t, constants.ErrCodeRoomFull, ce.Code)
}

// Room "101" capacity 2: two tenants fill it, archiving one frees a slot,
// a new tenant fills it again.
func TestRoom101Scenario(t *testing.T) {
	db := testutil.NewDB(t)
	room := testutil.Room(t, db, "101", 2)
	ana := testutil.Tenant(t, db, "Tenant_ana")
	ben := testutil.Tenant(t, db, "Tenant_ben")
	cid := testutil.Tenant(t, db, "Tenant_cid")

	assign(t, db, room.RoomID, ana.ID)
	res := assign(t, db, room.RoomID, ben.ID)
	require.Len(t, res.Rooms, 1)
	assert.Equal(t, 2, res.Rooms[0].RoomCurrentOccupants)
	assert.Equal(t, roomModel.RoomStatusFull, res.Rooms[0].RoomStatus)

	archived, err := Archive(ctx, db, res.Assignment.RoomTenantID)
	require.NoError(t, err)
	assert.Equal(t, model.AssignmentInactive, archived.Assignment.RoomTenantStatus)
	assert.Equal(t, 1, archived.Rooms[0].RoomCurrentOccupants)
	assert.Equal(t, roomModel.RoomStatusVacant, archived.Rooms[0].RoomStatus)

	res = assign(t, db, room.RoomID, cid.ID)
	assert.Equal(t, 2, res.Rooms[0].RoomCurrentOccupants)
	assert.Equal(t, roomModel.RoomStatusFull, res.Rooms[0].RoomStatus)

	stored := testutil.ReloadRoom(t, db, room)
	assert.Equal(t, 2, stored.RoomCurrentOccupants)
	assert.Equal(t, roomModel.RoomStatusFull, stored.RoomStatus)
}

func TestAssign_RejectsFullRoom(t *testing.T) {
	db := testutil.NewDB(t)
	room := testutil.Room(t, db, "102", 1)
	assign(t, db, room.RoomID, testutil.Tenant(t, db, "Tenant_a").ID)

	_, err := Assign(ctx, db, AssignInput{RoomID: room.RoomID, UserID: testutil.Tenant(t, db, "Tenant_b").ID, MoveInDate: moveIn})
	requireRoomFull(t, err)

	var n int64
	require.NoError(t, db.Model(&model.RoomTenantModel{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestAssign_InactiveIntoFullRoomAllowed(t *testing.T) {
	db := testutil.NewDB(t)
	room := testutil.Room(t, db, "103", 1)
	assign(t, db, room.RoomID, testutil.Tenant(t, db, "Tenant_a").ID)

	res, err := Assign(ctx, db, AssignInput{
		RoomID:     room.RoomID,
		UserID:     testutil.Tenant(t, db, "Tenant_b").ID,
		MoveInDate: moveIn,
		Status:     model.AssignmentInactive,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rooms[0].RoomCurrentOccupants)
}

func TestAssign_DuplicatePairConflicts(t *testing.T) {
	db := testutil.NewDB(t)
	room := testutil.Room(t, db, "104", 4)
	u := testutil.Tenant(t, db, "Tenant_a")
	assign(t, db, room.RoomID, u.ID)

	_, err := Assign(ctx, db, AssignInput{RoomID: room.RoomID, UserID: u.ID, MoveInDate: moveIn})
	assert.ErrorIs(t, err, ErrAlreadyAssigned)
}

func TestAssign_LandlordRejected(t *testing.T) {
	db := testutil.NewDB(t)
	room := testutil.Room(t, db, "105", 4)
	l := testutil.Landlord(t, db, "owner")

	_, err := Assign(ctx, db, AssignInput{RoomID: room.RoomID, UserID: l.ID, MoveInDate: moveIn})
	assert.ErrorIs(t, err, ErrNotATenant)
}

func TestAssign_TwoRoomsSameTenantAllowed(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.Room(t, db, "106", 2)
	b := testutil.Room(t, db, "107", 2)
	u := testutil.Tenant(t, db, "Tenant_a")

	assign(t, db, a.RoomID, u.ID)
	assign(t, db, b.RoomID, u.ID)

	active, err := ActiveAssignmentsForTenant(db, u.ID)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestMove_ReconcilesBothRooms(t *testing.T) {
	db := testutil.NewDB(t)
	from := testutil.Room(t, db, "201", 1)
	to := testutil.Room(t, db, "202", 2)
	res := assign(t, db, from.RoomID, testutil.Tenant(t, db, "Tenant_a").ID)
	assert.Equal(t, roomModel.RoomStatusFull, res.Rooms[0].RoomStatus)

	moved, err := Move(ctx, db, res.Assignment.RoomTenantID, to.RoomID)
	require.NoError(t, err)
	require.Len(t, moved.Rooms, 2)

	oldRoom := testutil.ReloadRoom(t, db, from)
	newRoom := testutil.ReloadRoom(t, db, to)
	assert.Equal(t, 0, oldRoom.RoomCurrentOccupants)
	assert.Equal(t, roomModel.RoomStatusVacant, oldRoom.RoomStatus)
	assert.Equal(t, 1, newRoom.RoomCurrentOccupants)
	assert.Equal(t, roomModel.RoomStatusVacant, newRoom.RoomStatus)
}

func TestMove_IntoFullRoomRejected(t *testing.T) {
	db := testutil.NewDB(t)
	from := testutil.Room(t, db, "203", 2)
	full := testutil.Room(t, db, "204", 1)
	res := assign(t, db, from.RoomID, testutil.Tenant(t, db, "Tenant_a").ID)
	assign(t, db, full.RoomID, testutil.Tenant(t, db, "Tenant_b").ID)

	_, err := Move(ctx, db, res.Assignment.RoomTenantID, full.RoomID)
	requireRoomFull(t, err)

	// rolled back: still in the original room
	a, err := GetAssignment(db, res.Assignment.RoomTenantID)
	require.NoError(t, err)
	assert.Equal(t, from.RoomID, a.RoomTenantRoomID)
}

func TestArchive_LastActiveInFullRoomFreesIt(t *testing.T) {
	db := testutil.NewDB(t)
	room := testutil.Room(t, db, "301", 1)
	res := assign(t, db, room.RoomID, testutil.Tenant(t, db, "Tenant_a").ID)

	_, err := Archive(ctx, db, res.Assignment.RoomTenantID)
	require.NoError(t, err)

	stored := testutil.ReloadRoom(t, db, room)
	assert.Equal(t, 0, stored.RoomCurrentOccupants)
	assert.Equal(t, roomModel.RoomStatusVacant, stored.RoomStatus)
}

func TestRestore_IntoChosenRoom(t *testing.T) {
	db := testutil.NewDB(t)
	from := testutil.Room(t, db, "302", 2)
	to := testutil.Room(t, db, "303", 2)
	res := assign(t, db, from.RoomID, testutil.Tenant(t, db, "Tenant_a").ID)
	_, err := Archive(ctx, db, res.Assignment.RoomTenantID)
	require.NoError(t, err)

	restored, err := Restore(ctx, db, res.Assignment.RoomTenantID, to.RoomID)
	require.NoError(t, err)
	assert.Equal(t, model.AssignmentActive, restored.Assignment.RoomTenantStatus)
	assert.Equal(t, to.RoomID, restored.Assignment.RoomTenantRoomID)
	assert.Equal(t, 1, testutil.ReloadRoom(t, db, to).RoomCurrentOccupants)
	assert.Equal(t, 0, testutil.ReloadRoom(t, db, from).RoomCurrentOccupants)
}

func TestRestore_FullRoomRejected(t *testing.T) {
	db := testutil.NewDB(t)
	room := testutil.Room(t, db, "304", 1)
	res := assign(t, db, room.RoomID, testutil.Tenant(t, db, "Tenant_a").ID)
	_, err := Archive(ctx, db, res.Assignment.RoomTenantID)
	require.NoError(t, err)
	assign(t, db, room.RoomID, testutil.Tenant(t, db, "Tenant_b").ID)

	_, err = Restore(ctx, db, res.Assignment.RoomTenantID, uuid.Nil)
	requireRoomFull(t, err)
}

func TestDelete_RemovesAddOnsAndReconciles(t *testing.T) {
	db := testutil.NewDB(t)
	room := testutil.Room(t, db, "401", 1)
	res := assign(t, db, room.RoomID, testutil.Tenant(t, db, "Tenant_a").ID)
	_, err := AddAddOn(ctx, db, res.Assignment.RoomTenantID, "Aircon", helperDecimal("250.00"))
	require.NoError(t, err)

	deleted, err := Delete(ctx, db, res.Assignment.RoomTenantID)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted.Rooms[0].RoomCurrentOccupants)

	var n int64
	require.NoError(t, db.Model(&model.AddOnModel{}).Count(&n).Error)
	assert.Zero(t, n)

	_, err = GetAssignment(db, res.Assignment.RoomTenantID)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestUpdate_MoveInDateOnly(t *testing.T) {
	db := testutil.NewDB(t)
	room := testutil.Room(t, db, "402", 2)
	res := assign(t, db, room.RoomID, testutil.Tenant(t, db, "Tenant_a").ID)

	d := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	_, err := Update(ctx, db, res.Assignment.RoomTenantID, UpdateInput{MoveInDate: &d})
	require.NoError(t, err)

	a, err := GetAssignment(db, res.Assignment.RoomTenantID)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-15", helper.TimeOf(a.RoomTenantMoveInDate).Format(helper.DateLayout))
}

func TestListTenants_FiltersByQueryAndStatus(t *testing.T) {
	db := testutil.NewDB(t)
	room := testutil.Room(t, db, "501", 4)
	ana := testutil.Tenant(t, db, "Tenant_ana")
	require.NoError(t, db.Model(ana).Update("first_name", "Ana").Error)
	ben := testutil.Tenant(t, db, "Tenant_ben")
	assign(t, db, room.RoomID, ana.ID)
	res := assign(t, db, room.RoomID, ben.ID)
	_, err := Archive(ctx, db, res.Assignment.RoomTenantID)
	require.NoError(t, err)

	rows, total, err := ListTenants(db, TenantFilter{Q: "ana", Status: model.AssignmentActive}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, ana.ID, rows[0].RoomTenantUserID)
	require.NotNil(t, rows[0].Room)
	assert.Equal(t, "501", rows[0].Room.RoomNumber)

	rows, total, err = ListTenants(db, TenantFilter{Q: "501", Status: model.AssignmentInactive}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, ben.ID, rows[0].RoomTenantUserID)

	// both usernames match, status still narrows
	rows, total, err = ListTenants(db, TenantFilter{Q: "tenant_", Status: model.AssignmentInactive}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, ben.ID, rows[0].RoomTenantUserID)

	rows, total, err = ListTenants(db, TenantFilter{Q: "tenant_", Status: model.AssignmentActive}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, ana.ID, rows[0].RoomTenantUserID)
}
