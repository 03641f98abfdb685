// Package testutil builds throwaway sqlite databases for package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	database "rentrix_backend/internals/databases"
	assignmentModel "rentrix_backend/internals/features/rooms/assignments/model"
	roomModel "rentrix_backend/internals/features/rooms/rooms/model"
	userModel "rentrix_backend/internals/features/users/user/model"
	helper "rentrix_backend/internals/helpers"
)

// NewDB returns a migrated in-memory database that is closed with the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func Tenant(t testing.TB, db *gorm.DB, username string) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{UserName: username, Password: "x", IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

func Landlord(t testing.TB, db *gorm.DB, username string) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{UserName: username, Password: "x", IsStaff: true, IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

func Room(t testing.TB, db *gorm.DB, number string, capacity int) *roomModel.RoomModel {
	t.Helper()
	r := &roomModel.RoomModel{RoomNumber: number, RoomCapacity: capacity}
	require.NoError(t, db.Create(r).Error)
	return r
}

// Assignment inserts a row directly, without reconciling.
func Assignment(t testing.TB, db *gorm.DB, roomID, userID uuid.UUID, moveIn time.Time, status string) *assignmentModel.RoomTenantModel {
	t.Helper()
	a := &assignmentModel.RoomTenantModel{
		RoomTenantRoomID:     roomID,
		RoomTenantUserID:     userID,
		RoomTenantMoveInDate: helper.DateOf(moveIn),
		RoomTenantStatus:     status,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

// ReloadRoom reads the room straight from the table.
func ReloadRoom(t testing.TB, db *gorm.DB, r *roomModel.RoomModel) *roomModel.RoomModel {
	t.Helper()
	var out roomModel.RoomModel
	require.NoError(t, db.Where("room_id = ?", r.RoomID).First(&out).Error)
	return &out
}
