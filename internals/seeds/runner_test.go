package seeds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	roomModel "rentrix_backend/internals/features/rooms/rooms/model"
	userModel "rentrix_backend/internals/features/users/user/model"
	userService "rentrix_backend/internals/features/users/user/service"
	"rentrix_backend/internals/testutil"
)

func TestRunAllSeeds_Idempotent(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, RunAllSeeds(db, "."))
	var users, rooms int64
	require.NoError(t, db.Model(&userModel.UserModel{}).Count(&users).Error)
	require.NoError(t, db.Model(&roomModel.RoomModel{}).Count(&rooms).Error)
	assert.Positive(t, users)
	assert.Equal(t, int64(4), rooms)

	require.NoError(t, RunAllSeeds(db, "."))
	var again int64
	require.NoError(t, db.Model(&userModel.UserModel{}).Count(&again).Error)
	assert.Equal(t, users, again)

	var seededTenants []userModel.UserModel
	require.NoError(t, db.Where("is_staff = ?", false).Find(&seededTenants).Error)
	for _, u := range seededTenants {
		must, err := userService.MustChangePassword(db, u.ID)
		require.NoError(t, err)
		assert.True(t, must, u.UserName)
	}
}

func TestRunAllSeeds_MissingDir(t *testing.T) {
	db := testutil.NewDB(t)
	assert.Error(t, RunAllSeeds(db, t.TempDir()))
}
