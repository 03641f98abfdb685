package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assignmentModel "rentrix_backend/internals/features/rooms/assignments/model"
	"rentrix_backend/internals/testutil"
)

func TestSearch(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	moveIn := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	r101 := testutil.Room(t, db, "101", 2)
	testutil.Room(t, db, "201", 2)
	ana := testutil.Tenant(t, db, "Tenant_ana")
	require.NoError(t, db.Model(ana).Updates(map[string]any{"first_name": "Ana", "last_name": "Cruz"}).Error)
	testutil.Assignment(t, db, r101.RoomID, ana.ID, moveIn, assignmentModel.AssignmentActive)

	t.Run("short query", func(t *testing.T) {
		got, err := Search(ctx, db, " a ")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("room number does not match tenants", func(t *testing.T) {
		got, err := Search(ctx, db, "10")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Room", got[0].Type)
		assert.Equal(t, "Room 101", got[0].Title)
		assert.Equal(t, "/rooms/"+r101.RoomID.String()+"/", got[0].URL)
	})

	t.Run("rooms first then tenants", func(t *testing.T) {
		r2 := testutil.Room(t, db, "an-2", 1)
		got, err := Search(ctx, db, "an")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Room", got[0].Type)
		assert.Equal(t, "/rooms/"+r2.RoomID.String()+"/", got[0].URL)
		assert.Equal(t, "Tenant", got[1].Type)
		assert.Equal(t, "Ana Cruz", got[1].Title)
		assert.Equal(t, "/tenants/?q=an", got[1].URL)
		require.NoError(t, db.Delete(r2).Error)
	})

	t.Run("tenant by name is case insensitive", func(t *testing.T) {
		got, err := Search(ctx, db, "CRUZ")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Tenant", got[0].Type)
	})

	t.Run("query is escaped in the url", func(t *testing.T) {
		require.NoError(t, db.Model(ana).Update("email", "ana+1@example.com").Error)
		got, err := Search(ctx, db, "ana+1")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "/tenants/?q=ana%2B1", got[0].URL)
	})
}
