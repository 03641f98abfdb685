package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentrix_backend/internals/constants"
	authHelper "rentrix_backend/internals/features/users/auth/helper"
	authModel "rentrix_backend/internals/features/users/auth/model"
	userModel "rentrix_backend/internals/features/users/user/model"
	"rentrix_backend/internals/helpers/storage"
	"rentrix_backend/internals/testutil"
)

var ctx = context.Background()

func TestCreateTenant(t *testing.T) {
	db := testutil.NewDB(t)

	u, err := CreateTenant(ctx, db, CreateTenantInput{UserName: "ana", Password: "welcome-123"})
	require.NoError(t, err)
	assert.Equal(t, "Tenant_ana", u.UserName)
	assert.False(t, u.IsStaff)
	assert.NoError(t, authHelper.CheckPasswordHash(u.Password, "welcome-123"))

	access, err := ResolveAccess(db, u.ID)
	require.NoError(t, err)
	assert.True(t, access.MustChangePassword)
	assert.Equal(t, constants.AccessTenantMustChangePw, access.State())
	assert.Equal(t, constants.RoleTenant, access.Role())

	_, err = CreateTenant(ctx, db, CreateTenantInput{UserName: "TENANT_ANA", Password: "welcome-123"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = CreateTenant(ctx, db, CreateTenantInput{UserName: "!!!", Password: "welcome-123"})
	assert.ErrorIs(t, err, ErrUsernameInvalid)

	_, err = CreateTenant(ctx, db, CreateTenantInput{UserName: "ben", Password: "12345678"})
	assert.Error(t, err)
}

func TestResolveAccess_States(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.Landlord(t, db, "owner")
	legacy := testutil.Tenant(t, db, "Tenant_legacy")

	access, err := ResolveAccess(db, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.AccessLandlord, access.State())

	// landlords are never forced, even with a stray flag
	require.NoError(t, SetForcePasswordChange(db, owner.ID, true))
	access, err = ResolveAccess(db, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.AccessLandlord, access.State())

	access, err = ResolveAccess(db, legacy.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.AccessTenant, access.State(), "no profile row means no forced change")

	require.NoError(t, SetForcePasswordChange(db, legacy.ID, true))
	must, err := MustChangePassword(db, legacy.ID)
	require.NoError(t, err)
	assert.True(t, must)

	require.NoError(t, SetForcePasswordChange(db, legacy.ID, false))
	must, err = MustChangePassword(db, legacy.ID)
	require.NoError(t, err)
	assert.False(t, must)

	var n int64
	require.NoError(t, db.Model(&userModel.TenantSecurityProfileModel{}).Count(&n).Error)
	assert.Equal(t, int64(2), n)
}

func TestResetTenantPassword(t *testing.T) {
	db := testutil.NewDB(t)
	u, err := CreateTenant(ctx, db, CreateTenantInput{UserName: "ana", Password: "welcome-123"})
	require.NoError(t, err)
	require.NoError(t, SetForcePasswordChange(db, u.ID, false))
	require.NoError(t, db.Create(&authModel.RefreshTokenModel{
		UserID:    u.ID,
		Token:     []byte("hash"),
		ExpiresAt: time.Now().Add(time.Hour),
	}).Error)

	_, err = ResetTenantPassword(ctx, db, u.ID, "fresh-pass-1")
	require.NoError(t, err)

	var stored userModel.UserModel
	require.NoError(t, db.First(&stored, "id = ?", u.ID).Error)
	assert.NoError(t, authHelper.CheckPasswordHash(stored.Password, "fresh-pass-1"))

	must, err := MustChangePassword(db, u.ID)
	require.NoError(t, err)
	assert.True(t, must)

	var tok authModel.RefreshTokenModel
	require.NoError(t, db.Where("user_id = ?", u.ID).First(&tok).Error)
	assert.NotNil(t, tok.RevokedAt)

	owner := testutil.Landlord(t, db, "owner")
	_, err = ResetTenantPassword(ctx, db, owner.ID, "fresh-pass-1")
	assert.ErrorIs(t, err, ErrNotATenant)
}

func TestApplyProfileAndList(t *testing.T) {
	db := testutil.NewDB(t)
	a, err := CreateTenant(ctx, db, CreateTenantInput{UserName: "ana", Password: "welcome-123"})
	require.NoError(t, err)
	_, err = CreateTenant(ctx, db, CreateTenantInput{UserName: "ben", Password: "welcome-123"})
	require.NoError(t, err)
	testutil.Landlord(t, db, "owner")

	require.NoError(t, ApplyProfile(db, a.ID, CompleteProfileInput{FirstName: " Ana ", LastName: "Cruz", Email: "ana@example.com"}))

	rows, total, err := ListTenantAccounts(db, "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 2)

	rows, total, err = ListTenantAccounts(db, "example.com", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Ana Cruz", rows[0].FullName())
}

func TestSaveSignature(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.Landlord(t, db, "owner")
	store, err := storage.NewLocalStore(t.TempDir(), "http://files.local")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 20))))

	p, err := SaveSignature(ctx, db, store, owner.ID, buf.Bytes())
	require.NoError(t, err)
	require.NotNil(t, p.LandlordProfileSignatureKey)
	first := *p.LandlordProfileSignatureKey
	_, err = store.Get(ctx, first)
	require.NoError(t, err)

	p, err = SaveSignature(ctx, db, store, owner.ID, buf.Bytes())
	require.NoError(t, err)
	assert.NotEqual(t, first, *p.LandlordProfileSignatureKey)
	_, err = store.Get(ctx, first)
	assert.NoError(t, err, "older signatures stay for already issued receipts")

	_, err = SaveSignature(ctx, db, store, owner.ID, []byte("plain text"))
	assert.ErrorIs(t, err, ErrSignatureImage)

	_, err = SaveSignature(ctx, db, nil, owner.ID, buf.Bytes())
	assert.Error(t, err)

	empty, err := GetLandlordProfile(db, testutil.Landlord(t, db, "other").ID)
	require.NoError(t, err)
	assert.Nil(t, empty.LandlordProfileSignatureKey)
}
