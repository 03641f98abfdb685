package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rentrix_backend/internals/configs"
	"rentrix_backend/internals/constants"
	authHelper "rentrix_backend/internals/features/users/auth/helper"
	userModel "rentrix_backend/internals/features/users/user/model"
	"rentrix_backend/internals/testutil"
)

type apiClient struct {
	t   *testing.T
	app *fiber.App
}

func newAPI(t *testing.T) (*apiClient, *gorm.DB) {
	t.Helper()
	prevSecret, prevRefresh := configs.JWTSecret, configs.JWTRefreshSecret
	configs.JWTSecret, configs.JWTRefreshSecret = "test-access-secret", "test-refresh-secret"
	t.Cleanup(func() { configs.JWTSecret, configs.JWTRefreshSecret = prevSecret, prevRefresh })

	db := testutil.NewDB(t)
	app := fiber.New()
	SetupRoutes(app, db)
	return &apiClient{t: t, app: app}, db
}

func (a *apiClient) do(method, path, token string, body any) (int, map[string]any) {
	a.t.Helper()
	status, raw := a.doRaw(method, path, token, body)
	out := map[string]any{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return status, out
}

func (a *apiClient) doRaw(method, path, token string, body any) (int, []byte) {
	a.t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp.StatusCode, raw
}

func (a *apiClient) login(identifier, password string) (string, map[string]any) {
	a.t.Helper()
	status, body := a.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"identifier": identifier,
		"password":   password,
	})
	require.Equal(a.t, http.StatusOK, status, body)
	data := body["data"].(map[string]any)
	return data["access_token"].(string), data["user"].(map[string]any)
}

func seedLandlord(t *testing.T, db *gorm.DB, username, password string) {
	t.Helper()
	hash, err := authHelper.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, db.Create(&userModel.UserModel{
		UserName: username,
		Password: hash,
		IsStaff:  true,
		IsActive: true,
	}).Error)
}

func TestFirstLoginFlow(t *testing.T) {
	api, db := newAPI(t)
	seedLandlord(t, db, "owner", "owner-pass-1")

	landlordToken, landlord := api.login("owner", "owner-pass-1")
	assert.Equal(t, constants.AccessLandlord, landlord["access_state"])

	status, body := api.do(http.MethodPost, "/api/a/tenants", landlordToken, map[string]string{
		"user_name": "ana",
		"password":  "welcome-123",
	})
	require.Equal(t, http.StatusCreated, status, body)
	created := body["data"].(map[string]any)
	assert.Equal(t, "Tenant_ana", created["user_name"])
	assert.Equal(t, true, created["must_change_password"])

	tenantToken, tenant := api.login("Tenant_ana", "welcome-123")
	assert.Equal(t, constants.AccessTenantMustChangePw, tenant["access_state"])

	status, body = api.do(http.MethodGet, "/api/u/dashboard", tenantToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, constants.ErrCodePasswordChangeRequired, body["error_code"])

	status, _ = api.do(http.MethodGet, "/api/u/rooms", tenantToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = api.do(http.MethodGet, "/api/auth/me", tenantToken, nil)
	require.Equal(t, http.StatusOK, status, body)

	status, body = api.do(http.MethodPost, "/api/auth/force-password-change", tenantToken, map[string]string{
		"old_password":     "welcome-123",
		"new_password":     "welcome-123",
		"confirm_password": "welcome-123",
		"first_name":       "Ana",
		"last_name":        "Cruz",
		"email":            "ana@example.com",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status, "reusing the old password is rejected")

	status, body = api.do(http.MethodPost, "/api/auth/force-password-change", tenantToken, map[string]string{
		"old_password":     "welcome-123",
		"new_password":     "brand-new-99",
		"confirm_password": "brand-new-99",
		"first_name":       "Ana",
		"last_name":        "Cruz",
		"email":            "ana@example.com",
	})
	require.Equal(t, http.StatusOK, status, body)

	// same token: state is re-read on every request
	status, body = api.do(http.MethodGet, "/api/u/dashboard", tenantToken, nil)
	require.Equal(t, http.StatusOK, status, body)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Ana Cruz", data["tenant_name"])
	assert.Empty(t, data["assignments"])

	status, _ = api.do(http.MethodGet, "/api/a/rooms", tenantToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	_, tenant = api.login("Tenant_ana", "brand-new-99")
	assert.Equal(t, constants.AccessTenant, tenant["access_state"])
}

func TestLandlordSkipsGate(t *testing.T) {
	api, db := newAPI(t)
	seedLandlord(t, db, "owner", "owner-pass-1")
	token, _ := api.login("owner", "owner-pass-1")

	status, body := api.do(http.MethodPost, "/api/a/rooms", token, map[string]any{"room_number": "101", "room_capacity": 2})
	require.Equal(t, http.StatusCreated, status, body)

	status, body = api.do(http.MethodGet, "/api/a/dashboard", token, nil)
	require.Equal(t, http.StatusOK, status, body)
	stats := body["data"].(map[string]any)["stats"].(map[string]any)
	assert.EqualValues(t, 1, stats["total_rooms"])
	assert.EqualValues(t, 1, stats["vacant_rooms"])
}

func TestSearchAnswersBareArray(t *testing.T) {
	api, db := newAPI(t)
	seedLandlord(t, db, "owner", "owner-pass-1")
	token, _ := api.login("owner", "owner-pass-1")
	testutil.Room(t, db, "101", 2)

	status, raw := api.doRaw(http.MethodGet, "/api/u/search?q=10", token, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	var results []map[string]any
	require.NoError(t, json.Unmarshal(raw, &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Room 101", results[0]["title"])

	status, raw = api.doRaw(http.MethodGet, "/api/u/search?q=x", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(raw))
}

func TestUnauthenticated(t *testing.T) {
	api, _ := newAPI(t)

	status, _ := api.do(http.MethodGet, "/api/u/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = api.do(http.MethodGet, "/api/auth/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = api.do(http.MethodPost, "/api/auth/login", "", map[string]string{"identifier": "ghost", "password": "whatever1"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	api, db := newAPI(t)
	seedLandlord(t, db, "owner", "owner-pass-1")
	token, _ := api.login("owner", "owner-pass-1")

	status, _ := api.do(http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = api.do(http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLandlordWorkflow(t *testing.T) {
	api, db := newAPI(t)
	seedLandlord(t, db, "owner", "owner-pass-1")
	token, _ := api.login("owner", "owner-pass-1")

	status, body := api.do(http.MethodPost, "/api/a/rooms", token, map[string]any{"room_number": "101", "room_capacity": 1})
	require.Equal(t, http.StatusCreated, status, body)
	roomID := body["data"].(map[string]any)["room_id"].(string)

	tenantID := func(name string) string {
		status, body := api.do(http.MethodPost, "/api/a/tenants", token, map[string]string{"user_name": name, "password": "welcome-123"})
		require.Equal(t, http.StatusCreated, status, body)
		return body["data"].(map[string]any)["id"].(string)
	}
	ana, ben := tenantID("ana"), tenantID("ben")

	status, body = api.do(http.MethodPost, "/api/a/rooms/"+roomID+"/tenants", token, map[string]string{"user_id": ana, "move_in_date": "2025-02-01"})
	require.Equal(t, http.StatusCreated, status, body)

	status, body = api.do(http.MethodPost, "/api/a/rooms/"+roomID+"/tenants", token, map[string]string{"user_id": ben})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, constants.ErrCodeRoomFull, body["error_code"])

	status, body = api.do(http.MethodGet, "/api/a/rooms/"+roomID, token, nil)
	require.Equal(t, http.StatusOK, status, body)
	room := body["data"].(map[string]any)
	assert.Equal(t, "full", room["room_status"])
	assert.EqualValues(t, 1, room["room_current_occupants"])

	status, body = api.do(http.MethodPost, "/api/a/tenants/"+ana+"/payments", token, map[string]string{"payment_month": "2025-03"})
	require.Equal(t, http.StatusCreated, status, body)
	payment := body["data"].(map[string]any)
	assert.Contains(t, payment["payment_receipt_number"], "RCPT-")

	status, body = api.do(http.MethodPost, "/api/a/tenants/"+ben+"/payments", token, map[string]string{"payment_month": "2025-03"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, constants.ErrCodeNoActiveAssignment, body["error_code"])

	req := httptest.NewRequest(http.MethodGet, "/api/a/payments/tracking/export?year=2025", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "payment_tracking_2025.xlsx")
}
