package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rentrix_backend/internals/configs"
	paymentModel "rentrix_backend/internals/features/finance/payments/model"
	paymentService "rentrix_backend/internals/features/finance/payments/service"
	assignmentModel "rentrix_backend/internals/features/rooms/assignments/model"
	userModel "rentrix_backend/internals/features/users/user/model"
	helper "rentrix_backend/internals/helpers"
	"rentrix_backend/internals/helpers/storage"
	"rentrix_backend/internals/testutil"
)

var ctx = context.Background()

type fakePDF struct {
	html []byte
}

func (f *fakePDF) RenderPDF(_ context.Context, html []byte) ([]byte, error) {
	f.html = html
	return []byte("%PDF-1.4 fake"), nil
}

func paidReceipt(t *testing.T) (*gorm.DB, *userModel.UserModel, *paymentModel.PaymentModel) {
	t.Helper()
	db := testutil.NewDB(t)
	room := testutil.Room(t, db, "101", 2)
	tenant := testutil.Tenant(t, db, "Tenant_ana")
	feb := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	testutil.Assignment(t, db, room.RoomID, tenant.ID, feb, assignmentModel.AssignmentActive)

	paid := time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)
	p, err := paymentService.Create(ctx, db, paymentService.CreateInput{
		UserID:      tenant.ID,
		Month:       feb,
		PaymentDate: &paid,
		BaseAmount:  decimal.RequireFromString("1350.5"),
	})
	require.NoError(t, err)
	return db, tenant, p
}

func TestReceiptForViewer(t *testing.T) {
	db, tenant, p := paidReceipt(t)
	id := p.Receipt.ReceiptID

	r, err := ReceiptForViewer(db, id, tenant.ID, false)
	require.NoError(t, err)
	assert.Equal(t, p.PaymentReceiptNumber, r.ReceiptNumber)

	_, err = ReceiptForViewer(db, id, uuid.New(), false)
	assert.ErrorIs(t, err, ErrReceiptForbidden)

	_, err = ReceiptForViewer(db, id, uuid.New(), true)
	assert.NoError(t, err)

	_, err = ReceiptForViewer(db, uuid.New(), tenant.ID, true)
	assert.ErrorIs(t, err, ErrReceiptNotFound)
}

func TestSignatureKeyForRender_FallsBackToCurrentLandlord(t *testing.T) {
	db, _, p := paidReceipt(t)
	require.Nil(t, p.Receipt.ReceiptLandlordSignature)

	key, err := SignatureKeyForRender(db, p.Receipt)
	require.NoError(t, err)
	assert.Nil(t, key)

	owner := testutil.Landlord(t, db, "owner")
	sig := "signatures/later.webp"
	require.NoError(t, db.Create(&userModel.LandlordProfileModel{
		LandlordProfileUserID:       owner.ID,
		LandlordProfileSignatureKey: &sig,
	}).Error)

	key, err = SignatureKeyForRender(db, p.Receipt)
	require.NoError(t, err)
	require.NotNil(t, key)
	assert.Equal(t, sig, *key)

	frozen := "signatures/frozen.webp"
	p.Receipt.ReceiptLandlordSignature = &frozen
	key, err = SignatureKeyForRender(db, p.Receipt)
	require.NoError(t, err)
	assert.Equal(t, frozen, *key)
}

func TestRenderReceiptPDF(t *testing.T) {
	prev := configs.CurrencySymbol
	configs.CurrencySymbol = "₱"
	t.Cleanup(func() { configs.CurrencySymbol = prev })

	_, _, p := paidReceipt(t)
	pdf := &fakePDF{}

	out, err := RenderReceiptPDF(ctx, pdf, p.Receipt, []byte("\x89PNG\r\n\x1a\nrest"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	html := string(pdf.html)
	assert.Contains(t, html, p.PaymentReceiptNumber)
	assert.Contains(t, html, "Tenant_ana")
	assert.Contains(t, html, "Room")
	assert.Contains(t, html, "February 2025")
	assert.Contains(t, html, "February 5, 2025")
	assert.Contains(t, html, "₱1,350.50")
	assert.Contains(t, html, "data:image/png;base64,")

	assert.Equal(t, "receipt_"+p.PaymentReceiptNumber+".pdf", ReceiptFilename(p.PaymentReceiptNumber))
}

func TestNewReceiptView_NoSignature(t *testing.T) {
	r := &paymentModel.ReceiptModel{
		ReceiptNumber:       "RCPT-20250205000000-aaaaaaaa",
		ReceiptAmount:       decimal.NewFromInt(2000),
		ReceiptPaymentMonth: helper.DateOf(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
	}
	v := NewReceiptView(r, nil)
	assert.Empty(t, v.Signature)
	assert.Equal(t, "March 2025", v.PaymentMonth)

	html, err := RenderReceiptHTML(v)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(html), "<img"))
}

func TestLoadSignature(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir(), "")
	require.NoError(t, err)
	key := "signatures/owner.webp"
	require.NoError(t, store.Put(ctx, key, strings.NewReader("RIFF"), "image/webp"))

	assert.Equal(t, []byte("RIFF"), LoadSignature(ctx, store, &key))
	missing := "signatures/none.webp"
	assert.Nil(t, LoadSignature(ctx, store, &missing))
	assert.Nil(t, LoadSignature(ctx, store, nil))
	assert.Nil(t, LoadSignature(ctx, nil, &key))
}
