package service

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"rentrix_backend/internals/configs"
	paymentModel "rentrix_backend/internals/features/finance/payments/model"
	helper "rentrix_backend/internals/helpers"
	"rentrix_backend/internals/helpers/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

// ReceiptView is what the receipt template sees. Everything is preformatted.
type ReceiptView struct {
	Number       string
	TenantName   string
	RoomNumber   string
	PaymentMonth string
	PaymentDate  string
	Amount       string
	Signature    template.URL
	GeneratedAt  string
}

var engine = func() *html.Engine {
	e := html.NewFileSystem(http.FS(templateFS), ".html")
	if err := e.Load(); err != nil {
		panic(fmt.Sprintf("receipt templates: %v", err))
	}
	return e
}()

// NewReceiptView formats a stored receipt. signature may be nil.
func NewReceiptView(r *paymentModel.ReceiptModel, signature []byte) ReceiptView {
	v := ReceiptView{
		Number:       r.ReceiptNumber,
		TenantName:   r.ReceiptTenantName,
		RoomNumber:   r.ReceiptRoomNumber,
		PaymentMonth: helper.TimeOf(r.ReceiptPaymentMonth).Format("January 2006"),
		PaymentDate:  helper.TimeOf(r.ReceiptPaymentDate).Format("January 2, 2006"),
		Amount:       helper.FormatMoney(configs.CurrencySymbol, r.ReceiptAmount),
		GeneratedAt:  r.ReceiptGeneratedAt.Format("2006-01-02 15:04"),
	}
	if len(signature) > 0 {
		mime := http.DetectContentType(signature)
		v.Signature = template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(signature))
	}
	return v
}

// RenderReceiptHTML executes the embedded receipt template.
func RenderReceiptHTML(v ReceiptView) ([]byte, error) {
	var buf bytes.Buffer
	if err := engine.Render(&buf, "templates/receipt", v); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadSignature fetches the signature image for a receipt. A missing object is not an error.
func LoadSignature(ctx context.Context, store storage.Store, key *string) []byte {
	if store == nil || key == nil || *key == "" {
		return nil
	}
	b, err := store.Get(ctx, *key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			configs.Log.Warn("receipt signature fetch failed", zap.String("key", *key), zap.Error(err))
		}
		return nil
	}
	return b
}

// RenderReceiptPDF produces the downloadable PDF for a receipt.
func RenderReceiptPDF(ctx context.Context, pdf PDFRenderer, r *paymentModel.ReceiptModel, signature []byte) ([]byte, error) {
	body, err := RenderReceiptHTML(NewReceiptView(r, signature))
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return pdf.RenderPDF(ctx, body)
}

// ReceiptFilename is the attachment name for a receipt download.
func ReceiptFilename(number string) string {
	return "receipt_" + number + ".pdf"
}
