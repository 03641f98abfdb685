// file: internals/features/finance/receipts/controller/receipt_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"rentrix_backend/internals/configs"
	paymentModel "rentrix_backend/internals/features/finance/payments/model"
	"rentrix_backend/internals/features/finance/receipts/dto"
	receiptService "rentrix_backend/internals/features/finance/receipts/service"
	helper "rentrix_backend/internals/helpers"
	"rentrix_backend/internals/helpers/storage"
)

type ReceiptController struct {
	DB    *gorm.DB
	Store storage.Store
	PDF   receiptService.PDFRenderer
}

// NewReceiptController: nil store/pdf fall back to the process-wide ones at request time.
func NewReceiptController(db *gorm.DB, store storage.Store, pdf receiptService.PDFRenderer) *ReceiptController {
	return &ReceiptController{DB: db, Store: store, PDF: pdf}
}

func (ctl *ReceiptController) store() storage.Store {
	if ctl.Store != nil {
		return ctl.Store
	}
	return storage.Default
}

func (ctl *ReceiptController) renderer() receiptService.PDFRenderer {
	if ctl.PDF != nil {
		return ctl.PDF
	}
	return receiptService.Renderer
}

// GET /api/u/receipts/:id
func (ctl *ReceiptController) Get(c *fiber.Ctx) error {
	r, err := ctl.load(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToReceiptResponse(*r, configs.CurrencySymbol))
}

// GET /api/u/receipts/:id/pdf
func (ctl *ReceiptController) DownloadPDF(c *fiber.Ctx) error {
	r, err := ctl.load(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	key, err := receiptService.SignatureKeyForRender(ctl.DB.WithContext(c.UserContext()), r)
	if err != nil {
		return helper.FromError(c, err)
	}
	sig := receiptService.LoadSignature(c.UserContext(), ctl.store(), key)

	pdf, err := receiptService.RenderReceiptPDF(c.UserContext(), ctl.renderer(), r, sig)
	if err != nil {
		configs.Log.Error("receipt pdf failed",
			zap.String("receipt_id", r.ReceiptID.String()),
			zap.Error(err),
		)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate receipt PDF")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+receiptService.ReceiptFilename(r.ReceiptNumber)+`"`)
	return c.Send(pdf)
}

func (ctl *ReceiptController) load(c *fiber.Ctx) (*paymentModel.ReceiptModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	viewerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	return receiptService.ReceiptForViewer(ctl.DB.WithContext(c.UserContext()), id, viewerID, helper.IsLandlord(c))
}
