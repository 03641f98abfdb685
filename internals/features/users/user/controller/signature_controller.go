package controller

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rentrix_backend/internals/constants"
	"rentrix_backend/internals/features/users/user/dto"
	userService "rentrix_backend/internals/features/users/user/service"
	helper "rentrix_backend/internals/helpers"
	"rentrix_backend/internals/helpers/storage"
)

type SignatureController struct {
	DB    *gorm.DB
	Store storage.Store
}

// NewSignatureController: a nil store means storage.Default at request time.
func NewSignatureController(db *gorm.DB, store storage.Store) *SignatureController {
	return &SignatureController{DB: db, Store: store}
}

func (ctl *SignatureController) store() storage.Store {
	if ctl.Store != nil {
		return ctl.Store
	}
	return storage.Default
}

// GET /api/a/signature
func (ctl *SignatureController) Get(c *fiber.Ctx) error {
	landlordID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	p, err := userService.GetLandlordProfile(ctl.DB.WithContext(c.UserContext()), landlordID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToSignatureResponse(*p))
}

// POST /api/a/signature (multipart, field "signature")
func (ctl *SignatureController) Upload(c *fiber.Ctx) error {
	landlordID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	fh, err := c.FormFile("signature")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "signature file is required")
	}
	if constants.DetectFileTypeFromExt(fh.Filename) != constants.FileTypeImage {
		return helper.FromError(c, userService.ErrSignatureImage)
	}
	if fh.Size > constants.MaxSignatureBytes {
		return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, "Signature must be 2MB or smaller")
	}

	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cannot read uploaded file")
	}
	defer f.Close()
	raw, err := io.ReadAll(io.LimitReader(f, constants.MaxSignatureBytes+1))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cannot read uploaded file")
	}

	p, err := userService.SaveSignature(c.UserContext(), ctl.DB, ctl.store(), landlordID, raw)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Signature updated", dto.ToSignatureResponse(*p))
}
