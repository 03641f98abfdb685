package service

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rentrix_backend/internals/configs"
	userModel "rentrix_backend/internals/features/users/user/model"
	"rentrix_backend/internals/helpers/storage"
)

const signatureFolder = "signatures"

var ErrSignatureImage = fiber.NewError(fiber.StatusBadRequest, "Signature must be a PNG, JPEG or WebP image")

// SaveSignature normalizes the image to webp, stores it and points the landlord profile at it.
// Earlier signature objects stay in storage: receipts issued before keep referencing them.
func SaveSignature(ctx context.Context, db *gorm.DB, store storage.Store, landlordID uuid.UUID, raw []byte) (*userModel.LandlordProfileModel, error) {
	if store == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "File storage is not configured")
	}
	webpBytes, err := storage.ConvertToWebP(raw, storage.SignatureWebP)
	if err != nil {
		configs.Log.Info("signature rejected", zap.Error(err))
		return nil, ErrSignatureImage
	}

	key := storage.BuildKey(signatureFolder, ".webp")
	if err := store.Put(ctx, key, bytes.NewReader(webpBytes), "image/webp"); err != nil {
		return nil, err
	}
	url := store.PublicURL(key)

	p := userModel.LandlordProfileModel{
		LandlordProfileUserID:       landlordID,
		LandlordProfileSignatureKey: &key,
		LandlordProfileSignatureURL: &url,
	}
	err = db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "landlord_profile_user_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"landlord_profile_signature_key": key,
			"landlord_profile_signature_url": url,
			"landlord_profile_updated_at":    time.Now(),
		}),
	}).Create(&p).Error
	if err != nil {
		// the profile still points at the previous object, drop the orphan
		if derr := store.Delete(ctx, key); derr != nil {
			configs.Log.Warn("orphan signature cleanup failed", zap.String("key", key), zap.Error(derr))
		}
		return nil, err
	}
	return GetLandlordProfile(db.WithContext(ctx), landlordID)
}

// GetLandlordProfile returns the profile or an empty one when the landlord never uploaded.
func GetLandlordProfile(tx *gorm.DB, landlordID uuid.UUID) (*userModel.LandlordProfileModel, error) {
	var p userModel.LandlordProfileModel
	err := tx.Where("landlord_profile_user_id = ?", landlordID).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &userModel.LandlordProfileModel{LandlordProfileUserID: landlordID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
