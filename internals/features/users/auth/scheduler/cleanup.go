package scheduler

import (
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"rentrix_backend/internals/configs"
	authRepo "rentrix_backend/internals/features/users/auth/repository"
)

const defaultCleanupSpec = "@every 24h"

// StartTokenCleanupScheduler purges expired blacklist entries and refresh tokens.
// The schedule comes from TOKEN_CLEANUP_CRON; the caller stops the returned cron on shutdown.
func StartTokenCleanupScheduler(db *gorm.DB) (*cron.Cron, error) {
	spec := strings.TrimSpace(configs.GetEnv("TOKEN_CLEANUP_CRON"))
	if spec == "" {
		spec = defaultCleanupSpec
	}

	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(spec, func() { RunTokenCleanup(db) }); err != nil {
		return nil, err
	}
	c.Start()
	configs.Log.Info("token cleanup scheduled", zap.String("spec", spec))
	return c, nil
}

// RunTokenCleanup is one cleanup pass.
func RunTokenCleanup(db *gorm.DB) {
	now := time.Now().UTC()

	n, err := authRepo.CleanupExpiredBlacklist(db, now)
	if err != nil {
		configs.Log.Error("cleanup token_blacklist failed", zap.Error(err))
	} else if n > 0 {
		configs.Log.Info("cleanup token_blacklist", zap.Int64("deleted", n))
	}

	n, err = authRepo.CleanupExpiredRefreshTokens(db, now)
	if err != nil {
		configs.Log.Error("cleanup refresh_tokens failed", zap.Error(err))
	} else if n > 0 {
		configs.Log.Info("cleanup refresh_tokens", zap.Int64("deleted", n))
	}
}
