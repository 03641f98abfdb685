package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"go.uber.org/zap"

	"rentrix_backend/internals/configs"
	database "rentrix_backend/internals/databases"
	receiptService "rentrix_backend/internals/features/finance/receipts/service"
	roomService "rentrix_backend/internals/features/rooms/rooms/service"
	scheduler "rentrix_backend/internals/features/users/auth/scheduler"
	"rentrix_backend/internals/helpers/storage"
	middlewares "rentrix_backend/internals/middlewares"
	routes "rentrix_backend/internals/route"
)

func main() {
	configs.LoadEnv()
	logger := configs.InitLogger()
	defer func() { _ = logger.Sync() }()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		BodyLimit:               4 * 1024 * 1024,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// Request-ID + request timeout
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		ctx, cancel := context.WithTimeout(c.Context(), 45*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})

	middlewares.SetupMiddlewares(app)

	// DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	if configs.GetEnv("AUTO_MIGRATE", "true") == "true" {
		if err := database.Migrate(database.DB); err != nil {
			logger.Fatal("migration failed", zap.Error(err))
		}
	}
	database.WarmUpQueries()

	// room read cache (noop without REDIS_ADDR)
	if err := roomService.InitRoomCache(context.Background(),
		configs.GetEnv("REDIS_ADDR"), configs.GetEnv("REDIS_PASSWORD"), configs.GetEnvInt("REDIS_DB", 0), logger,
	); err != nil {
		logger.Warn("redis unavailable, room cache disabled", zap.Error(err))
	}

	store, err := storage.FromEnv()
	if err != nil {
		logger.Fatal("storage init failed", zap.Error(err))
	}
	storage.Default = store

	cleanup, err := scheduler.StartTokenCleanupScheduler(database.DB)
	if err != nil {
		logger.Fatal("scheduler init failed", zap.Error(err))
	}

	routes.SetupRoutes(app, database.DB)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 60 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")
	go func() {
		logger.Info("listening", zap.String("port", port))
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	<-cleanup.Stop().Done()
	if c, ok := receiptService.Renderer.(io.Closer); ok {
		_ = c.Close()
	}
	database.Close()
	logger.Info("bye")
}
