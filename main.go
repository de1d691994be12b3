package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"comquest-service/handlers"
	"comquest-service/middleware"
	"comquest-service/services"
	"comquest-service/storage"
	"comquest-service/utils"
	"comquest-service/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log, err := utils.InitLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := godotenv.Load(); err != nil {
		log.Warn("⚠️ No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // photos only, 20MB is plenty
	})

	app.Use(middleware.ServiceAuthMiddleware(log))
	app.Use(middleware.RequestLogger(log))

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Warn("⚠️ ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(allowedOriginsList, ","),
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	store := storage.NewGormStore(db)
	if err := store.Migrate(); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	if os.Getenv("R2_BUCKET_NAME") != "" {
		if err := utils.InitR2(); err != nil {
			log.Fatal("failed to initialize R2 client", zap.Error(err))
		}
		log.Info("✅ R2 photo uploads enabled")
	} else {
		if err := utils.EnsurePhotoDir(); err != nil {
			log.Fatal("failed to ensure photo dir", zap.Error(err))
		}
		log.Info("📁 Storing proof photos locally", zap.String("dir", utils.PhotoDir))
	}

	progressionService := services.NewProgressionService(store, log)
	if err := progressionService.Load(); err != nil {
		log.Fatal("failed to load progression state", zap.Error(err))
	}
	progressionService.StartSnapshotScheduler()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweeper := workers.NewPhotoSweeper(progressionService, log)
	go workers.PollOrphanedPhotos(ctx, sweeper, 15*time.Minute)

	handlers.SetupSessionRoutes(app, progressionService)
	handlers.SetupDeedRoutes(app, progressionService, log)
	handlers.SetupLeaderboardRoutes(app, progressionService)

	app.Static("/uploads", "./uploads")

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Error("Server error", zap.Error(err))
		}
	}()

	log.Info("✅ ComQuest service running", zap.String("port", port))
	log.Info("✅ Snapshot scheduler running (every 1m)")
	log.Info("✅ Photo sweeper running (every 15m)")

	<-ctx.Done()
	log.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Error("Shutdown error", zap.Error(err))
	}
	if err := progressionService.Snapshot(); err != nil {
		log.Error("Final snapshot failed", zap.Error(err))
	}
}
