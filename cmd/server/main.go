package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LeandroManna/gimnasio-reservas/internal/app"
	"github.com/LeandroManna/gimnasio-reservas/internal/config"
	"github.com/LeandroManna/gimnasio-reservas/internal/controller"
	"github.com/LeandroManna/gimnasio-reservas/internal/notify"
	"github.com/LeandroManna/gimnasio-reservas/internal/repository"
	"github.com/LeandroManna/gimnasio-reservas/internal/service"
	"github.com/LeandroManna/gimnasio-reservas/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	disciplineRepo := repository.NewDisciplineRepository(pool)
	slotRepo := repository.NewSlotRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)

	// Receipts live on local disk unless a MinIO endpoint is configured.
	var receipts service.ReceiptStore
	uploadsDir := ""
	if cfg.MinIOEndpoint != "" {
		receipts, err = storage.NewMinioStore(ctx, cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL)
		if err != nil {
			logger.Fatal("Failed to create minio store", zap.Error(err))
		}
	} else {
		local, err := storage.NewLocalStore(cfg.UploadDir)
		if err != nil {
			logger.Fatal("Failed to create upload dir", zap.Error(err))
		}
		receipts = local
		uploadsDir = local.Dir()
	}

	var notifier service.Notifier
	if cfg.TelegramToken != "" && cfg.TelegramAdminChatID != 0 {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramAdminChatID, logger)
		if err != nil {
			logger.Fatal("Failed to create telegram notifier", zap.Error(err))
		}
		notifier = tg
	}

	scheduleService := service.NewScheduleService(disciplineRepo, slotRepo, reservationRepo, logger)
	availabilityService := service.NewAvailabilityService(slotRepo, disciplineRepo, reservationRepo, receipts, notifier, logger)
	authService := service.NewAuthService(adminRepo, cfg.SessionTTL, logger)

	ctrl := controller.New(scheduleService, availabilityService, authService, uploadsDir, logger)
	server := app.NewServer(cfg, ctrl, logger)

	go func() {
		logger.Info("Starting server",
			zap.String("environment", cfg.Environment),
			zap.String("port", cfg.ServerPort),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
