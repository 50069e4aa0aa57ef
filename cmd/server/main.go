package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"cotton-backend/internal/auth"
	"cotton-backend/internal/backup"
	"cotton-backend/internal/config"
	"cotton-backend/internal/db"
	"cotton-backend/internal/export"
	"cotton-backend/internal/handlers"
	"cotton-backend/internal/health"
	h "cotton-backend/internal/http"
	"cotton-backend/internal/middleware"
	"cotton-backend/internal/repositories"
	"cotton-backend/internal/services"
)

func main() {
	port := flag.Int("port", 0, "override the configured HTTP port")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	if err := db.InitSchema(database); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	log.Printf("Database ready at %s", cfg.Database.Path)

	// Repositories
	userRepo := repositories.NewUserRepository(database)
	ginnerRepo := repositories.NewGinnerRepository(database)
	millRepo := repositories.NewMillRepository(database)
	contractRepo := repositories.NewContractRepository(database)
	deliveryRepo := repositories.NewDeliveryRepository(database)
	paymentRepo := repositories.NewPaymentRepository(database)
	ledgerRepo := repositories.NewLedgerRepository(database)

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	userService := services.NewUserService(userRepo, jwtManager)
	contractService := services.NewContractService(contractRepo, deliveryRepo, paymentRepo, ledgerRepo, ginnerRepo, millRepo)
	dashboardService := services.NewDashboardService(contractRepo, deliveryRepo, paymentRepo, ginnerRepo, millRepo)
	notificationService := services.NewNotificationService(
		contractRepo, ginnerRepo, deliveryRepo, paymentRepo,
		time.Duration(cfg.Notifications.IntervalMinutes)*time.Minute,
	)

	backupService := backup.NewService(
		cfg.Backup.Dir, cfg.Backup.Retention,
		ginnerRepo, millRepo, contractRepo, deliveryRepo, paymentRepo, ledgerRepo,
	)
	if cfg.Backup.R2.Enabled {
		uploader, err := backup.NewR2Uploader(context.Background(), cfg)
		if err != nil {
			log.Printf("[R2 Backup] Disabled, client setup failed: %v", err)
		} else {
			backupService.Uploader = uploader
			log.Printf("[R2 Backup] Uploading full backups to bucket %s", cfg.Backup.R2.Bucket)
		}
	}

	exportService := export.NewService(
		cfg.Export.Dir,
		ginnerRepo, millRepo, contractRepo, deliveryRepo, paymentRepo, ledgerRepo,
	)

	healthChecker := health.NewHealthChecker(database, filepath.Dir(cfg.Database.Path))

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService, userRepo)
	ginnerHandler := handlers.NewGinnerHandler(ginnerRepo)
	millHandler := handlers.NewMillHandler(millRepo)
	contractHandler := handlers.NewContractHandler(contractService)
	deliveryHandler := handlers.NewDeliveryHandler(deliveryRepo)
	paymentHandler := handlers.NewPaymentHandler(paymentRepo)
	ledgerHandler := handlers.NewLedgerHandler(ledgerRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	alertHandler := handlers.NewAlertHandler(notificationService)
	backupHandler := handlers.NewBackupHandler(backupService)
	exportHandler := handlers.NewExportHandler(exportService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := h.NewRouter(
		authHandler,
		userHandler,
		ginnerHandler,
		millHandler,
		contractHandler,
		deliveryHandler,
		paymentHandler,
		ledgerHandler,
		dashboardHandler,
		alertHandler,
		backupHandler,
		exportHandler,
		healthHandler,
		authMiddleware,
	)

	notificationService.Start()
	defer notificationService.Stop()

	handler := middleware.PanicRecovery(
		middleware.MetricsMiddleware(
			middleware.NewCORS(cfg)(router),
		),
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Cotton brokerage server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
