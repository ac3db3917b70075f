package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/BoulehmiHoussem/Logient/internal/config"
	"github.com/BoulehmiHoussem/Logient/internal/handlers"
	"github.com/BoulehmiHoussem/Logient/internal/repository"
	"github.com/BoulehmiHoussem/Logient/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server and background workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServer(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer(ctx context.Context) error {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Setup Logger
	var handler slog.Handler
	if cfg.AppEnv == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// 3. Initialize Database
	db, err := repository.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// 4. Run Migrations
	if strings.HasPrefix(cfg.DatabaseURL, "postgres") {
		logger.Info("Running database migrations...")
		if err := repository.RunMigrations(cfg.DatabaseURL, ""); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	// 5. Initialize Services
	geoIPService := services.NewGeoIPService(cfg, logger)
	accessLogger, err := services.NewAccessLogger(cfg.AccessLogPath, geoIPService, logger)
	if err != nil {
		return fmt.Errorf("failed to open access log: %w", err)
	}
	defer accessLogger.Close()

	linkService := services.NewLinkService(db, accessLogger, logger, cfg.MaxLinksPerUser, cfg.MaxLinksTotal)
	reaper := services.NewExpiryReaper(db, logger, time.Duration(cfg.LinkTTLHours)*time.Hour)
	qrService := services.NewQRService()
	rateLimiter := services.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)

	// 6. Initialize Handler
	h := handlers.NewHandler(cfg, logger, db, linkService, qrService)

	// 7. Setup Router
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := h.SetupRouter(rateLimiter, "web/templates/*", "./web/static")

	// 8. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Background Context for workers
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	// Start Background Workers
	go accessLogger.Start(workerCtx)
	go geoIPService.Init()
	go geoIPService.StartUpdater(workerCtx)
	go reaper.Start(workerCtx, 24*time.Hour)
	go rateLimiter.Start(workerCtx, 10*time.Minute, time.Hour)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for context cancellation or server error
	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	workerCancel()
	// Wait a tiny bit for workers
	time.Sleep(100 * time.Millisecond)

	logger.Info("Server exiting")
	return nil
}
