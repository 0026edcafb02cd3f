package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/Kaizen-Gym/Managment-System--Backend/docs"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/config"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/db"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/email"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/gym"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/logger"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/member"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/server"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/sweeper"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/tracing"
)

// @title Kaizen Gym API
// @version 1.0
// @description Membership and billing API for gyms.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init()
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Info("Starting Kaizen Gym backend")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Init(ctx, "kaizen-gym", cfg.OTLPEndpoint)
	if err != nil {
		logger.Fatalf("Failed to init tracing: %v", err)
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	if err := bootstrap(ctx, database, cfg); err != nil {
		logger.Fatalf("Failed to bootstrap admin: %v", err)
	}

	emailService := email.New(email.Config{
		From:     cfg.EmailFrom,
		FromName: cfg.EmailFromName,
		SMTPHost: cfg.SMTPHost,
		SMTPPort: cfg.SMTPPort,
		SMTPUser: cfg.SMTPUser,
		SMTPPass: cfg.SMTPPass,
	}, cfg.RedisAddr)
	defer emailService.Close()
	go emailService.Start(ctx)
	logger.Info("Email service initialized")

	sweep := sweeper.New(
		gym.NewService(gym.NewRepository(database)),
		member.NewRepository(database),
		emailService,
		cfg.SweepSchedule,
	)
	if err := sweep.Start(ctx); err != nil {
		logger.Fatalf("Failed to start expiry sweeper: %v", err)
	}

	srv := server.New(database, cfg, emailService)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}
	sweep.Stop()
	cancel()

	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Errorf("Error flushing traces: %v", err)
	}

	logger.Info("Server stopped")
}
