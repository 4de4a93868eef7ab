package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"taskpro-api/internal/client"
	"taskpro-api/internal/config"
	"taskpro-api/internal/database"
	"taskpro-api/internal/job"
	"taskpro-api/internal/metrics"
	"taskpro-api/internal/repository"
	"taskpro-api/internal/router"
	"taskpro-api/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Task Pro API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("database_path", cfg.Database.Path),
	)

	// Initialize metrics
	m := metrics.New()

	// Open the durable key-value store
	db, err := database.New(database.Config{Path: cfg.Database.Path})
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}
	database.RegisterMetricsCallbacks(db, m)
	logger.Info("Database ready")

	// Load the app document and position the store on it
	gateway := store.NewGateway(repository.NewDocumentRepository(db), logger)
	st, err := store.New(context.Background(), gateway, logger)
	if err != nil {
		logger.Fatal("Failed to load app document", zap.Error(err))
	}
	m.SetTasksTotal(len(st.State().Tasks))
	logger.Info("App document loaded",
		zap.Int("tasks", len(st.State().Tasks)),
		zap.Int("users", len(st.State().Users)),
	)

	// External clients; an empty URL leaves the feature disabled
	notifier := client.NewNotifierClient(cfg.Notifier.URL, cfg.Notifier.Timeout.Std(), logger, m)
	textGen := client.NewTextGenClient(cfg.TextGen.URL, cfg.TextGen.APIKey, cfg.TextGen.Model, cfg.TextGen.Timeout.Std(), logger, m)
	if !notifier.Enabled() {
		logger.Warn("Notifier URL not configured, task reminders disabled")
	}
	if !textGen.Enabled() {
		logger.Warn("Text generator URL not configured, chat auto-replies disabled")
	}

	// Reminder sweep on the configured cron schedule
	scheduler := cron.New()
	reminderJob := job.NewReminderJob(st, notifier, m, logger)
	if _, err := scheduler.AddJob(cfg.Reminder.Schedule, reminderJob); err != nil {
		logger.Fatal("Failed to schedule reminder job", zap.Error(err))
	}
	scheduler.Start()
	logger.Info("Reminder job scheduled", zap.String("schedule", cfg.Reminder.Schedule))

	// Setup router with all dependencies
	r := router.Setup(cfg, db, st, gateway, notifier, textGen, m, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}

	// Start server in goroutine
	go func() {
		logger.Info("Task Pro API started successfully", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	cronCtx := scheduler.Stop()
	<-cronCtx.Done()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
