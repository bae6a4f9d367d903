package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SteampunkGill/readmemory/internal/api"
	"github.com/SteampunkGill/readmemory/internal/config"
	"github.com/SteampunkGill/readmemory/internal/db"
	"github.com/SteampunkGill/readmemory/internal/logger"
	"github.com/SteampunkGill/readmemory/internal/reminder"
	"github.com/SteampunkGill/readmemory/internal/repository/sqlite"
	"github.com/SteampunkGill/readmemory/internal/services"
	"github.com/SteampunkGill/readmemory/internal/worker"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Default().Error("%v", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("ReadMemory Review Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("reminder_worker_count=%d", cfg.ReminderWorkerCount)
	log.Debug("reminder_queue_size=%d", cfg.ReminderQueueSize)
	log.Debug("reminder_scan_minutes=%d", cfg.ReminderScanMinutes)
	log.Debug("session_token_ttl_hours=%d", cfg.SessionTokenTTL)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize repositories
	vocabRepo := sqlite.NewVocabularyRepository(database.DB)
	sessionRepo := sqlite.NewSessionRepository(database.DB)
	dictRepo := sqlite.NewDictionaryRepository(database.DB)
	settingsRepo := sqlite.NewSettingsRepository(database.DB)
	authRepo := sqlite.NewAuthRepository(database.DB)

	// Initialize services
	reviewService := services.NewReviewService(vocabRepo, sessionRepo, dictRepo, nil)
	progressService := services.NewProgressService(vocabRepo, sessionRepo, settingsRepo, nil)
	settingsService := services.NewSettingsService(settingsRepo, nil)

	// Initialize reminder pipeline
	reminderPool := worker.NewPool(cfg.ReminderWorkerCount, cfg.ReminderQueueSize)
	reminderScheduler := reminder.NewScheduler(settingsRepo, vocabRepo, reminderPool, cfg.ReminderScanMinutes, nil)

	srv := &api.Server{
		ReviewService:   reviewService,
		ProgressService: progressService,
		SettingsService: settingsService,
		AuthRepo:        authRepo,
		DB:              database.DB,
	}

	ctx, cancel := context.WithCancel(context.Background())
	reminderPool.Start(ctx)
	if err := reminderScheduler.Start(); err != nil {
		log.Error("failed to start reminder scheduler: %v", err)
		os.Exit(1)
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping reminder scheduler")
	reminderScheduler.Stop()

	log.Debug("stopping worker context")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping reminder pool")
	reminderPool.Stop()

	log.Info("===========================================")
	log.Info("ReadMemory Review Server Stopped")
	log.Info("===========================================")
}
