package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
	_ "time/tzdata" // Zone data for minimal images without /usr/share/zoneinfo

	// Configuration
	"remindme/internal/config"

	// Application Layer
	appService "remindme/internal/application/service"

	// Domain Layer
	"remindme/internal/domain/timeofday"

	// Infrastructure Layer
	"remindme/internal/infrastructure/database/sqlite"
	lineClient "remindme/internal/infrastructure/line"
	"remindme/internal/infrastructure/scheduler"
	telegramClient "remindme/internal/infrastructure/telegram"

	// Interfaces Layer
	"remindme/internal/interfaces/api/handler"
	"remindme/internal/interfaces/api/router"

	// Packages
	appLogger "remindme/internal/pkg/logger"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file
	"gorm.io/gorm"
)

func gracefulShutdown(ctx context.Context, apiServer *http.Server, schedulerService appService.SchedulerService, db *gorm.DB, appLog appLogger.Logger, done chan bool) {
	// Listen for the interrupt signal.
	<-ctx.Done()

	appLog.Info("Shutting down gracefully, press Ctrl+C again to force")

	// Stop the scheduler first
	appLog.Info("Stopping scheduler...")
	schedulerService.Stop()
	appLog.Info("Scheduler stopped.")

	// Shutdown HTTP server
	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Server forced to shutdown", err)
	}

	// Close database connection
	appLog.Info("Closing database connection...")
	if err := sqlite.Close(db); err != nil {
		appLog.Error("Error closing database", err)
	} else {
		appLog.Info("Database connection closed.")
	}

	appLog.Info("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		appLogger.New(appLogger.LevelInfo).Error("Failed to load configuration", err)
		os.Exit(1)
	}
	appLog := appLogger.New(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		appLog.Error("Invalid configuration", err)
		os.Exit(1)
	}
	appLog.Info(fmt.Sprintf("Configuration loaded (transport: %s, timezone: %s).", cfg.Transport, cfg.Timezone))

	loc, err := timeofday.LoadLocation(cfg.Timezone)
	if err != nil {
		appLog.Error("Failed to load timezone", err)
		os.Exit(1)
	}
	resolver := timeofday.NewResolver(loc)

	// --- Infrastructure ---
	db, err := sqlite.Open(cfg.DatabasePath, appLog, cfg.Debug())
	if err != nil {
		appLog.Error("Failed to open database", err)
		os.Exit(1)
	}
	userRepo := sqlite.NewUserRepository(db)
	reminderRepo := sqlite.NewReminderRepository(db)
	appLog.Info("Database and repositories initialized.")

	cronScheduler := scheduler.NewScheduler(loc, appLog)

	// --- Transport ---
	// The transport client is also the Notifier used by the scheduler.
	var (
		notifier appService.Notifier
		line     *lineClient.Client
		telegram *telegramClient.Client
	)
	switch cfg.Transport {
	case config.TransportLine:
		line, err = lineClient.NewClient(cfg.ChannelSecret, cfg.ChannelAccessToken, appLog)
		notifier = line
	default:
		telegram, err = telegramClient.NewClient(cfg.TelegramToken, appLog)
		notifier = telegram
	}
	if err != nil {
		appLog.Error("Failed to create transport client", err)
		os.Exit(1)
	}

	// --- Application Services ---
	userSvc := appService.NewUserService(userRepo, reminderRepo, appLog)
	reminderSvc := appService.NewReminderService(reminderRepo, resolver, appLog)
	schedulerSvc := appService.NewSchedulerService(cronScheduler, reminderRepo, notifier, resolver, appLog)
	appLog.Info("Application services initialized.")

	// --- Handlers ---
	commandHandler := handler.NewCommandHandler(userSvc, reminderSvc, resolver, cfg.BotName, appLog)
	routerCfg := &router.Config{
		Resolver: resolver,
		Logger:   appLog,
	}
	if line != nil {
		routerCfg.LineHandler = handler.NewLineHandler(line, commandHandler, userSvc, appLog)
	}
	if telegram != nil {
		telegramHandler := handler.NewTelegramHandler(telegram, commandHandler, userSvc, appLog)
		telegram.SetUpdateHandler(telegramHandler.HandleUpdate)
	}
	appLog.Info("Handlers initialized.")

	// --- Scheduler ---
	if err := schedulerSvc.Start(); err != nil {
		appLog.Error("Failed to start reminder scheduler", err)
		os.Exit(1)
	}

	// --- HTTP Server ---
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router.NewRouter(routerCfg),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Telegram long polling ---
	var polling sync.WaitGroup
	if telegram != nil {
		polling.Add(1)
		go func() {
			defer polling.Done()
			telegram.Start(ctx)
		}()
	}

	// --- Start Server & Shutdown Handling ---
	done := make(chan bool, 1)
	go gracefulShutdown(ctx, apiServer, schedulerSvc, db, appLog, done)

	appLog.Info(fmt.Sprintf("Server starting on port %d", cfg.Port))
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLog.Error("HTTP server ListenAndServe error", err)
		stop()
	}

	// Wait for graceful shutdown signal
	<-done
	polling.Wait()
	appLog.Info("Graceful shutdown complete.")
}
