package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bandos-api/core/cache"
	"bandos-api/core/config"
	"bandos-api/core/database"
	"bandos-api/core/logger"
	appMiddleware "bandos-api/core/middleware"
	"bandos-api/core/queue"
	"bandos-api/core/storage"
	"bandos-api/migration"
	"bandos-api/modules/auth"
	"bandos-api/modules/band"
	"bandos-api/modules/event"
	"bandos-api/modules/invitation"
	invitationWorker "bandos-api/modules/invitation/worker"
	"bandos-api/modules/notification"
	"bandos-api/modules/realtime"
	realtimeController "bandos-api/modules/realtime/controller"
	realtimeRouter "bandos-api/modules/realtime/router"
	bandRepository "bandos-api/modules/band/repository"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

// Run wires the whole application together and blocks until shutdown.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Server.LogLevel)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	if err := migration.Run(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	redisCache, err := cache.NewCache(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer redisCache.Close()

	queueClient := queue.NewClient(cfg.Redis)
	defer queueClient.Close()

	uploader := storage.NewUploader(cfg.S3)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	mw := appMiddleware.NewMiddleware(redisCache)
	hub := realtime.NewHub()
	defer hub.Close()

	api := e.Group("/api/v1")

	notificationService := notification.Init(api, db, mw)
	authRepo := auth.Init(api, db, mw, redisCache, uploader)
	band.Init(api, db, mw, hub)
	invitation.Init(api, db, mw, authRepo, notificationService, queueClient, hub)
	event.Init(api, db, mw, hub)

	wsCtrl := realtimeController.NewRealtimeController(hub, bandRepository.NewBandRepository(db))
	realtimeRouter.NewRealtimeRouter(wsCtrl).Register(api, mw)

	// Background worker for invitation email delivery.
	worker := queue.NewServer(cfg.Redis)
	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TypeInvitationEmail, invitationWorker.HandleInvitationEmailTask)
	go func() {
		if err := worker.Run(mux); err != nil {
			logger.Error("Server:Run:Worker:Error:", err)
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Run:Start:Error:", err)
		}
	}()
	logger.Info("Server:Run:Started", "port", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Server:Run:ShuttingDown")

	worker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}
