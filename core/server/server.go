package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gatherly-api/core/cache"
	"gatherly-api/core/config"
	"gatherly-api/core/constants"
	"gatherly-api/core/database"
	"gatherly-api/core/logger"
	"gatherly-api/core/middleware"
	"gatherly-api/core/queue"
	"gatherly-api/modules/availability"
	"gatherly-api/modules/event"
	"gatherly-api/modules/invitation"
	"gatherly-api/modules/notification"
	"gatherly-api/modules/user"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Run wires everything together and blocks until shutdown.
func Run() error {
	config.Load()
	logger.Init(config.Get("LOG_LEVEL"))

	loc, err := time.LoadLocation(config.Get("APP_TIMEZONE"))
	if err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     config.Get("DB_HOST"),
		Port:     config.GetInt("DB_PORT"),
		User:     config.Get("DB_USER"),
		Password: config.Get("DB_PASSWORD"),
		DBName:   config.Get("DB_NAME"),
	})
	if err != nil {
		return err
	}

	redisCfg := cache.RedisConfig{
		Addr:     config.Get("REDIS_ADDR"),
		Password: config.Get("REDIS_PASSWORD"),
		DB:       config.GetInt("REDIS_DB"),
	}
	if err := cache.InitRedis(redisCfg); err != nil {
		return err
	}

	queueCfg := queue.RedisConfig{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	}
	queue.InitClient(queueCfg)
	defer queue.CloseClient()

	e := echo.New()
	e.HideBanner = true

	mw := middleware.NewMiddleware()
	e.Use(echomw.Recover())
	e.Use(mw.RequestLogger())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	event.Init(e, db, mw)
	availability.Init(e, db, mw, loc)
	invitation.Init(e, db, mw)
	notification.Init(e, db, mw)
	user.Init(e, db, mw)

	mux := asynq.NewServeMux()
	notification.RegisterWorker(mux, db)

	worker := queue.NewServer(queueCfg)
	go func() {
		if err := worker.Run(mux); err != nil {
			logger.Error("Worker stopped", "error", err)
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%d", config.GetInt("SERVER_PORT"))
		if err := e.Start(addr); err != nil {
			logger.Info("Server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	worker.Shutdown()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
		return err
	}

	logger.Info("Server exited")
	return nil
}
