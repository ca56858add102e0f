package notification

import (
	"gatherly-api/core/database"
	"gatherly-api/core/middleware"
	"gatherly-api/modules/notification/controller"
	"gatherly-api/modules/notification/repository"
	"gatherly-api/modules/notification/router"
	"gatherly-api/modules/notification/service"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Init initializes the notification module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)
	rtr := router.NewNotificationRouter(ctrl)

	rtr.Setup(e, mw)
}

// RegisterWorker attaches the notification task handlers to the worker mux.
func RegisterWorker(mux *asynq.ServeMux, db database.Database) {
	repo := repository.NewNotificationRepository(db)
	worker := service.NewWorker(repo)
	worker.Register(mux)
}
