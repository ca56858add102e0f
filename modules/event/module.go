package event

import (
	"gatherly-api/core/database"
	"gatherly-api/core/middleware"
	"gatherly-api/modules/event/controller"
	"gatherly-api/modules/event/repository"
	"gatherly-api/modules/event/router"
	"gatherly-api/modules/event/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the event module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo)
	ctrl := controller.NewEventController(svc)
	rtr := router.NewEventRouter(ctrl)

	rtr.Setup(e, mw)
}
