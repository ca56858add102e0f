package availability

import (
	"time"

	"gatherly-api/core/database"
	"gatherly-api/core/middleware"
	"gatherly-api/modules/availability/controller"
	"gatherly-api/modules/availability/repository"
	"gatherly-api/modules/availability/router"
	"gatherly-api/modules/availability/service"
	eventrepository "gatherly-api/modules/event/repository"
	notifservice "gatherly-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the availability module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, loc *time.Location) {
	repo := repository.NewAvailabilityRepository(db)
	events := eventrepository.NewEventRepository(db)
	publisher := notifservice.NewPublisher()

	svc := service.NewAvailabilityService(repo, events, publisher, loc)
	ctrl := controller.NewAvailabilityController(svc)
	rtr := router.NewAvailabilityRouter(ctrl)

	rtr.Setup(e, mw)
}
