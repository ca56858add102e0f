package invitation

import (
	"gatherly-api/core/database"
	"gatherly-api/core/middleware"
	eventrepository "gatherly-api/modules/event/repository"
	"gatherly-api/modules/invitation/controller"
	"gatherly-api/modules/invitation/repository"
	"gatherly-api/modules/invitation/router"
	"gatherly-api/modules/invitation/service"
	notifservice "gatherly-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the invitation module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewInvitationRepository(db)
	events := eventrepository.NewEventRepository(db)
	svc := service.NewInvitationService(repo, events, service.NewRedisTokenStore(), notifservice.NewPublisher())
	ctrl := controller.NewInvitationController(svc)
	rtr := router.NewInvitationRouter(ctrl)

	rtr.Setup(e, mw)
}
