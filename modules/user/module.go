package user

import (
	"gatherly-api/core/database"
	"gatherly-api/core/middleware"
	"gatherly-api/modules/user/controller"
	"gatherly-api/modules/user/repository"
	"gatherly-api/modules/user/router"
	"gatherly-api/modules/user/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the user module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewUserRepository(db)
	svc := service.NewUserService(repo, service.NewS3AvatarResolver())
	ctrl := controller.NewUserController(svc)
	rtr := router.NewUserRouter(ctrl)

	rtr.Setup(e, mw)
}
