package router

import (
	"gatherly-api/core/middleware"
	"gatherly-api/modules/user/controller"

	"github.com/labstack/echo/v4"
)

// UserRouter handles user routes
type UserRouter struct {
	UserController *controller.UserController
}

// NewUserRouter creates a new router
func NewUserRouter(userController *controller.UserController) *UserRouter {
	return &UserRouter{
		UserController: userController,
	}
}

// Setup registers user routes
func (r *UserRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	userRoutes := v1.Group("/users", mw.IdentityMiddleware())

	userRoutes.GET("", r.UserController.SearchUsers)
	userRoutes.GET("/me", r.UserController.GetProfile)
	userRoutes.GET("/:id", r.UserController.GetUser)
}
