package router

import (
	"gatherly-api/core/middleware"
	"gatherly-api/modules/availability/controller"

	"github.com/labstack/echo/v4"
)

// AvailabilityRouter handles availability routes
type AvailabilityRouter struct {
	AvailabilityController *controller.AvailabilityController
}

// NewAvailabilityRouter creates a new router
func NewAvailabilityRouter(availabilityController *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{
		AvailabilityController: availabilityController,
	}
}

// Setup registers availability routes
func (r *AvailabilityRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	eventRoutes := v1.Group("/events", mw.IdentityMiddleware())
	eventRoutes.GET("/:id/calendar", r.AvailabilityController.GetCalendar)
	eventRoutes.POST("/:id/availability", r.AvailabilityController.AddAvailability)
	eventRoutes.PUT("/:id/availability/location", r.AvailabilityController.SetLocation)
	eventRoutes.DELETE("/:id/availability", r.AvailabilityController.RemoveAvailability)

	dashboardRoutes := v1.Group("/dashboard", mw.IdentityMiddleware())
	dashboardRoutes.GET("/next-availabilities", r.AvailabilityController.NextAvailabilities)
}
