package router

import (
	"gatherly-api/core/middleware"
	"gatherly-api/modules/invitation/controller"

	"github.com/labstack/echo/v4"
)

// InvitationRouter handles invitation routes
type InvitationRouter struct {
	InvitationController *controller.InvitationController
}

// NewInvitationRouter creates a new router
func NewInvitationRouter(invitationController *controller.InvitationController) *InvitationRouter {
	return &InvitationRouter{
		InvitationController: invitationController,
	}
}

// Setup registers invitation routes
func (r *InvitationRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	v1.POST("/events/:id/invitations", r.InvitationController.Invite, mw.IdentityMiddleware())
	v1.POST("/invitations/:token/accept", r.InvitationController.Accept, mw.IdentityMiddleware())
}
