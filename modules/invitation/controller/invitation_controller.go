package controller

import (
	"gatherly-api/core/controller"
	"gatherly-api/core/errors"
	"gatherly-api/core/middleware"
	"gatherly-api/modules/invitation/dto"
	"gatherly-api/modules/invitation/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// InvitationController handles invitation HTTP requests
type InvitationController struct {
	controller.BaseController
	InvitationService service.InvitationServiceInterface
}

// NewInvitationController creates a new controller
func NewInvitationController(svc service.InvitationServiceInterface) *InvitationController {
	return &InvitationController{
		BaseController:    controller.NewBaseController(),
		InvitationService: svc,
	}
}

// Invite handles POST /events/:id/invitations
func (c *InvitationController) Invite(ctx echo.Context) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	var req dto.CreateInvitationRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.InvitationService.Invite(ctx.Request().Context(), eventID, userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Invitation sent successfully")
}

// Accept handles POST /invitations/:token/accept
func (c *InvitationController) Accept(ctx echo.Context) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.InvitationService.Accept(ctx.Request().Context(), ctx.Param("token"), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Invitation accepted successfully")
}
