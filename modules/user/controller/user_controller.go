package controller

import (
	"gatherly-api/core/controller"
	"gatherly-api/core/errors"
	"gatherly-api/core/middleware"
	"gatherly-api/modules/user/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserController handles user HTTP requests
type UserController struct {
	controller.BaseController
	UserService service.UserServiceInterface
}

// NewUserController creates a new controller
func NewUserController(svc service.UserServiceInterface) *UserController {
	return &UserController{
		BaseController: controller.NewBaseController(),
		UserService:    svc,
	}
}

// GetProfile handles GET /users/me
func (c *UserController) GetProfile(ctx echo.Context) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.UserService.GetProfile(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Profile retrieved successfully")
}

// GetUser handles GET /users/:id
func (c *UserController) GetUser(ctx echo.Context) error {
	if _, ok := middleware.UserIDFromContext(ctx); !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid user id")
	}

	result, appErr := c.UserService.GetUser(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "User retrieved successfully")
}

// SearchUsers handles GET /users?search=
func (c *UserController) SearchUsers(ctx echo.Context) error {
	if _, ok := middleware.UserIDFromContext(ctx); !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.UserService.SearchUsers(ctx.Request().Context(), ctx.QueryParam("search"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Users retrieved successfully")
}
