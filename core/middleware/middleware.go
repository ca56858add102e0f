package middleware

import (
	"net/http"
	"time"

	"gatherly-api/core/constants"
	"gatherly-api/core/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

// IdentityMiddleware resolves the acting user from the X-User-ID header.
// Authentication happens upstream (API gateway); handlers only need the id.
func (m *Middleware) IdentityMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(constants.HeaderUserID)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing user identity")
			}

			userID, err := uuid.Parse(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
			}

			c.Set(constants.ContextUserID, userID)
			return next(c)
		}
	}
}

// RequestLogger logs method, path, status and latency for every request.
func (m *Middleware) RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.Info("Request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
			)

			return err
		}
	}
}

// UserIDFromContext reads the user id stored by IdentityMiddleware.
func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(constants.ContextUserID).(uuid.UUID)
	return userID, ok
}
