package middleware

import (
	"net/http"

	"catalog-service/internal/handler"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware resolves the caller once per request and stashes it on the
// context. Unauthenticated requests are rejected before any handler runs; no
// handler ever sees a request without an owner identity.
func AuthMiddleware(authHandler *handler.AuthHandler) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := authHandler.GetCurrentUser(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			handler.SetCurrentUser(c, user)
			return next(c)
		}
	}
}
