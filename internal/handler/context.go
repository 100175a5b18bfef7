package handler

import (
	"errors"

	"catalog-service/internal/apperr"
	"catalog-service/internal/model"

	"github.com/labstack/echo/v4"
)

const currentUserKey = "currentUser"

// SetCurrentUser stashes the resolved caller on the request context. The auth
// middleware calls this once per request.
func SetCurrentUser(c echo.Context, user *model.User) {
	c.Set(currentUserKey, user)
}

// CurrentUser returns the authenticated caller. Handlers behind the auth
// middleware can rely on it being present; a missing user is an internal
// wiring fault, not a client error.
func CurrentUser(c echo.Context) (*model.User, error) {
	user, ok := c.Get(currentUserKey).(*model.User)
	if !ok || user == nil {
		return nil, apperr.Internal(errors.New("no authenticated user on context"))
	}
	return user, nil
}
