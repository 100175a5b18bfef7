package handler

import (
	"fmt"
	"net/http"

	"catalog-service/internal/config"
	"catalog-service/internal/model"
	"catalog-service/internal/service"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
)

type AuthHandler struct {
	authService service.AuthService
	store       sessions.Store
}

func NewAuthHandler(authService service.AuthService, cfg *config.Config) *AuthHandler {
	store := NewSessionStore([]byte(cfg.SessionSecret))
	gothic.Store = store

	goth.UseProviders(
		google.New(
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.BaseURL+"/auth/google/callback",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		),
	)

	return &AuthHandler{
		authService: authService,
		store:       store,
	}
}

// BeginAuthHandler initiates the OAuth flow
func (h *AuthHandler) BeginAuthHandler(c echo.Context) error {
	provider := c.Param("provider")
	if provider != "google" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid provider")
	}

	// Set provider in the request URL so Goth can recognize it
	req := c.Request()
	q := req.URL.Query()
	q.Set("provider", "google")
	req.URL.RawQuery = q.Encode()

	gothic.BeginAuthHandler(c.Response(), req)
	return nil
}

// CallbackHandler handles the OAuth callback
func (h *AuthHandler) CallbackHandler(c echo.Context) error {
	req := c.Request()
	q := req.URL.Query()
	q.Set("provider", "google")
	req.URL.RawQuery = q.Encode()

	gothUser, err := gothic.CompleteUserAuth(c.Response(), req)
	if err != nil {
		return fmt.Errorf("completing auth: %w", err)
	}

	user, err := h.authService.GetOrCreateUser(
		c.Request().Context(),
		gothUser.Provider+"_"+gothUser.UserID,
		gothUser.Email,
		gothUser.Name,
	)
	if err != nil {
		return err
	}

	session, _ := h.store.Get(req, sessionName)
	session.Values["user_id"] = user.ID
	if err := session.Save(req, c.Response()); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	return c.Redirect(http.StatusTemporaryRedirect, "/api/categories")
}

// LogoutHandler clears the session
func (h *AuthHandler) LogoutHandler(c echo.Context) error {
	req := c.Request()
	q := req.URL.Query()
	q.Set("provider", "google")
	req.URL.RawQuery = q.Encode()

	_ = gothic.Logout(c.Response(), req)

	session, _ := h.store.Get(req, sessionName)
	session.Options.MaxAge = -1
	_ = session.Save(req, c.Response())

	return c.NoContent(http.StatusNoContent)
}

// GetCurrentUser resolves the authenticated user from the session cookie.
func (h *AuthHandler) GetCurrentUser(c echo.Context) (*model.User, error) {
	session, err := h.store.Get(c.Request(), sessionName)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	userID, ok := session.Values["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("user not authenticated")
	}

	user, err := h.authService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}
