package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"storeapi/internal/events"
	"storeapi/internal/logging"
	authmw "storeapi/internal/middleware/auth"
	"storeapi/internal/service"
	"storeapi/internal/transport"
)

type AuthHandler struct {
	Svc      *service.AuthService
	Producer *events.Producer
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.UserRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "bad_request", "invalid body")
	}
	if err := req.Validate(); err != nil {
		return errorJSON(c, http.StatusUnprocessableEntity, "validation", err.Error())
	}

	user, err := h.Svc.Register(ctx, *req.Username, *req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			return errorJSON(c, http.StatusConflict, "conflict", "a user with that username already exists")
		}
		l.Error("register failed", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "storage_error", "an error occurred while creating the user")
	}

	publish(c, h.Producer, events.UserTopic, strconv.Itoa(user.ID), map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})

	return c.JSON(http.StatusCreated, transport.MessageResponse{Message: "user created successfully"})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.UserRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "bad_request", "invalid body")
	}
	if err := req.Validate(); err != nil {
		return errorJSON(c, http.StatusUnprocessableEntity, "validation", err.Error())
	}

	pair, user, err := h.Svc.Login(ctx, *req.Username, *req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return errorJSON(c, http.StatusUnauthorized, "invalid_credentials", "incorrect username or password")
		}
		l.Error("login failed", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "storage_error", "an error occurred during login")
	}

	publish(c, h.Producer, events.UserTopic, strconv.Itoa(user.ID), map[string]any{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"username": user.Username,
	})

	return c.JSON(http.StatusOK, transport.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh exchanges the presented refresh token for a non-fresh access token.
// The used refresh token is revoked in the same call.
func (h *AuthHandler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_refresh")

	raw, ok := authmw.BearerToken(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "authorization_required", "missing refresh token")
	}

	access, err := h.Svc.Refresh(ctx, raw)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			return errorJSON(c, http.StatusUnauthorized, "token_expired", "the token has expired")
		case errors.Is(err, service.ErrTokenRevoked):
			return errorJSON(c, http.StatusUnauthorized, "token_revoked", "the token has been revoked")
		case errors.Is(err, service.ErrTokenInvalid):
			return errorJSON(c, http.StatusUnauthorized, "token_invalid", "invalid token")
		}
		l.Error("refresh failed", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "storage_error", "an error occurred during refresh")
	}

	return c.JSON(http.StatusOK, transport.AccessTokenResponse{AccessToken: access})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_logout")

	jti, _ := c.Get(authmw.JTIKey).(string)
	if err := h.Svc.Logout(ctx, jti); err != nil {
		l.Error("logout failed", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "storage_error", "an error occurred during logout")
	}

	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "successfully logged out"})
}
