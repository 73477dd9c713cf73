package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkravets/storeline/internal/middleware/auth"
	"github.com/mkravets/storeline/internal/service"
	"github.com/mkravets/storeline/internal/transport"
	"github.com/mkravets/storeline/pkg/logging"
)

const refreshCookieName = "refreshToken"

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Register(ctx, req.Username, req.Password); err != nil {
		return respondServiceError(c, l, "register_error", err)
	}

	l.Info("user_registered", "username", req.Username)
	return c.JSON(http.StatusCreated, transport.SuccessResponse{Success: true})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}

	result, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		return respondServiceError(c, l, "login_error", err)
	}

	c.SetCookie(CreateCookie(auth.AccessCookieName, result.AccessToken, "/", result.AccessExp))
	c.SetCookie(CreateCookie(refreshCookieName, result.RefreshToken, "/", result.RefreshExp))

	l.Info("login_success", "username", req.Username)
	return c.JSON(http.StatusOK, transport.TokenPairResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if cookie, err := c.Cookie(refreshCookieName); err == nil {
		if err := h.Svc.Logout(ctx, cookie.Value); err != nil {
			return respondServiceError(c, l, "logout_error", err)
		}
	}

	expired := time.Now().Add(-time.Hour)
	c.SetCookie(CreateCookie(auth.AccessCookieName, "", "/", expired))
	c.SetCookie(CreateCookie(refreshCookieName, "", "/", expired))

	l.Info("logout_success")
	return c.JSON(http.StatusOK, transport.SuccessResponse{Success: true})
}
