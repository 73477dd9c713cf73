package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mkravets/storeline/internal/service"
	"github.com/mkravets/storeline/internal/transport"
)

func GetID(c echo.Context) (uuid.UUID, error) {
	v := c.Get("user_id")
	s, ok := v.(string)
	if !ok || s == "" {
		return uuid.Nil, errors.New("unauthorized")
	}

	userID, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.New("unauthorized")
	}
	return userID, nil
}

func jsonError(c echo.Context, status int, msg string) error {
	return c.JSON(status, transport.ErrorResponse{Error: msg})
}

// respondServiceError maps the service error taxonomy onto the HTTP surface:
// validation 400, not found 404, conflict 409, everything else a generic 500.
func respondServiceError(c echo.Context, l *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrOutOfStock),
		errors.Is(err, service.ErrNoItems):
		l.Warn(op, "status", 400, "error", err)
		return jsonError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		l.Warn(op, "status", 404, "error", err)
		return jsonError(c, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrConflict):
		l.Warn(op, "status", 409, "error", err)
		return jsonError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		l.Warn(op, "status", 401, "error", err)
		return jsonError(c, http.StatusUnauthorized, "invalid username or password")
	default:
		l.Error(op, "status", 500, "error", err)
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
}

func CreateCookie(name, value, path string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
