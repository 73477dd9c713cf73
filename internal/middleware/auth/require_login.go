package auth

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const AccessCookieName = "accessToken"

// RequireLogin verifies the signed session cookie and puts the resolved
// user id and role into the echo context for the handlers downstream.
func RequireLogin(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := claimsFromCookie(c, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			setUserContext(c, claims)
			return next(c)
		}
	}
}

func RequireAdmin(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := claimsFromCookie(c, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			if role, _ := claims["role"].(string); role != "admin" {
				return echo.NewHTTPError(http.StatusForbidden, "admin only")
			}
			setUserContext(c, claims)
			return next(c)
		}
	}
}

func claimsFromCookie(c echo.Context, secret []byte) (jwt.MapClaims, error) {
	cookie, err := c.Cookie(AccessCookieName)
	if err != nil || cookie.Value == "" {
		return nil, fmt.Errorf("missing auth cookie")
	}

	token, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	if sub, _ := claims["sub"].(string); sub == "" {
		return nil, fmt.Errorf("missing subject claim")
	}
	return claims, nil
}

func setUserContext(c echo.Context, claims jwt.MapClaims) {
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	c.Set("user_id", sub)
	c.Set("role", role)
}
